package auth

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("no verified principal")
	ErrUserMismatch    = errors.New("user_id does not match the authenticated user")
	ErrMissingUserID   = errors.New("missing user_id")
)

// UserBinding decides which user an operation acts as.
type UserBinding string

const (
	// BindPrincipal acts as the verified principal. A supplied user_id must match it.
	BindPrincipal UserBinding = "principal"
	// BindClient trusts the user_id supplied by the client.
	BindClient UserBinding = "client"
)

func ParseUserBinding(s string) (UserBinding, error) {
	switch b := UserBinding(s); b {
	case BindPrincipal, BindClient:
		return b, nil
	case "":
		return BindPrincipal, nil
	}
	return "", fmt.Errorf("auth: unknown user binding %q", s)
}

// ResolveUserID returns the user the request acts as, given the user_id it supplied (possibly empty).
func (b UserBinding) ResolveUserID(ctx context.Context, requested string) (string, error) {
	if b == BindClient {
		if requested == "" {
			return "", ErrMissingUserID
		}
		return requested, nil
	}

	principal := PrincipalFromContext(ctx)
	if principal == nil {
		return "", ErrUnauthenticated
	}
	if requested != "" && requested != principal.UserID {
		return "", ErrUserMismatch
	}
	return principal.UserID, nil
}

// ResolveUserFilter is ResolveUserID for listings. In client mode an empty
// user_id yields nil, meaning every user's records.
func (b UserBinding) ResolveUserFilter(ctx context.Context, requested string) (*string, error) {
	if b == BindClient && requested == "" {
		return nil, nil
	}
	userID, err := b.ResolveUserID(ctx, requested)
	if err != nil {
		return nil, err
	}
	return &userID, nil
}

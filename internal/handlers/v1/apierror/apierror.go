// Package apierror gives every API failure the {"error","details"} body shape.
// Importing it replaces huma.NewError, so huma's own validation and auth
// failures use the same shape.
package apierror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/service"
)

const (
	MsgMissingFields  = "Missing required fields"
	MsgMissingUserID  = "Missing user_id"
	MsgInvalidRequest = "Invalid request data"
	MsgUnauthorized   = "Unauthorized"
	MsgForbidden      = "Forbidden"
	MsgNotFound       = "Account not found"
	MsgInsufficient   = "Insufficient funds"
	MsgInternal       = "Internal server error"
)

// Error is the JSON error body.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error" doc:"Short error message"`
	Details string `json:"details,omitempty" doc:"Underlying cause, when available"`
}

func (e *Error) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

func (e *Error) GetStatus() int {
	return e.Status
}

func init() {
	huma.NewError = New
}

// New builds an Error; it has the signature of huma.NewError.
func New(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	return &Error{
		Status:  status,
		Message: msg,
		Details: strings.Join(details, "; "),
	}
}

// FromServiceError maps service and auth sentinels to HTTP errors.
func FromServiceError(err error) huma.StatusError {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return New(http.StatusUnauthorized, MsgUnauthorized)
	case errors.Is(err, auth.ErrUserMismatch):
		return New(http.StatusForbidden, MsgForbidden, err)
	case errors.Is(err, auth.ErrMissingUserID):
		return New(http.StatusBadRequest, MsgMissingUserID)
	case errors.Is(err, service.ErrAccountNotFound):
		return New(http.StatusNotFound, MsgNotFound, err)
	case errors.Is(err, service.ErrInsufficientFunds):
		return New(http.StatusConflict, MsgInsufficient, err)
	}
	return New(http.StatusInternalServerError, MsgInternal, err)
}

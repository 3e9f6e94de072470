package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserBinding(t *testing.T) {
	b, err := ParseUserBinding("")
	require.NoError(t, err)
	assert.Equal(t, BindPrincipal, b)

	b, err = ParseUserBinding("client")
	require.NoError(t, err)
	assert.Equal(t, BindClient, b)

	_, err = ParseUserBinding("anyone")
	assert.Error(t, err)
}

func TestResolveUserID_Principal(t *testing.T) {
	ctx := WithPrincipal(context.Background(), &Principal{UserID: "u1"})

	userID, err := BindPrincipal.ResolveUserID(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	userID, err = BindPrincipal.ResolveUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = BindPrincipal.ResolveUserID(ctx, "u2")
	assert.ErrorIs(t, err, ErrUserMismatch)

	_, err = BindPrincipal.ResolveUserID(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveUserID_Client(t *testing.T) {
	ctx := WithPrincipal(context.Background(), &Principal{UserID: "u1"})

	userID, err := BindClient.ResolveUserID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "u2", userID)

	_, err = BindClient.ResolveUserID(ctx, "")
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestResolveUserFilter(t *testing.T) {
	ctx := WithPrincipal(context.Background(), &Principal{UserID: "u1"})

	filter, err := BindClient.ResolveUserFilter(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, filter)

	filter, err = BindPrincipal.ResolveUserFilter(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.Equal(t, "u1", *filter)
}

package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-server/internal/service"
)

const authHeader = "Authorization: Bearer token-u1"

// staticVerifier accepts "token-<user>" for any user.
type staticVerifier struct{}

func (staticVerifier) Verify(_ context.Context, token string) (*auth.Principal, error) {
	userID, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return nil, errors.New("bad token")
	}
	return &auth.Principal{UserID: userID}, nil
}

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, transaction service.Transaction) (uuid.UUID, error) {
	args := m.Called(ctx, transaction)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, query service.TransactionQuery) ([]service.Transaction, error) {
	args := m.Called(ctx, query)
	txs, _ := args.Get(0).([]service.Transaction)
	return txs, args.Error(1)
}

// newTestAPI registers both transaction handlers behind the auth guard.
func newTestAPI(t *testing.T, svc *mockTransactionService, binding auth.UserBinding) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(auth.Guard(api, staticVerifier{}))
	NewCreateTransactionHandler(svc, binding).Register(api)
	NewListTransactionsHandler(svc, binding).Register(api)
	return api
}

func decodeError(t *testing.T, body []byte) apierror.Error {
	t.Helper()
	var e apierror.Error
	assert.NoError(t, json.Unmarshal(body, &e))
	return e
}

package account

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/auth"
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

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateAccount(ctx context.Context, account service.Account) (uuid.UUID, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAccountService) GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*service.Account)
	return acc, args.Error(1)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, userID *string) ([]service.Account, error) {
	args := m.Called(ctx, userID)
	accounts, _ := args.Get(0).([]service.Account)
	return accounts, args.Error(1)
}

// newTestAPI registers the account handlers behind the auth guard.
func newTestAPI(t *testing.T, svc *mockAccountService, binding auth.UserBinding) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(auth.Guard(api, staticVerifier{}))
	NewCreateAccountHandler(svc, binding).Register(api)
	NewListAccountsHandler(svc, binding).Register(api)
	NewGetAccountHandler(svc, binding).Register(api)
	return api
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

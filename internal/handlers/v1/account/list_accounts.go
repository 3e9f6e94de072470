package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct {
	UserID string `query:"user_id" doc:"Owning user; must match the token unless client binding is enabled"`
}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Success  bool      `json:"success"`
	Accounts []Account `json:"accounts" doc:"Accounts ordered by name"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// accountLister is the interface for listing accounts.
type accountLister interface {
	ListAccounts(ctx context.Context, userID *string) ([]service.Account, error)
}

// ListAccountsHandler handles GET /account.
type ListAccountsHandler struct {
	AccountService accountLister
	Binding        auth.UserBinding
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountLister, binding auth.UserBinding) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc, Binding: binding}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/account",
		Summary:     "List accounts",
		Description: "Returns the accounts of the authenticated user.",
		Tags:        []string{"Accounts"},
		Security:    []map[string][]string{{auth.SecurityScheme: {}}},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := h.Binding.ResolveUserFilter(ctx, input.UserID)
	if err != nil {
		return nil, apierror.FromServiceError(err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	accounts, err := h.AccountService.ListAccounts(ctx, userID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromServiceError(err)
	}

	if logData != nil {
		logData.AddData("accountCount", len(accounts))
	}

	resp := ListAccountsResponseBody{
		Success:  true,
		Accounts: make([]Account, len(accounts)),
	}
	for i, a := range accounts {
		resp.Accounts[i] = accountFromService(a)
	}

	return &ListAccountsOutput{Body: resp}, nil
}

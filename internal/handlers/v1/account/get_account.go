package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-server/internal/handlers/v1/request"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// GetAccountInput is the Huma input for reading one account.
type GetAccountInput struct {
	AccountID string `path:"account_id" doc:"Account UUID"`
	UserID    string `query:"user_id" doc:"Owning user; must match the token unless client binding is enabled"`
}

// GetAccountResponseBody is the response body for reading one account.
type GetAccountResponseBody struct {
	Success bool    `json:"success"`
	Account Account `json:"account"`
}

// GetAccountOutput is the Huma output for reading one account.
type GetAccountOutput struct {
	Body GetAccountResponseBody
}

type accountGetter interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error)
}

// GetAccountHandler handles GET /account/{account_id}.
type GetAccountHandler struct {
	AccountService accountGetter
	Binding        auth.UserBinding
}

func NewGetAccountHandler(svc accountGetter, binding auth.UserBinding) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc, Binding: binding}
}

// Register registers the get account endpoint with the Huma API.
func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/account/{account_id}",
		Summary:     "Get account",
		Description: "Returns one account with its current balance. Accounts of other users are reported as not found.",
		Tags:        []string{"Accounts"},
		Security:    []map[string][]string{{auth.SecurityScheme: {}}},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	accountID, err := uuid.FromString(input.AccountID)
	if err != nil {
		return nil, request.Invalid("account_id", err)
	}

	userID, err := h.Binding.ResolveUserFilter(ctx, input.UserID)
	if err != nil {
		return nil, apierror.FromServiceError(err)
	}

	if logData != nil {
		logData.AddData("accountID", accountID.String())
	}

	acc, err := h.AccountService.GetAccount(ctx, accountID)
	if err != nil {
		return nil, apierror.FromServiceError(err)
	}
	if userID != nil && acc.UserID != *userID {
		return nil, apierror.FromServiceError(service.ErrAccountNotFound)
	}

	return &GetAccountOutput{Body: GetAccountResponseBody{
		Success: true,
		Account: accountFromService(*acc),
	}}, nil
}

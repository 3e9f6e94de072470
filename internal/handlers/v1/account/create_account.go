package account

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-server/internal/handlers/v1/request"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountBody is the request body for creating an account. Presence is
// checked by the validate tags so that missing fields produce a 400.
type CreateAccountBody struct {
	UserID         string          `json:"user_id,omitempty" doc:"Owning user; must match the token unless client binding is enabled"`
	Name           string          `json:"name,omitempty" validate:"required" doc:"Account name"`
	Type           string          `json:"type,omitempty" validate:"required" doc:"checking, savings, credit_card, cash, investment, loan or other"`
	CurrentBalance request.Decimal `json:"current_balance,omitempty" validate:"required" doc:"Starting balance"`
	Currency       string          `json:"currency,omitempty" validate:"required,iso4217" doc:"ISO 4217 currency code"`
	IsActive       *bool           `json:"is_active,omitempty" doc:"Defaults to true"`
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	AccountID string `json:"account_id" doc:"Created account UUID"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, account service.Account) (uuid.UUID, error)
}

// CreateAccountHandler handles POST /account.
type CreateAccountHandler struct {
	AccountService accountCreator
	Binding        auth.UserBinding
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator, binding auth.UserBinding) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc, Binding: binding}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/account",
		Summary:       "Create an account",
		Description:   "Creates a new account with the given name, type, starting balance and currency.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{auth.SecurityScheme: {}}},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.Account, error) {
	balance, err := input.Body.CurrentBalance.Parse()
	if err != nil {
		return service.Account{}, request.Invalid("current_balance", err)
	}

	accountType, err := service.ParseAccountType(input.Body.Type)
	if err != nil {
		return service.Account{}, request.Invalid("type", err)
	}

	name := strings.TrimSpace(input.Body.Name)
	if name == "" {
		return service.Account{}, request.Invalid("name", errors.New("must not be blank"))
	}

	isActive := true
	if input.Body.IsActive != nil {
		isActive = *input.Body.IsActive
	}

	return service.Account{
		Name:           name,
		Type:           accountType,
		CurrentBalance: balance,
		Currency:       strings.ToUpper(input.Body.Currency),
		IsActive:       isActive,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	if err := request.Validate(input.Body, request.MissingUserID(h.Binding, input.Body.UserID)...); err != nil {
		return nil, err
	}

	userID, err := h.Binding.ResolveUserID(ctx, input.Body.UserID)
	if err != nil {
		return nil, apierror.FromServiceError(err)
	}

	account, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}
	account.UserID = userID

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	id, err := h.AccountService.CreateAccount(ctx, account)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromServiceError(err)
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body: CreateAccountResponse{
			Success:   true,
			Message:   "Account created successfully",
			AccountID: id.String(),
		},
	}, nil
}

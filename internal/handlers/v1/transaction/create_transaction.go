package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-server/internal/handlers/v1/request"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	UserID            string          `json:"user_id,omitempty" doc:"Owning user; must match the token unless client binding is enabled"`
	AccountID         string          `json:"account_id,omitempty" validate:"required,uuid" doc:"Account UUID"`
	Amount            request.Decimal `json:"amount,omitempty" validate:"required" doc:"Positive decimal amount"`
	TransactionType   string          `json:"transaction_type,omitempty" validate:"required" doc:"expense or income (debit and credit are accepted as aliases)"`
	Category          string          `json:"category,omitempty" validate:"required"`
	SubcategoryID     string          `json:"subcategory_id,omitempty"`
	Description       string          `json:"description,omitempty" validate:"required"`
	Date              string          `json:"date,omitempty" validate:"required" doc:"YYYY-MM-DD or RFC3339"`
	IsRecurring       *bool           `json:"is_recurring,omitempty" doc:"Defaults to false"`
	RecurrencePattern string          `json:"recurrence_pattern,omitempty" doc:"daily, weekly, fortnightly, monthly or yearly"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, transaction service.Transaction) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
	Binding            auth.UserBinding
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator, binding auth.UserBinding) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, Binding: binding}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/transaction",
		Summary:       "Create transaction",
		Description:   "Records a transaction and applies it to the account balance. Rejected if the balance would go negative.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{auth.SecurityScheme: {}}},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (service.Transaction, error) {
	body := input.Body

	accountID, err := uuid.FromString(body.AccountID)
	if err != nil {
		return service.Transaction{}, request.Invalid("account_id", err)
	}

	amount, err := body.Amount.Parse()
	if err != nil {
		return service.Transaction{}, request.Invalid("amount", err)
	}
	if !amount.IsPositive() {
		return service.Transaction{}, request.Invalid("amount", errors.New("must be greater than zero"))
	}

	txType, err := service.ParseTransactionType(body.TransactionType)
	if err != nil {
		return service.Transaction{}, request.Invalid("transaction_type", err)
	}

	date, err := request.ParseDate(body.Date)
	if err != nil {
		return service.Transaction{}, request.Invalid("date", err)
	}

	var pattern *service.RecurrencePattern
	if body.RecurrencePattern != "" {
		p, err := service.ParseRecurrencePattern(body.RecurrencePattern)
		if err != nil {
			return service.Transaction{}, request.Invalid("recurrence_pattern", err)
		}
		pattern = &p
	}

	var subcategoryID *string
	if body.SubcategoryID != "" {
		s := body.SubcategoryID
		subcategoryID = &s
	}

	isRecurring := body.IsRecurring != nil && *body.IsRecurring

	return service.Transaction{
		AccountID:         accountID,
		Amount:            amount,
		Type:              txType,
		Category:          body.Category,
		SubcategoryID:     subcategoryID,
		Description:       body.Description,
		TransactionDate:   date,
		IsRecurring:       isRecurring,
		RecurrencePattern: pattern,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	if err := request.Validate(input.Body, request.MissingUserID(h.Binding, input.Body.UserID)...); err != nil {
		return nil, err
	}

	userID, err := h.Binding.ResolveUserID(ctx, input.Body.UserID)
	if err != nil {
		return nil, apierror.FromServiceError(err)
	}

	tx, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}
	tx.UserID = userID

	if logData != nil {
		logData.AddData("accountID", tx.AccountID.String())
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	id, err := h.TransactionService.CreateTransaction(ctx, tx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromServiceError(err)
	}

	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body: CreateTransactionResponse{
			Success:       true,
			Message:       "Transaction saved successfully",
			TransactionID: id.String(),
		},
	}, nil
}

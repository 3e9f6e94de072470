package transaction

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

const msgNoTransactions = "No transactions found"

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	UserID    string `query:"user_id" doc:"Owning user; required with client binding"`
	AccountID string `query:"account_id" doc:"Only transactions of this account"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body []Transaction
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, query service.TransactionQuery) ([]service.Transaction, error)
}

// ListTransactionsHandler handles GET /transaction.
type ListTransactionsHandler struct {
	TransactionService transactionLister
	Binding            auth.UserBinding
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister, binding auth.UserBinding) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc, Binding: binding}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/transaction",
		Summary:     "List transactions",
		Description: "Returns the user's active transactions, newest first. Responds 404 when there are none.",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{auth.SecurityScheme: {}}},
	}, h.handle)
}

// parseListTransactionsInput resolves the user and optional account filter.
func (h *ListTransactionsHandler) parseListTransactionsInput(ctx context.Context, input *ListTransactionsInput) (service.TransactionQuery, error) {
	userID, err := h.Binding.ResolveUserID(ctx, input.UserID)
	if err != nil {
		return service.TransactionQuery{}, apierror.FromServiceError(err)
	}

	query := service.TransactionQuery{UserID: userID}
	if input.AccountID != "" {
		accountID, err := uuid.FromString(input.AccountID)
		if err != nil {
			return service.TransactionQuery{}, request.Invalid("account_id", err)
		}
		query.AccountID = &accountID
	}
	return query, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	query, err := h.parseListTransactionsInput(ctx, input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, err := h.TransactionService.ListTransactions(ctx, query)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromServiceError(err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	if len(transactions) == 0 {
		return nil, huma.NewError(http.StatusNotFound, msgNoTransactions)
	}

	resp := make([]Transaction, len(transactions))
	for i, tx := range transactions {
		resp[i] = transactionFromService(tx)
	}

	return &ListTransactionsOutput{Body: resp}, nil
}

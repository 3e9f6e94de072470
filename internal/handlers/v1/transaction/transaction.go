package transaction

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                string  `json:"id" doc:"Transaction UUID"`
	UserID            string  `json:"user_id" doc:"Owning user"`
	AccountID         string  `json:"account_id" doc:"Account UUID"`
	Amount            string  `json:"amount" doc:"Decimal amount"`
	TransactionType   string  `json:"transaction_type" doc:"expense or income"`
	Category          string  `json:"category"`
	SubcategoryID     *string `json:"subcategory_id,omitempty"`
	Description       string  `json:"description"`
	Date              string  `json:"date" doc:"RFC3339 transaction date"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurrencePattern *string `json:"recurrence_pattern,omitempty"`
	Status            string  `json:"status" doc:"active or voided"`
	CreatedAt         string  `json:"created_at" doc:"RFC3339 creation time"`
	UpdatedAt         string  `json:"updated_at" doc:"RFC3339 last update time"`
}

func transactionFromService(tx service.Transaction) Transaction {
	var pattern *string
	if tx.RecurrencePattern != nil {
		p := string(*tx.RecurrencePattern)
		pattern = &p
	}
	return Transaction{
		ID:                tx.ID.String(),
		UserID:            tx.UserID,
		AccountID:         tx.AccountID.String(),
		Amount:            tx.Amount.String(),
		TransactionType:   string(tx.Type),
		Category:          tx.Category,
		SubcategoryID:     tx.SubcategoryID,
		Description:       tx.Description,
		Date:              tx.TransactionDate.Format(time.RFC3339),
		IsRecurring:       tx.IsRecurring,
		RecurrencePattern: pattern,
		Status:            string(tx.Status),
		CreatedAt:         tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         tx.UpdatedAt.Format(time.RFC3339),
	}
}

package v1

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/monthwise/backend/internal/models"
	mw_uuid "github.com/monthwise/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"github.com/gin-gonic/gin"
)

type TransactionEditable struct {
	Date time.Time `json:"date" example:"2024-02-05T12:00:00Z"` // Date of the transaction, the time of day is normalized to midday UTC

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"-14.03" multipleOf:"0.00000001"` // Signed amount, positive for income and negative for expenses

	Description string `json:"description" example:"Groceries"` // What the transaction was for
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:        editable.Date,
		Amount:      editable.Amount,
		Description: editable.Description,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	RecurringExpenseID *uuid.UUID       `json:"recurringExpenseId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // Set for transactions generated by a recurring expense
	Links              TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:        model.Date,
			Amount:      model.Amount,
			Description: model.Description,
		},
		RecurringExpenseID: model.RecurringExpenseID,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`                                                          // List of transactions
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

// swagger:enum TransactionType
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

type TransactionQueryFilter struct {
	Date               time.Time       `form:"date" filterField:"false"`        // Exact date. Time is ignored.
	FromDate           time.Time       `form:"fromDate" filterField:"false"`    // Transactions at and after this date. Time is ignored.
	UntilDate          time.Time       `form:"untilDate" filterField:"false"`   // Transactions before and at this date. Time is ignored.
	Description        string          `form:"description" filterField:"false"` // Glob pattern matched against the description
	Type               TransactionType `form:"type" filterField:"false"`        // Income or expense transactions only
	RecurringExpenseID mw_uuid.UUID    `form:"recurringExpense"`                // ID of the generating recurring expense
	Offset             uint            `form:"offset" filterField:"false"`      // The offset of the first Transaction returned. Defaults to 0.
	Limit              int             `form:"limit" filterField:"false"`       // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	// If the ID is not set, use an actual nil, not a pointer to uuid.Nil
	var rID *uuid.UUID
	if f.RecurringExpenseID != mw_uuid.Nil {
		rID = &f.RecurringExpenseID.UUID
	}

	// String and date fields are not set here since they are handled
	// in the controller function
	return models.Transaction{
		RecurringExpenseID: rID,
	}
}

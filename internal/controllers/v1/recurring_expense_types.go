package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monthwise/backend/internal/models"
	"github.com/shopspring/decimal"
)

type RecurringExpenseEditable struct {
	Description string `json:"description" example:"Rent"` // What the expense is for

	// The sign of the amount is ignored, recurring expenses are always stored as expenses.
	Amount decimal.Decimal `json:"amount" example:"1000" multipleOf:"0.00000001"` // Monthly amount

	Day          int                `json:"day" example:"5" minimum:"1" maximum:"31"`       // Target day of month. Months without this day are skipped.
	Termination  models.Termination `json:"termination" example:"INSTALLMENTS"`             // How the expense stops recurring
	EndDate      *time.Time         `json:"endDate" example:"2025-12-31T00:00:00Z"`         // Last date occurrences may fall on, only for END_DATE
	Installments uint               `json:"installments" example:"12" minimum:"1"`          // Total number of occurrences, only for INSTALLMENTS
}

// model returns the database resource for the API representation of the editable fields
func (editable RecurringExpenseEditable) model() models.RecurringExpense {
	return models.RecurringExpense{
		Description:  editable.Description,
		Amount:       editable.Amount,
		Day:          editable.Day,
		Termination:  editable.Termination,
		EndDate:      editable.EndDate,
		Installments: editable.Installments,
	}
}

type RecurringExpenseLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/recurring-expenses/f3db0cb0-3a3e-4d4c-b592-33f8e684f1c0"`                          // The recurring expense itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?recurringExpense=f3db0cb0-3a3e-4d4c-b592-33f8e684f1c0"` // The transactions it generated
}

// RecurringExpense is the representation of a RecurringExpense in API v1.
type RecurringExpense struct {
	models.DefaultModel
	RecurringExpenseEditable
	AppliedCount uint                  `json:"appliedCount" example:"3"`                     // Number of occurrences materialized so far
	LastApplied  *time.Time            `json:"lastApplied" example:"2024-03-05T12:00:00Z"`   // Date of the most recently materialized occurrence
	Active       bool                  `json:"active" example:"true"`                        // Whether the expense can still produce occurrences
	Links        RecurringExpenseLinks `json:"links"`
}

// newRecurringExpense returns the API v1 representation of the resource
func newRecurringExpense(c *gin.Context, model models.RecurringExpense) RecurringExpense {
	url := c.GetString(string(models.DBContextURL))

	return RecurringExpense{
		DefaultModel: model.DefaultModel,
		RecurringExpenseEditable: RecurringExpenseEditable{
			Description:  model.Description,
			Amount:       model.Amount,
			Day:          model.Day,
			Termination:  model.Termination,
			EndDate:      model.EndDate,
			Installments: model.Installments,
		},
		AppliedCount: model.AppliedCount,
		LastApplied:  model.LastApplied,
		Active:       model.Active(),
		Links: RecurringExpenseLinks{
			Self:         fmt.Sprintf("%s/v1/recurring-expenses/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?recurringExpense=%s", url, model.ID),
		},
	}
}

type RecurringExpenseResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *RecurringExpense `json:"data"`                                                          // The recurring expense data
}

type RecurringExpenseListResponse struct {
	Data  []RecurringExpense `json:"data"`                                                          // List of recurring expenses
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringExpenseQueryFilter struct {
	Termination models.Termination `form:"termination"`              // Filter by termination variant
	Day         int                `form:"day"`                      // Filter by target day of month
	Active      bool               `form:"active" filterField:"false"` // Only active or only finished expenses
}

func (f RecurringExpenseQueryFilter) model() models.RecurringExpense {
	return models.RecurringExpense{
		Termination: f.Termination,
		Day:         f.Day,
	}
}

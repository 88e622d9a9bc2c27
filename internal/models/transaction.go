package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single dated movement of money.
//
// Positive amounts are income, negative amounts are expenses. Transactions
// with a RecurringExpenseID are generated by the materializer and can only
// be removed by deleting the recurring expense they belong to.
type Transaction struct {
	DefaultModel
	Date               time.Time       // Normalized to midday UTC, see BeforeSave
	Amount             decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description        string
	RecurringExpenseID *uuid.UUID
	RecurringExpense   RecurringExpense `json:"-"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - validates description and amount
//   - normalizes the date to midday UTC so that date-only comparisons
//     cannot drift across timezone boundaries
func (t *Transaction) BeforeSave(tx *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		return ErrDescriptionMissing
	}

	if t.Amount.IsZero() {
		return ErrAmountZero
	}

	// Ensure that the RecurringExpenseID is nil and not a pointer to a
	// nil UUID when it is not set
	if t.RecurringExpenseID != nil && *t.RecurringExpenseID == uuid.Nil {
		t.RecurringExpenseID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	}
	t.Date = midday(t.Date)

	// Verify the owning recurring expense exists
	if t.RecurringExpenseID != nil && t.RecurringExpense.ID == uuid.Nil {
		var r RecurringExpense
		err = tx.First(&r, &RecurringExpense{DefaultModel: DefaultModel{ID: *t.RecurringExpenseID}}).Error
		if err != nil {
			return ErrRecurringExpenseMissing
		}
	}

	return
}

// midday returns the instant at 12:00 UTC on the same calendar day.
func midday(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// Export returns all transactions on this instance for backups.
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

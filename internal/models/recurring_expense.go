package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/monthwise/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Termination determines when a recurring expense stops producing
// transactions.
//
// Both variants exist in deployed backups, so both stay loadable.
//
// swagger:enum Termination
type Termination string

const (
	// The expense recurs until its end date has passed.
	TerminationEndDate Termination = "END_DATE"
	// The expense recurs for a fixed number of installments.
	TerminationInstallments Termination = "INSTALLMENTS"
)

// RecurringExpense is a rule that produces one expense transaction per
// month on a fixed day of month.
type RecurringExpense struct {
	DefaultModel
	Description  string
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Always negative, recurring expenses model expenses only
	Day          int             // Target day of month, 1-31
	Termination  Termination
	EndDate      *time.Time // Only set for TerminationEndDate
	Installments uint       // Total number of occurrences, only set for TerminationInstallments
	AppliedCount uint       // Number of occurrences materialized so far
	LastApplied  *time.Time // Date of the most recently materialized occurrence
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (r *RecurringExpense) AfterFind(tx *gorm.DB) (err error) {
	err = r.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	if r.EndDate != nil {
		*r.EndDate = r.EndDate.In(time.UTC)
	}
	if r.LastApplied != nil {
		*r.LastApplied = r.LastApplied.In(time.UTC)
	}

	return
}

// BeforeSave
//   - validates description, day of month and the termination variant
//   - coerces the amount to be negative, recurring expenses model
//     expenses only
func (r *RecurringExpense) BeforeSave(_ *gorm.DB) (err error) {
	r.Description = strings.TrimSpace(r.Description)
	if r.Description == "" {
		return ErrDescriptionMissing
	}

	if r.Amount.IsZero() {
		return ErrAmountZero
	}
	r.Amount = r.Amount.Abs().Neg()

	if r.Day < 1 || r.Day > 31 {
		return ErrDayOutOfRange
	}

	switch r.Termination {
	case TerminationEndDate:
		if r.EndDate == nil {
			return ErrEndDateMissing
		}
	case TerminationInstallments:
		if r.Installments == 0 {
			return ErrInstallmentsMissing
		}
	default:
		return ErrTerminationInvalid
	}

	return
}

// Active reports whether the expense can still produce occurrences.
//
// End-date rules stay active, months after the end date are skipped by
// the materializer instead.
func (r RecurringExpense) Active() bool {
	if r.Termination == TerminationInstallments {
		return r.AppliedCount < r.Installments
	}

	return true
}

// Ends reports whether the occurrence date is past the end of the rule.
// The end date itself is inclusive through its end of day.
func (r RecurringExpense) Ends(occurrence time.Time) bool {
	if r.Termination != TerminationEndDate || r.EndDate == nil {
		return false
	}

	e := r.EndDate.In(time.UTC)
	endOfDay := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 999999999, time.UTC)
	return occurrence.After(endOfDay)
}

// FirstCandidate returns the first month the materializer considers for
// this rule.
func (r RecurringExpense) FirstCandidate(fallback time.Time) types.Month {
	if r.LastApplied != nil {
		return types.MonthOf(*r.LastApplied).Next()
	}

	return types.MonthOf(fallback)
}

// DeleteCascading removes the recurring expense together with every
// transaction it generated. It must run inside a database transaction.
func (r RecurringExpense) DeleteCascading(tx *gorm.DB) error {
	err := tx.Where(&Transaction{RecurringExpenseID: &r.ID}).Delete(&Transaction{}).Error
	if err != nil {
		return err
	}

	return tx.Delete(&r).Error
}

// Export returns all recurring expenses on this instance for backups.
func (RecurringExpense) Export() (json.RawMessage, error) {
	var recurringExpenses []RecurringExpense
	err := DB.Unscoped().Where(&RecurringExpense{}).Find(&recurringExpenses).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&recurringExpenses)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

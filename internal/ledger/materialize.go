// Package ledger implements the recurrence materializer and the pure
// projections derived from the transaction set.
package ledger

import (
	"time"

	"github.com/monthwise/backend/internal/models"
	"github.com/monthwise/backend/internal/types"
	"github.com/rs/zerolog/log"
)

// monthCeiling bounds the number of candidate months considered per rule
// and invocation. It guarantees termination for malformed rule data, e.g.
// an installment count that can never be reached.
const monthCeiling = 60

// Result holds the outcome of one materializer run.
//
// Created contains the transactions to append, Rules the recurring
// expenses whose progress fields advanced. A caller must persist both
// together or not at all so that readers never observe a partial run.
type Result struct {
	Created []models.Transaction
	Rules   []models.RecurringExpense
}

// Empty reports whether the run changed anything.
func (r Result) Empty() bool {
	return len(r.Created) == 0 && len(r.Rules) == 0
}

// Materialize produces the transactions the recurrence rules require up to
// and including the horizon month.
//
// It never modifies its inputs. Existing transactions are only read for
// duplicate detection, so repeated invocations with the same or a later
// horizon are idempotent. Rules resume from their last applied occurrence,
// rules that never ran backfill from the earlier of now and the earliest
// transaction in the ledger.
func Materialize(rules []models.RecurringExpense, transactions []models.Transaction, now time.Time, horizon types.Month) Result {
	seed := now
	for _, t := range transactions {
		if t.Date.Before(seed) {
			seed = t.Date
		}
	}

	// Rules are independent of each other, the order does not matter
	var result Result
	for _, rule := range rules {
		created, advanced := materializeRule(&rule, transactions, seed, horizon)

		result.Created = append(result.Created, created...)
		if advanced {
			result.Rules = append(result.Rules, rule)
		}
	}

	return result
}

// materializeRule walks candidate months for a single rule. It mutates the
// progress fields of the rule passed in and returns the transactions to
// create, plus whether the rule changed.
func materializeRule(rule *models.RecurringExpense, transactions []models.Transaction, seed time.Time, horizon types.Month) ([]models.Transaction, bool) {
	var created []models.Transaction
	advanced := false

	month := rule.FirstCandidate(seed)

	for i := 0; rule.Active() && !month.After(horizon); i++ {
		if i >= monthCeiling {
			// Not an error for the caller: the ceiling is a safety net
			// against malformed rule data
			ceilingHits.Inc()
			log.Warn().
				Str("recurringExpense", rule.ID.String()).
				Str("description", rule.Description).
				Msgf("materialization stopped after %d months, the rule can likely never terminate", monthCeiling)
			break
		}

		// Months shorter than the target day are skipped, the occurrence
		// is never clamped to the last day of the month
		if !month.ContainsDay(rule.Day) {
			month = month.Next()
			continue
		}

		occurrence := month.Day(rule.Day)

		// Past the end date there is nothing to create, but the walk
		// continues so that LastApplied bookkeeping stays consistent
		// with the horizon
		if rule.Ends(occurrence) {
			month = month.Next()
			continue
		}

		if occurrenceExists(*rule, transactions, month, occurrence) {
			// Keep pace with occurrences that already exist instead of
			// duplicating them
			occ := occurrence
			rule.LastApplied = &occ
			advanced = true

			month = month.Next()
			continue
		}

		id := rule.ID
		created = append(created, models.Transaction{
			Date:               occurrence,
			Amount:             rule.Amount,
			Description:        rule.Description,
			RecurringExpenseID: &id,
		})
		materializedTransactions.Inc()

		occ := occurrence
		rule.LastApplied = &occ
		if rule.Termination == models.TerminationInstallments {
			rule.AppliedCount++
		}
		advanced = true

		month = month.Next()
	}

	return created, advanced
}

// occurrenceExists reports whether a transaction for this rule and month
// was already materialized.
//
// Installment rules match on the exact occurrence instant, end-date rules
// on the calendar month. Either way a rule has at most one transaction per
// month.
func occurrenceExists(rule models.RecurringExpense, transactions []models.Transaction, month types.Month, occurrence time.Time) bool {
	for _, t := range transactions {
		if t.RecurringExpenseID == nil || *t.RecurringExpenseID != rule.ID {
			continue
		}

		if rule.Termination == models.TerminationInstallments {
			if t.Date.Equal(occurrence) {
				return true
			}
			continue
		}

		if month.Contains(t.Date) {
			return true
		}
	}

	return false
}

package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/monthwise/backend/internal/models"
	"github.com/monthwise/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Order is the direction of a chronological sort.
type Order int

const (
	Ascending  Order = iota // oldest first, used for balance computation
	Descending              // newest first, used for display
)

// Chronological returns a copy of the transactions sorted by date.
//
// The sort is stable and breaks ties on the creation timestamp, so
// transactions on the same instant keep their creation order.
func Chronological(transactions []models.Transaction, order Order) []models.Transaction {
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b models.Transaction) int {
		c := a.Date.Compare(b.Date)
		if c == 0 {
			c = a.CreatedAt.Compare(b.CreatedAt)
		}

		if order == Descending {
			return -c
		}
		return c
	})

	return sorted
}

// RunningBalance returns for every transaction the ledger balance
// immediately after including it, keyed by transaction ID.
//
// The balance of the latest transaction equals the sum of all amounts.
func RunningBalance(transactions []models.Transaction) map[uuid.UUID]decimal.Decimal {
	balances := make(map[uuid.UUID]decimal.Decimal, len(transactions))

	sum := decimal.Zero
	for _, t := range Chronological(transactions, Ascending) {
		sum = sum.Add(t.Amount)
		balances[t.ID] = sum
	}

	return balances
}

// Day summarizes all transactions of one calendar day.
type Day struct {
	Date       time.Time       `json:"date"`
	Net        decimal.Decimal `json:"net"`
	HasIncome  bool            `json:"hasIncome"`
	HasExpense bool            `json:"hasExpense"`
}

// DailyAggregate sums the transactions on the calendar day of date.
// Only the date matters, the time of day is ignored on both sides.
func DailyAggregate(transactions []models.Transaction, date time.Time) Day {
	day := Day{
		Date: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Net:  decimal.Zero,
	}

	for _, t := range transactions {
		if !sameDay(t.Date, date) {
			continue
		}

		day.Net = day.Net.Add(t.Amount)
		if t.Amount.IsPositive() {
			day.HasIncome = true
		}
		if t.Amount.IsNegative() {
			day.HasExpense = true
		}
	}

	return day
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MonthGroup is the set of transactions in one calendar month.
type MonthGroup struct {
	Month        types.Month          `json:"month"`
	Transactions []models.Transaction `json:"transactions"`
	Net          decimal.Decimal      `json:"net"`
}

// MonthlyGroups groups the transactions by calendar month, most recent
// month first. Transactions within a group keep chronological order.
func MonthlyGroups(transactions []models.Transaction) []MonthGroup {
	byMonth := make(map[string]*MonthGroup)

	for _, t := range Chronological(transactions, Ascending) {
		month := types.MonthOf(t.Date)

		group, ok := byMonth[month.String()]
		if !ok {
			group = &MonthGroup{Month: month, Net: decimal.Zero}
			byMonth[month.String()] = group
		}

		group.Transactions = append(group.Transactions, t)
		group.Net = group.Net.Add(t.Amount)
	}

	groups := make([]MonthGroup, 0, len(byMonth))
	for _, group := range byMonth {
		groups = append(groups, *group)
	}

	slices.SortStableFunc(groups, func(a, b MonthGroup) int {
		return time.Time(b.Month).Compare(time.Time(a.Month))
	})

	return groups
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monthwise/backend/internal/display"
	"github.com/monthwise/backend/internal/httputil"
	"github.com/monthwise/backend/internal/ledger"
	"github.com/monthwise/backend/internal/models"
	"github.com/monthwise/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterMonthRoutes registers the routes for months with the RouterGroup
// that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMonths)
		r.GET("", GetMonths)
	}
	{
		r.OPTIONS("/:month", OptionsMonth)
		r.GET("/:month", GetMonth)
	}
}

// MonthTransaction is a transaction as shown in the month view, together
// with the ledger balance immediately after it.
type MonthTransaction struct {
	Transaction
	Balance        decimal.Decimal `json:"balance" example:"1248.72"`                 // Running balance including this transaction
	AmountDisplay  string          `json:"amountDisplay,omitempty" example:"-1.000,00"` // Localized amount, only set when the locale parameter is used
	BalanceDisplay string          `json:"balanceDisplay,omitempty" example:"1.248,72"` // Localized balance, only set when the locale parameter is used
	DateDisplay    string          `json:"dateDisplay,omitempty" example:"2024-02-05"`  // Calendar day, only set when the locale parameter is used
}

// Month is the calendar view of one month.
type Month struct {
	Month        types.Month        `json:"month" example:"2024-02-01T00:00:00Z"` // The month itself
	Net          decimal.Decimal    `json:"net" example:"-1740.21"`               // Net sum of all transactions in the month
	Transactions []MonthTransaction `json:"transactions"`                         // Transactions of the month, most recent first
	Days         []ledger.Day       `json:"days"`                                 // One aggregate per calendar day of the month
}

// MonthOverview summarizes one month for the list view.
type MonthOverview struct {
	Month        types.Month     `json:"month" example:"2024-02-01T00:00:00Z"` // The month itself
	Net          decimal.Decimal `json:"net" example:"-1740.21"`               // Net sum of all transactions in the month
	Transactions int             `json:"transactions" example:"17"`            // Number of transactions in the month
}

type MonthListResponse struct {
	Data  []MonthOverview `json:"data"`                                   // List of months, most recent first
	Error *string         `json:"error" example:"the database is broken"` // The error, if any occurred
}

type MonthResponse struct {
	Data  *Month  `json:"data"`                                                    // Data for the month
	Error *string `json:"error" example:"parsing time \"X\" as \"2006-01\"..."` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonths(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List months
// @Description	Returns one summary per calendar month that has transactions, most recent first
// @Tags			Months
// @Produce		json
// @Success		200	{object}	MonthListResponse
// @Failure		500	{object}	MonthListResponse
// @Router			/v1/months [get]
func GetMonths(c *gin.Context) {
	var transactions []models.Transaction
	err := models.DB.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthListResponse{
			Error: &e,
		})
		return
	}

	data := make([]MonthOverview, 0)
	for _, group := range ledger.MonthlyGroups(transactions) {
		data = append(data, MonthOverview{
			Month:        group.Month,
			Net:          group.Net,
			Transactions: len(group.Transactions),
		})
	}

	c.JSON(http.StatusOK, MonthListResponse{Data: data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Failure		400	{object}	httpError
// @Router			/v1/months/{month} [options]
func OptionsMonth(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get month view
// @Description	Returns the transactions, per-day aggregates and running balances for one calendar month. This is a read-only projection, call materialize first when advancing to a new month.
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Param			locale	query		string	false	"BCP 47 language tag used to render display strings, e.g. de or en-US"
// @Router			/v1/months/{month} [get]
func GetMonth(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &e,
		})
		return
	}
	month := types.MonthOf(uri.Month)

	// The running balance needs the full history, not only this month
	var transactions []models.Transaction
	err := models.DB.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &e,
		})
		return
	}

	balances := ledger.RunningBalance(transactions)

	localize := c.Query("locale") != ""
	tag := display.Locale(c.Query("locale"))

	data := Month{
		Month: month,
		Net:   decimal.Zero,
	}

	for _, transaction := range ledger.Chronological(transactions, ledger.Descending) {
		if !month.Contains(transaction.Date) {
			continue
		}

		data.Net = data.Net.Add(transaction.Amount)

		t := MonthTransaction{
			Transaction: newTransaction(c, transaction),
			Balance:     balances[transaction.ID],
		}
		if localize {
			t.AmountDisplay = display.Amount(transaction.Amount, tag)
			t.BalanceDisplay = display.Amount(t.Balance, tag)
			t.DateDisplay = display.Date(transaction.Date)
		}

		data.Transactions = append(data.Transactions, t)
	}

	data.Days = make([]ledger.Day, 0, month.Days())
	for day := 1; day <= month.Days(); day++ {
		data.Days = append(data.Days, ledger.DailyAggregate(transactions, month.Day(day)))
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &data})
}

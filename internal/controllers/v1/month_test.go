package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/monthwise/backend/internal/controllers/v1"
	"github.com/monthwise/backend/internal/test"
	"github.com/monthwise/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMonthsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestMonths() {
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(500),
		Description: "Paycheck",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(-200),
		Description: "Rent",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(100),
		Description: "Birthday money",
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// Most recent month first
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), types.NewMonth(2024, 2), response.Data[0].Month)
	assert.True(suite.T(), response.Data[0].Net.Equal(decimal.NewFromInt(300)), "net is %s", response.Data[0].Net)
	assert.Equal(suite.T(), 2, response.Data[0].Transactions)

	assert.Equal(suite.T(), types.NewMonth(2024, 1), response.Data[1].Month)
	assert.True(suite.T(), response.Data[1].Net.Equal(decimal.NewFromInt(100)), "net is %s", response.Data[1].Net)
	assert.Equal(suite.T(), 1, response.Data[1].Transactions)
}

func (suite *TestSuiteStandard) TestMonthsDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestMonthOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/months/2024-02", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestMonthInvalid() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/February", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMonth() {
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(500),
		Description: "Paycheck",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(-200),
		Description: "Rent",
	})

	// Transactions outside the month do not show up, but shift the balance
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(100),
		Description: "Birthday money",
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/2024-02", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), types.NewMonth(2024, 2), response.Data.Month)
	assert.True(suite.T(), response.Data.Net.Equal(decimal.NewFromInt(300)), "net is %s", response.Data.Net)

	// Most recent transaction first
	require.Len(suite.T(), response.Data.Transactions, 2)
	assert.Equal(suite.T(), "Rent", response.Data.Transactions[0].Description)
	assert.Equal(suite.T(), "Paycheck", response.Data.Transactions[1].Description)

	// The balance includes the January transaction
	assert.True(suite.T(), response.Data.Transactions[0].Balance.Equal(decimal.NewFromInt(400)), "balance is %s", response.Data.Transactions[0].Balance)
	assert.True(suite.T(), response.Data.Transactions[1].Balance.Equal(decimal.NewFromInt(600)), "balance is %s", response.Data.Transactions[1].Balance)

	// 2024 is a leap year
	require.Len(suite.T(), response.Data.Days, 29)

	first := response.Data.Days[0]
	assert.True(suite.T(), first.Net.Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), first.HasIncome)
	assert.False(suite.T(), first.HasExpense)

	fifth := response.Data.Days[4]
	assert.True(suite.T(), fifth.Net.Equal(decimal.NewFromInt(-200)))
	assert.False(suite.T(), fifth.HasIncome)
	assert.True(suite.T(), fifth.HasExpense)

	second := response.Data.Days[1]
	assert.True(suite.T(), second.Net.IsZero())
	assert.False(suite.T(), second.HasIncome)
	assert.False(suite.T(), second.HasExpense)
}

func (suite *TestSuiteStandard) TestMonthLocalized() {
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(-200),
		Description: "Rent",
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/2024-02?locale=de", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data.Transactions, 1)
	assert.Equal(suite.T(), "2024-02-05", response.Data.Transactions[0].DateDisplay)
	assert.NotEmpty(suite.T(), response.Data.Transactions[0].AmountDisplay)
	assert.NotEmpty(suite.T(), response.Data.Transactions[0].BalanceDisplay)

	// Without the parameter the display fields stay empty
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/2024-02", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data.Transactions, 1)
	assert.Empty(suite.T(), response.Data.Transactions[0].AmountDisplay)
}

func (suite *TestSuiteStandard) TestMonthDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/2024-02", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/monthwise/backend/internal/controllers/v1"
	"github.com/monthwise/backend/internal/models"
	"github.com/monthwise/backend/internal/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestTransactionsOptions verifies that the HTTP OPTIONS response for /transactions/{id} is correct.
func (suite *TestSuiteStandard) TestTransactionsOptions() {
	tests := []struct {
		name     string        // Name for the test
		status   int           // Expected HTTP status
		id       string        // String to use as ID. Ignored when pathFunc is non-nil
		pathFunc func() string // Function returning the path
	}{
		{
			"Does not exist",
			http.StatusNotFound,
			uuid.New().String(),
			nil,
		},
		{
			"Invalid UUID",
			http.StatusBadRequest,
			"NotParseableAsUUID",
			nil,
		},
		{
			"Success",
			http.StatusNoContent,
			"",
			func() string {
				return createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromFloat(31), Description: "Options test"}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v1/transactions", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{
		{
			Date:        time.Date(2024, 2, 5, 17, 30, 0, 0, time.UTC),
			Amount:      decimal.NewFromFloat(-14.03),
			Description: "Groceries",
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC), response.Data[0].Data.Date, "date must be normalized to midday UTC")
	assert.Nil(suite.T(), response.Data[0].Data.RecurringExpenseID)
}

// TestTransactionsCreateErrors verifies that a batch with a broken transaction
// still creates the valid ones and reports the error per element.
func (suite *TestSuiteStandard) TestTransactionsCreateErrors() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{
		{Amount: decimal.NewFromFloat(100), Description: "Paycheck"},
		{Amount: decimal.NewFromFloat(-5)}, // missing description
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 2)
	assert.Nil(suite.T(), response.Data[0].Error)
	assert.NotNil(suite.T(), response.Data[1].Error)
	assert.Nil(suite.T(), response.Data[1].Data)
}

func (suite *TestSuiteStandard) TestTransactionsCreateInvalidBody() {
	tests := []struct {
		name string
		body string
	}{
		{"Broken JSON", `[{ "description": "Broken`},
		{"No body", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilters() {
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(500),
		Description: "Paycheck February",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(-200),
		Description: "Rent February",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:        time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(-200),
		Description: "Rent March",
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"No filter", "", 3},
		{"Income only", "type=INCOME", 1},
		{"Expenses only", "type=EXPENSE", 2},
		{"Exact date", "date=2024-02-05T00:00:00Z", 1},
		{"From date", "fromDate=2024-02-02T00:00:00Z", 2},
		{"Until date", "untilDate=2024-02-29T00:00:00Z", 2},
		{"Description glob", "description=Rent*", 2},
		{"Description glob no match", "description=Insurance*", 0},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=1", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetInvalidType() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?type=TRANSFER", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:      decimal.NewFromFloat(-14.03),
		Description: "Groceries",
	})

	r := test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), transaction.Data.ID, response.Data.ID)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:      decimal.NewFromFloat(-14.03),
		Description: "Groceries",
	})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestTransactionsDeleteRecurring verifies that materialized transactions can
// only be removed by deleting their recurring expense.
func (suite *TestSuiteStandard) TestTransactionsDeleteRecurring() {
	recurringExpense := createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{
		Description:  "Rent",
		Amount:       decimal.NewFromInt(1000),
		Day:          1,
		Termination:  models.TerminationInstallments,
		Installments: 12,
	})

	r := test.Request(suite.T(), http.MethodGet, recurringExpense.Data.Links.Transactions, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	assert.NotEmpty(suite.T(), list.Data, "creating the recurring expense must have materialized a transaction")

	r = test.Request(suite.T(), http.MethodDelete, list.Data[0].Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionsDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestTransactionsDatabaseError() {
	tests := []struct {
		name   string // Name of the test
		path   string // Path to send request to
		method string // HTTP method to use
	}{
		{"GET Collection", "", http.MethodGet},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodOptions},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/transactions%s", tt.path), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)
		})
	}
}

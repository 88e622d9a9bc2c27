package v1_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	v1 "github.com/monthwise/backend/internal/controllers/v1"
	"github.com/monthwise/backend/internal/models"
	"github.com/monthwise/backend/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backupBody builds the multipart body for a backup with the passed resources.
func backupBody(t *testing.T, recurringExpenses []models.RecurringExpense, transactions []models.Transaction) (body any, headers map[string]string) {
	content, err := json.Marshal(map[string]any{
		"version": "0.0.0",
		"data": map[string]any{
			"RecurringExpense": recurringExpenses,
			"Transaction":      transactions,
		},
	})
	require.Nil(t, err)

	return test.BackupFile(t, "backup.json", content)
}

func (suite *TestSuiteStandard) TestImportOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/import", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "POST", r.Header().Get("allow"))
}

// TestImport verifies that importing a backup replaces the current data.
func (suite *TestSuiteStandard) TestImport() {
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:      decimal.NewFromInt(-5),
		Description: "Overwritten by the import",
	})

	body, headers := backupBody(suite.T(), nil, []models.Transaction{
		{
			Date:        time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC),
			Amount:      decimal.NewFromInt(-200),
			Description: "Restored",
		},
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?confirm=overwrite-my-data", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 0, response.Data.RecurringExpenses)
	assert.Equal(suite.T(), 1, response.Data.Transactions)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), "Restored", list.Data[0].Description)
}

// TestImportLegacyTermination verifies that backups from before the explicit
// termination variant get it filled in from the fields that are set.
func (suite *TestSuiteStandard) TestImportLegacyTermination() {
	applied := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	body, headers := backupBody(suite.T(), []models.RecurringExpense{
		{
			Description:  "Laptop",
			Amount:       decimal.NewFromInt(-99),
			Day:          1,
			Installments: 3,
			AppliedCount: 3,
			LastApplied:  &applied,
		},
	}, nil)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?confirm=overwrite-my-data", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/recurring-expenses?termination=INSTALLMENTS", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.RecurringExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.False(suite.T(), list.Data[0].Active)
}

// TestImportCatchesUp verifies that materialization runs after a restore, so
// that occurrences that became due since the backup was taken exist.
func (suite *TestSuiteStandard) TestImportCatchesUp() {
	body, headers := backupBody(suite.T(), []models.RecurringExpense{
		{
			Description: "Rent",
			Amount:      decimal.NewFromInt(-1000),
			Day:         1,
			Termination: models.TerminationEndDate,
			EndDate:     testEndDate(),
		},
	}, nil)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?confirm=overwrite-my-data", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1, "the current month must be materialized after the import")
}

// TestImportFails verifies that a failing import leaves the data untouched.
func (suite *TestSuiteStandard) TestImportFails() {
	existing := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:      decimal.NewFromInt(-5),
		Description: "Survives",
	})

	brokenBackup, brokenHeaders := test.BackupFile(suite.T(), "backup.json", []byte("this is not JSON"))
	wrongSuffix, wrongSuffixHeaders := test.BackupFile(suite.T(), "backup.txt", []byte("{}"))

	// A rule where no termination variant can be derived
	invalidRule, invalidRuleHeaders := backupBody(suite.T(), []models.RecurringExpense{
		{
			Description: "Rent",
			Amount:      decimal.NewFromInt(-1000),
			Day:         1,
		},
	}, nil)

	tests := []struct {
		name    string
		url     string
		body    any
		headers map[string]string
	}{
		{"No confirmation", "http://example.com/v1/import", "", nil},
		{"Wrong confirmation", "http://example.com/v1/import?confirm=yes", "", nil},
		{"No file", "http://example.com/v1/import?confirm=overwrite-my-data", "", nil},
		{"Wrong file suffix", "http://example.com/v1/import?confirm=overwrite-my-data", wrongSuffix, wrongSuffixHeaders},
		{"Not a valid backup", "http://example.com/v1/import?confirm=overwrite-my-data", brokenBackup, brokenHeaders},
		{"No termination derivable", "http://example.com/v1/import?confirm=overwrite-my-data", invalidRule, invalidRuleHeaders},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var r int
			if tt.headers == nil {
				recorder := test.Request(t, http.MethodPost, tt.url, tt.body)
				r = recorder.Code
			} else {
				recorder := test.Request(t, http.MethodPost, tt.url, tt.body, tt.headers)
				r = recorder.Code
			}

			assert.Equal(t, http.StatusBadRequest, r)
		})
	}

	// The existing transaction is untouched
	r := test.Request(suite.T(), http.MethodGet, existing.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

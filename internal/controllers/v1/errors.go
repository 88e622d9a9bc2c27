package v1

import (
	"errors"
	"net/http"

	"github.com/monthwise/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Import errors
var (
	errNoFilePost         = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix    = errors.New("this endpoint only supports files of the following types")
	errImportConfirmation = errors.New("the confirmation for overwriting the current data was incorrect")
	errNotValidBackup     = errors.New("the uploaded file is not a valid backup")
)

// Materialization errors
var (
	errHorizonInvalid = errors.New("the horizon parameter must be a month in YYYY-MM format")
)

// Transaction errors
var (
	errTransactionTypeInvalid = errors.New("the specified transaction type is invalid")
)

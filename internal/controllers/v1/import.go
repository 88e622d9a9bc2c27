package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monthwise/backend/internal/httputil"
	"github.com/monthwise/backend/internal/models"
	"github.com/monthwise/backend/internal/types"
	"gorm.io/gorm"
)

// backup is the file format produced by the export endpoint.
type backup struct {
	Version string `json:"version"`
	Data    struct {
		RecurringExpense []models.RecurringExpense `json:"RecurringExpense"`
		Transaction      []models.Transaction      `json:"Transaction"`
	} `json:"data"`
}

type ImportResult struct {
	RecurringExpenses int `json:"recurringExpenses" example:"4"` // Number of recurring expenses restored
	Transactions      int `json:"transactions" example:"312"`    // Number of transactions restored
}

type ImportResponse struct {
	Error *string       `json:"error" example:"this endpoint requires the confirmation parameter"` // The error, if any occurred
	Data  *ImportResult `json:"data"`                                                              // Counts of the restored resources
}

// RegisterImportRoutes registers the routes for imports.
func RegisterImportRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsImport)
		r.POST("", Import)
	}
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// migrateTermination fills in the termination variant for recurring expenses
// from backups written before the variant was recorded explicitly.
func migrateTermination(recurringExpense *models.RecurringExpense) error {
	if recurringExpense.Termination != "" {
		return nil
	}

	if recurringExpense.Installments > 0 {
		recurringExpense.Termination = models.TerminationInstallments
		return nil
	}

	if recurringExpense.EndDate != nil {
		recurringExpense.Termination = models.TerminationEndDate
		return nil
	}

	return models.ErrTerminationInvalid
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import a backup
// @Description	Replaces all resources of the instance with the contents of a backup file created by the export endpoint, then materializes up to the current month. The existing data is only deleted once the backup has parsed successfully.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ImportResponse
// @Failure		400		{object}	ImportResponse
// @Failure		500		{object}	ImportResponse
// @Param			file	formData	file	true	"Backup file to import"
// @Param			confirm	query		string	false	"Confirmation to overwrite all existing resources. Must have the value 'overwrite-my-data'"
// @Router			/v1/import [post]
func Import(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "overwrite-my-data" {
		s := errImportConfirmation.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	f, err := getUploadedFile(c, ".json")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	b, err := io.ReadAll(f)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	// Parse everything before touching the database, a broken backup must
	// leave the current data untouched
	var content backup
	if err := json.Unmarshal(b, &content); err != nil {
		s := errNotValidBackup.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	for i := range content.Data.RecurringExpense {
		if err := migrateTermination(&content.Data.RecurringExpense[i]); err != nil {
			s := fmt.Errorf("%w: %s", errNotValidBackup, err).Error()
			c.JSON(http.StatusBadRequest, ImportResponse{
				Error: &s,
			})
			return
		}
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		// The order is important here since there are foreign keys to consider!
		for _, model := range []models.Model{models.Transaction{}, models.RecurringExpense{}} {
			if err := tx.Unscoped().Where("true").Delete(&model).Error; err != nil {
				return err
			}
		}

		for _, recurringExpense := range content.Data.RecurringExpense {
			if err := tx.Create(&recurringExpense).Error; err != nil {
				return err
			}
		}

		for _, transaction := range content.Data.Transaction {
			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	// Catch up on occurrences that became due since the backup was taken
	_, err = materializeUpTo(types.MonthOf(time.Now()))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{
		Data: &ImportResult{
			RecurringExpenses: len(content.Data.RecurringExpense),
			Transactions:      len(content.Data.Transaction),
		},
	})
}

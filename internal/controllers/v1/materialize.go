package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monthwise/backend/internal/httputil"
	"github.com/monthwise/backend/internal/ledger"
	"github.com/monthwise/backend/internal/models"
	"github.com/monthwise/backend/internal/types"
	"gorm.io/gorm"
)

// RegisterMaterializeRoutes registers the routes for materialization with
// the RouterGroup that is passed.
func RegisterMaterializeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMaterialize)
		r.POST("", Materialize)
	}
}

type MaterializationResult struct {
	CreatedTransactions      int `json:"createdTransactions" example:"3"`      // Number of transactions the run appended
	UpdatedRecurringExpenses int `json:"updatedRecurringExpenses" example:"1"` // Number of recurring expenses whose progress advanced
}

type MaterializeResponse struct {
	Error *string                `json:"error" example:"the horizon parameter must be a month in YYYY-MM format"` // The error, if any occurred
	Data  *MaterializationResult `json:"data"`                                                                    // The result of the run
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Materialization
// @Success		204
// @Router			/v1/materialize [options]
func OptionsMaterialize(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Materialize recurring expenses
// @Description	Generates the transactions all recurring expenses require up to and including the horizon month. Safe to call any number of times, occurrences that already exist are never duplicated.
// @Tags			Materialization
// @Produce		json
// @Success		200		{object}	MaterializeResponse
// @Failure		400		{object}	MaterializeResponse
// @Failure		500		{object}	MaterializeResponse
// @Param			horizon	query		string	false	"Horizon month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/materialize [post]
func Materialize(c *gin.Context) {
	horizon := types.MonthOf(time.Now())

	if s := c.Query("horizon"); s != "" {
		var err error
		horizon, err = types.ParseMonth(s)
		if err != nil {
			e := errHorizonInvalid.Error()
			c.JSON(http.StatusBadRequest, MaterializeResponse{
				Error: &e,
			})
			return
		}
	}

	result, err := materializeUpTo(horizon)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MaterializeResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, MaterializeResponse{
		Data: &MaterializationResult{
			CreatedTransactions:      len(result.Created),
			UpdatedRecurringExpenses: len(result.Rules),
		},
	})
}

// materializeUpTo runs the materializer over the whole ledger and applies
// the result in a single database transaction, so that no reader can
// observe a partially materialized ledger.
func materializeUpTo(horizon types.Month) (ledger.Result, error) {
	var rules []models.RecurringExpense
	if err := models.DB.Find(&rules).Error; err != nil {
		return ledger.Result{}, err
	}

	var transactions []models.Transaction
	if err := models.DB.Find(&transactions).Error; err != nil {
		return ledger.Result{}, err
	}

	result := ledger.Materialize(rules, transactions, time.Now().In(time.UTC), horizon)
	if result.Empty() {
		return result, nil
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		for _, transaction := range result.Created {
			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}
		}

		for _, rule := range result.Rules {
			if err := tx.Save(&rule).Error; err != nil {
				return err
			}
		}

		return nil
	})

	return result, err
}

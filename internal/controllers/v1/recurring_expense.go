package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monthwise/backend/internal/httputil"
	"github.com/monthwise/backend/internal/models"
	"github.com/monthwise/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterRecurringExpenseRoutes registers the routes for recurring
// expenses with the RouterGroup that is passed.
func RegisterRecurringExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringExpenses)
		r.GET("", GetRecurringExpenses)
		r.POST("", CreateRecurringExpense)
	}

	// RecurringExpense with ID
	{
		r.OPTIONS("/:id", OptionsRecurringExpenseDetail)
		r.GET("/:id", GetRecurringExpense)
		r.DELETE("/:id", DeleteRecurringExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringExpenses
// @Success		204
// @Router			/v1/recurring-expenses [options]
func OptionsRecurringExpenses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringExpenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-expenses/{id} [options]
func OptionsRecurringExpenseDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.RecurringExpense{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create recurring expense
// @Description	Creates a recurring expense and materializes its occurrences up to the current month
// @Tags			RecurringExpenses
// @Produce		json
// @Success		201					{object}	RecurringExpenseResponse
// @Failure		400					{object}	RecurringExpenseResponse
// @Failure		500					{object}	RecurringExpenseResponse
// @Param			recurringExpense	body		RecurringExpenseEditable	true	"RecurringExpense"
// @Router			/v1/recurring-expenses [post]
func CreateRecurringExpense(c *gin.Context) {
	var editable RecurringExpenseEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringExpenseResponse{
			Error: &e,
		})
		return
	}

	recurringExpense := editable.model()
	err = models.DB.Create(&recurringExpense).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringExpenseResponse{
			Error: &e,
		})
		return
	}

	// Backfill occurrences up to the current month right away so that the
	// calendar is complete without an explicit materialization call
	_, err = materializeUpTo(types.MonthOf(time.Now()))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringExpenseResponse{
			Error: &e,
		})
		return
	}

	// Reload to pick up the progress fields the materializer advanced
	err = models.DB.First(&recurringExpense, recurringExpense.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringExpenseResponse{
			Error: &e,
		})
		return
	}

	data := newRecurringExpense(c, recurringExpense)
	c.JSON(http.StatusCreated, RecurringExpenseResponse{Data: &data})
}

// @Summary		Get recurring expenses
// @Description	Returns a list of recurring expenses
// @Tags			RecurringExpenses
// @Produce		json
// @Success		200	{object}	RecurringExpenseListResponse
// @Failure		400	{object}	RecurringExpenseListResponse
// @Failure		500	{object}	RecurringExpenseListResponse
// @Router			/v1/recurring-expenses [get]
// @Param			termination	query	string	false	"Filter by termination variant"
// @Param			day			query	int		false	"Filter by target day of month"
// @Param			active		query	bool	false	"Only active or only finished expenses"
func GetRecurringExpenses(c *gin.Context) {
	var filter RecurringExpenseQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RecurringExpenseListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	if filter.Termination != "" && !slices.Contains([]models.Termination{models.TerminationEndDate, models.TerminationInstallments}, filter.Termination) {
		s := models.ErrTerminationInvalid.Error()
		c.JSON(http.StatusBadRequest, RecurringExpenseListResponse{
			Error: &s,
		})
		return
	}

	var recurringExpenses []models.RecurringExpense
	err := models.DB.Order("datetime(created_at) ASC").Where(filter.model(), queryFields...).Find(&recurringExpenses).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringExpenseListResponse{
			Error: &s,
		})
		return
	}

	data := make([]RecurringExpense, 0, len(recurringExpenses))
	for _, recurringExpense := range recurringExpenses {
		// Active is derived from the termination policy, the database
		// cannot filter on it
		if slices.Contains(setFields, "Active") && recurringExpense.Active() != filter.Active {
			continue
		}

		data = append(data, newRecurringExpense(c, recurringExpense))
	}

	c.JSON(http.StatusOK, RecurringExpenseListResponse{Data: data})
}

// @Summary		Get recurring expense
// @Description	Returns a specific recurring expense
// @Tags			RecurringExpenses
// @Produce		json
// @Success		200	{object}	RecurringExpenseResponse
// @Failure		400	{object}	RecurringExpenseResponse
// @Failure		404	{object}	RecurringExpenseResponse
// @Failure		500	{object}	RecurringExpenseResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-expenses/{id} [get]
func GetRecurringExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringExpenseResponse{
			Error: &e,
		})
		return
	}

	var recurringExpense models.RecurringExpense
	err = models.DB.First(&recurringExpense, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringExpenseResponse{
			Error: &e,
		})
		return
	}

	data := newRecurringExpense(c, recurringExpense)
	c.JSON(http.StatusOK, RecurringExpenseResponse{Data: &data})
}

// @Summary		Delete recurring expense
// @Description	Deletes a recurring expense together with all transactions it generated
// @Tags			RecurringExpenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-expenses/{id} [delete]
func DeleteRecurringExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var recurringExpense models.RecurringExpense
	err = models.DB.First(&recurringExpense, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// The rule and its transactions disappear together or not at all
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return recurringExpense.DeleteCascading(tx)
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

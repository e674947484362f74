package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pledgebook/backend/internal/httputil"
	"github.com/pledgebook/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterExpenditureRoutes registers the routes for expenditures with
// the RouterGroup that is passed.
func RegisterExpenditureRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenditureList)
		r.GET("", GetExpenditures)
		r.POST("", CreateExpenditures)
	}

	// Expenditure with ID
	{
		r.OPTIONS("/:id", OptionsExpenditureDetail)
		r.GET("/:id", GetExpenditure)
		r.PATCH("/:id", UpdateExpenditure)
		r.DELETE("/:id", DeleteExpenditure)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenditures
// @Success		204
// @Router			/v1/expenditures [options]
func OptionsExpenditureList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenditures
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenditures/{id} [options]
func OptionsExpenditureDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Expenditure{})
}

// @Summary		Create expenditures
// @Description	Creates new expenditures
// @Tags			Expenditures
// @Accept			json
// @Produce		json
// @Success		201				{object}	ExpenditureCreateResponse
// @Failure		400				{object}	ExpenditureCreateResponse
// @Failure		404				{object}	ExpenditureCreateResponse
// @Failure		500				{object}	ExpenditureCreateResponse
// @Param			expenditures	body		[]ExpenditureEditable	true	"Expenditures"
// @Router			/v1/expenditures [post]
func CreateExpenditures(c *gin.Context) {
	var expenditures []ExpenditureEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &expenditures)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenditureCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ExpenditureCreateResponse{}

	for _, editable := range expenditures {
		expenditure := editable.model()

		err := models.DB.Create(&expenditure).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newExpenditure(c, expenditure)
		r.Data = append(r.Data, ExpenditureResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List expenditures
// @Description	Returns a list of expenditures
// @Tags			Expenditures
// @Produce		json
// @Success		200	{object}	ExpenditureListResponse
// @Failure		500	{object}	ExpenditureListResponse
// @Router			/v1/expenditures [get]
// @Param			wedding		query	string	false	"Filter by wedding ID"
// @Param			category	query	string	false	"Filter by category"
// @Param			name		query	string	false	"Filter by vendor name"
// @Param			note		query	string	false	"Filter by note"
// @Param			search		query	string	false	"Search for this text in vendor name and note"
// @Param			offset		query	uint	false	"The offset of the first expenditure returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of expenditures to return. Defaults to 50."
func GetExpenditures(c *gin.Context) {
	var filter ExpenditureQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var expenditures []models.Expenditure

	// Always sort by date, newest first
	q := models.DB.
		Order("date DESC, category ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, "vendor_name", filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all expenditures and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&expenditures).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenditureListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenditureListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Expenditure, 0)
	for _, expenditure := range expenditures {
		apiResources = append(apiResources, newExpenditure(c, expenditure))
	}

	c.JSON(http.StatusOK, ExpenditureListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get expenditure
// @Description	Returns a specific expenditure
// @Tags			Expenditures
// @Produce		json
// @Success		200	{object}	ExpenditureResponse
// @Failure		400	{object}	ExpenditureResponse
// @Failure		404	{object}	ExpenditureResponse
// @Failure		500	{object}	ExpenditureResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenditures/{id} [get]
func GetExpenditure(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenditureResponse{
			Error: &s,
		})
		return
	}

	var expenditure models.Expenditure
	err = models.DB.First(&expenditure, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenditureResponse{
			Error: &s,
		})
		return
	}

	apiResource := newExpenditure(c, expenditure)
	c.JSON(http.StatusOK, ExpenditureResponse{Data: &apiResource})
}

// @Summary		Update expenditure
// @Description	Update an existing expenditure. Only values to be updated need to be specified.
// @Tags			Expenditures
// @Accept			json
// @Produce		json
// @Success		200			{object}	ExpenditureResponse
// @Failure		400			{object}	ExpenditureResponse
// @Failure		404			{object}	ExpenditureResponse
// @Failure		500			{object}	ExpenditureResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expenditure	body		ExpenditureEditable	true	"Expenditure"
// @Router			/v1/expenditures/{id} [patch]
func UpdateExpenditure(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenditureResponse{
			Error: &s,
		})
		return
	}

	var expenditure models.Expenditure
	err = models.DB.First(&expenditure, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenditureResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenditureEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenditureResponse{
			Error: &s,
		})
		return
	}

	var data ExpenditureEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenditureResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&expenditure).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenditureResponse{
			Error: &s,
		})
		return
	}

	apiResource := newExpenditure(c, expenditure)
	c.JSON(http.StatusOK, ExpenditureResponse{Data: &apiResource})
}

// @Summary		Delete expenditure
// @Description	Deletes an expenditure
// @Tags			Expenditures
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenditures/{id} [delete]
func DeleteExpenditure(c *gin.Context) {
	deleteResource[models.Expenditure](c)
}

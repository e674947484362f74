package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pledgebook/backend/internal/httputil"
	"github.com/pledgebook/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterBudgetSectionRoutes registers the routes for budget sections
// with the RouterGroup that is passed.
func RegisterBudgetSectionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetSectionList)
		r.GET("", GetBudgetSections)
		r.POST("", CreateBudgetSections)
	}

	// Section with ID
	{
		r.OPTIONS("/:id", OptionsBudgetSectionDetail)
		r.GET("/:id", GetBudgetSection)
		r.PATCH("/:id", UpdateBudgetSection)
		r.DELETE("/:id", DeleteBudgetSection)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			BudgetSections
// @Success		204
// @Router			/v1/budget-sections [options]
func OptionsBudgetSectionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			BudgetSections
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-sections/{id} [options]
func OptionsBudgetSectionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.BudgetSection{})
}

// @Summary		Create budget sections
// @Description	Creates new budget sections
// @Tags			BudgetSections
// @Accept			json
// @Produce		json
// @Success		201			{object}	BudgetSectionCreateResponse
// @Failure		400			{object}	BudgetSectionCreateResponse
// @Failure		404			{object}	BudgetSectionCreateResponse
// @Failure		500			{object}	BudgetSectionCreateResponse
// @Param			sections	body		[]BudgetSectionEditable	true	"Budget sections"
// @Router			/v1/budget-sections [post]
func CreateBudgetSections(c *gin.Context) {
	var sections []BudgetSectionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &sections)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetSectionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BudgetSectionCreateResponse{}

	for _, editable := range sections {
		section := editable.model()

		err := models.DB.Create(&section).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newBudgetSection(c, section)
		r.Data = append(r.Data, BudgetSectionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List budget sections
// @Description	Returns a list of budget sections
// @Tags			BudgetSections
// @Produce		json
// @Success		200	{object}	BudgetSectionListResponse
// @Failure		500	{object}	BudgetSectionListResponse
// @Router			/v1/budget-sections [get]
// @Param			wedding	query	string	false	"Filter by wedding ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first section returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of sections to return. Defaults to 50."
func GetBudgetSections(c *gin.Context) {
	var filter BudgetSectionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var sections []models.BudgetSection

	// Always sort by the configured display order
	q := models.DB.
		Order("display_order ASC, name ASC").
		Where(filter.model(), queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Search != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all sections and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&sections).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSectionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetSectionListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]BudgetSection, 0)
	for _, section := range sections {
		apiResources = append(apiResources, newBudgetSection(c, section))
	}

	c.JSON(http.StatusOK, BudgetSectionListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get budget section
// @Description	Returns a specific budget section
// @Tags			BudgetSections
// @Produce		json
// @Success		200	{object}	BudgetSectionResponse
// @Failure		400	{object}	BudgetSectionResponse
// @Failure		404	{object}	BudgetSectionResponse
// @Failure		500	{object}	BudgetSectionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-sections/{id} [get]
func GetBudgetSection(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSectionResponse{
			Error: &s,
		})
		return
	}

	var section models.BudgetSection
	err = models.DB.First(&section, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSectionResponse{
			Error: &s,
		})
		return
	}

	apiResource := newBudgetSection(c, section)
	c.JSON(http.StatusOK, BudgetSectionResponse{Data: &apiResource})
}

// @Summary		Update budget section
// @Description	Update an existing budget section. Only values to be updated need to be specified.
// @Tags			BudgetSections
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetSectionResponse
// @Failure		400		{object}	BudgetSectionResponse
// @Failure		404		{object}	BudgetSectionResponse
// @Failure		500		{object}	BudgetSectionResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			section	body		BudgetSectionEditable	true	"Budget section"
// @Router			/v1/budget-sections/{id} [patch]
func UpdateBudgetSection(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSectionResponse{
			Error: &s,
		})
		return
	}

	var section models.BudgetSection
	err = models.DB.First(&section, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSectionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetSectionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSectionResponse{
			Error: &s,
		})
		return
	}

	var data BudgetSectionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSectionResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&section).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSectionResponse{
			Error: &s,
		})
		return
	}

	apiResource := newBudgetSection(c, section)
	c.JSON(http.StatusOK, BudgetSectionResponse{Data: &apiResource})
}

// @Summary		Delete budget section
// @Description	Deletes a budget section
// @Tags			BudgetSections
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-sections/{id} [delete]
func DeleteBudgetSection(c *gin.Context) {
	deleteResource[models.BudgetSection](c)
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pledgebook/backend/internal/httputil"
	"github.com/pledgebook/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterBudgetItemRoutes registers the routes for budget items with
// the RouterGroup that is passed.
func RegisterBudgetItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetItemList)
		r.GET("", GetBudgetItems)
		r.POST("", CreateBudgetItems)
	}

	// Item with ID
	{
		r.OPTIONS("/:id", OptionsBudgetItemDetail)
		r.GET("/:id", GetBudgetItem)
		r.PATCH("/:id", UpdateBudgetItem)
		r.DELETE("/:id", DeleteBudgetItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			BudgetItems
// @Success		204
// @Router			/v1/budget-items [options]
func OptionsBudgetItemList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			BudgetItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-items/{id} [options]
func OptionsBudgetItemDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.BudgetItem{})
}

// @Summary		Create budget items
// @Description	Creates new budget items. Amount, balance and status are computed from quantity, unit cost and paid.
// @Tags			BudgetItems
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetItemCreateResponse
// @Failure		400		{object}	BudgetItemCreateResponse
// @Failure		404		{object}	BudgetItemCreateResponse
// @Failure		500		{object}	BudgetItemCreateResponse
// @Param			items	body		[]BudgetItemEditable	true	"Budget items"
// @Router			/v1/budget-items [post]
func CreateBudgetItems(c *gin.Context) {
	var items []BudgetItemEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &items)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BudgetItemCreateResponse{}

	for _, editable := range items {
		item := editable.model()

		err := models.DB.Create(&item).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newBudgetItem(c, item)
		r.Data = append(r.Data, BudgetItemResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List budget items
// @Description	Returns a list of budget items
// @Tags			BudgetItems
// @Produce		json
// @Success		200	{object}	BudgetItemListResponse
// @Failure		500	{object}	BudgetItemListResponse
// @Router			/v1/budget-items [get]
// @Param			section			query	string	false	"Filter by section ID"
// @Param			name			query	string	false	"Filter by name"
// @Param			note			query	string	false	"Filter by note"
// @Param			status			query	string	false	"Filter by payment status"
// @Param			guestDependent	query	bool	false	"Filter for guest-dependent items"
// @Param			search			query	string	false	"Search for this text in name and note"
// @Param			offset			query	uint	false	"The offset of the first item returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of items to return. Defaults to 50."
func GetBudgetItems(c *gin.Context) {
	var filter BudgetItemQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var items []models.BudgetItem

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, "name", filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all items and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&items).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetItemListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetItemListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]BudgetItem, 0)
	for _, item := range items {
		apiResources = append(apiResources, newBudgetItem(c, item))
	}

	c.JSON(http.StatusOK, BudgetItemListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get budget item
// @Description	Returns a specific budget item
// @Tags			BudgetItems
// @Produce		json
// @Success		200	{object}	BudgetItemResponse
// @Failure		400	{object}	BudgetItemResponse
// @Failure		404	{object}	BudgetItemResponse
// @Failure		500	{object}	BudgetItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-items/{id} [get]
func GetBudgetItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetItemResponse{
			Error: &s,
		})
		return
	}

	var item models.BudgetItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetItemResponse{
			Error: &s,
		})
		return
	}

	apiResource := newBudgetItem(c, item)
	c.JSON(http.StatusOK, BudgetItemResponse{Data: &apiResource})
}

// @Summary		Update budget item
// @Description	Update an existing budget item. Only values to be updated need to be specified. Amount, balance and status are recomputed.
// @Tags			BudgetItems
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetItemResponse
// @Failure		400		{object}	BudgetItemResponse
// @Failure		404		{object}	BudgetItemResponse
// @Failure		500		{object}	BudgetItemResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		BudgetItemEditable	true	"Budget item"
// @Router			/v1/budget-items/{id} [patch]
func UpdateBudgetItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetItemResponse{
			Error: &s,
		})
		return
	}

	var item models.BudgetItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetItemResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetItemEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetItemResponse{
			Error: &s,
		})
		return
	}

	var data BudgetItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetItemResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&item).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetItemResponse{
			Error: &s,
		})
		return
	}

	// Re-read so that the response contains the recomputed fields
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetItemResponse{
			Error: &s,
		})
		return
	}

	apiResource := newBudgetItem(c, item)
	c.JSON(http.StatusOK, BudgetItemResponse{Data: &apiResource})
}

// @Summary		Delete budget item
// @Description	Deletes a budget item
// @Tags			BudgetItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-items/{id} [delete]
func DeleteBudgetItem(c *gin.Context) {
	deleteResource[models.BudgetItem](c)
}

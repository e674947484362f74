package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pledgebook/backend/internal/httputil"
	"github.com/pledgebook/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterWeddingRoutes registers the routes for Weddings with
// the RouterGroup that is passed.
func RegisterWeddingRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsWeddingList)
		r.GET("", GetWeddings)
		r.POST("", CreateWeddings)
	}

	// Wedding with ID
	{
		r.OPTIONS("/:id", OptionsWeddingDetail)
		r.GET("/:id", GetWedding)
		r.PATCH("/:id", UpdateWedding)
		r.DELETE("/:id", DeleteWedding)
	}

	// Bulk pledge import from a pasted message
	{
		r.OPTIONS("/:id/pledges/import", OptionsPledgeImport)
		r.POST("/:id/pledges/import", ImportPledges)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Weddings
// @Success		204
// @Router			/v1/weddings [options]
func OptionsWeddingList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Weddings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/weddings/{id} [options]
func OptionsWeddingDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Wedding{})
}

// @Summary		Create weddings
// @Description	Creates new weddings
// @Tags			Weddings
// @Accept			json
// @Produce		json
// @Success		201			{object}	WeddingCreateResponse
// @Failure		400			{object}	WeddingCreateResponse
// @Failure		500			{object}	WeddingCreateResponse
// @Param			weddings	body		[]WeddingEditable	true	"Weddings"
// @Router			/v1/weddings [post]
func CreateWeddings(c *gin.Context) {
	var weddings []WeddingEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &weddings)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeddingCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := WeddingCreateResponse{}

	for _, editable := range weddings {
		wedding := editable.model()

		err := models.DB.Create(&wedding).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newWedding(c, wedding)
		r.Data = append(r.Data, WeddingResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List weddings
// @Description	Returns a list of weddings
// @Tags			Weddings
// @Produce		json
// @Success		200	{object}	WeddingListResponse
// @Failure		500	{object}	WeddingListResponse
// @Router			/v1/weddings [get]
// @Param			name		query	string	false	"Filter by bride or groom name"
// @Param			currency	query	string	false	"Filter by display currency"
// @Param			note		query	string	false	"Filter by note"
// @Param			search		query	string	false	"Search for this text in names and note"
// @Param			offset		query	uint	false	"The offset of the first Wedding returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Weddings to return. Defaults to 50."
func GetWeddings(c *gin.Context) {
	var filter WeddingQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var weddings []models.Wedding

	// Always sort by wedding date, newest first
	q := models.DB.
		Order("wedding_date DESC, bride_name ASC").
		Where(filter.model(), queryFields...)

	// The name can match either partner
	if filter.Name != "" {
		like := fmt.Sprintf("%%%s%%", filter.Name)
		q = q.Where(models.DB.Where("bride_name LIKE ?", like).Or(models.DB.Where("groom_name LIKE ?", like)))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("bride_name = ''").Where("groom_name = ''")
	}

	if filter.Note != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Note))
	} else if slices.Contains(setFields, "Note") {
		q = q.Where("note = ''")
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		q = q.Where(
			models.DB.Where("bride_name LIKE ?", like).
				Or(models.DB.Where("groom_name LIKE ?", like)).
				Or(models.DB.Where("note LIKE ?", like)),
		)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all Weddings and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&weddings).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeddingListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeddingListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Wedding, 0)
	for _, wedding := range weddings {
		apiResources = append(apiResources, newWedding(c, wedding))
	}

	c.JSON(http.StatusOK, WeddingListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get wedding
// @Description	Returns a specific wedding
// @Tags			Weddings
// @Produce		json
// @Success		200	{object}	WeddingResponse
// @Failure		400	{object}	WeddingResponse
// @Failure		404	{object}	WeddingResponse
// @Failure		500	{object}	WeddingResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/weddings/{id} [get]
func GetWedding(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeddingResponse{
			Error: &s,
		})
		return
	}

	var wedding models.Wedding
	err = models.DB.First(&wedding, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeddingResponse{
			Error: &s,
		})
		return
	}

	apiResource := newWedding(c, wedding)
	c.JSON(http.StatusOK, WeddingResponse{Data: &apiResource})
}

// @Summary		Update wedding
// @Description	Update an existing wedding. Only values to be updated need to be specified. Changing the expected guest count rescales all guest-dependent budget items.
// @Tags			Weddings
// @Accept			json
// @Produce		json
// @Success		200		{object}	WeddingResponse
// @Failure		400		{object}	WeddingResponse
// @Failure		404		{object}	WeddingResponse
// @Failure		500		{object}	WeddingResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			wedding	body		WeddingEditable	true	"Wedding"
// @Router			/v1/weddings/{id} [patch]
func UpdateWedding(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeddingResponse{
			Error: &s,
		})
		return
	}

	var wedding models.Wedding
	err = models.DB.First(&wedding, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeddingResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, WeddingEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeddingResponse{
			Error: &s,
		})
		return
	}

	var data WeddingEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeddingResponse{
			Error: &s,
		})
		return
	}

	// The guest count drives the quantities of guest-dependent budget
	// items, so it is applied through the rescaling transaction instead
	// of a plain column update.
	guestsChanged := slices.Contains(updateFields, any("ExpectedGuests"))
	if guestsChanged {
		updateFields = slices.DeleteFunc(updateFields, func(f any) bool {
			return f == any("ExpectedGuests")
		})
	}

	if len(updateFields) > 0 {
		err = models.DB.Model(&wedding).Select("", updateFields...).Updates(data.model()).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), WeddingResponse{
				Error: &s,
			})
			return
		}
	}

	if guestsChanged {
		err = wedding.SetExpectedGuests(models.DB, data.ExpectedGuests)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), WeddingResponse{
				Error: &s,
			})
			return
		}
	}

	apiResource := newWedding(c, wedding)
	c.JSON(http.StatusOK, WeddingResponse{Data: &apiResource})
}

// @Summary		Delete wedding
// @Description	Deletes a wedding
// @Tags			Weddings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/weddings/{id} [delete]
func DeleteWedding(c *gin.Context) {
	deleteResource[models.Wedding](c)
}

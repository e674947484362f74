package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pledgebook/backend/internal/httputil"
	"github.com/pledgebook/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterCashEntryRoutes registers the routes for cash ledger entries
// with the RouterGroup that is passed.
func RegisterCashEntryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCashEntryList)
		r.GET("", GetCashEntries)
		r.POST("", CreateCashEntries)
	}

	// Entry with ID
	{
		r.OPTIONS("/:id", OptionsCashEntryDetail)
		r.GET("/:id", GetCashEntry)
		r.PATCH("/:id", UpdateCashEntry)
		r.DELETE("/:id", DeleteCashEntry)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CashEntries
// @Success		204
// @Router			/v1/cash-entries [options]
func OptionsCashEntryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CashEntries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cash-entries/{id} [options]
func OptionsCashEntryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.CashEntry{})
}

// @Summary		Create cash entries
// @Description	Creates new cash ledger entries of type gift or other. Pledge entries are created by the pledge import and pledge updates only.
// @Tags			CashEntries
// @Accept			json
// @Produce		json
// @Success		201		{object}	CashEntryCreateResponse
// @Failure		400		{object}	CashEntryCreateResponse
// @Failure		404		{object}	CashEntryCreateResponse
// @Failure		500		{object}	CashEntryCreateResponse
// @Param			entries	body		[]CashEntryEditable	true	"Cash entries"
// @Router			/v1/cash-entries [post]
func CreateCashEntries(c *gin.Context) {
	var entries []CashEntryEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &entries)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashEntryCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CashEntryCreateResponse{}

	for _, editable := range entries {
		// The API only creates plain records, the reconciliation
		// engine is the single writer of pledge mirrors
		if editable.SourceType == string(models.CashSourcePledge) {
			status = r.appendError(models.ErrCashEntryImmutable, status)
			continue
		}

		entry := editable.model()

		err := models.DB.Create(&entry).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCashEntry(c, entry)
		r.Data = append(r.Data, CashEntryResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List cash entries
// @Description	Returns a list of cash ledger entries
// @Tags			CashEntries
// @Produce		json
// @Success		200	{object}	CashEntryListResponse
// @Failure		500	{object}	CashEntryListResponse
// @Router			/v1/cash-entries [get]
// @Param			wedding			query	string	false	"Filter by wedding ID"
// @Param			sourceType		query	string	false	"Filter by source type: pledge, gift or other"
// @Param			sourceReference	query	string	false	"Filter by ID of the mirrored pledge"
// @Param			name			query	string	false	"Filter by contributor name"
// @Param			nameGlob		query	string	false	"Filter by glob pattern on the contributor name, e.g. Mr*"
// @Param			note			query	string	false	"Filter by note"
// @Param			search			query	string	false	"Search for this text in contributor name and note"
// @Param			offset			query	uint	false	"The offset of the first entry returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of entries to return. Defaults to 50."
func GetCashEntries(c *gin.Context) {
	var filter CashEntryQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var entries []models.CashEntry

	// Always sort by date, newest first
	q := models.DB.
		Order("date DESC, contributor_name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, "contributor_name", filter.Name, filter.Note, filter.Search)

	// The glob filter cannot run in the database, so pagination moves
	// in-memory when it is used
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	if filter.NameGlob == "" {
		q = q.Offset(int(filter.Offset)).Limit(limit)
	}

	err := q.Find(&entries).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CashEntryListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	if filter.NameGlob != "" {
		matched := make([]models.CashEntry, 0)
		for _, entry := range entries {
			if glob.Glob(filter.NameGlob, entry.ContributorName) {
				matched = append(matched, entry)
			}
		}

		count = int64(len(matched))
		entries = paginate(matched, filter.Offset, limit)
	} else {
		err = q.Limit(-1).Offset(-1).Count(&count).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), CashEntryListResponse{
				Error: &e,
			})
			return
		}
	}

	apiResources := make([]CashEntry, 0)
	for _, entry := range entries {
		apiResources = append(apiResources, newCashEntry(c, entry))
	}

	c.JSON(http.StatusOK, CashEntryListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get cash entry
// @Description	Returns a specific cash ledger entry
// @Tags			CashEntries
// @Produce		json
// @Success		200	{object}	CashEntryResponse
// @Failure		400	{object}	CashEntryResponse
// @Failure		404	{object}	CashEntryResponse
// @Failure		500	{object}	CashEntryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cash-entries/{id} [get]
func GetCashEntry(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CashEntryResponse{
			Error: &s,
		})
		return
	}

	var entry models.CashEntry
	err = models.DB.First(&entry, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CashEntryResponse{
			Error: &s,
		})
		return
	}

	apiResource := newCashEntry(c, entry)
	c.JSON(http.StatusOK, CashEntryResponse{Data: &apiResource})
}

// @Summary		Update cash entry
// @Description	Update an existing cash ledger entry. Entries mirroring pledge payments are append-only and reject updates.
// @Tags			CashEntries
// @Accept			json
// @Produce		json
// @Success		200		{object}	CashEntryResponse
// @Failure		400		{object}	CashEntryResponse
// @Failure		404		{object}	CashEntryResponse
// @Failure		500		{object}	CashEntryResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			entry	body		CashEntryEditable	true	"Cash entry"
// @Router			/v1/cash-entries/{id} [patch]
func UpdateCashEntry(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CashEntryResponse{
			Error: &s,
		})
		return
	}

	var entry models.CashEntry
	err = models.DB.First(&entry, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CashEntryResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CashEntryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CashEntryResponse{
			Error: &s,
		})
		return
	}

	var data CashEntryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CashEntryResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&entry).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CashEntryResponse{
			Error: &s,
		})
		return
	}

	apiResource := newCashEntry(c, entry)
	c.JSON(http.StatusOK, CashEntryResponse{Data: &apiResource})
}

// @Summary		Delete cash entry
// @Description	Deletes a cash ledger entry. Entries mirroring pledge payments are append-only and reject deletion.
// @Tags			CashEntries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cash-entries/{id} [delete]
func DeleteCashEntry(c *gin.Context) {
	deleteResource[models.CashEntry](c)
}

package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pledgebook/backend/internal/httputil"
	"github.com/pledgebook/backend/internal/importer"
	"github.com/pledgebook/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

const (
	notePledgePayment        = "Pledge payment"
	noteInitialPledgePayment = "Initial pledge payment"
)

// RegisterPledgeRoutes registers the routes for pledges with
// the RouterGroup that is passed.
func RegisterPledgeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPledgeList)
		r.GET("", GetPledges)
		r.POST("", CreatePledges)
	}

	// Pledge with ID
	{
		r.OPTIONS("/:id", OptionsPledgeDetail)
		r.GET("/:id", GetPledge)
		r.PATCH("/:id", UpdatePledge)
		r.DELETE("/:id", DeletePledge)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pledges
// @Success		204
// @Router			/v1/pledges [options]
func OptionsPledgeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pledges
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pledges/{id} [options]
func OptionsPledgeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Pledge{})
}

// @Summary		Create pledges
// @Description	Creates new pledges. A paid amount greater than zero is mirrored into the cash ledger.
// @Tags			Pledges
// @Accept			json
// @Produce		json
// @Success		201		{object}	PledgeCreateResponse
// @Failure		400		{object}	PledgeCreateResponse
// @Failure		404		{object}	PledgeCreateResponse
// @Failure		500		{object}	PledgeCreateResponse
// @Param			pledges	body		[]PledgeEditable	true	"Pledges"
// @Router			/v1/pledges [post]
func CreatePledges(c *gin.Context) {
	var pledges []PledgeEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &pledges)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PledgeCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PledgeCreateResponse{}

	for _, editable := range pledges {
		pledge := editable.model()

		err := models.DB.Create(&pledge).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Money received with the pledge goes into the ledger
		entry := importer.MirrorPayment(pledge, decimal.Zero, pledge.AmountPaid, time.Now().In(time.UTC), noteInitialPledgePayment)
		if entry != nil {
			err = models.DB.Create(entry).Error
			if err != nil {
				status = r.appendError(err, status)
				continue
			}
		}

		data := newPledge(c, pledge)
		r.Data = append(r.Data, PledgeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List pledges
// @Description	Returns a list of pledges
// @Tags			Pledges
// @Produce		json
// @Success		200	{object}	PledgeListResponse
// @Failure		500	{object}	PledgeListResponse
// @Router			/v1/pledges [get]
// @Param			wedding		query	string	false	"Filter by wedding ID"
// @Param			name		query	string	false	"Filter by contributor name"
// @Param			nameGlob	query	string	false	"Filter by glob pattern on the contributor name, e.g. Mr*"
// @Param			note		query	string	false	"Filter by note"
// @Param			status		query	string	false	"Filter by payment status"
// @Param			search		query	string	false	"Search for this text in contributor name and note"
// @Param			offset		query	uint	false	"The offset of the first pledge returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of pledges to return. Defaults to 50."
func GetPledges(c *gin.Context) {
	var filter PledgeQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var pledges []models.Pledge

	// Always sort by contributor name
	q := models.DB.
		Order("contributor_name ASC").
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

	err := q.Find(&pledges).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PledgeListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	if filter.NameGlob != "" {
		matched := make([]models.Pledge, 0)
		for _, pledge := range pledges {
			if glob.Glob(filter.NameGlob, pledge.ContributorName) {
				matched = append(matched, pledge)
			}
		}

		count = int64(len(matched))
		pledges = paginate(matched, filter.Offset, limit)
	} else {
		err = q.Limit(-1).Offset(-1).Count(&count).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PledgeListResponse{
				Error: &e,
			})
			return
		}
	}

	apiResources := make([]Pledge, 0)
	for _, pledge := range pledges {
		apiResources = append(apiResources, newPledge(c, pledge))
	}

	c.JSON(http.StatusOK, PledgeListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get pledge
// @Description	Returns a specific pledge
// @Tags			Pledges
// @Produce		json
// @Success		200	{object}	PledgeResponse
// @Failure		400	{object}	PledgeResponse
// @Failure		404	{object}	PledgeResponse
// @Failure		500	{object}	PledgeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pledges/{id} [get]
func GetPledge(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PledgeResponse{
			Error: &s,
		})
		return
	}

	var pledge models.Pledge
	err = models.DB.First(&pledge, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PledgeResponse{
			Error: &s,
		})
		return
	}

	apiResource := newPledge(c, pledge)
	c.JSON(http.StatusOK, PledgeResponse{Data: &apiResource})
}

// @Summary		Update pledge
// @Description	Update an existing pledge. Only values to be updated need to be specified. An increase of the paid amount is mirrored into the cash ledger.
// @Tags			Pledges
// @Accept			json
// @Produce		json
// @Success		200		{object}	PledgeResponse
// @Failure		400		{object}	PledgeResponse
// @Failure		404		{object}	PledgeResponse
// @Failure		500		{object}	PledgeResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			pledge	body		PledgeEditable	true	"Pledge"
// @Router			/v1/pledges/{id} [patch]
func UpdatePledge(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PledgeResponse{
			Error: &s,
		})
		return
	}

	var pledge models.Pledge
	err = models.DB.First(&pledge, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PledgeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PledgeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PledgeResponse{
			Error: &s,
		})
		return
	}

	var data PledgeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PledgeResponse{
			Error: &s,
		})
		return
	}

	oldPaid := pledge.AmountPaid

	err = models.DB.Model(&pledge).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PledgeResponse{
			Error: &s,
		})
		return
	}

	// Re-read so that the response contains the recomputed fields
	err = models.DB.First(&pledge, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PledgeResponse{
			Error: &s,
		})
		return
	}

	// An increase of the paid amount is money received, mirror it
	entry := importer.MirrorPayment(pledge, oldPaid, pledge.AmountPaid, time.Now().In(time.UTC), notePledgePayment)
	if entry != nil {
		err = models.DB.Create(entry).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PledgeResponse{
				Error: &s,
			})
			return
		}
	}

	apiResource := newPledge(c, pledge)
	c.JSON(http.StatusOK, PledgeResponse{Data: &apiResource})
}

// @Summary		Delete pledge
// @Description	Deletes a pledge. Ledger entries for payments on the pledge are kept.
// @Tags			Pledges
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pledges/{id} [delete]
func DeletePledge(c *gin.Context) {
	deleteResource[models.Pledge](c)
}

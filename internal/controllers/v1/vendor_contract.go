package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pledgebook/backend/internal/httputil"
	"github.com/pledgebook/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterVendorContractRoutes registers the routes for vendor
// contracts with the RouterGroup that is passed.
func RegisterVendorContractRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsVendorContractList)
		r.GET("", GetVendorContracts)
		r.POST("", CreateVendorContracts)
	}

	// Contract with ID
	{
		r.OPTIONS("/:id", OptionsVendorContractDetail)
		r.GET("/:id", GetVendorContract)
		r.PATCH("/:id", UpdateVendorContract)
		r.DELETE("/:id", DeleteVendorContract)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			VendorContracts
// @Success		204
// @Router			/v1/vendor-contracts [options]
func OptionsVendorContractList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			VendorContracts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/vendor-contracts/{id} [options]
func OptionsVendorContractDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.VendorContract{})
}

// @Summary		Create vendor contracts
// @Description	Creates new vendor contracts. Balance and status are computed from the contract amount and the amount paid.
// @Tags			VendorContracts
// @Accept			json
// @Produce		json
// @Success		201			{object}	VendorContractCreateResponse
// @Failure		400			{object}	VendorContractCreateResponse
// @Failure		404			{object}	VendorContractCreateResponse
// @Failure		500			{object}	VendorContractCreateResponse
// @Param			contracts	body		[]VendorContractEditable	true	"Vendor contracts"
// @Router			/v1/vendor-contracts [post]
func CreateVendorContracts(c *gin.Context) {
	var contracts []VendorContractEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &contracts)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorContractCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := VendorContractCreateResponse{}

	for _, editable := range contracts {
		contract := editable.model()

		err := models.DB.Create(&contract).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newVendorContract(c, contract)
		r.Data = append(r.Data, VendorContractResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List vendor contracts
// @Description	Returns a list of vendor contracts
// @Tags			VendorContracts
// @Produce		json
// @Success		200	{object}	VendorContractListResponse
// @Failure		500	{object}	VendorContractListResponse
// @Router			/v1/vendor-contracts [get]
// @Param			wedding		query	string	false	"Filter by wedding ID"
// @Param			name		query	string	false	"Filter by provider name"
// @Param			category	query	string	false	"Filter by category"
// @Param			status		query	string	false	"Filter by payment status"
// @Param			note		query	string	false	"Filter by note"
// @Param			search		query	string	false	"Search for this text in provider name and note"
// @Param			offset		query	uint	false	"The offset of the first contract returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of contracts to return. Defaults to 50."
func GetVendorContracts(c *gin.Context) {
	var filter VendorContractQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var contracts []models.VendorContract

	// Always sort by provider name
	q := models.DB.
		Order("provider_name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, "provider_name", filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all contracts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&contracts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorContractListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorContractListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]VendorContract, 0)
	for _, contract := range contracts {
		apiResources = append(apiResources, newVendorContract(c, contract))
	}

	c.JSON(http.StatusOK, VendorContractListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get vendor contract
// @Description	Returns a specific vendor contract
// @Tags			VendorContracts
// @Produce		json
// @Success		200	{object}	VendorContractResponse
// @Failure		400	{object}	VendorContractResponse
// @Failure		404	{object}	VendorContractResponse
// @Failure		500	{object}	VendorContractResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/vendor-contracts/{id} [get]
func GetVendorContract(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorContractResponse{
			Error: &s,
		})
		return
	}

	var contract models.VendorContract
	err = models.DB.First(&contract, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorContractResponse{
			Error: &s,
		})
		return
	}

	apiResource := newVendorContract(c, contract)
	c.JSON(http.StatusOK, VendorContractResponse{Data: &apiResource})
}

// @Summary		Update vendor contract
// @Description	Update an existing vendor contract. Only values to be updated need to be specified. Balance and status are recomputed.
// @Tags			VendorContracts
// @Accept			json
// @Produce		json
// @Success		200			{object}	VendorContractResponse
// @Failure		400			{object}	VendorContractResponse
// @Failure		404			{object}	VendorContractResponse
// @Failure		500			{object}	VendorContractResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			contract	body		VendorContractEditable	true	"Vendor contract"
// @Router			/v1/vendor-contracts/{id} [patch]
func UpdateVendorContract(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorContractResponse{
			Error: &s,
		})
		return
	}

	var contract models.VendorContract
	err = models.DB.First(&contract, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorContractResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, VendorContractEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorContractResponse{
			Error: &s,
		})
		return
	}

	var data VendorContractEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorContractResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&contract).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorContractResponse{
			Error: &s,
		})
		return
	}

	// Re-read so that the response contains the recomputed fields
	err = models.DB.First(&contract, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorContractResponse{
			Error: &s,
		})
		return
	}

	apiResource := newVendorContract(c, contract)
	c.JSON(http.StatusOK, VendorContractResponse{Data: &apiResource})
}

// @Summary		Delete vendor contract
// @Description	Deletes a vendor contract
// @Tags			VendorContracts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/vendor-contracts/{id} [delete]
func DeleteVendorContract(c *gin.Context) {
	deleteResource[models.VendorContract](c)
}

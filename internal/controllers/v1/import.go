package v1

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pledgebook/backend/internal/httputil"
	"github.com/pledgebook/backend/internal/importer"
	"github.com/pledgebook/backend/internal/models"
)

type ImportResponse struct {
	Data  *importer.Result `json:"data"`                                                          // The report of the reconciliation run
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/weddings/{id}/pledges/import [options]
func OptionsPledgeImport(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Wedding{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Import pledges
// @Description	Reconciles a pasted contribution list against the pledges of the wedding. The request body is the message as plain text. Existing pledges are matched by contributor name, payment increases are mirrored into the cash ledger.
// @Tags			Import
// @Accept			plain
// @Produce		json
// @Success		200	{object}	ImportResponse
// @Failure		400	{object}	ImportResponse
// @Failure		404	{object}	ImportResponse
// @Failure		500	{object}	ImportResponse
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			message	body	string	true	"The pasted contribution list"
// @Router			/v1/weddings/{id}/pledges/import [post]
func ImportPledges(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	var wedding models.Wedding
	err = models.DB.First(&wedding, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || strings.TrimSpace(string(body)) == "" {
		s := errImportBodyEmpty.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	result := importer.Reconcile(models.DB, wedding, bytes.NewReader(body), time.Now().In(time.UTC))

	c.JSON(http.StatusOK, ImportResponse{Data: &result})
}

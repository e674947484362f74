package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pledgebook/backend/internal/models"
)

// WeddingEditable represents all user configurable parameters
type WeddingEditable struct {
	BrideName      string     `json:"brideName" example:"Jane" default:""`                          // Name of the bride
	GroomName      string     `json:"groomName" example:"John" default:""`                          // Name of the groom
	WeddingDate    *time.Time `json:"weddingDate" example:"2024-12-14T00:00:00Z"`                   // Date of the wedding
	Currency       string     `json:"currency" example:"UGX" default:"USD"`                         // ISO 4217 code of the currency amounts are displayed in
	ExpectedGuests uint       `json:"expectedGuests" example:"350" default:"0"`                     // Number of guests expected, drives guest-dependent budget items
	Note           string     `json:"note" example:"All amounts include committee fees" default:""` // Notes about the wedding
}

func (editable WeddingEditable) model() models.Wedding {
	return models.Wedding{
		BrideName:      editable.BrideName,
		GroomName:      editable.GroomName,
		WeddingDate:    editable.WeddingDate,
		Currency:       editable.Currency,
		ExpectedGuests: editable.ExpectedGuests,
		Note:           editable.Note,
	}
}

type WeddingLinks struct {
	Self            string `json:"self" example:"https://example.com/api/v1/weddings/550dc9b7-dac9-4c4f-a732-32a08827cb6a"`                            // The wedding itself
	BudgetSections  string `json:"budgetSections" example:"https://example.com/api/v1/budget-sections?wedding=550dc9b7-dac9-4c4f-a732-32a08827cb6a"`   // Budget sections for this wedding
	Pledges         string `json:"pledges" example:"https://example.com/api/v1/pledges?wedding=550dc9b7-dac9-4c4f-a732-32a08827cb6a"`                  // Pledges for this wedding
	CashEntries     string `json:"cashEntries" example:"https://example.com/api/v1/cash-entries?wedding=550dc9b7-dac9-4c4f-a732-32a08827cb6a"`         // Cash ledger entries for this wedding
	VendorContracts string `json:"vendorContracts" example:"https://example.com/api/v1/vendor-contracts?wedding=550dc9b7-dac9-4c4f-a732-32a08827cb6a"` // Vendor contracts for this wedding
	Expenditures    string `json:"expenditures" example:"https://example.com/api/v1/expenditures?wedding=550dc9b7-dac9-4c4f-a732-32a08827cb6a"`        // Expenditures for this wedding
	PledgeImport    string `json:"pledgeImport" example:"https://example.com/api/v1/weddings/550dc9b7-dac9-4c4f-a732-32a08827cb6a/pledges/import"`     // Bulk import of pledges from a pasted message
}

type Wedding struct {
	models.DefaultModel
	WeddingEditable
	Links WeddingLinks `json:"links"`
}

func newWedding(c *gin.Context, model models.Wedding) Wedding {
	url := c.GetString(string(models.DBContextURL))

	return Wedding{
		DefaultModel: model.DefaultModel,
		WeddingEditable: WeddingEditable{
			BrideName:      model.BrideName,
			GroomName:      model.GroomName,
			WeddingDate:    model.WeddingDate,
			Currency:       model.Currency,
			ExpectedGuests: model.ExpectedGuests,
			Note:           model.Note,
		},
		Links: WeddingLinks{
			Self:            fmt.Sprintf("%s/v1/weddings/%s", url, model.ID),
			BudgetSections:  fmt.Sprintf("%s/v1/budget-sections?wedding=%s", url, model.ID),
			Pledges:         fmt.Sprintf("%s/v1/pledges?wedding=%s", url, model.ID),
			CashEntries:     fmt.Sprintf("%s/v1/cash-entries?wedding=%s", url, model.ID),
			VendorContracts: fmt.Sprintf("%s/v1/vendor-contracts?wedding=%s", url, model.ID),
			Expenditures:    fmt.Sprintf("%s/v1/expenditures?wedding=%s", url, model.ID),
			PledgeImport:    fmt.Sprintf("%s/v1/weddings/%s/pledges/import", url, model.ID),
		},
	}
}

type WeddingListResponse struct {
	Data       []Wedding   `json:"data"`                                                          // List of Weddings
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type WeddingCreateResponse struct {
	Data  []WeddingResponse `json:"data"`                                                          // List of the created Weddings or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (w *WeddingCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	w.Data = append(w.Data, WeddingResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type WeddingResponse struct {
	Data  *Wedding `json:"data"`                                                          // Data for the Wedding
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type WeddingQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By bride or groom name
	Currency string `form:"currency"`                   // By display currency
	Note     string `form:"note" filterField:"false"`   // By note
	Search   string `form:"search" filterField:"false"` // By string in names or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Wedding returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Weddings to return. Defaults to 50.
}

func (f WeddingQueryFilter) model() models.Wedding {
	return models.Wedding{
		Currency: f.Currency,
	}
}

package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/models"
	pb_uuid "github.com/pledgebook/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// ExpenditureEditable represents all user configurable parameters
type ExpenditureEditable struct {
	WeddingID     uuid.UUID       `json:"weddingId" example:"550dc9b7-dac9-4c4f-a732-32a08827cb6a"` // ID of the wedding the expenditure belongs to
	Date          time.Time       `json:"date" example:"2024-11-20T00:00:00Z"`                      // Date the money was spent. Defaults to the current date.
	Category      string          `json:"category" example:"Decor" default:""`                      // Category of the expenditure
	Description   string          `json:"description" example:"Deposit for the tents" default:""`   // What the money was spent on
	Amount        decimal.Decimal `json:"amount" example:"450000"`                                  // Amount spent
	PaymentMethod string          `json:"paymentMethod" example:"bank transfer" default:""`         // How the payment was made
	VendorName    string          `json:"vendorName" example:"Tent Masters" default:""`             // Who was paid
	Note          string          `json:"note" example:"Receipt filed with treasurer" default:""`   // Notes about the expenditure
}

func (editable ExpenditureEditable) model() models.Expenditure {
	return models.Expenditure{
		WeddingID:     editable.WeddingID,
		Date:          editable.Date,
		Category:      editable.Category,
		Description:   editable.Description,
		Amount:        editable.Amount,
		PaymentMethod: editable.PaymentMethod,
		VendorName:    editable.VendorName,
		Note:          editable.Note,
	}
}

type ExpenditureLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/expenditures/ae9d0b4f-4ab0-4cd7-a4d9-baa5ba29dcbc"` // The expenditure itself
	Wedding string `json:"wedding" example:"https://example.com/api/v1/weddings/550dc9b7-dac9-4c4f-a732-32a08827cb6a"`  // The wedding the expenditure belongs to
}

type Expenditure struct {
	models.DefaultModel
	ExpenditureEditable
	Links ExpenditureLinks `json:"links"`
}

func newExpenditure(c *gin.Context, model models.Expenditure) Expenditure {
	url := c.GetString(string(models.DBContextURL))

	return Expenditure{
		DefaultModel: model.DefaultModel,
		ExpenditureEditable: ExpenditureEditable{
			WeddingID:     model.WeddingID,
			Date:          model.Date,
			Category:      model.Category,
			Description:   model.Description,
			Amount:        model.Amount,
			PaymentMethod: model.PaymentMethod,
			VendorName:    model.VendorName,
			Note:          model.Note,
		},
		Links: ExpenditureLinks{
			Self:    fmt.Sprintf("%s/v1/expenditures/%s", url, model.ID),
			Wedding: fmt.Sprintf("%s/v1/weddings/%s", url, model.WeddingID),
		},
	}
}

type ExpenditureListResponse struct {
	Data       []Expenditure `json:"data"`                                                          // List of expenditures
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type ExpenditureCreateResponse struct {
	Data  []ExpenditureResponse `json:"data"`                                                          // List of the created expenditures or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (e *ExpenditureCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, ExpenditureResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenditureResponse struct {
	Data  *Expenditure `json:"data"`                                                          // Data for the expenditure
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenditureQueryFilter struct {
	WeddingID pb_uuid.UUID `form:"wedding"`                    // By ID of the wedding
	Category  string       `form:"category"`                   // By category
	Name      string       `form:"name" filterField:"false"`   // By vendor name
	Note      string       `form:"note" filterField:"false"`   // By note
	Search    string       `form:"search" filterField:"false"` // By string in vendor name or note
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first expenditure returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of expenditures to return. Defaults to 50.
}

func (f ExpenditureQueryFilter) model() models.Expenditure {
	return models.Expenditure{
		WeddingID: f.WeddingID.UUID,
		Category:  f.Category,
	}
}

package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/finance"
	"github.com/pledgebook/backend/internal/models"
	pb_uuid "github.com/pledgebook/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// PledgeEditable represents all user configurable parameters
type PledgeEditable struct {
	WeddingID       uuid.UUID       `json:"weddingId" example:"550dc9b7-dac9-4c4f-a732-32a08827cb6a"` // ID of the wedding the pledge belongs to
	ContributorName string          `json:"contributorName" example:"Mrs Jane Doe" default:""`        // Name of the contributor
	Phone           string          `json:"phone" example:"+256700000000" default:""`                 // Phone number of the contributor
	Email           string          `json:"email" example:"jane@example.com" default:""`              // Email address of the contributor
	AmountPledged   decimal.Decimal `json:"amountPledged" example:"500000"`                           // Amount the contributor promised
	AmountPaid      decimal.Decimal `json:"amountPaid" example:"200000" default:"0"`                  // Amount received so far
	PaymentMethod   string          `json:"paymentMethod" example:"mobile money" default:""`          // How payments are made
	FulfillmentDate *time.Time      `json:"fulfillmentDate" example:"2024-12-30T00:00:00Z"`           // Date the pledge is expected to be fulfilled by
	Note            string          `json:"note" example:"Will pay after harvest" default:""`         // Notes about the pledge
}

func (editable PledgeEditable) model() models.Pledge {
	return models.Pledge{
		WeddingID:       editable.WeddingID,
		ContributorName: editable.ContributorName,
		Phone:           editable.Phone,
		Email:           editable.Email,
		AmountPledged:   editable.AmountPledged,
		AmountPaid:      editable.AmountPaid,
		PaymentMethod:   editable.PaymentMethod,
		FulfillmentDate: editable.FulfillmentDate,
		Note:            editable.Note,
	}
}

type PledgeLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/pledges/d1b4ab27-ad6a-4021-9308-7a5e0a2d4e21"`                             // The pledge itself
	Wedding     string `json:"wedding" example:"https://example.com/api/v1/weddings/550dc9b7-dac9-4c4f-a732-32a08827cb6a"`                         // The wedding the pledge belongs to
	CashEntries string `json:"cashEntries" example:"https://example.com/api/v1/cash-entries?sourceReference=d1b4ab27-ad6a-4021-9308-7a5e0a2d4e21"` // Ledger entries mirroring payments on this pledge
}

type Pledge struct {
	models.DefaultModel
	PledgeEditable
	Links PledgeLinks `json:"links"`

	// These fields are computed
	Balance decimal.Decimal `json:"balance" example:"300000"` // Pledged minus paid
	Status  finance.Status  `json:"status" example:"partial"` // Payment status of the pledge
}

func newPledge(c *gin.Context, model models.Pledge) Pledge {
	url := c.GetString(string(models.DBContextURL))

	return Pledge{
		DefaultModel: model.DefaultModel,
		PledgeEditable: PledgeEditable{
			WeddingID:       model.WeddingID,
			ContributorName: model.ContributorName,
			Phone:           model.Phone,
			Email:           model.Email,
			AmountPledged:   model.AmountPledged,
			AmountPaid:      model.AmountPaid,
			PaymentMethod:   model.PaymentMethod,
			FulfillmentDate: model.FulfillmentDate,
			Note:            model.Note,
		},
		Links: PledgeLinks{
			Self:        fmt.Sprintf("%s/v1/pledges/%s", url, model.ID),
			Wedding:     fmt.Sprintf("%s/v1/weddings/%s", url, model.WeddingID),
			CashEntries: fmt.Sprintf("%s/v1/cash-entries?sourceReference=%s", url, model.ID),
		},
		Balance: model.Balance,
		Status:  model.Status,
	}
}

type PledgeListResponse struct {
	Data       []Pledge    `json:"data"`                                                          // List of pledges
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PledgeCreateResponse struct {
	Data  []PledgeResponse `json:"data"`                                                          // List of the created pledges or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PledgeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PledgeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PledgeResponse struct {
	Data  *Pledge `json:"data"`                                                          // Data for the pledge
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PledgeQueryFilter struct {
	WeddingID pb_uuid.UUID `form:"wedding"`                      // By ID of the wedding
	Name      string       `form:"name" filterField:"false"`     // By contributor name
	NameGlob  string       `form:"nameGlob" filterField:"false"` // By glob pattern on the contributor name, e.g. "Mr*"
	Note      string       `form:"note" filterField:"false"`     // By note
	Status    string       `form:"status"`                       // By payment status
	Search    string       `form:"search" filterField:"false"`   // By string in contributor name or note
	Offset    uint         `form:"offset" filterField:"false"`   // The offset of the first pledge returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`    // Maximum number of pledges to return. Defaults to 50.
}

func (f PledgeQueryFilter) model() models.Pledge {
	return models.Pledge{
		WeddingID: f.WeddingID.UUID,
		Status:    finance.Status(f.Status),
	}
}

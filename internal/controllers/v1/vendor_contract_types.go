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

// VendorContractEditable represents all user configurable parameters
type VendorContractEditable struct {
	WeddingID            uuid.UUID       `json:"weddingId" example:"550dc9b7-dac9-4c4f-a732-32a08827cb6a"`           // ID of the wedding the contract belongs to
	ProviderName         string          `json:"providerName" example:"Sunset Gardens" default:""`                   // Name of the service provider
	Category             string          `json:"category" example:"Venue" default:""`                                // Category of the service
	ContactPerson        string          `json:"contactPerson" example:"Grace N." default:""`                        // Contact at the provider
	Phone                string          `json:"phone" example:"+256700000001" default:""`                           // Phone number of the contact
	Email                string          `json:"email" example:"bookings@example.com" default:""`                    // Email address of the contact
	ServiceDescription   string          `json:"serviceDescription" example:"Reception venue, 400 seats" default:""` // What the provider delivers
	Venue                string          `json:"venue" example:"Sunset Gardens, Entebbe Road" default:""`            // Where the service is delivered
	DeliveryDate         *time.Time      `json:"deliveryDate" example:"2024-12-14T00:00:00Z"`                        // When the service is delivered
	CommitteeResponsible string          `json:"committeeResponsible" example:"Venue committee" default:""`          // Committee owning the contract
	PersonResponsible    string          `json:"personResponsible" example:"Peter O." default:""`                    // Person owning the contract
	ContractAmount       decimal.Decimal `json:"contractAmount" example:"8000000" default:"0"`                       // Agreed total amount
	AmountPaid           decimal.Decimal `json:"amountPaid" example:"3000000" default:"0"`                           // Amount already paid
	Note                 string          `json:"note" example:"Balance due one week before" default:""`              // Notes about the contract
}

func (editable VendorContractEditable) model() models.VendorContract {
	return models.VendorContract{
		WeddingID:            editable.WeddingID,
		ProviderName:         editable.ProviderName,
		Category:             editable.Category,
		ContactPerson:        editable.ContactPerson,
		Phone:                editable.Phone,
		Email:                editable.Email,
		ServiceDescription:   editable.ServiceDescription,
		Venue:                editable.Venue,
		DeliveryDate:         editable.DeliveryDate,
		CommitteeResponsible: editable.CommitteeResponsible,
		PersonResponsible:    editable.PersonResponsible,
		ContractAmount:       editable.ContractAmount,
		AmountPaid:           editable.AmountPaid,
		Note:                 editable.Note,
	}
}

type VendorContractLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/vendor-contracts/8e1538ff-ad5c-4a3e-97c5-d0a7e6e57dcb"` // The contract itself
	Wedding string `json:"wedding" example:"https://example.com/api/v1/weddings/550dc9b7-dac9-4c4f-a732-32a08827cb6a"`      // The wedding the contract belongs to
}

type VendorContract struct {
	models.DefaultModel
	VendorContractEditable
	Links VendorContractLinks `json:"links"`

	// These fields are computed
	Balance decimal.Decimal `json:"balance" example:"5000000"` // Contract amount minus paid
	Status  finance.Status  `json:"status" example:"partial"`  // Payment status of the contract
}

func newVendorContract(c *gin.Context, model models.VendorContract) VendorContract {
	url := c.GetString(string(models.DBContextURL))

	return VendorContract{
		DefaultModel: model.DefaultModel,
		VendorContractEditable: VendorContractEditable{
			WeddingID:            model.WeddingID,
			ProviderName:         model.ProviderName,
			Category:             model.Category,
			ContactPerson:        model.ContactPerson,
			Phone:                model.Phone,
			Email:                model.Email,
			ServiceDescription:   model.ServiceDescription,
			Venue:                model.Venue,
			DeliveryDate:         model.DeliveryDate,
			CommitteeResponsible: model.CommitteeResponsible,
			PersonResponsible:    model.PersonResponsible,
			ContractAmount:       model.ContractAmount,
			AmountPaid:           model.AmountPaid,
			Note:                 model.Note,
		},
		Links: VendorContractLinks{
			Self:    fmt.Sprintf("%s/v1/vendor-contracts/%s", url, model.ID),
			Wedding: fmt.Sprintf("%s/v1/weddings/%s", url, model.WeddingID),
		},
		Balance: model.Balance,
		Status:  model.Status,
	}
}

type VendorContractListResponse struct {
	Data       []VendorContract `json:"data"`                                                          // List of contracts
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type VendorContractCreateResponse struct {
	Data  []VendorContractResponse `json:"data"`                                                          // List of the created contracts or their respective error
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (v *VendorContractCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	v.Data = append(v.Data, VendorContractResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type VendorContractResponse struct {
	Data  *VendorContract `json:"data"`                                                          // Data for the contract
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type VendorContractQueryFilter struct {
	WeddingID pb_uuid.UUID `form:"wedding"`                    // By ID of the wedding
	Name      string       `form:"name" filterField:"false"`   // By provider name
	Category  string       `form:"category"`                   // By category
	Status    string       `form:"status"`                     // By payment status
	Note      string       `form:"note" filterField:"false"`   // By note
	Search    string       `form:"search" filterField:"false"` // By string in provider name or note
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first contract returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of contracts to return. Defaults to 50.
}

func (f VendorContractQueryFilter) model() models.VendorContract {
	return models.VendorContract{
		WeddingID: f.WeddingID.UUID,
		Category:  f.Category,
		Status:    finance.Status(f.Status),
	}
}

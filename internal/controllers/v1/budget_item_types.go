package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/finance"
	"github.com/pledgebook/backend/internal/models"
	pb_uuid "github.com/pledgebook/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// BudgetItemEditable represents all user configurable parameters
type BudgetItemEditable struct {
	SectionID       uuid.UUID       `json:"sectionId" example:"a9ce31cd-3b08-40ae-a7a0-9b06df6078dc"` // ID of the section the item belongs to
	Name            string          `json:"name" example:"Catering" default:""`                       // Name of the item, unique per section
	Quantity        decimal.Decimal `json:"quantity" example:"350" default:"0"`                       // How many units are needed
	UnitCost        decimal.Decimal `json:"unitCost" example:"15000" default:"0"`                     // Cost per unit
	Paid            decimal.Decimal `json:"paid" example:"2500000" default:"0"`                       // Amount already paid for this item
	GuestDependent  bool            `json:"guestDependent" example:"true" default:"false"`            // Does the quantity follow the expected guest count?
	GuestMultiplier decimal.Decimal `json:"guestMultiplier" example:"1" default:"0"`                  // Units per guest for guest-dependent items
	Note            string          `json:"note" example:"Buffet, includes service" default:""`       // Notes about the item
}

func (editable BudgetItemEditable) model() models.BudgetItem {
	return models.BudgetItem{
		SectionID:       editable.SectionID,
		Name:            editable.Name,
		Quantity:        editable.Quantity,
		UnitCost:        editable.UnitCost,
		Paid:            editable.Paid,
		GuestDependent:  editable.GuestDependent,
		GuestMultiplier: editable.GuestMultiplier,
		Note:            editable.Note,
	}
}

type BudgetItemLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/budget-items/6f075997-4fa1-4dc3-b832-6e094f592cd4"`       // The item itself
	Section string `json:"section" example:"https://example.com/api/v1/budget-sections/a9ce31cd-3b08-40ae-a7a0-9b06df6078dc"` // The section the item belongs to
}

type BudgetItem struct {
	models.DefaultModel
	BudgetItemEditable
	Links BudgetItemLinks `json:"links"`

	// These fields are computed
	Amount  decimal.Decimal `json:"amount" example:"5250000"`  // Quantity times unit cost
	Balance decimal.Decimal `json:"balance" example:"2750000"` // Amount minus paid
	Status  finance.Status  `json:"status" example:"partial"`  // Payment status of the item
}

func newBudgetItem(c *gin.Context, model models.BudgetItem) BudgetItem {
	url := c.GetString(string(models.DBContextURL))

	return BudgetItem{
		DefaultModel: model.DefaultModel,
		BudgetItemEditable: BudgetItemEditable{
			SectionID:       model.SectionID,
			Name:            model.Name,
			Quantity:        model.Quantity,
			UnitCost:        model.UnitCost,
			Paid:            model.Paid,
			GuestDependent:  model.GuestDependent,
			GuestMultiplier: model.GuestMultiplier,
			Note:            model.Note,
		},
		Links: BudgetItemLinks{
			Self:    fmt.Sprintf("%s/v1/budget-items/%s", url, model.ID),
			Section: fmt.Sprintf("%s/v1/budget-sections/%s", url, model.SectionID),
		},
		Amount:  model.Amount,
		Balance: model.Balance,
		Status:  model.Status,
	}
}

type BudgetItemListResponse struct {
	Data       []BudgetItem `json:"data"`                                                          // List of items
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type BudgetItemCreateResponse struct {
	Data  []BudgetItemResponse `json:"data"`                                                          // List of the created items or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetItemResponse struct {
	Data  *BudgetItem `json:"data"`                                                          // Data for the item
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetItemQueryFilter struct {
	SectionID      pb_uuid.UUID `form:"section"`                    // By ID of the section
	Name           string       `form:"name" filterField:"false"`   // By name
	Note           string       `form:"note" filterField:"false"`   // By note
	Status         string       `form:"status"`                     // By payment status
	GuestDependent bool         `form:"guestDependent"`             // Is the quantity guest-dependent?
	Search         string       `form:"search" filterField:"false"` // By string in name or note
	Offset         uint         `form:"offset" filterField:"false"` // The offset of the first item returned. Defaults to 0.
	Limit          int          `form:"limit" filterField:"false"`  // Maximum number of items to return. Defaults to 50.
}

func (f BudgetItemQueryFilter) model() models.BudgetItem {
	return models.BudgetItem{
		SectionID:      f.SectionID.UUID,
		Status:         finance.Status(f.Status),
		GuestDependent: f.GuestDependent,
	}
}

package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/models"
	pb_uuid "github.com/pledgebook/backend/internal/uuid"
)

// BudgetSectionEditable represents all user configurable parameters
type BudgetSectionEditable struct {
	WeddingID    uuid.UUID `json:"weddingId" example:"550dc9b7-dac9-4c4f-a732-32a08827cb6a"` // ID of the wedding the section belongs to
	Name         string    `json:"name" example:"Reception" default:""`                      // Name of the section, unique per wedding
	DisplayOrder uint      `json:"displayOrder" example:"2" default:"0"`                     // Position of the section when listing the budget
}

func (editable BudgetSectionEditable) model() models.BudgetSection {
	return models.BudgetSection{
		WeddingID:    editable.WeddingID,
		Name:         editable.Name,
		DisplayOrder: editable.DisplayOrder,
	}
}

type BudgetSectionLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/budget-sections/a9ce31cd-3b08-40ae-a7a0-9b06df6078dc"`       // The section itself
	Items string `json:"items" example:"https://example.com/api/v1/budget-items?section=a9ce31cd-3b08-40ae-a7a0-9b06df6078dc"` // Budget items in this section
}

type BudgetSection struct {
	models.DefaultModel
	BudgetSectionEditable
	Links BudgetSectionLinks `json:"links"`
}

func newBudgetSection(c *gin.Context, model models.BudgetSection) BudgetSection {
	url := c.GetString(string(models.DBContextURL))

	return BudgetSection{
		DefaultModel: model.DefaultModel,
		BudgetSectionEditable: BudgetSectionEditable{
			WeddingID:    model.WeddingID,
			Name:         model.Name,
			DisplayOrder: model.DisplayOrder,
		},
		Links: BudgetSectionLinks{
			Self:  fmt.Sprintf("%s/v1/budget-sections/%s", url, model.ID),
			Items: fmt.Sprintf("%s/v1/budget-items?section=%s", url, model.ID),
		},
	}
}

type BudgetSectionListResponse struct {
	Data       []BudgetSection `json:"data"`                                                          // List of sections
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type BudgetSectionCreateResponse struct {
	Data  []BudgetSectionResponse `json:"data"`                                                          // List of the created sections or their respective error
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetSectionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetSectionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetSectionResponse struct {
	Data  *BudgetSection `json:"data"`                                                          // Data for the section
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetSectionQueryFilter struct {
	WeddingID pb_uuid.UUID `form:"wedding"`                    // By ID of the wedding
	Name      string       `form:"name" filterField:"false"`   // By name
	Search    string       `form:"search" filterField:"false"` // By string in name
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first section returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of sections to return. Defaults to 50.
}

func (f BudgetSectionQueryFilter) model() models.BudgetSection {
	return models.BudgetSection{
		WeddingID: f.WeddingID.UUID,
	}
}

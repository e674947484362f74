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

// CashEntryEditable represents all user configurable parameters.
//
// Entries with source type "pledge" are created by the reconciliation
// engine only and reject edits, see models.CashEntry.
type CashEntryEditable struct {
	WeddingID         uuid.UUID       `json:"weddingId" example:"550dc9b7-dac9-4c4f-a732-32a08827cb6a"` // ID of the wedding the entry belongs to
	Date              time.Time       `json:"date" example:"2024-11-04T00:00:00Z"`                      // Date the money was received. Defaults to the current date.
	Amount            decimal.Decimal `json:"amount" example:"150000"`                                  // Amount received
	SourceType        string          `json:"sourceType" example:"gift" default:""`                     // Where the money came from: pledge, gift or other
	SourceReferenceID *uuid.UUID      `json:"sourceReferenceId"`                                        // ID of the pledge the entry mirrors, for pledge entries only
	ContributorName   string          `json:"contributorName" example:"Uncle Ben" default:""`           // Who gave the money
	Note              string          `json:"note" example:"Handed over at the meeting" default:""`     // Notes about the entry
}

func (editable CashEntryEditable) model() models.CashEntry {
	return models.CashEntry{
		WeddingID:         editable.WeddingID,
		Date:              editable.Date,
		Amount:            editable.Amount,
		SourceType:        models.CashSourceType(editable.SourceType),
		SourceReferenceID: editable.SourceReferenceID,
		ContributorName:   editable.ContributorName,
		Note:              editable.Note,
	}
}

type CashEntryLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/cash-entries/c9e4ee3c-34ad-4838-9ad0-0af1b1149f25"`        // The entry itself
	Wedding string `json:"wedding" example:"https://example.com/api/v1/weddings/550dc9b7-dac9-4c4f-a732-32a08827cb6a"`         // The wedding the entry belongs to
	Pledge  string `json:"pledge,omitempty" example:"https://example.com/api/v1/pledges/d1b4ab27-ad6a-4021-9308-7a5e0a2d4e21"` // The pledge the entry mirrors, if any
}

type CashEntry struct {
	models.DefaultModel
	CashEntryEditable
	Links CashEntryLinks `json:"links"`
}

func newCashEntry(c *gin.Context, model models.CashEntry) CashEntry {
	url := c.GetString(string(models.DBContextURL))

	entry := CashEntry{
		DefaultModel: model.DefaultModel,
		CashEntryEditable: CashEntryEditable{
			WeddingID:         model.WeddingID,
			Date:              model.Date,
			Amount:            model.Amount,
			SourceType:        string(model.SourceType),
			SourceReferenceID: model.SourceReferenceID,
			ContributorName:   model.ContributorName,
			Note:              model.Note,
		},
		Links: CashEntryLinks{
			Self:    fmt.Sprintf("%s/v1/cash-entries/%s", url, model.ID),
			Wedding: fmt.Sprintf("%s/v1/weddings/%s", url, model.WeddingID),
		},
	}

	if model.SourceReferenceID != nil {
		entry.Links.Pledge = fmt.Sprintf("%s/v1/pledges/%s", url, *model.SourceReferenceID)
	}

	return entry
}

type CashEntryListResponse struct {
	Data       []CashEntry `json:"data"`                                                          // List of entries
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CashEntryCreateResponse struct {
	Data  []CashEntryResponse `json:"data"`                                                          // List of the created entries or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (e *CashEntryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, CashEntryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CashEntryResponse struct {
	Data  *CashEntry `json:"data"`                                                          // Data for the entry
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CashEntryQueryFilter struct {
	WeddingID         pb_uuid.UUID `form:"wedding"`                      // By ID of the wedding
	SourceType        string       `form:"sourceType"`                   // By source type: pledge, gift or other
	SourceReferenceID pb_uuid.UUID `form:"sourceReference"`              // By ID of the mirrored pledge
	Name              string       `form:"name" filterField:"false"`     // By contributor name
	NameGlob          string       `form:"nameGlob" filterField:"false"` // By glob pattern on the contributor name, e.g. "Mr*"
	Note              string       `form:"note" filterField:"false"`     // By note
	Search            string       `form:"search" filterField:"false"`   // By string in contributor name or note
	Offset            uint         `form:"offset" filterField:"false"`   // The offset of the first entry returned. Defaults to 0.
	Limit             int          `form:"limit" filterField:"false"`    // Maximum number of entries to return. Defaults to 50.
}

func (f CashEntryQueryFilter) model() models.CashEntry {
	entry := models.CashEntry{
		WeddingID:  f.WeddingID.UUID,
		SourceType: models.CashSourceType(f.SourceType),
	}

	// A non-nil pointer is never a zero value to gorm and would filter
	// every list request, so it is only set when the parameter is used
	if f.SourceReferenceID.UUID != uuid.Nil {
		ref := f.SourceReferenceID.UUID
		entry.SourceReferenceID = &ref
	}

	return entry
}

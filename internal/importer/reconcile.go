// Package importer reconciles pasted contribution lists against the
// pledges and the cash ledger of a wedding.
package importer

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pledgebook/backend/internal/importer/parser/chatlist"
	"github.com/pledgebook/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Result is the report of one reconciliation run.
type Result struct {
	Created int      `json:"created" example:"3"`  // Number of pledges created
	Updated int      `json:"updated" example:"12"` // Number of pledges updated
	Skipped int      `json:"skipped" example:"1"`  // Number of numbered lines without a usable amount
	Errors  []string `json:"errors"`               // One message per failed candidate
}

const (
	noteImported       = "Imported from bulk message"
	notePayment        = "Pledge payment - imported from bulk message"
	noteInitialPayment = "Initial pledge payment - imported from bulk message"
)

// defaultFulfillmentMonthDay is the end of the seasonal collection
// cycle, overridable with IMPORT_FULFILLMENT_DATE.
const defaultFulfillmentMonthDay = "12-30"

// fulfillmentDate returns the default fulfillment date for imported
// pledges: IMPORT_FULFILLMENT_DATE (format MM-DD) in the year of now.
func fulfillmentDate(now time.Time) time.Time {
	monthDay, ok := os.LookupEnv("IMPORT_FULFILLMENT_DATE")
	if !ok {
		monthDay = defaultFulfillmentMonthDay
	}

	parsed, err := time.Parse("01-02", monthDay)
	if err != nil {
		parsed, _ = time.Parse("01-02", defaultFulfillmentMonthDay)
	}

	return time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
}

// Reconcile parses a pasted contribution list and merges every
// candidate into the wedding's pledges, mirroring payment increases
// into the cash ledger.
//
// Candidates are processed independently: a storage failure for one is
// recorded in the result and does not abort the batch, and applied
// changes are never rolled back. Paid amounts only move upward, a
// candidate with a smaller paid amount than the stored pledge is
// treated as stale data, not as a refund.
func Reconcile(db *gorm.DB, wedding models.Wedding, text io.Reader, now time.Time) Result {
	result := Result{Errors: []string{}}

	candidates, skipped, err := chatlist.Parse(text)
	result.Skipped = skipped
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	var existing []models.Pledge
	err = db.Where(models.Pledge{WeddingID: wedding.ID}).Find(&existing).Error
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("loading pledges: %s", err))
		return result
	}

	date := fulfillmentDate(now)

	for _, candidate := range candidates {
		match := matchPledge(candidate.Name, existing)

		if match != nil {
			err = updatePledge(db, match, candidate, date, now)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", candidate.Name, err))
				continue
			}
			result.Updated++
		} else {
			err = createPledge(db, wedding, candidate, date, now)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", candidate.Name, err))
				continue
			}
			result.Created++
		}
	}

	return result
}

// updatePledge merges a candidate into an existing pledge and mirrors
// the payment delta, if any, into the cash ledger.
func updatePledge(db *gorm.DB, pledge *models.Pledge, candidate chatlist.Candidate, date, now time.Time) error {
	oldPaid := pledge.AmountPaid
	effectivePaid := decimal.Max(oldPaid, candidate.AmountPaid)

	err := db.Model(pledge).
		Select("AmountPledged", "AmountPaid", "FulfillmentDate").
		Updates(models.Pledge{
			AmountPledged:   candidate.AmountPledged,
			AmountPaid:      effectivePaid,
			FulfillmentDate: &date,
		}).Error
	if err != nil {
		return err
	}

	entry := MirrorPayment(*pledge, oldPaid, effectivePaid, now, notePayment)
	if entry == nil {
		return nil
	}

	return db.Create(entry).Error
}

// createPledge creates a pledge from a candidate. A paid amount on the
// candidate is mirrored into the cash ledger in full, there is no
// prior payment to subtract.
func createPledge(db *gorm.DB, wedding models.Wedding, candidate chatlist.Candidate, date, now time.Time) error {
	pledge := models.Pledge{
		WeddingID:       wedding.ID,
		ContributorName: candidate.Name,
		AmountPledged:   candidate.AmountPledged,
		AmountPaid:      candidate.AmountPaid,
		FulfillmentDate: &date,
		Note:            noteImported,
	}

	err := db.Create(&pledge).Error
	if err != nil {
		return err
	}

	entry := MirrorPayment(pledge, decimal.Zero, candidate.AmountPaid, now, noteInitialPayment)
	if entry == nil {
		return nil
	}

	return db.Create(entry).Error
}

package importer

import (
	"time"

	"github.com/pledgebook/backend/internal/models"
	"github.com/shopspring/decimal"
)

// MirrorPayment computes the cash ledger entry that keeps the ledger in
// sync after a pledge's paid amount changed from oldPaid to newPaid.
//
// Only increases are mirrored, as one entry over the delta. Decreases
// return nil: ledger history is never removed through pledge edits, a
// refund is recorded manually as an entry of type "other".
//
// This is the only way pledge-linked cash entries come into existence.
func MirrorPayment(pledge models.Pledge, oldPaid, newPaid decimal.Decimal, date time.Time, note string) *models.CashEntry {
	if newPaid.LessThanOrEqual(oldPaid) {
		return nil
	}

	id := pledge.ID
	return &models.CashEntry{
		WeddingID:         pledge.WeddingID,
		Date:              date,
		Amount:            newPaid.Sub(oldPaid),
		SourceType:        models.CashSourcePledge,
		SourceReferenceID: &id,
		ContributorName:   pledge.ContributorName,
		Note:              note,
	}
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CashSourceType describes where the money of a cash entry came from.
type CashSourceType string

const (
	CashSourcePledge CashSourceType = "pledge"
	CashSourceGift   CashSourceType = "gift"
	CashSourceOther  CashSourceType = "other"
)

// CashEntry is one record in the cash ledger, money physically received.
//
// Entries with source type pledge mirror pledge payment deltas. They
// are created exclusively by the importer package and reject updates
// and deletes: the ledger history of a pledge is append-only. Gift and
// other entries are plain records and fully editable.
type CashEntry struct {
	DefaultModel
	Wedding           Wedding `json:"-"`
	WeddingID         uuid.UUID
	Date              time.Time
	Amount            decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	SourceType        CashSourceType
	SourceReferenceID *uuid.UUID
	ContributorName   string
	Note              string
}

func (e *CashEntry) BeforeSave(_ *gorm.DB) error {
	e.ContributorName = strings.TrimSpace(e.ContributorName)
	e.Note = strings.TrimSpace(e.Note)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

func (e *CashEntry) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*CashEntry)

	if !slices.Contains([]CashSourceType{CashSourcePledge, CashSourceGift, CashSourceOther}, toSave.SourceType) {
		return ErrCashEntrySourceTypeInvalid
	}

	if !toSave.Amount.IsPositive() {
		return ErrCashEntryAmountNotPositive
	}

	if toSave.SourceType == CashSourcePledge && toSave.SourceReferenceID == nil {
		return ErrCashEntryReferenceMissing
	}

	return e.checkIntegrity(tx, *toSave)
}

// BeforeUpdate rejects any change to an entry that mirrors a pledge
// payment, those are append-only.
func (e *CashEntry) BeforeUpdate(tx *gorm.DB) error {
	if e.SourceType == CashSourcePledge {
		return ErrCashEntryImmutable
	}

	toSave, ok := tx.Statement.Dest.(CashEntry)
	if !ok {
		return nil
	}

	// An editable entry cannot be turned into a pledge mirror either
	if tx.Statement.Changed("SourceType") && toSave.SourceType == CashSourcePledge {
		return ErrCashEntryImmutable
	}

	if tx.Statement.Changed("Amount") && !toSave.Amount.IsPositive() {
		return ErrCashEntryAmountNotPositive
	}

	return nil
}

// BeforeDelete rejects deletion of pledge mirror entries.
func (e *CashEntry) BeforeDelete(_ *gorm.DB) error {
	if e.SourceType == CashSourcePledge {
		return ErrCashEntryImmutable
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (e *CashEntry) checkIntegrity(tx *gorm.DB, toSave CashEntry) error {
	err := tx.First(&Wedding{}, toSave.WeddingID).Error
	if err != nil {
		return err
	}

	if toSave.SourceReferenceID != nil {
		return tx.First(&Pledge{}, *toSave.SourceReferenceID).Error
	}

	return nil
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pledge is a promised contribution towards the wedding.
//
// Balance and Status are derived from the pledged and paid amounts on
// every save. Increases of the paid amount are mirrored into the cash
// ledger by the importer package, the model itself never writes there.
type Pledge struct {
	DefaultModel
	Wedding         Wedding `json:"-"`
	WeddingID       uuid.UUID
	ContributorName string
	Phone           string
	Email           string
	AmountPledged   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AmountPaid      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Balance         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Status          finance.Status
	PaymentMethod   string
	FulfillmentDate *time.Time
	Note            string
}

func (p *Pledge) BeforeSave(_ *gorm.DB) error {
	p.ContributorName = strings.TrimSpace(p.ContributorName)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	p.PaymentMethod = strings.TrimSpace(p.PaymentMethod)
	p.Note = strings.TrimSpace(p.Note)

	p.Balance, p.Status = finance.Derive(p.AmountPledged, p.AmountPaid)

	return nil
}

func (p *Pledge) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Pledge)
	if !toSave.AmountPledged.IsPositive() {
		return ErrPledgeAmountNotPositive
	}

	return p.checkIntegrity(tx, *toSave)
}

// BeforeUpdate recomputes balance and status from the merged state of
// the stored pledge and the update.
func (p *Pledge) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Pledge)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("WeddingID") {
		err := p.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	pledged, paid := p.AmountPledged, p.AmountPaid
	if tx.Statement.Changed("AmountPledged") {
		pledged = toSave.AmountPledged
	}
	if tx.Statement.Changed("AmountPaid") {
		paid = toSave.AmountPaid
	}

	if !pledged.IsPositive() {
		return ErrPledgeAmountNotPositive
	}

	balance, status := finance.Derive(pledged, paid)
	setDerivedColumn(tx, "Balance", balance)
	setDerivedColumn(tx, "Status", status)

	return nil
}

// checkIntegrity verifies references to other resources
func (p *Pledge) checkIntegrity(tx *gorm.DB, toSave Pledge) error {
	return tx.First(&Wedding{}, toSave.WeddingID).Error
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendorContract tracks an agreement with a service provider.
//
// Balance and Status are derived from the contract amount and the
// amount paid, the same way as for budget items and pledges.
type VendorContract struct {
	DefaultModel
	Wedding              Wedding `json:"-"`
	WeddingID            uuid.UUID
	ProviderName         string
	Category             string
	ContactPerson        string
	Phone                string
	Email                string
	ServiceDescription   string
	Venue                string
	DeliveryDate         *time.Time
	CommitteeResponsible string
	PersonResponsible    string
	ContractAmount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AmountPaid           decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Balance              decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Status               finance.Status
	Note                 string
}

func (v *VendorContract) BeforeSave(_ *gorm.DB) error {
	v.ProviderName = strings.TrimSpace(v.ProviderName)
	v.Category = strings.TrimSpace(v.Category)
	v.ContactPerson = strings.TrimSpace(v.ContactPerson)
	v.Phone = strings.TrimSpace(v.Phone)
	v.Email = strings.TrimSpace(v.Email)
	v.ServiceDescription = strings.TrimSpace(v.ServiceDescription)
	v.Venue = strings.TrimSpace(v.Venue)
	v.CommitteeResponsible = strings.TrimSpace(v.CommitteeResponsible)
	v.PersonResponsible = strings.TrimSpace(v.PersonResponsible)
	v.Note = strings.TrimSpace(v.Note)

	v.Balance, v.Status = finance.Derive(v.ContractAmount, v.AmountPaid)

	return nil
}

func (v *VendorContract) BeforeCreate(tx *gorm.DB) error {
	_ = v.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*VendorContract)
	if toSave.ContractAmount.IsNegative() {
		return ErrVendorContractAmountNegative
	}

	return v.checkIntegrity(tx, *toSave)
}

// BeforeUpdate recomputes balance and status from the merged state of
// the stored contract and the update.
func (v *VendorContract) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(VendorContract)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("WeddingID") {
		err := v.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	contract, paid := v.ContractAmount, v.AmountPaid
	if tx.Statement.Changed("ContractAmount") {
		contract = toSave.ContractAmount
	}
	if tx.Statement.Changed("AmountPaid") {
		paid = toSave.AmountPaid
	}

	if contract.IsNegative() {
		return ErrVendorContractAmountNegative
	}

	balance, status := finance.Derive(contract, paid)
	setDerivedColumn(tx, "Balance", balance)
	setDerivedColumn(tx, "Status", status)

	return nil
}

// checkIntegrity verifies references to other resources
func (v *VendorContract) checkIntegrity(tx *gorm.DB, toSave VendorContract) error {
	return tx.First(&Wedding{}, toSave.WeddingID).Error
}

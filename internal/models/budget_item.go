package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetItem is one line of the wedding budget.
//
// Amount, Balance and Status are derived: the amount is quantity times
// unit cost, balance and status follow from amount and paid. They are
// recomputed on every save so they can never be persisted out of sync.
//
// For guest-dependent items the quantity itself is derived from the
// wedding's expected guest count, see Wedding.SetExpectedGuests.
type BudgetItem struct {
	DefaultModel
	Section         BudgetSection   `json:"-"`
	SectionID       uuid.UUID       `gorm:"uniqueIndex:budget_item_name_section"`
	Name            string          `gorm:"uniqueIndex:budget_item_name_section"`
	Quantity        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	UnitCost        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Amount          decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Paid            decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Balance         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Status          finance.Status
	GuestDependent  bool
	GuestMultiplier decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note            string
}

func (b *BudgetItem) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	b.Amount = b.Quantity.Mul(b.UnitCost)
	b.Balance, b.Status = finance.Derive(b.Amount, b.Paid)

	return nil
}

func (b *BudgetItem) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*BudgetItem)
	return b.checkIntegrity(tx, *toSave)
}

// BeforeUpdate recomputes the derived fields from the merged state of
// the stored item and the update.
func (b *BudgetItem) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(BudgetItem)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("SectionID") {
		err := b.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	quantity, unitCost, paid := b.Quantity, b.UnitCost, b.Paid
	if tx.Statement.Changed("Quantity") {
		quantity = toSave.Quantity
	}
	if tx.Statement.Changed("UnitCost") {
		unitCost = toSave.UnitCost
	}
	if tx.Statement.Changed("Paid") {
		paid = toSave.Paid
	}

	amount := quantity.Mul(unitCost)
	balance, status := finance.Derive(amount, paid)

	setDerivedColumn(tx, "Amount", amount)
	setDerivedColumn(tx, "Balance", balance)
	setDerivedColumn(tx, "Status", status)

	return nil
}

// checkIntegrity verifies references to other resources
func (b *BudgetItem) checkIntegrity(tx *gorm.DB, toSave BudgetItem) error {
	return tx.First(&BudgetSection{}, toSave.SectionID).Error
}

// rescale derives the quantity from a guest count and recomputes the
// amounts that follow from it. Only meaningful for guest-dependent items.
func (b *BudgetItem) rescale(guests uint) {
	b.Quantity = decimal.NewFromInt(int64(guests)).Mul(b.GuestMultiplier)
	b.Amount = b.Quantity.Mul(b.UnitCost)
	b.Balance, b.Status = finance.Derive(b.Amount, b.Paid)
}

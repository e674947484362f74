package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expenditure is money actually spent, independent of the budget plan.
type Expenditure struct {
	DefaultModel
	Wedding       Wedding `json:"-"`
	WeddingID     uuid.UUID
	Date          time.Time
	Category      string
	Description   string
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaymentMethod string
	VendorName    string
	Note          string
}

func (e *Expenditure) BeforeSave(_ *gorm.DB) error {
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)
	e.PaymentMethod = strings.TrimSpace(e.PaymentMethod)
	e.VendorName = strings.TrimSpace(e.VendorName)
	e.Note = strings.TrimSpace(e.Note)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

func (e *Expenditure) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Expenditure)
	if !toSave.Amount.IsPositive() {
		return ErrExpenditureAmountNotPositive
	}

	return e.checkIntegrity(tx, *toSave)
}

func (e *Expenditure) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Expenditure)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("WeddingID") {
		err := e.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	if tx.Statement.Changed("Amount") && !toSave.Amount.IsPositive() {
		return ErrExpenditureAmountNotPositive
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (e *Expenditure) checkIntegrity(tx *gorm.DB, toSave Expenditure) error {
	return tx.First(&Wedding{}, toSave.WeddingID).Error
}

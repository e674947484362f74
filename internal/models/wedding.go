package models

import (
	"strings"
	"time"

	"github.com/pledgebook/backend/internal/currency"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wedding is the highest level of organization, all other resources
// reference it directly or transitively.
//
// The currency is fixed per wedding and only used for display
// formatting, there is no conversion.
type Wedding struct {
	DefaultModel
	BrideName      string
	GroomName      string
	WeddingDate    *time.Time
	Currency       string `gorm:"default:USD"`
	ExpectedGuests uint
	Note           string
}

// BeforeSave trims whitespace and verifies the currency code.
func (w *Wedding) BeforeSave(_ *gorm.DB) error {
	w.BrideName = strings.TrimSpace(w.BrideName)
	w.GroomName = strings.TrimSpace(w.GroomName)
	w.Currency = strings.TrimSpace(w.Currency)
	w.Note = strings.TrimSpace(w.Note)

	if w.Currency == "" {
		w.Currency = "USD"
	}

	if err := currency.Validate(w.Currency); err != nil {
		return ErrWeddingCurrencyInvalid
	}

	return nil
}

func (w *Wedding) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Currency") {
		toSave := tx.Statement.Dest.(Wedding)
		if err := currency.Validate(toSave.Currency); err != nil {
			return ErrWeddingCurrencyInvalid
		}
	}

	return nil
}

// FormatAmount renders an amount in the wedding's currency.
func (w Wedding) FormatAmount(amount decimal.Decimal) string {
	return currency.Format(amount, w.Currency)
}

// SetExpectedGuests persists a new expected guest count and rescales
// every guest-dependent budget item of the wedding to it.
//
// The guest count and all recomputed items are written in a single
// database transaction. If any write fails, nothing is applied and the
// error is returned to the caller.
func (w *Wedding) SetExpectedGuests(db *gorm.DB, count uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(w).Select("ExpectedGuests").Updates(Wedding{ExpectedGuests: count}).Error
		if err != nil {
			return err
		}

		var items []BudgetItem
		err = tx.
			Joins("JOIN budget_sections ON budget_sections.id = budget_items.section_id").
			Where("budget_sections.wedding_id = ?", w.ID).
			Where("budget_items.guest_dependent = ?", true).
			Find(&items).Error
		if err != nil {
			return err
		}

		for _, item := range items {
			item.rescale(count)

			err = tx.Model(&item).
				Select("Quantity", "Amount", "Balance", "Status").
				Updates(BudgetItem{Quantity: item.Quantity, Amount: item.Amount, Balance: item.Balance, Status: item.Status}).Error
			if err != nil {
				return err
			}
		}

		w.ExpectedGuests = count
		return nil
	})
}

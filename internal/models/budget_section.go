package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BudgetSection groups budget items, e.g. "Reception" or "Attire".
type BudgetSection struct {
	DefaultModel
	Wedding      Wedding   `json:"-"`
	WeddingID    uuid.UUID `gorm:"uniqueIndex:budget_section_name_wedding"`
	Name         string    `gorm:"uniqueIndex:budget_section_name_wedding"`
	DisplayOrder uint
}

func (s *BudgetSection) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	return nil
}

func (s *BudgetSection) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*BudgetSection)
	return s.checkIntegrity(tx, *toSave)
}

func (s *BudgetSection) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("WeddingID") {
		toSave := tx.Statement.Dest.(BudgetSection)
		return s.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (s *BudgetSection) checkIntegrity(tx *gorm.DB, toSave BudgetSection) error {
	return tx.First(&Wedding{}, toSave.WeddingID).Error
}

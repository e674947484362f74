package models_test

import (
	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/finance"
	"github.com/pledgebook/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetItemDerivedFields() {
	wedding := suite.createTestWedding(models.Wedding{})
	section := suite.createTestBudgetSection(models.BudgetSection{WeddingID: wedding.ID})

	item := suite.createTestBudgetItem(models.BudgetItem{
		SectionID: section.ID,
		Quantity:  decimal.NewFromInt(2),
		UnitCost:  decimal.NewFromInt(500),
	})

	suite.Assert().True(item.Amount.Equal(decimal.NewFromInt(1000)), "Amount is %s", item.Amount)
	suite.Assert().True(item.Balance.Equal(decimal.NewFromInt(1000)), "Balance is %s", item.Balance)
	suite.Assert().Equal(finance.StatusPending, item.Status)

	err := models.DB.Model(&item).Select("Paid").Updates(models.BudgetItem{Paid: decimal.NewFromInt(400)}).Error
	suite.Require().Nil(err)

	err = models.DB.First(&item, item.ID).Error
	suite.Require().Nil(err)
	suite.Assert().True(item.Balance.Equal(decimal.NewFromInt(600)), "Balance is %s", item.Balance)
	suite.Assert().Equal(finance.StatusPartial, item.Status)

	err = models.DB.Model(&item).Select("Paid").Updates(models.BudgetItem{Paid: decimal.NewFromInt(1000)}).Error
	suite.Require().Nil(err)

	err = models.DB.First(&item, item.ID).Error
	suite.Require().Nil(err)
	suite.Assert().True(item.Balance.IsZero(), "Balance is %s", item.Balance)
	suite.Assert().Equal(finance.StatusFulfilled, item.Status)
}

func (suite *TestSuiteStandard) TestBudgetItemAmountFollowsQuantity() {
	wedding := suite.createTestWedding(models.Wedding{})
	section := suite.createTestBudgetSection(models.BudgetSection{WeddingID: wedding.ID})

	item := suite.createTestBudgetItem(models.BudgetItem{
		SectionID: section.ID,
		Quantity:  decimal.NewFromInt(10),
		UnitCost:  decimal.NewFromInt(100),
		Paid:      decimal.NewFromInt(1000),
	})
	suite.Assert().Equal(finance.StatusFulfilled, item.Status)

	// Raising the quantity reopens the item
	err := models.DB.Model(&item).Select("Quantity").Updates(models.BudgetItem{Quantity: decimal.NewFromInt(20)}).Error
	suite.Require().Nil(err)

	err = models.DB.First(&item, item.ID).Error
	suite.Require().Nil(err)
	suite.Assert().True(item.Amount.Equal(decimal.NewFromInt(2000)), "Amount is %s", item.Amount)
	suite.Assert().True(item.Balance.Equal(decimal.NewFromInt(1000)), "Balance is %s", item.Balance)
	suite.Assert().Equal(finance.StatusPartial, item.Status)
}

func (suite *TestSuiteStandard) TestBudgetItemNameUniquePerSection() {
	wedding := suite.createTestWedding(models.Wedding{})
	section := suite.createTestBudgetSection(models.BudgetSection{WeddingID: wedding.ID})

	_ = suite.createTestBudgetItem(models.BudgetItem{SectionID: section.ID, Name: "Catering"})

	err := models.DB.Create(&models.BudgetItem{SectionID: section.ID, Name: "Catering"}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetItemNameNotUnique)

	// The same name in another section is fine
	other := suite.createTestBudgetSection(models.BudgetSection{WeddingID: wedding.ID})
	err = models.DB.Create(&models.BudgetItem{SectionID: other.ID, Name: "Catering"}).Error
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestBudgetItemSectionMustExist() {
	err := models.DB.Create(&models.BudgetItem{SectionID: uuid.New()}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

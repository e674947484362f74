package models_test

import (
	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCashEntrySourceTypeValidated() {
	wedding := suite.createTestWedding(models.Wedding{})

	err := models.DB.Create(&models.CashEntry{
		WeddingID:  wedding.ID,
		Amount:     decimal.NewFromInt(1000),
		SourceType: "loan",
	}).Error
	suite.Assert().ErrorIs(err, models.ErrCashEntrySourceTypeInvalid)
}

func (suite *TestSuiteStandard) TestCashEntryAmountMustBePositive() {
	wedding := suite.createTestWedding(models.Wedding{})

	err := models.DB.Create(&models.CashEntry{
		WeddingID:  wedding.ID,
		SourceType: models.CashSourceGift,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrCashEntryAmountNotPositive)
}

func (suite *TestSuiteStandard) TestCashEntryPledgeNeedsReference() {
	wedding := suite.createTestWedding(models.Wedding{})

	err := models.DB.Create(&models.CashEntry{
		WeddingID:  wedding.ID,
		Amount:     decimal.NewFromInt(1000),
		SourceType: models.CashSourcePledge,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrCashEntryReferenceMissing)

	id := uuid.New()
	err = models.DB.Create(&models.CashEntry{
		WeddingID:         wedding.ID,
		Amount:            decimal.NewFromInt(1000),
		SourceType:        models.CashSourcePledge,
		SourceReferenceID: &id,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCashEntryPledgeMirrorImmutable() {
	wedding := suite.createTestWedding(models.Wedding{})
	pledge := suite.createTestPledge(models.Pledge{
		WeddingID:     wedding.ID,
		AmountPledged: decimal.NewFromInt(500000),
	})

	entry := suite.createTestCashEntry(models.CashEntry{
		WeddingID:         wedding.ID,
		Amount:            decimal.NewFromInt(200000),
		SourceType:        models.CashSourcePledge,
		SourceReferenceID: &pledge.ID,
		ContributorName:   pledge.ContributorName,
	})

	err := models.DB.Model(&entry).Select("Amount").Updates(models.CashEntry{Amount: decimal.NewFromInt(1)}).Error
	suite.Assert().ErrorIs(err, models.ErrCashEntryImmutable)

	err = models.DB.Delete(&entry).Error
	suite.Assert().ErrorIs(err, models.ErrCashEntryImmutable)
}

func (suite *TestSuiteStandard) TestCashEntryGiftEditable() {
	wedding := suite.createTestWedding(models.Wedding{})

	entry := suite.createTestCashEntry(models.CashEntry{
		WeddingID:       wedding.ID,
		Amount:          decimal.NewFromInt(50000),
		SourceType:      models.CashSourceGift,
		ContributorName: "Uncle Ben",
	})

	err := models.DB.Model(&entry).Select("Amount").Updates(models.CashEntry{Amount: decimal.NewFromInt(60000)}).Error
	suite.Assert().Nil(err)

	// A plain record cannot be turned into a pledge mirror
	err = models.DB.Model(&entry).Select("SourceType").Updates(models.CashEntry{SourceType: models.CashSourcePledge}).Error
	suite.Assert().ErrorIs(err, models.ErrCashEntryImmutable)

	err = models.DB.Delete(&entry).Error
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestCashEntryDateDefaultsToNow() {
	wedding := suite.createTestWedding(models.Wedding{})

	entry := suite.createTestCashEntry(models.CashEntry{
		WeddingID:  wedding.ID,
		Amount:     decimal.NewFromInt(50000),
		SourceType: models.CashSourceOther,
	})

	suite.Assert().False(entry.Date.IsZero())
}

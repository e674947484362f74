package models_test

import (
	"github.com/google/uuid"
	"github.com/pledgebook/backend/internal/finance"
	"github.com/pledgebook/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestPledgeAmountMustBePositive() {
	wedding := suite.createTestWedding(models.Wedding{})

	err := models.DB.Create(&models.Pledge{WeddingID: wedding.ID, ContributorName: "Jane Doe"}).Error
	suite.Assert().ErrorIs(err, models.ErrPledgeAmountNotPositive)

	err = models.DB.Create(&models.Pledge{
		WeddingID:       wedding.ID,
		ContributorName: "Jane Doe",
		AmountPledged:   decimal.NewFromInt(-500),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrPledgeAmountNotPositive)
}

func (suite *TestSuiteStandard) TestPledgeDerivedFields() {
	wedding := suite.createTestWedding(models.Wedding{})

	pledge := suite.createTestPledge(models.Pledge{
		WeddingID:     wedding.ID,
		AmountPledged: decimal.NewFromInt(500000),
		AmountPaid:    decimal.NewFromInt(200000),
	})

	suite.Assert().True(pledge.Balance.Equal(decimal.NewFromInt(300000)), "Balance is %s", pledge.Balance)
	suite.Assert().Equal(finance.StatusPartial, pledge.Status)

	err := models.DB.Model(&pledge).Select("AmountPaid").Updates(models.Pledge{AmountPaid: decimal.NewFromInt(500000)}).Error
	suite.Require().Nil(err)

	err = models.DB.First(&pledge, pledge.ID).Error
	suite.Require().Nil(err)
	suite.Assert().True(pledge.Balance.IsZero(), "Balance is %s", pledge.Balance)
	suite.Assert().Equal(finance.StatusFulfilled, pledge.Status)
}

func (suite *TestSuiteStandard) TestPledgeOverpaymentKeepsNegativeBalance() {
	wedding := suite.createTestWedding(models.Wedding{})

	pledge := suite.createTestPledge(models.Pledge{
		WeddingID:     wedding.ID,
		AmountPledged: decimal.NewFromInt(100000),
		AmountPaid:    decimal.NewFromInt(150000),
	})

	suite.Assert().True(pledge.Balance.Equal(decimal.NewFromInt(-50000)), "Balance is %s", pledge.Balance)
	suite.Assert().Equal(finance.StatusFulfilled, pledge.Status)
}

func (suite *TestSuiteStandard) TestPledgeUpdateCannotZeroAmount() {
	wedding := suite.createTestWedding(models.Wedding{})

	pledge := suite.createTestPledge(models.Pledge{
		WeddingID:     wedding.ID,
		AmountPledged: decimal.NewFromInt(100000),
	})

	err := models.DB.Model(&pledge).Select("AmountPledged").Updates(models.Pledge{AmountPledged: decimal.Zero}).Error
	suite.Assert().ErrorIs(err, models.ErrPledgeAmountNotPositive)
}

func (suite *TestSuiteStandard) TestPledgeWeddingMustExist() {
	err := models.DB.Create(&models.Pledge{
		WeddingID:       uuid.New(),
		ContributorName: "Jane Doe",
		AmountPledged:   decimal.NewFromInt(1000),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestPledgeTrimWhitespace() {
	wedding := suite.createTestWedding(models.Wedding{})

	pledge := suite.createTestPledge(models.Pledge{
		WeddingID:       wedding.ID,
		ContributorName: " Mrs Jane Doe ",
		AmountPledged:   decimal.NewFromInt(1000),
	})

	suite.Assert().Equal("Mrs Jane Doe", pledge.ContributorName)
}

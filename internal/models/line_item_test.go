package models_test

import (
	"github.com/budgetradar/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestLineItemDescriptionRequired() {
	dataset := suite.createTestDataset(models.Dataset{})

	tests := []string{"", "   ", "\t"}
	for _, description := range tests {
		err := models.DB.Create(&models.LineItem{
			DatasetID:   dataset.ID,
			Description: description,
			Amount:      decimal.NewFromInt(100),
		}).Error

		assert.ErrorIs(suite.T(), err, models.ErrDescriptionRequired, "description %q was accepted", description)
	}
}

func (suite *TestSuiteStandard) TestLineItemAmountRequired() {
	dataset := suite.createTestDataset(models.Dataset{})

	err := models.DB.Create(&models.LineItem{
		DatasetID:   dataset.ID,
		Description: "Mystery expense",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrAmountRequired)
}

func (suite *TestSuiteStandard) TestLineItemNegativeAmount() {
	dataset := suite.createTestDataset(models.Dataset{})

	// Credits are negative amounts and are valid
	lineItem := suite.createTestLineItem(models.LineItem{
		DatasetID: dataset.ID,
		Amount:    decimal.NewFromInt(-250),
	})

	assert.True(suite.T(), lineItem.Amount.IsNegative())
}

func (suite *TestSuiteStandard) TestItemsFor() {
	dataset := suite.createTestDataset(models.Dataset{})
	suite.createTestLineItem(models.LineItem{DatasetID: dataset.ID, Description: "Small", Amount: decimal.NewFromInt(100)})
	suite.createTestLineItem(models.LineItem{DatasetID: dataset.ID, Description: "Large", Amount: decimal.NewFromInt(9000)})

	other := suite.createTestDataset(models.Dataset{})
	suite.createTestLineItem(models.LineItem{DatasetID: other.ID, Description: "Other dataset"})

	items, err := models.ItemsFor(models.DB, dataset.ID)
	assert.Nil(suite.T(), err)

	// Ordered by amount descending
	if assert.Len(suite.T(), items, 2) {
		assert.Equal(suite.T(), "Large", items[0].Description)
		assert.Equal(suite.T(), "Small", items[1].Description)
	}
}

func (suite *TestSuiteStandard) TestItemsForDBError() {
	dataset := suite.createTestDataset(models.Dataset{})
	suite.CloseDB()

	_, err := models.ItemsFor(models.DB, dataset.ID)
	assert.NotNil(suite.T(), err)
}

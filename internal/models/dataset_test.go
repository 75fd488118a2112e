package models_test

import (
	"testing"

	"github.com/budgetradar/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDatasetNameUnique() {
	suite.createTestDataset(models.Dataset{Name: "Unique Name"})

	err := models.DB.Create(&models.Dataset{Name: "Unique Name"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrDatasetNameNotUnique)
}

func (suite *TestSuiteStandard) TestDatasetStats() {
	dataset := suite.createTestDataset(models.Dataset{})
	suite.createTestLineItem(models.LineItem{DatasetID: dataset.ID, Amount: decimal.NewFromInt(5000)})
	suite.createTestLineItem(models.LineItem{DatasetID: dataset.ID, Amount: decimal.NewFromInt(1200)})

	// Line items of other datasets are not counted
	other := suite.createTestDataset(models.Dataset{})
	suite.createTestLineItem(models.LineItem{DatasetID: other.ID, Amount: decimal.NewFromInt(999)})

	count, total, err := dataset.Stats(models.DB)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(2), count)
	assert.True(suite.T(), total.Equal(decimal.NewFromInt(6200)), "total is %s", total)
}

func (suite *TestSuiteStandard) TestDatasetStatsEmpty() {
	dataset := suite.createTestDataset(models.Dataset{})

	count, total, err := dataset.Stats(models.DB)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count)
	assert.True(suite.T(), total.IsZero())
}

func (suite *TestSuiteStandard) TestDatasetDeleteCascades() {
	dataset := suite.createTestDataset(models.Dataset{})
	lineItem := suite.createTestLineItem(models.LineItem{DatasetID: dataset.ID})

	err := models.DB.Delete(&dataset).Error
	assert.Nil(suite.T(), err)

	var count int64
	err = models.DB.Model(&models.LineItem{}).Where(&models.LineItem{DatasetID: dataset.ID}).Count(&count).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count, "line item %s still exists", lineItem.ID)
}

func (suite *TestSuiteStandard) TestDatasetNotFoundError() {
	var dataset models.Dataset

	err := models.DB.First(&dataset, "id = ?", "d07a9d13-7c4c-4b64-ad0a-7d6e673b3057").Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	suite.T().Run("error message", func(t *testing.T) {
		assert.Equal(t, "there is no dataset matching your query", err.Error())
	})
}

package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Dataset represents one uploaded budget.
//
// A dataset is the highest level of organization in the backend, every
// line item references exactly one dataset. All analysis endpoints are
// computed over the line items of a single dataset.
type Dataset struct {
	DefaultModel
	Name           string `json:"name" gorm:"uniqueIndex" example:"FY25 Operations" default:""`   // Name of the dataset, must be unique
	Note           string `json:"note" example:"Quarterly planning upload" default:""`            // A longer description
	SourceFilename string `json:"sourceFilename" example:"budget_2025.csv" default:""`            // Name of the file the dataset was imported from, empty when created via the API
	TemplateID     string `json:"templateId" example:"film_production" default:""`                // ID of the built-in template this dataset was created from, if any
}

// BeforeDelete deletes all line items for the dataset. This is done in
// application logic since sqlite does not cascade soft deletes.
func (d *Dataset) BeforeDelete(tx *gorm.DB) (err error) {
	return tx.Where(&LineItem{DatasetID: d.ID}).Delete(&LineItem{}).Error
}

// Stats returns the number of line items of the dataset and their total
// amount as a single aggregate query.
func (d Dataset) Stats(db *gorm.DB) (int64, decimal.Decimal, error) {
	var stats struct {
		Count int64
		Total decimal.NullDecimal
	}

	err := db.
		Model(&LineItem{}).
		Select("count(*) AS count, sum(amount) AS total").
		Where(&LineItem{DatasetID: d.ID}).
		Scan(&stats).Error
	if err != nil {
		return 0, decimal.Zero, err
	}

	// sum() is NULL when the dataset has no line items
	if !stats.Total.Valid {
		return stats.Count, decimal.Zero, nil
	}

	return stats.Count, stats.Total.Decimal, nil
}

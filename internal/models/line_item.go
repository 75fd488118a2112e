package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItem represents a single row of budget data in a dataset.
type LineItem struct {
	DefaultModel
	DatasetID   uuid.UUID       `json:"datasetId" example:"d07a9d13-7c4c-4b64-ad0a-7d6e673b3057"` // ID of the dataset the item belongs to
	Dataset     Dataset         `json:"-"`
	Description string          `json:"description" example:"Office Rent" default:""`          // Free-text description of the expense
	Department  string          `json:"department" example:"Operations" default:""`            // Department the expense belongs to, optional
	Category    string          `json:"category" example:"Facilities" default:""`              // Category of the expense, optional
	Vendor      string          `json:"vendor" example:"ABC Properties" default:""`            // Vendor the expense is paid to, optional

	// The amount is signed, credits are negative
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"5000"`

	ImportHash string `json:"importHash" example:"867e3a26dc0baf73f4bff506f31a97f6c32088917e9e5cf1a5ed6f3f84a6fa70" default:""` // The SHA256 hash of the raw CSV record, used in duplicate detection
}

// BeforeSave rejects line items without a description so that analysis
// output always has something to display. Amounts must be set, credits
// are stored as negative amounts.
func (l *LineItem) BeforeSave(_ *gorm.DB) (err error) {
	if strings.TrimSpace(l.Description) == "" {
		return ErrDescriptionRequired
	}

	if l.Amount.IsZero() {
		return ErrAmountRequired
	}

	return nil
}

// ItemsFor returns all line items of a dataset.
func ItemsFor(db *gorm.DB, datasetID uuid.UUID) ([]LineItem, error) {
	var items []LineItem
	err := db.Where(&LineItem{DatasetID: datasetID}).Order("amount DESC").Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

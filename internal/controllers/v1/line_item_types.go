package v1

import (
	"fmt"

	"github.com/budgetradar/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemEditable represents all user configurable parameters
type LineItemEditable struct {
	Description string          `json:"description" example:"Office Rent" default:""` // Description of the expense
	Department  string          `json:"department" example:"Operations" default:""`   // Department the expense belongs to
	Category    string          `json:"category" example:"Facilities" default:""`     // Category of the expense
	Vendor      string          `json:"vendor" example:"ABC Properties" default:""`   // Vendor the expense is paid to
	Amount      decimal.Decimal `json:"amount" example:"5000" minimum:"0.00000001" multipleOf:"0.00000001"` // Amount of the expense
}

func (editable LineItemEditable) model(datasetID uuid.UUID) models.LineItem {
	return models.LineItem{
		DatasetID:   datasetID,
		Description: editable.Description,
		Department:  editable.Department,
		Category:    editable.Category,
		Vendor:      editable.Vendor,
		Amount:      editable.Amount,
	}
}

type LineItemLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f/items"` // The line item collection of the dataset
	Dataset string `json:"dataset" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f"`    // The dataset the line item belongs to
}

type LineItem struct {
	models.DefaultModel
	DatasetID uuid.UUID `json:"datasetId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the dataset
	LineItemEditable
	Links LineItemLinks `json:"links"`
}

func newLineItem(c *gin.Context, model models.LineItem) LineItem {
	url := c.GetString(string(models.DBContextURL))

	return LineItem{
		DefaultModel: model.DefaultModel,
		DatasetID:    model.DatasetID,
		LineItemEditable: LineItemEditable{
			Description: model.Description,
			Department:  model.Department,
			Category:    model.Category,
			Vendor:      model.Vendor,
			Amount:      model.Amount,
		},
		Links: LineItemLinks{
			Self:    fmt.Sprintf("%s/v1/datasets/%s/items", url, model.DatasetID),
			Dataset: fmt.Sprintf("%s/v1/datasets/%s", url, model.DatasetID),
		},
	}
}

type LineItemListResponse struct {
	Data  []LineItem `json:"data"`                                                          // List of line items, ordered by amount descending
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type LineItemCreateResponse struct {
	Data  []LineItemResponse `json:"data"`                                                          // List of the created line items or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (l *LineItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	l.Data = append(l.Data, LineItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type LineItemResponse struct {
	Data  *LineItem `json:"data"`                                                          // Data for the line item
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

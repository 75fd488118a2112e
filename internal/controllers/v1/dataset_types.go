package v1

import (
	"fmt"

	"github.com/budgetradar/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DatasetEditable represents all user configurable parameters
type DatasetEditable struct {
	Name string `json:"name" example:"FY25 Operations" default:""`           // Name of the dataset
	Note string `json:"note" example:"Quarterly planning upload" default:""` // Notes about the dataset
}

func (editable DatasetEditable) model() models.Dataset {
	return models.Dataset{
		Name: editable.Name,
		Note: editable.Note,
	}
}

type DatasetLinks struct {
	Self            string `json:"self" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The dataset itself
	Items           string `json:"items" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f/items"`     // Line items of the dataset
	Analysis        string `json:"analysis" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f/analysis"`               // Summary statistics and breakdowns
	Risks           string `json:"risks" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f/risks"`                     // Risk assessment
	Recommendations string `json:"recommendations" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f/recommendations"` // Prioritized recommendations
	Optimizations   string `json:"optimizations" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f/optimizations"`     // Cost saving opportunities
	Chart           string `json:"chart" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f/chart"`                     // Chart data by department
	Export          string `json:"export" example:"https://example.com/api/v1/datasets/3b1ea324-d438-4419-882a-2fc91d71772f/export"`                   // Excel export of the dataset
}

type Dataset struct {
	models.DefaultModel
	DatasetEditable
	SourceFilename string       `json:"sourceFilename" example:"budget_2025.csv"` // Name of the file the dataset was imported from
	TemplateID     string       `json:"templateId" example:"film_production"`     // ID of the built-in template the dataset was created from
	Links          DatasetLinks `json:"links"`

	// These fields are computed
	ItemCount int64           `json:"itemCount" example:"24"`   // Number of line items in the dataset
	Total     decimal.Decimal `json:"total" example:"184000.5"` // Total amount of all line items
}

func newDataset(c *gin.Context, db *gorm.DB, model models.Dataset) (Dataset, error) {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/datasets/%s", url, model.ID)

	count, total, err := model.Stats(db)
	if err != nil {
		return Dataset{}, err
	}

	return Dataset{
		DefaultModel: model.DefaultModel,
		DatasetEditable: DatasetEditable{
			Name: model.Name,
			Note: model.Note,
		},
		SourceFilename: model.SourceFilename,
		TemplateID:     model.TemplateID,
		Links: DatasetLinks{
			Self:            self,
			Items:           self + "/items",
			Analysis:        self + "/analysis",
			Risks:           self + "/risks",
			Recommendations: self + "/recommendations",
			Optimizations:   self + "/optimizations",
			Chart:           self + "/chart",
			Export:          self + "/export",
		},
		ItemCount: count,
		Total:     total,
	}, nil
}

type DatasetListResponse struct {
	Data       []Dataset   `json:"data"`                                                          // List of datasets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DatasetCreateResponse struct {
	Data  []DatasetResponse `json:"data"`                                                          // List of the created datasets or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (d *DatasetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	d.Data = append(d.Data, DatasetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DatasetResponse struct {
	Data  *Dataset `json:"data"`                                                          // Data for the dataset
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DatasetQueryFilter struct {
	Name       string `form:"name" filterField:"false"`   // By name
	Note       string `form:"note" filterField:"false"`   // By note
	TemplateID string `form:"template"`                   // By ID of the built-in template the dataset was created from
	Search     string `form:"search" filterField:"false"` // By string in name or note
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first dataset returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of datasets to return. Defaults to 50.
}

func (f DatasetQueryFilter) model() models.Dataset {
	return models.Dataset{
		TemplateID: f.TemplateID,
	}
}

package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/budgetradar/backend/internal/controllers/v1"
	"github.com/budgetradar/backend/internal/models"
	"github.com/budgetradar/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDatasetsOptions() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})

	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"Collection", "http://example.com/v1/datasets", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Existing dataset", dataset.Data.Links.Self, http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{"Items", dataset.Data.Links.Items, http.StatusNoContent, "OPTIONS, GET, POST"},
		{"No dataset with this ID", fmt.Sprintf("http://example.com/v1/datasets/%s", uuid.New()), http.StatusNotFound, ""},
		{"Invalid UUID", "http://example.com/v1/datasets/not-a-uuid", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &recorder, tt.status)

			if tt.allow != "" {
				assert.Equal(t, tt.allow, recorder.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestDatasetCreate() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{Name: "FY25 Operations", Note: "Planning upload"})

	assert.Equal(suite.T(), "FY25 Operations", dataset.Data.Name)
	assert.Equal(suite.T(), "Planning upload", dataset.Data.Note)
	assert.Equal(suite.T(), int64(0), dataset.Data.ItemCount)
	assert.True(suite.T(), dataset.Data.Total.IsZero())
}

func (suite *TestSuiteStandard) TestDatasetCreateDuplicateName() {
	createTestDataset(suite.T(), v1.DatasetEditable{Name: "Unique"})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/datasets", []v1.DatasetEditable{{Name: "Unique"}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.DatasetCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.ErrDatasetNameNotUnique.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestDatasetCreateInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/datasets", `{ broken`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDatasetGet() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})
	createTestLineItems(suite.T(), dataset.Data.ID, []v1.LineItemEditable{
		item("Office Rent", "Operations", "Facilities", 5000),
		item("Cloud Services", "IT", "Infrastructure", 1200),
	})

	recorder := test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DatasetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), int64(2), response.Data.ItemCount)
	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromInt(6200)), "total is %s", response.Data.Total)
}

func (suite *TestSuiteStandard) TestDatasetsList() {
	createTestDataset(suite.T(), v1.DatasetEditable{Name: "Alpha"})
	createTestDataset(suite.T(), v1.DatasetEditable{Name: "Beta", Note: "monthly"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 2},
		{"Filter by name", "name=Alpha", 1},
		{"Search note", "search=monthly", 1},
		{"Search no match", "search=nothing-matches-this", 0},
		{"Limit", "limit=1", 1},
		{"Offset", "offset=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/datasets?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.DatasetListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestDatasetUpdate() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{Name: "Before"})

	recorder := test.Request(suite.T(), http.MethodPatch, dataset.Data.Links.Self, map[string]any{
		"name": "After",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DatasetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "After", response.Data.Name)
}

func (suite *TestSuiteStandard) TestDatasetDelete() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})
	createTestLineItems(suite.T(), dataset.Data.ID, startupItems())

	recorder := test.Request(suite.T(), http.MethodDelete, dataset.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// The dataset and its line items are gone
	recorder = test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var count int64
	models.DB.Model(&models.LineItem{}).Where(&models.LineItem{DatasetID: dataset.Data.ID}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestDatasetNotFound() {
	tests := []struct {
		method string
		body   any
	}{
		{http.MethodGet, ""},
		{http.MethodPatch, map[string]any{"name": "New"}},
		{http.MethodDelete, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method, func(t *testing.T) {
			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/datasets/%s", uuid.New()), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)
		})
	}
}

func (suite *TestSuiteStandard) TestDatasetItems() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})
	createTestLineItems(suite.T(), dataset.Data.ID, []v1.LineItemEditable{
		item("Team Lunch", "HR", "Morale", 500),
		item("Employee Salaries", "HR", "Personnel", 25000),
		item("Cloud Services", "IT", "Infrastructure", 1200),
	})

	recorder := test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Items, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.LineItemListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// Ordered by amount descending
	if assert.Len(suite.T(), response.Data, 3) {
		assert.Equal(suite.T(), "Employee Salaries", response.Data[0].Description)
		assert.Equal(suite.T(), "Cloud Services", response.Data[1].Description)
		assert.Equal(suite.T(), "Team Lunch", response.Data[2].Description)
	}
}

func (suite *TestSuiteStandard) TestDatasetItemsCreateEmptyDescription() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})

	response := createTestLineItems(suite.T(), dataset.Data.ID, []v1.LineItemEditable{
		{Department: "IT", Amount: decimal.NewFromInt(100)},
	}, http.StatusBadRequest)

	assert.Equal(suite.T(), models.ErrDescriptionRequired.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestDatasetsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestDataset(t, v1.DatasetEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/datasets", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.DatasetListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

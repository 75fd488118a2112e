package v1_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	v1 "github.com/budgetradar/backend/internal/controllers/v1"
	"github.com/budgetradar/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const testCSV = `Description,Department,Category,Amount
Office Rent,Operations,Facilities,5000
Cloud Services,,,1200
`

func (suite *TestSuiteStandard) TestImportOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"http://example.com/v1/import", "OPTIONS, GET, POST"},
		{"http://example.com/v1/import/preview", "OPTIONS, POST"},
		{"http://example.com/v1/import/sample", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)
			assert.Equal(t, tt.allow, recorder.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestImportGet() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/import", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "http://example.com/v1/import/sample", response.Links.Sample)
}

func (suite *TestSuiteStandard) TestImportSample() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/import/sample", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	assert.Equal(suite.T(), "attachment; filename=sample_budget.csv", recorder.Header().Get("Content-Disposition"))
	assert.True(suite.T(), strings.HasPrefix(recorder.Body.String(), "Description,Department,Category,Amount"))
}

func (suite *TestSuiteStandard) TestImportPreview() {
	body, headers := test.CSVFile(suite.T(), "budget.csv", testCSV)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import/preview", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ImportPreviewList
	test.DecodeResponse(suite.T(), &recorder, &response)

	if assert.Len(suite.T(), response.Data, 2) {
		assert.Equal(suite.T(), "Office Rent", response.Data[0].LineItem.Description)
		assert.True(suite.T(), response.Data[0].LineItem.Amount.Equal(decimal.NewFromInt(5000)))
		assert.Empty(suite.T(), response.Data[0].DuplicateLineItemIDs)
		assert.Equal(suite.T(), uuid.Nil, response.Data[0].MatchRuleID)
	}
}

func (suite *TestSuiteStandard) TestImportPreviewMatchRules() {
	matchRule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Match:      "Cloud*",
		Department: "IT",
		Category:   "Infrastructure",
	})

	body, headers := test.CSVFile(suite.T(), "budget.csv", testCSV)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import/preview", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ImportPreviewList
	test.DecodeResponse(suite.T(), &recorder, &response)

	if assert.Len(suite.T(), response.Data, 2) {
		// The rule fills in the empty department and category
		assert.Equal(suite.T(), "IT", response.Data[1].LineItem.Department)
		assert.Equal(suite.T(), "Infrastructure", response.Data[1].LineItem.Category)
		assert.Equal(suite.T(), matchRule.Data.ID, response.Data[1].MatchRuleID)

		// The rule does not match the first line
		assert.Equal(suite.T(), "Operations", response.Data[0].LineItem.Department)
		assert.Equal(suite.T(), uuid.Nil, response.Data[0].MatchRuleID)
	}
}

func (suite *TestSuiteStandard) TestImportPreviewDuplicates() {
	// Import the file once so that the preview finds duplicates
	body, headers := test.CSVFile(suite.T(), "budget.csv", testCSV)
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?name=Existing", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	body, headers = test.CSVFile(suite.T(), "budget.csv", testCSV)
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import/preview", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ImportPreviewList
	test.DecodeResponse(suite.T(), &recorder, &response)

	if assert.Len(suite.T(), response.Data, 2) {
		assert.Len(suite.T(), response.Data[0].DuplicateLineItemIDs, 1)
		assert.Len(suite.T(), response.Data[1].DuplicateLineItemIDs, 1)
	}
}

func (suite *TestSuiteStandard) TestImportPreviewErrors() {
	tests := []struct {
		name     string
		filename string
		content  string
		status   int
	}{
		{"Wrong suffix", "budget.xlsx", testCSV, http.StatusBadRequest},
		{"Empty file", "budget.csv", "", http.StatusBadRequest},
		{"No amount column", "budget.csv", "Description\nOffice Rent\n", http.StatusBadRequest},
		{"Broken amount", "budget.csv", "Description,Amount\nOffice Rent,lots\n", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := test.CSVFile(t, tt.filename, tt.content)

			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/import/preview", body, headers)
			test.AssertHTTPStatus(t, &recorder, tt.status)

			var response v1.ImportPreviewList
			test.DecodeResponse(t, &recorder, &response)
			assert.NotNil(t, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestImportCSV() {
	body, headers := test.CSVFile(suite.T(), "q3_budget.csv", testCSV)

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/import?name=%s", url.QueryEscape("Q3 Budget")), body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.DatasetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "Q3 Budget", response.Data.Name)
	assert.Equal(suite.T(), "q3_budget.csv", response.Data.SourceFilename)
	assert.Equal(suite.T(), int64(2), response.Data.ItemCount)
	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromInt(6200)), "total is %s", response.Data.Total)
}

func (suite *TestSuiteStandard) TestImportCSVAppliesMatchRules() {
	createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Match:      "Cloud*",
		Department: "IT",
	})

	body, headers := test.CSVFile(suite.T(), "budget.csv", testCSV)
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?name=Matched", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.DatasetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	itemRecorder := test.Request(suite.T(), http.MethodGet, response.Data.Links.Items, "")
	test.AssertHTTPStatus(suite.T(), &itemRecorder, http.StatusOK)

	var items v1.LineItemListResponse
	test.DecodeResponse(suite.T(), &itemRecorder, &items)

	if assert.Len(suite.T(), items.Data, 2) {
		// Ordered by amount descending, Cloud Services comes second
		assert.Equal(suite.T(), "IT", items.Data[1].Department)
	}
}

func (suite *TestSuiteStandard) TestImportCSVErrors() {
	createTestDataset(suite.T(), v1.DatasetEditable{Name: "Taken"})

	tests := []struct {
		name   string
		target string
		body   func(t *testing.T) (any, map[string]string)
		status int
	}{
		{
			"No name",
			"http://example.com/v1/import",
			func(t *testing.T) (any, map[string]string) {
				body, headers := test.CSVFile(t, "budget.csv", testCSV)
				return body, headers
			},
			http.StatusBadRequest,
		},
		{
			"Name already in use",
			"http://example.com/v1/import?name=Taken",
			func(t *testing.T) (any, map[string]string) {
				body, headers := test.CSVFile(t, "budget.csv", testCSV)
				return body, headers
			},
			http.StatusBadRequest,
		},
		{
			"No file",
			"http://example.com/v1/import?name=NoFile",
			func(t *testing.T) (any, map[string]string) {
				return "", map[string]string{"Content-Type": "multipart/form-data"}
			},
			http.StatusBadRequest,
		},
		{
			"Wrong suffix",
			"http://example.com/v1/import?name=WrongSuffix",
			func(t *testing.T) (any, map[string]string) {
				body, headers := test.CSVFile(t, "budget.txt", testCSV)
				return body, headers
			},
			http.StatusBadRequest,
		},
		{
			"Unparseable file",
			"http://example.com/v1/import?name=Unparseable",
			func(t *testing.T) (any, map[string]string) {
				body, headers := test.CSVFile(t, "budget.csv", "Description,Amount\nOffice Rent,not-a-number\n")
				return body, headers
			},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := tt.body(t)

			recorder := test.Request(t, http.MethodPost, tt.target, body, headers)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

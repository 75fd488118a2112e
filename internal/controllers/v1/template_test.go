package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/budgetradar/backend/internal/controllers/v1"
	"github.com/budgetradar/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTemplatesOptions() {
	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"Collection", "http://example.com/v1/templates", http.StatusNoContent, "OPTIONS, GET"},
		{"Existing template", "http://example.com/v1/templates/film_production", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"No template with this ID", "http://example.com/v1/templates/does-not-exist", http.StatusNotFound, ""},
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

func (suite *TestSuiteStandard) TestTemplatesList() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/templates", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TemplateListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// Most popular first
	if assert.Len(suite.T(), response.Data, 3) {
		assert.Equal(suite.T(), "film_production", response.Data[0].ID)
	}
	assert.Equal(suite.T(), []string{"Business & Marketing", "Creative & Media"}, response.Categories)
}

func (suite *TestSuiteStandard) TestTemplatesSearch() {
	tests := []struct {
		query string
		count int
	}{
		{"search=film", 1},
		{"search=FILM", 1},
		{"search=does-not-match-anything", 0},
		{"category=Creative+%26+Media", 1},
		{"category=Business+%26+Marketing", 2},
		{"category=Unknown", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, "http://example.com/v1/templates?"+tt.query, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.TemplateListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestTemplateGet() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/templates/film_production", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TemplateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "Film Production Budget", response.Data.Name)
	assert.True(suite.T(), response.Data.TotalAmount.Equal(decimal.NewFromInt(28000)))
	assert.Equal(suite.T(), 3, response.Data.ItemCount)
}

func (suite *TestSuiteStandard) TestTemplateGetNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/templates/does-not-exist", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUseTemplate() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/templates/film_production", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.DatasetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// The dataset name defaults to the template name
	assert.Equal(suite.T(), "Film Production Budget", response.Data.Name)
	assert.Equal(suite.T(), "film_production", response.Data.TemplateID)
	assert.Equal(suite.T(), int64(3), response.Data.ItemCount)
	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromInt(28000)))
}

func (suite *TestSuiteStandard) TestUseTemplateCustomName() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/templates/marketing_campaign", v1.UseTemplateEditable{
		Name: "Spring Campaign",
		Note: "For the spring launch",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.DatasetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "Spring Campaign", response.Data.Name)
	assert.Equal(suite.T(), "For the spring launch", response.Data.Note)
}

func (suite *TestSuiteStandard) TestUseTemplateDuplicateName() {
	createTestDataset(suite.T(), v1.DatasetEditable{Name: "Film Production Budget"})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/templates/film_production", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUseTemplateNotFound() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/templates/does-not-exist", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/budgetradar/backend/internal/controllers/v1"
	"github.com/budgetradar/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestV1Options() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, DELETE", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestV1Get() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "http://example.com/v1/datasets", response.Links.Datasets)
	assert.Equal(suite.T(), "http://example.com/v1/import", response.Links.Import)
	assert.Equal(suite.T(), "http://example.com/v1/match-rules", response.Links.MatchRules)
	assert.Equal(suite.T(), "http://example.com/v1/templates", response.Links.Templates)
}

func (suite *TestSuiteStandard) TestCleanup() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})
	createTestLineItems(suite.T(), dataset.Data.ID, startupItems())
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "Delete me"})

	tests := []string{
		"http://example.com/v1/datasets",
		"http://example.com/v1/match-rules",
	}

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodGet, tt, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"No confirmation", ""},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1?%s", tt.path), "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}

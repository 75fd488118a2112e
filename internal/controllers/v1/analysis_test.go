package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/budgetradar/backend/internal/analysis"
	v1 "github.com/budgetradar/backend/internal/controllers/v1"
	"github.com/budgetradar/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

// createAnalyzedDataset creates a dataset with a realistic budget for
// the analysis endpoint tests.
func createAnalyzedDataset(t *testing.T) v1.DatasetResponse {
	dataset := createTestDataset(t, v1.DatasetEditable{})
	createTestLineItems(t, dataset.Data.ID, startupItems())

	return dataset
}

func (suite *TestSuiteStandard) TestAnalysisOptions() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})

	paths := []string{"analysis", "risks", "recommendations", "optimizations", "chart", "compare", "export"}
	for _, path := range paths {
		suite.T().Run(path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, fmt.Sprintf("%s/%s", dataset.Data.Links.Self, path), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)
			assert.Equal(t, "OPTIONS, GET", recorder.Header().Get("allow"))

			// The dataset has to exist
			recorder = test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/datasets/%s/%s", uuid.New(), path), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)
		})
	}
}

func (suite *TestSuiteStandard) TestDatasetAnalysis() {
	dataset := createAnalyzedDataset(suite.T())

	recorder := test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Analysis, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AnalysisResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	report := response.Data
	assert.Equal(suite.T(), 10, report.Summary.TotalItems)
	assert.True(suite.T(), report.Summary.TotalAmount.Equal(decimal.NewFromInt(51500)), "total is %s", report.Summary.TotalAmount)
	assert.Equal(suite.T(), 5, report.Summary.Departments)

	// HR carries more than half the budget
	if assert.NotEmpty(suite.T(), report.Departments) {
		assert.Equal(suite.T(), "HR", report.Departments[0].Department)
		assert.True(suite.T(), report.Departments[0].Total.Equal(decimal.NewFromInt(27300)))
	}

	if assert.Len(suite.T(), report.TopExpenses, 5) {
		assert.Equal(suite.T(), "Employee Salaries", report.TopExpenses[0].Description)
	}

	// Marketing Campaign and Employee Salaries exceed 10% of the total
	assert.Len(suite.T(), report.HighCostItems, 2)

	assert.Greater(suite.T(), report.HHI, 2500.0)
	assert.Greater(suite.T(), report.Gini, 0.0)
	assert.GreaterOrEqual(suite.T(), report.HealthScore, 0)
	assert.LessOrEqual(suite.T(), report.HealthScore, 100)
	assert.NotEmpty(suite.T(), report.Insights)
}

func (suite *TestSuiteStandard) TestDatasetAnalysisEmpty() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})

	recorder := test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Analysis, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AnalysisResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), 0, response.Data.Summary.TotalItems)
	assert.Empty(suite.T(), response.Data.TopExpenses)
	assert.Equal(suite.T(), 50, response.Data.HealthScore)
}

func (suite *TestSuiteStandard) TestDatasetRisks() {
	dataset := createAnalyzedDataset(suite.T())

	recorder := test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Risks, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RiskResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assessment := response.Data
	assert.Equal(suite.T(), 2, assessment.Summary.TotalRisksFound)
	assert.Equal(suite.T(), 20, assessment.Summary.OverallRiskScore)
	assert.Equal(suite.T(), analysis.RiskLow, assessment.Summary.RiskLevel)

	if assert.Len(suite.T(), assessment.HighCostItems, 2) {
		descriptions := []string{assessment.HighCostItems[0].Description, assessment.HighCostItems[1].Description}
		assert.Contains(suite.T(), descriptions, "Employee Salaries")
		assert.Contains(suite.T(), descriptions, "Marketing Campaign")
	}
}

func (suite *TestSuiteStandard) TestDatasetRecommendations() {
	dataset := createAnalyzedDataset(suite.T())

	recorder := test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Recommendations, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RecommendationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.GreaterOrEqual(suite.T(), response.Data.HealthScore, 0)
	assert.NotEmpty(suite.T(), response.Data.Recommendations)

	// Recommendations are ordered by priority
	priorities := response.Data.Recommendations
	for i := 1; i < len(priorities); i++ {
		assert.LessOrEqual(suite.T(), priorities[i-1].Priority, priorities[i].Priority)
	}
}

func (suite *TestSuiteStandard) TestDatasetOptimizations() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})
	createTestLineItems(suite.T(), dataset.Data.ID, []v1.LineItemEditable{
		// Duplicate descriptions are consolidation candidates
		item("Software Licenses", "IT", "Technology", 2000),
		item("Software licenses", "Marketing", "Technology", 1500),
		item("Office Rent", "Operations", "Facilities", 5000),
	})

	recorder := test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Optimizations, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.OptimizationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.NotEmpty(suite.T(), response.Data.Optimizations)
	assert.True(suite.T(), response.Data.TotalPotentialSavings.IsPositive())
}

func (suite *TestSuiteStandard) TestDatasetChart() {
	dataset := createAnalyzedDataset(suite.T())

	recorder := test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Chart, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ChartResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	chart := response.Data
	if assert.Len(suite.T(), chart.Labels, 5) {
		assert.Equal(suite.T(), "HR", chart.Labels[0])
		assert.True(suite.T(), chart.Series[0].Equal(decimal.NewFromInt(27300)))
	}
	assert.Len(suite.T(), chart.Colors, 5)
}

func (suite *TestSuiteStandard) TestDatasetCompare() {
	base := createTestDataset(suite.T(), v1.DatasetEditable{Name: "FY24"})
	createTestLineItems(suite.T(), base.Data.ID, []v1.LineItemEditable{
		item("Marketing Campaign", "Marketing", "Advertising", 8000),
		item("Cloud Services", "IT", "Infrastructure", 1200),
	})

	other := createTestDataset(suite.T(), v1.DatasetEditable{Name: "FY25"})
	createTestLineItems(suite.T(), other.Data.ID, []v1.LineItemEditable{
		item("Marketing Campaign", "Marketing", "Advertising", 9600),
		item("Cloud Services", "IT", "Infrastructure", 1200),
	})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/compare?other=%s", base.Data.Links.Self, other.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ComparisonResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	comparison := response.Data
	assert.Equal(suite.T(), "FY24", comparison.BaseName)
	assert.Equal(suite.T(), "FY25", comparison.OtherName)
	assert.True(suite.T(), comparison.TotalChange.Equal(decimal.NewFromInt(1600)))

	for _, change := range comparison.DepartmentChanges {
		switch change.Department {
		case "Marketing":
			assert.Equal(suite.T(), analysis.StatusIncreased, change.Status)
			assert.InDelta(suite.T(), 20.0, change.PercentChange, 0.001)
		case "IT":
			assert.Equal(suite.T(), analysis.StatusUnchanged, change.Status)
		}
	}
}

func (suite *TestSuiteStandard) TestDatasetCompareErrors() {
	dataset := createTestDataset(suite.T(), v1.DatasetEditable{})

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"Missing other parameter", "", http.StatusBadRequest},
		{"Invalid UUID", "other=not-a-uuid", http.StatusBadRequest},
		{"Other dataset does not exist", fmt.Sprintf("other=%s", uuid.New()), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("%s/compare?%s", dataset.Data.Links.Self, tt.query), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestDatasetExport() {
	dataset := createAnalyzedDataset(suite.T())

	recorder := test.Request(suite.T(), http.MethodGet, dataset.Data.Links.Export, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	assert.Equal(suite.T(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", recorder.Header().Get("Content-Type"))
	assert.True(suite.T(), strings.HasPrefix(recorder.Header().Get("Content-Disposition"), "attachment; filename=budget_analysis_"))

	f, err := excelize.OpenReader(recorder.Body)
	if assert.NoError(suite.T(), err) {
		assert.Contains(suite.T(), f.GetSheetList(), "Budget Data")
	}
}

package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/budgetradar/backend/internal/controllers/v1"
	"github.com/budgetradar/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func createTestDataset(t *testing.T, d v1.DatasetEditable, expectedStatus ...int) v1.DatasetResponse {
	if d.Name == "" {
		d.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.DatasetEditable{d}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/datasets", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var dataset v1.DatasetCreateResponse
	test.DecodeResponse(t, &r, &dataset)

	if r.Code == http.StatusCreated {
		return dataset.Data[0]
	}

	return v1.DatasetResponse{}
}

func createTestLineItems(t *testing.T, datasetID uuid.UUID, items []v1.LineItemEditable, expectedStatus ...int) v1.LineItemCreateResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/datasets/"+datasetID.String()+"/items", items)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.LineItemCreateResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func createTestMatchRule(t *testing.T, m v1.MatchRuleEditable, expectedStatus ...int) v1.MatchRuleResponse {
	if m.Match == "" {
		m.Match = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.MatchRuleEditable{m}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/match-rules", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var matchRule v1.MatchRuleCreateResponse
	test.DecodeResponse(t, &r, &matchRule)

	if r.Code == http.StatusCreated {
		return matchRule.Data[0]
	}

	return v1.MatchRuleResponse{}
}

func item(description, department, category string, amount float64) v1.LineItemEditable {
	return v1.LineItemEditable{
		Description: description,
		Department:  department,
		Category:    category,
		Amount:      decimal.NewFromFloat(amount),
	}
}

// startupItems is a small realistic budget used by multiple tests.
func startupItems() []v1.LineItemEditable {
	return []v1.LineItemEditable{
		item("Office Rent", "Operations", "Facilities", 5000),
		item("Software Licenses", "IT", "Technology", 2000),
		item("Marketing Campaign", "Marketing", "Advertising", 8000),
		item("Employee Salaries", "HR", "Personnel", 25000),
		item("Team Lunch", "HR", "Morale", 500),
		item("Cloud Services", "IT", "Infrastructure", 1200),
		item("Office Supplies", "Operations", "Supplies", 300),
		item("Travel Expenses", "Sales", "Travel", 3500),
		item("Training & Development", "HR", "Development", 1800),
		item("Equipment Purchase", "Operations", "Assets", 4200),
	}
}

package v1

import (
	"fmt"

	"github.com/budgetradar/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// MatchRuleEditable represents all user configurable parameters
type MatchRuleEditable struct {
	Priority   uint   `json:"priority" example:"3" default:"0"`               // The priority of the match rule
	Match      string `json:"match" example:"Cloud*" default:""`              // The matching applied to the line item description. Can be a glob pattern. Multiple globs are allowed.
	Department string `json:"department" example:"IT" default:""`             // The department set on matching line items, empty to leave it unchanged
	Category   string `json:"category" example:"Infrastructure" default:""`   // The category set on matching line items, empty to leave it unchanged
}

func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		Priority:   editable.Priority,
		Match:      editable.Match,
		Department: editable.Department,
		Category:   editable.Category,
	}
}

type MatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/match-rules/95685c82-53c6-455d-b235-f49960b73b21"` // The match rule itself
}

type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := c.GetString(string(models.DBContextURL))

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			Priority:   model.Priority,
			Match:      model.Match,
			Department: model.Department,
			Category:   model.Category,
		},
		Links: MatchRuleLinks{
			Self: fmt.Sprintf("%s/v1/match-rules/%s", url, model.ID),
		},
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of match rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Data  []MatchRuleResponse `json:"data"`                                                          // List of the created match rules or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Data  *MatchRule `json:"data"`                                                          // Data for the match rule
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MatchRuleQueryFilter struct {
	Priority   uint   `form:"priority"`                   // By priority
	Match      string `form:"match" filterField:"false"`  // By match
	Department string `form:"department"`                 // By department
	Category   string `form:"category"`                   // By category
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first match rule returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of match rules to return. Defaults to 50.
}

func (f MatchRuleQueryFilter) model() models.MatchRule {
	return models.MatchRule{
		Priority:   f.Priority,
		Department: f.Department,
		Category:   f.Category,
	}
}

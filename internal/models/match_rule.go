package models

import (
	"gorm.io/gorm"
)

// MatchRule maps line item descriptions to a department and category.
//
// Rules are applied during import preview in priority order, the first
// rule whose glob matches the description wins.
type MatchRule struct {
	DefaultModel
	Priority   uint   `json:"priority" example:"1"`                            // Lower numbers are applied first
	Match      string `json:"match" example:"Cloud*" default:""`               // Glob pattern matched against the description
	Department string `json:"department" example:"IT" default:""`             // Department to set on a match
	Category   string `json:"category" example:"Infrastructure" default:""`   // Category to set on a match
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) (err error) {
	if r.Match == "" {
		return ErrMatchRuleMatchNotEmpty
	}

	return nil
}

// BeforeUpdate verifies that an update does not clear the match pattern.
// The check reads the update payload since the hook receiver still holds
// the stored values.
func (r *MatchRule) BeforeUpdate(tx *gorm.DB) (err error) {
	if !tx.Statement.Changed("Match") {
		return nil
	}

	switch dest := tx.Statement.Dest.(type) {
	case MatchRule:
		if dest.Match == "" {
			return ErrMatchRuleMatchNotEmpty
		}
	case *MatchRule:
		if dest.Match == "" {
			return ErrMatchRuleMatchNotEmpty
		}
	case map[string]any:
		if match, ok := dest["Match"].(string); ok && match == "" {
			return ErrMatchRuleMatchNotEmpty
		}
	}

	return nil
}

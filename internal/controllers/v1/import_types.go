package v1

import (
	"github.com/budgetradar/backend/internal/importer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LineItemPreview is a line item that has been parsed from an uploaded
// CSV file, but not yet saved.
type LineItemPreview struct {
	LineItem             LineItem    `json:"lineItem"`                                                     // The line item as it would be created
	DuplicateLineItemIDs []uuid.UUID `json:"duplicateLineItemIds"`                                         // IDs of existing line items with the same import hash
	MatchRuleID          uuid.UUID   `json:"matchRuleId" example:"042d101d-f1de-4403-9295-59dc0ea58677"`   // ID of the match rule that was applied, if any
}

func newLineItemPreview(c *gin.Context, preview importer.LineItemPreview) LineItemPreview {
	return LineItemPreview{
		LineItem:             newLineItem(c, preview.LineItem),
		DuplicateLineItemIDs: preview.DuplicateLineItemIDs,
		MatchRuleID:          preview.MatchRuleID,
	}
}

type ImportPreviewList struct {
	Data  []LineItemPreview `json:"data"`                                                          // List of line item previews
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

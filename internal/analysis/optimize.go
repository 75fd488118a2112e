package analysis

import (
	"fmt"
	"strings"

	"github.com/budgetradar/backend/internal/models"
	"github.com/shopspring/decimal"
)

// OptimizationPriority ranks optimization findings.
type OptimizationPriority string

const (
	PriorityHigh   OptimizationPriority = "HIGH"
	PriorityMedium OptimizationPriority = "MEDIUM"
)

// Optimization is a single cost-saving opportunity.
type Optimization struct {
	Category         string               `json:"category" example:"Vendor Management"`    // The kind of opportunity
	Recommendation   string               `json:"recommendation"`                          // What to do
	PotentialSavings decimal.Decimal      `json:"potentialSavings" example:"4875"`         // Estimated savings
	Priority         OptimizationPriority `json:"priority" example:"MEDIUM"`               // HIGH or MEDIUM
}

var (
	vendorSavings    = decimal.NewFromFloat(0.05)
	highCostSavings  = decimal.NewFromFloat(0.10)
	duplicateSavings = decimal.NewFromFloat(0.15)
)

// FindOptimizations scans the line items for cost-saving opportunities:
// vendor sprawl, high-cost items and duplicated line items. At most ten
// findings are returned.
func FindOptimizations(items []models.LineItem) []Optimization {
	optimizations := make([]Optimization, 0)
	total := Total(items)

	// Vendor consolidation: many distinct vendors suggest scattered
	// purchasing
	vendors := make(map[string]struct{})
	for _, item := range items {
		if item.Vendor != "" {
			vendors[item.Vendor] = struct{}{}
		}
	}

	if len(vendors) > 10 {
		optimizations = append(optimizations, Optimization{
			Category: "Vendor Management",
			Recommendation: fmt.Sprintf("Consider consolidating vendors. Currently working with %d different vendors.",
				len(vendors)),
			PotentialSavings: total.Mul(vendorSavings).Round(2),
			Priority:         PriorityMedium,
		})
	}

	// Each high-cost item gets its own review entry
	for _, item := range HighCostItems(items) {
		optimizations = append(optimizations, Optimization{
			Category: "High Cost Review",
			Recommendation: fmt.Sprintf("Review high-cost item: %s (%s)",
				item.Description, money(item.Amount)),
			PotentialSavings: item.Amount.Mul(highCostSavings).Round(2),
			Priority:         PriorityHigh,
		})
	}

	// Duplicate line items, compared case- and whitespace-insensitively
	counts := make(map[string]int)
	for _, item := range items {
		counts[normalizeDescription(item.Description)]++
	}

	duplicateCount := 0
	duplicateTotal := decimal.Zero
	for _, item := range items {
		if counts[normalizeDescription(item.Description)] > 1 {
			duplicateCount++
			duplicateTotal = duplicateTotal.Add(item.Amount)
		}
	}

	if duplicateCount > 0 {
		optimizations = append(optimizations, Optimization{
			Category: "Duplicate Items",
			Recommendation: fmt.Sprintf("Found %d potential duplicate line items. Review for consolidation.",
				duplicateCount),
			PotentialSavings: duplicateTotal.Mul(duplicateSavings).Round(2),
			Priority:         PriorityMedium,
		})
	}

	if len(optimizations) > 10 {
		optimizations = optimizations[:10]
	}

	return optimizations
}

func normalizeDescription(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

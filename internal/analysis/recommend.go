package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/budgetradar/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Thresholds for recommendation generation.
const (
	// A department above this share of the budget is considered dominant
	concentrationThreshold = 40.0
	// Above this share the dominance is critical
	criticalConcentration = 60.0
	// HHI above this value triggers a concentration recommendation
	highHHI = 2500.0
	// Gini coefficient above this value triggers a balance recommendation
	highGini = 0.5
)

// consolidationSavings is the estimated fraction of spending saved by
// consolidating purchases.
var consolidationSavings = decimal.NewFromFloat(0.12)

type RecommendationType string

const (
	TypeConcentration RecommendationType = "concentration"
	TypeOutlier       RecommendationType = "outlier"
	TypeBalance       RecommendationType = "balance"
	TypeOptimization  RecommendationType = "optimization"
	TypeDominance     RecommendationType = "dominance"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
)

// Metrics carries the numbers a recommendation is based on. Only the
// fields relevant for the recommendation type are set.
type Metrics struct {
	HHI                     float64  `json:"hhi,omitempty"`                     // Herfindahl-Hirschman Index
	TopDepartments          int      `json:"topDepartments,omitempty"`          // Number of departments considered "top"
	ConcentrationPercentage float64  `json:"concentrationPercentage,omitempty"` // Combined share of the top departments
	OutlierCount            int      `json:"outlierCount,omitempty"`            // Number of outlying items
	DepartmentMean          float64  `json:"departmentMean,omitempty"`          // Mean amount in the department
	Threshold               float64  `json:"threshold,omitempty"`               // Outlier threshold
	OutlierPercentage       float64  `json:"outlierPercentage,omitempty"`       // Share of the department budget in outliers
	GiniCoefficient         float64  `json:"giniCoefficient,omitempty"`         // Inequality of department totals
	TopDepartment           string   `json:"topDepartment,omitempty"`           // Department with the largest total
	TopPercentage           float64  `json:"topPercentage,omitempty"`           // Its share of the budget
	BottomHalfPercentage    float64  `json:"bottomHalfPercentage,omitempty"`    // Combined share of the bottom half of departments
	Category                string   `json:"category,omitempty"`                // Category of a consolidation opportunity
	DepartmentCount         int      `json:"departmentCount,omitempty"`         // Number of departments a category spans
	PercentageOfBudget      float64  `json:"percentageOfBudget,omitempty"`      // Share of the budget in the category
	Department              string   `json:"department,omitempty"`              // Dominant department
	Percentage              float64  `json:"percentage,omitempty"`              // Its share of the budget
	Severity                Severity `json:"severity,omitempty"`                // Dominance severity
}

// Recommendation is one prioritized, human-readable finding.
type Recommendation struct {
	ID               uuid.UUID          `json:"id" example:"5b8a97e1-179e-4b00-9df7-6e48b0c1fd0c"` // Unique ID for this recommendation
	Type             RecommendationType `json:"type" example:"concentration"`                      // Which analysis pass produced the recommendation
	Priority         int                `json:"priority" example:"1"`                              // 1 is most urgent
	Title            string             `json:"title"`                                             // Short headline
	Insight          string             `json:"insight"`                                           // The finding, with numbers
	Description      string             `json:"description"`                                       // Why the finding matters
	Action           string             `json:"action"`                                            // What to do about it
	ImpactScore      float64            `json:"impactScore" example:"74.5"`                        // 0-100, used for ordering within a priority
	EstimatedSavings *decimal.Decimal   `json:"estimatedSavings" example:"1530.40"`                // Estimated savings, nil when not quantifiable
	AffectedItems    []models.LineItem  `json:"affectedItems"`                                     // The line items the recommendation refers to
	Metrics          Metrics            `json:"metrics"`                                           // The numbers behind the finding
}

// Recommend runs all recommendation passes over the line items and
// returns the findings sorted by priority ascending, then impact score
// descending.
func Recommend(items []models.LineItem) []Recommendation {
	departments := ByDepartment(items)
	categories := ByCategory(items)

	recommendations := make([]Recommendation, 0)
	recommendations = append(recommendations, concentrationRecommendations(items, departments)...)
	recommendations = append(recommendations, outlierRecommendations(items)...)
	recommendations = append(recommendations, balanceRecommendations(departments)...)
	recommendations = append(recommendations, optimizationRecommendations(items, categories)...)
	recommendations = append(recommendations, dominanceRecommendations(departments)...)

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Priority != recommendations[j].Priority {
			return recommendations[i].Priority < recommendations[j].Priority
		}
		return recommendations[i].ImpactScore > recommendations[j].ImpactScore
	})

	return recommendations
}

// concentrationRecommendations flags budgets where the HHI over the
// department shares shows heavy concentration.
func concentrationRecommendations(items []models.LineItem, departments []DepartmentStats) []Recommendation {
	if len(departments) == 0 {
		return nil
	}

	hhi := HHI(departments)
	if hhi <= highHHI {
		return nil
	}

	// departments is sorted by total descending already
	top := departments
	if len(top) > 3 {
		top = top[:3]
	}

	topTotal := decimal.Zero
	names := make([]string, 0, len(top))
	for _, d := range top {
		topTotal = topTotal.Add(d.Total)
		names = append(names, displayName(d.Department))
	}
	topPct := share(topTotal, Total(items))

	priority := 2
	if hhi > 4000 {
		priority = 1
	}

	affected := make([]models.LineItem, 0)
	for _, item := range items {
		for _, d := range top {
			if item.Department == d.Department {
				affected = append(affected, item)
				break
			}
		}
	}

	return []Recommendation{{
		ID:       uuid.New(),
		Type:     TypeConcentration,
		Priority: priority,
		Title:    fmt.Sprintf("Budget Concentrated in %d Departments", len(top)),
		Insight: fmt.Sprintf("%d departments account for %.1f%% of total budget (HHI: %.0f)",
			len(top), topPct, hhi),
		Description: "Your budget is heavily concentrated in a few departments. " +
			"High concentration can create risk if priorities shift or if these departments need budget cuts.",
		Action: fmt.Sprintf("Review spending in %s for potential redistribution opportunities to improve budget diversity.",
			strings.Join(names, ", ")),
		ImpactScore:   math.Min(100, hhi/40),
		AffectedItems: affected,
		Metrics: Metrics{
			HHI:                     hhi,
			TopDepartments:          len(top),
			ConcentrationPercentage: topPct,
		},
	}}
}

// outlierRecommendations flags departments with at least two items far
// above their own average.
func outlierRecommendations(items []models.LineItem) []Recommendation {
	recommendations := make([]Recommendation, 0)

	for _, outliers := range Outliers(items) {
		// A single outlier is not significant enough to act on
		if len(outliers.Items) < 2 {
			continue
		}

		outlierTotal := Total(outliers.Items)

		departmentTotal := decimal.Zero
		for _, item := range items {
			if item.Department == outliers.Department {
				departmentTotal = departmentTotal.Add(item.Amount)
			}
		}
		outlierPct := share(outlierTotal, departmentTotal)

		savings := outlierTotal.Mul(consolidationSavings).Round(2)

		priority := 3
		if len(outliers.Items) >= 3 {
			priority = 2
		}

		name := displayName(outliers.Department)
		recommendations = append(recommendations, Recommendation{
			ID:       uuid.New(),
			Type:     TypeOutlier,
			Priority: priority,
			Title:    fmt.Sprintf("%d Anomalous Expenses in %s", len(outliers.Items), name),
			Insight: fmt.Sprintf("%s has %d items that are %.0fx above the department average (%s)",
				name, len(outliers.Items), outlierMultiplier, money(decimal.NewFromFloat(outliers.Mean))),
			Description: fmt.Sprintf("Multiple high-cost items detected that deviate significantly from typical "+
				"spending patterns in this department (%.1f%% of department budget).", outlierPct),
			Action: fmt.Sprintf("Investigate these %d items for potential consolidation, renegotiation, "+
				"or one-time vs recurring expense classification.", len(outliers.Items)),
			ImpactScore:      math.Min(100, outlierPct*0.8+float64(len(outliers.Items))*5),
			EstimatedSavings: &savings,
			AffectedItems:    outliers.Items,
			Metrics: Metrics{
				OutlierCount:      len(outliers.Items),
				DepartmentMean:    outliers.Mean,
				Threshold:         outliers.Threshold,
				OutlierPercentage: outlierPct,
			},
		})
	}

	return recommendations
}

// balanceRecommendations flags unequal distributions of the budget over
// the departments.
func balanceRecommendations(departments []DepartmentStats) []Recommendation {
	if len(departments) < 2 {
		return nil
	}

	gini := Gini(departments)
	if gini <= highGini {
		return nil
	}

	// departments is sorted by total descending
	top := departments[0]
	bottomHalf := departments[len(departments)/2:]

	var bottomPct float64
	for _, d := range bottomHalf {
		bottomPct += d.Percentage
	}

	priority := 3
	if gini > 0.65 {
		priority = 2
	}

	name := displayName(top.Department)
	return []Recommendation{{
		ID:       uuid.New(),
		Type:     TypeBalance,
		Priority: priority,
		Title:    "Significant Budget Imbalance Detected",
		Insight: fmt.Sprintf("Budget distribution shows high inequality (Gini: %.2f). "+
			"Top department (%s) has %.1f%% while bottom %d departments have %.1f%% combined.",
			gini, name, top.Percentage, len(bottomHalf), bottomPct),
		Description: "Unbalanced budget distribution can indicate over-investment in some areas and " +
			"under-investment in others, potentially limiting organizational flexibility.",
		Action: fmt.Sprintf("Review whether %s's %.1f%% allocation aligns with strategic priorities. "+
			"Consider if resources could be reallocated to support growth in other areas.",
			name, top.Percentage),
		ImpactScore:   gini * 100,
		AffectedItems: []models.LineItem{},
		Metrics: Metrics{
			GiniCoefficient:      gini,
			TopDepartment:        top.Department,
			TopPercentage:        top.Percentage,
			BottomHalfPercentage: bottomPct,
		},
	}}
}

// optimizationRecommendations finds categories bought separately by
// several departments where consolidated purchasing could save money.
// Small datasets are skipped, the signal is not meaningful below ten
// items.
func optimizationRecommendations(items []models.LineItem, categories []CategoryStats) []Recommendation {
	if len(categories) == 0 || len(items) < 10 {
		return nil
	}

	total := Total(items)
	recommendations := make([]Recommendation, 0)

	for _, category := range categories {
		group := make([]models.LineItem, 0, category.Count)
		departments := make([]string, 0)
		for _, item := range items {
			if item.Category != category.Category {
				continue
			}

			group = append(group, item)
			if !slices.Contains(departments, item.Department) {
				departments = append(departments, item.Department)
			}
		}

		pct := share(category.Total, total)
		if len(departments) < 2 || pct <= 2.0 {
			continue
		}

		savings := category.Total.Mul(consolidationSavings).Round(2)

		coordinate := departments
		if len(coordinate) > 3 {
			coordinate = coordinate[:3]
		}
		names := make([]string, 0, len(coordinate))
		for _, d := range coordinate {
			names = append(names, displayName(d))
		}

		name := displayName(category.Category)
		recommendations = append(recommendations, Recommendation{
			ID:       uuid.New(),
			Type:     TypeOptimization,
			Priority: 3,
			Title:    fmt.Sprintf("%s Consolidation Opportunity", name),
			Insight: fmt.Sprintf("%s spending is spread across %d departments, totaling %s (%.1f%% of budget)",
				name, len(departments), money(category.Total), pct),
			Description: fmt.Sprintf("Similar expenses in the %s category are being purchased separately by "+
				"multiple departments. Consolidating these purchases could yield volume discounts or better "+
				"negotiating leverage.", name),
			Action: fmt.Sprintf("Review %s expenses across departments for potential centralized purchasing "+
				"or enterprise agreements. Coordinate with %s.", name, strings.Join(names, ", ")),
			ImpactScore:      pct * 2,
			EstimatedSavings: &savings,
			AffectedItems:    group,
			Metrics: Metrics{
				Category:           category.Category,
				DepartmentCount:    len(departments),
				PercentageOfBudget: pct,
			},
		})
	}

	return recommendations
}

// dominanceRecommendations flags single departments holding a
// disproportionate share of the budget.
func dominanceRecommendations(departments []DepartmentStats) []Recommendation {
	recommendations := make([]Recommendation, 0)

	for _, department := range departments {
		if department.Percentage <= concentrationThreshold {
			continue
		}

		var priority int
		var severity Severity
		switch {
		case department.Percentage > criticalConcentration:
			priority, severity = 1, SeverityCritical
		case department.Percentage > 50:
			priority, severity = 2, SeverityHigh
		default:
			priority, severity = 3, SeverityModerate
		}

		name := displayName(department.Department)
		recommendations = append(recommendations, Recommendation{
			ID:       uuid.New(),
			Type:     TypeDominance,
			Priority: priority,
			Title:    fmt.Sprintf("%s Budget Concentration in %s", titleCase(string(severity)), name),
			Insight: fmt.Sprintf("%s department accounts for %.1f%% (%s) of total budget",
				name, department.Percentage, money(department.Total)),
			Description: fmt.Sprintf("A single department consuming %.1f%% of the budget creates %s risk. "+
				"Budget cuts or changes to this department would have outsized impact on the organization.",
				department.Percentage, severity),
			Action: fmt.Sprintf("Review %s expenses for optimization opportunities. Consider whether this "+
				"allocation reflects strategic priorities or if there are opportunities to redistribute spending.",
				name),
			ImpactScore:   math.Min(100, department.Percentage*1.2),
			AffectedItems: []models.LineItem{},
			Metrics: Metrics{
				Department: department.Department,
				Percentage: department.Percentage,
				Severity:   severity,
			},
		})
	}

	return recommendations
}

// HealthScore rates the overall shape of a budget from 0 (unhealthy) to
// 100 (healthy). An empty dataset scores 50.
func HealthScore(items []models.LineItem) int {
	if len(items) == 0 {
		return 50
	}

	score := 100.0

	total := Total(items)
	departments := ByDepartment(items)

	// High-cost concentration costs up to 20 points
	if total.IsPositive() {
		highCostPct := share(Total(HighCostItems(items)), total)
		score -= math.Min(20, highCostPct*0.5)
	}

	// Department concentration costs up to 25 points
	hhi := HHI(departments)
	if hhi > highHHI {
		score -= math.Min(25, (hhi-highHHI)/100)
	}

	// Inequality costs up to 25 points
	if len(departments) >= 2 {
		score -= Gini(departments) * 25
	}

	// Very few items mean a lack of detail, very many suggest the budget
	// needs consolidation
	if len(items) < 5 {
		score -= 10
	} else if len(items) > 100 {
		score -= 5
	}

	// Category diversity earns up to 10 bonus points
	categories := ByCategory(items)
	if len(categories) >= 5 {
		score += math.Min(10, float64(len(categories)))
	}

	return int(math.Max(0, math.Min(100, score)))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

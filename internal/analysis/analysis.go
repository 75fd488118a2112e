// Package analysis computes all derived views of a dataset: summary
// statistics, department and category breakdowns, risk flags and the
// recommendation list.
//
// Every function is a stateless pass over the line items of one dataset,
// the package holds no state of its own.
package analysis

import (
	"fmt"
	"sort"

	"github.com/budgetradar/backend/internal/models"
	"github.com/shopspring/decimal"
)

// highCostShare is the fraction of the total budget above which a single
// line item is flagged as a high-cost item.
var highCostShare = decimal.NewFromFloat(0.1)

// Summary contains the descriptive statistics for a dataset.
type Summary struct {
	TotalItems    int             `json:"totalItems" example:"12"`                       // Number of line items
	TotalAmount   decimal.Decimal `json:"totalAmount" example:"97500"`                   // Sum of all amounts
	AverageAmount decimal.Decimal `json:"averageAmount" example:"8125"`                  // Mean amount per line item
	MinAmount     decimal.Decimal `json:"minAmount" example:"800"`                       // Smallest amount
	MaxAmount     decimal.Decimal `json:"maxAmount" example:"45000"`                     // Largest amount
	Departments   int             `json:"departments" example:"7"`                       // Number of distinct departments
	Categories    int             `json:"categories" example:"11"`                       // Number of distinct categories
}

// DepartmentStats is the aggregation of all line items of one department.
type DepartmentStats struct {
	Department string          `json:"department" example:"Operations"` // Name of the department, empty when items have none
	Count      int             `json:"count" example:"3"`               // Number of line items
	Total      decimal.Decimal `json:"total" example:"7300"`            // Sum of the amounts
	Average    decimal.Decimal `json:"average" example:"2433.33"`       // Mean amount
	Min        decimal.Decimal `json:"min" example:"300"`               // Smallest amount
	Max        decimal.Decimal `json:"max" example:"5000"`              // Largest amount
	Percentage float64         `json:"percentage" example:"7.49"`       // Share of the dataset total in percent, rounded to two decimals
}

// CategoryStats is the aggregation of all line items of one category.
type CategoryStats struct {
	Category string          `json:"category" example:"Facilities"` // Name of the category, empty when items have none
	Count    int             `json:"count" example:"2"`             // Number of line items
	Total    decimal.Decimal `json:"total" example:"5300"`          // Sum of the amounts
	Average  decimal.Decimal `json:"average" example:"2650"`        // Mean amount
}

// Total returns the sum of all line item amounts.
func Total(items []models.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}

	return sum
}

// Summarize computes the summary statistics for the line items.
func Summarize(items []models.LineItem) Summary {
	summary := Summary{
		TotalItems: len(items),
	}

	if len(items) == 0 {
		return summary
	}

	departments := make(map[string]struct{})
	categories := make(map[string]struct{})

	summary.MinAmount = items[0].Amount
	summary.MaxAmount = items[0].Amount

	for _, item := range items {
		summary.TotalAmount = summary.TotalAmount.Add(item.Amount)

		if item.Amount.LessThan(summary.MinAmount) {
			summary.MinAmount = item.Amount
		}
		if item.Amount.GreaterThan(summary.MaxAmount) {
			summary.MaxAmount = item.Amount
		}

		departments[item.Department] = struct{}{}
		categories[item.Category] = struct{}{}
	}

	summary.AverageAmount = summary.TotalAmount.Div(decimal.NewFromInt(int64(len(items)))).Round(2)
	summary.Departments = len(departments)
	summary.Categories = len(categories)

	return summary
}

// ByDepartment aggregates the line items per department, sorted by total
// descending. The percentage share is relative to the dataset total and
// zero when the total is not positive.
func ByDepartment(items []models.LineItem) []DepartmentStats {
	groups := make(map[string][]models.LineItem)
	for _, item := range items {
		groups[item.Department] = append(groups[item.Department], item)
	}

	total := Total(items)

	stats := make([]DepartmentStats, 0, len(groups))
	for department, group := range groups {
		s := DepartmentStats{
			Department: department,
			Count:      len(group),
			Min:        group[0].Amount,
			Max:        group[0].Amount,
		}

		for _, item := range group {
			s.Total = s.Total.Add(item.Amount)

			if item.Amount.LessThan(s.Min) {
				s.Min = item.Amount
			}
			if item.Amount.GreaterThan(s.Max) {
				s.Max = item.Amount
			}
		}

		s.Average = s.Total.Div(decimal.NewFromInt(int64(len(group)))).Round(2)
		s.Percentage = share(s.Total, total)

		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Total.Equal(stats[j].Total) {
			return stats[i].Total.GreaterThan(stats[j].Total)
		}
		return stats[i].Department < stats[j].Department
	})

	return stats
}

// ByCategory aggregates the line items per category, sorted by total
// descending.
func ByCategory(items []models.LineItem) []CategoryStats {
	groups := make(map[string][]models.LineItem)
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item)
	}

	stats := make([]CategoryStats, 0, len(groups))
	for category, group := range groups {
		s := CategoryStats{
			Category: category,
			Count:    len(group),
		}

		for _, item := range group {
			s.Total = s.Total.Add(item.Amount)
		}

		s.Average = s.Total.Div(decimal.NewFromInt(int64(len(group)))).Round(2)

		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Total.Equal(stats[j].Total) {
			return stats[i].Total.GreaterThan(stats[j].Total)
		}
		return stats[i].Category < stats[j].Category
	})

	return stats
}

// TopExpenses returns the n largest line items by amount.
func TopExpenses(items []models.LineItem, n int) []models.LineItem {
	sorted := make([]models.LineItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	return sorted[:n]
}

// HighCostItems returns all line items whose amount exceeds 10% of the
// dataset total.
func HighCostItems(items []models.LineItem) []models.LineItem {
	threshold := Total(items).Mul(highCostShare)

	// An empty list, not null, when nothing exceeds the threshold
	high := make([]models.LineItem, 0)
	for _, item := range items {
		if item.Amount.GreaterThan(threshold) {
			high = append(high, item)
		}
	}

	return high
}

// Insights returns human-readable findings about the dataset.
func Insights(items []models.LineItem) []string {
	insights := make([]string, 0)

	total := Total(items)
	insights = append(insights,
		"Total budget: "+money(total),
		fmt.Sprintf("Number of line items: %d", len(items)),
	)

	departments := ByDepartment(items)
	if len(departments) > 0 {
		top := departments[0]
		insights = append(insights, fmt.Sprintf(
			"Highest spending department: %s (%s, %.1f%%)",
			displayName(top.Department), money(top.Total), top.Percentage))
	}

	categories := ByCategory(items)
	if len(categories) > 0 {
		top := categories[0]
		insights = append(insights, fmt.Sprintf(
			"Highest spending category: %s (%s)",
			displayName(top.Category), money(top.Total)))
	}

	if len(items) > 0 {
		largest := TopExpenses(items, 1)[0]
		insights = append(insights, fmt.Sprintf(
			"Largest single expense: %s (%s)",
			largest.Description, money(largest.Amount)))
	}

	return insights
}

// share returns the percentage share of part in total, rounded to two
// decimals. A total that is not positive yields zero.
func share(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}

	pct, _ := part.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

// displayName substitutes a placeholder for empty group names.
func displayName(name string) string {
	if name == "" {
		return "(unassigned)"
	}

	return name
}

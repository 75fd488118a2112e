package analysis

import (
	"fmt"
	"sort"

	"github.com/budgetradar/backend/internal/models"
	"github.com/shopspring/decimal"
)

// ChangeStatus describes the direction of a department change.
type ChangeStatus string

const (
	StatusIncreased ChangeStatus = "increased"
	StatusDecreased ChangeStatus = "decreased"
	StatusUnchanged ChangeStatus = "unchanged"
)

// DepartmentChange is the difference of one department between two
// datasets.
type DepartmentChange struct {
	Department    string          `json:"department" example:"Marketing"` // Name of the department
	BaseAmount    decimal.Decimal `json:"baseAmount" example:"8000"`      // Total in the base dataset
	OtherAmount   decimal.Decimal `json:"otherAmount" example:"9600"`     // Total in the compared dataset
	Difference    decimal.Decimal `json:"difference" example:"1600"`      // OtherAmount - BaseAmount
	PercentChange float64         `json:"percentChange" example:"20"`     // Difference relative to the base, zero when the base is zero
	Status        ChangeStatus    `json:"status" example:"increased"`     // increased, decreased or unchanged
}

// Comparison is the result of comparing two datasets.
type Comparison struct {
	BaseName          string             `json:"baseName" example:"FY24"`      // Name of the base dataset
	OtherName         string             `json:"otherName" example:"FY25"`     // Name of the compared dataset
	BaseTotal         decimal.Decimal    `json:"baseTotal" example:"97500"`    // Total of the base dataset
	OtherTotal        decimal.Decimal    `json:"otherTotal" example:"103000"`  // Total of the compared dataset
	TotalChange       decimal.Decimal    `json:"totalChange" example:"5500"`   // OtherTotal - BaseTotal
	PercentChange     float64            `json:"percentChange" example:"5.64"` // TotalChange relative to the base
	DepartmentChanges []DepartmentChange `json:"departmentChanges"`            // Per-department differences
	Insights          []string           `json:"insights"`                     // Human-readable findings
}

// Compare computes the differences between two datasets, department by
// department.
func Compare(baseName string, base []models.LineItem, otherName string, other []models.LineItem) Comparison {
	baseTotal := Total(base)
	otherTotal := Total(other)
	totalChange := otherTotal.Sub(baseTotal)

	comparison := Comparison{
		BaseName:      baseName,
		OtherName:     otherName,
		BaseTotal:     baseTotal,
		OtherTotal:    otherTotal,
		TotalChange:   totalChange,
		PercentChange: percentChange(totalChange, baseTotal),
	}

	baseByDepartment := departmentTotals(base)
	otherByDepartment := departmentTotals(other)

	departments := make([]string, 0)
	for name := range baseByDepartment {
		departments = append(departments, name)
	}
	for name := range otherByDepartment {
		if _, ok := baseByDepartment[name]; !ok {
			departments = append(departments, name)
		}
	}
	sort.Strings(departments)

	comparison.DepartmentChanges = make([]DepartmentChange, 0, len(departments))
	for _, name := range departments {
		baseAmount := baseByDepartment[name]
		otherAmount := otherByDepartment[name]
		difference := otherAmount.Sub(baseAmount)

		comparison.DepartmentChanges = append(comparison.DepartmentChanges, DepartmentChange{
			Department:    name,
			BaseAmount:    baseAmount,
			OtherAmount:   otherAmount,
			Difference:    difference,
			PercentChange: percentChange(difference, baseAmount),
			Status:        changeStatus(difference),
		})
	}

	comparison.Insights = make([]string, 0)
	if totalChange.IsPositive() {
		comparison.Insights = append(comparison.Insights,
			fmt.Sprintf("Budget increased by %s", money(totalChange)))
	} else if totalChange.IsNegative() {
		comparison.Insights = append(comparison.Insights,
			fmt.Sprintf("Budget decreased by %s", money(totalChange.Abs())))
	}

	return comparison
}

func departmentTotals(items []models.LineItem) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, item := range items {
		totals[item.Department] = totals[item.Department].Add(item.Amount)
	}

	return totals
}

// percentChange returns the difference relative to the base in percent.
// A zero base yields zero instead of a division by zero.
func percentChange(difference, base decimal.Decimal) float64 {
	if base.IsZero() {
		return 0
	}

	pct, _ := difference.Div(base).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

func changeStatus(difference decimal.Decimal) ChangeStatus {
	switch {
	case difference.IsPositive():
		return StatusIncreased
	case difference.IsNegative():
		return StatusDecreased
	default:
		return StatusUnchanged
	}
}

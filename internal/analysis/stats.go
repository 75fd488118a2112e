package analysis

import (
	"math"
	"sort"

	"github.com/budgetradar/backend/internal/models"
	"github.com/shopspring/decimal"
)

// HHI returns the Herfindahl-Hirschman Index over the department
// percentage shares. The result ranges from 0 to 10000, higher values
// mean a more concentrated budget.
func HHI(departments []DepartmentStats) float64 {
	var hhi float64
	for _, d := range departments {
		hhi += d.Percentage * d.Percentage
	}

	return hhi
}

// Gini returns the Gini coefficient over the department totals, a value
// between 0 (all departments equal) and 1 (all spending in one
// department). Returns 0 when there are no departments or the totals sum
// to zero.
func Gini(departments []DepartmentStats) float64 {
	values := make([]float64, 0, len(departments))
	var sum float64
	for _, d := range departments {
		v := d.Total.InexactFloat64()
		values = append(values, v)
		sum += v
	}

	n := len(values)
	if n == 0 || sum == 0 {
		return 0
	}

	sort.Float64s(values)

	// Standard index formula over the sorted values:
	// (2 * Σ i*v_i) / (n * Σ v_i) - (n+1)/n
	var weighted float64
	for i, v := range values {
		weighted += float64(i+1) * v
	}

	gini := (2*weighted)/(float64(n)*sum) - float64(n+1)/float64(n)

	return math.Max(0, math.Min(1, gini))
}

// meanStdDev returns the mean and the sample standard deviation of the
// line item amounts.
func meanStdDev(items []models.LineItem) (float64, float64) {
	if len(items) == 0 {
		return 0, 0
	}

	var sum float64
	for _, item := range items {
		sum += item.Amount.InexactFloat64()
	}
	mean := sum / float64(len(items))

	if len(items) < 2 {
		return mean, 0
	}

	var squares float64
	for _, item := range items {
		d := item.Amount.InexactFloat64() - mean
		squares += d * d
	}

	return mean, math.Sqrt(squares / float64(len(items)-1))
}

// outlierMultiplier is the number of standard deviations above the
// department mean at which a line item counts as an outlier.
const outlierMultiplier = 2.0

// DepartmentOutliers holds the statistical outliers of one department.
type DepartmentOutliers struct {
	Department string            `json:"department" example:"Production"` // The department the outliers belong to
	Mean       float64           `json:"mean" example:"10400.55"`         // Mean amount of the department
	Threshold  float64           `json:"threshold" example:"25010.10"`    // Amounts above this are outliers
	Items      []models.LineItem `json:"items"`                           // The outlying line items
}

// Outliers detects statistical outliers per department. Departments with
// fewer than three line items or without variance are skipped since no
// meaningful deviation can be computed for them.
func Outliers(items []models.LineItem) []DepartmentOutliers {
	outliers := make([]DepartmentOutliers, 0)

	for _, department := range ByDepartment(items) {
		group := make([]models.LineItem, 0, department.Count)
		for _, item := range items {
			if item.Department == department.Department {
				group = append(group, item)
			}
		}

		if len(group) < 3 {
			continue
		}

		mean, std := meanStdDev(group)
		if std == 0 {
			continue
		}

		threshold := mean + outlierMultiplier*std
		thresholdDecimal := decimal.NewFromFloat(threshold)

		flagged := make([]models.LineItem, 0)
		for _, item := range group {
			if item.Amount.GreaterThan(thresholdDecimal) {
				flagged = append(flagged, item)
			}
		}

		if len(flagged) == 0 {
			continue
		}

		outliers = append(outliers, DepartmentOutliers{
			Department: department.Department,
			Mean:       mean,
			Threshold:  threshold,
			Items:      flagged,
		})
	}

	return outliers
}

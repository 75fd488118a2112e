package analysis

import (
	"github.com/budgetradar/backend/internal/models"
	"github.com/shopspring/decimal"
)

// chartColors is the palette the department chart cycles through.
var chartColors = []string{"#3498db", "#2ecc71", "#e74c3c", "#f39c12"}

// ChartData is a ready-to-plot series for one dataset, labels and values
// in matching order.
type ChartData struct {
	Labels []string          `json:"labels" example:"HR,Marketing,Operations"` // Department names, largest first
	Series []decimal.Decimal `json:"series" example:"45000,12000,7300"`        // Department totals
	Colors []string          `json:"colors" example:"#3498db,#2ecc71"`         // Display colors, cycled over the palette
}

// DepartmentChart prepares the department totals for rendering, sorted by
// total descending.
func DepartmentChart(items []models.LineItem) ChartData {
	departments := ByDepartment(items)

	chart := ChartData{
		Labels: make([]string, 0, len(departments)),
		Series: make([]decimal.Decimal, 0, len(departments)),
		Colors: make([]string, 0, len(departments)),
	}

	for i, department := range departments {
		chart.Labels = append(chart.Labels, displayName(department.Department))
		chart.Series = append(chart.Series, department.Total)
		chart.Colors = append(chart.Colors, chartColors[i%len(chartColors)])
	}

	return chart
}

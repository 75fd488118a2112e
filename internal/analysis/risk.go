package analysis

import (
	"github.com/budgetradar/backend/internal/models"
	"github.com/shopspring/decimal"
)

// RiskLevel classifies the overall risk score.
type RiskLevel string

const (
	RiskHigh    RiskLevel = "HIGH"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskLow     RiskLevel = "LOW"
	RiskVeryLow RiskLevel = "VERY_LOW"
)

// Risk is a single flagged line item.
type Risk struct {
	Description       string          `json:"description" example:"Employee Salaries"` // Description of the flagged item
	Amount            decimal.Decimal `json:"amount" example:"45000"`                  // Amount of the flagged item
	PercentageOfTotal float64         `json:"percentageOfTotal" example:"46.15"`       // Share of the dataset total in percent
	Department        string          `json:"department" example:"HR"`                 // Department of the flagged item
}

// RiskSummary aggregates all risk findings into a single score.
type RiskSummary struct {
	OverallRiskScore int       `json:"overallRiskScore" example:"30"` // 0-100, ten points per finding
	RiskLevel        RiskLevel `json:"riskLevel" example:"LOW"`       // Classification of the score
	TotalRisksFound  int       `json:"totalRisksFound" example:"3"`   // Number of findings across all checks
}

// RiskAssessment is the result of all risk checks for a dataset.
type RiskAssessment struct {
	Summary       RiskSummary `json:"summary"`       // Aggregated score and level
	HighCostItems []Risk      `json:"highCostItems"` // Items above 10% of the dataset total
}

// AssessRisks runs all risk checks over the line items.
func AssessRisks(items []models.LineItem) RiskAssessment {
	total := Total(items)

	highCost := make([]Risk, 0)
	for _, item := range HighCostItems(items) {
		highCost = append(highCost, Risk{
			Description:       item.Description,
			Amount:            item.Amount,
			PercentageOfTotal: share(item.Amount, total),
			Department:        item.Department,
		})
	}

	score := overallRiskScore(len(highCost))

	return RiskAssessment{
		Summary: RiskSummary{
			OverallRiskScore: score,
			RiskLevel:        riskLevel(score),
			TotalRisksFound:  len(highCost),
		},
		HighCostItems: highCost,
	}
}

// overallRiskScore scores ten points per finding, capped at 100.
func overallRiskScore(findings int) int {
	score := findings * 10
	if score > 100 {
		return 100
	}

	return score
}

func riskLevel(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	case score >= 20:
		return RiskLow
	default:
		return RiskVeryLow
	}
}

// Package report renders datasets and their analysis into downloadable
// files.
package report

import (
	"fmt"
	"io"

	"github.com/budgetradar/backend/internal/analysis"
	"github.com/budgetradar/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetData = "Budget Data"
const sheetDepartments = "Departments"
const sheetRisks = "Risks"
const sheetOptimizations = "Optimizations"

// WriteExcel renders the dataset with its analysis into an xlsx workbook
// and writes it to w.
func WriteExcel(w io.Writer, dataset models.Dataset, items []models.LineItem) error {
	f := excelize.NewFile()
	defer f.Close()

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 16, Bold: true}})
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summary := analysis.Summarize(items)

	if err := f.SetSheetName("Sheet1", sheetData); err != nil {
		return err
	}

	f.SetCellValue(sheetData, "A1", fmt.Sprintf("Budget Analysis - %s", dataset.Name))
	f.SetCellStyle(sheetData, "A1", "A1", titleStyle)
	f.SetCellValue(sheetData, "A3", fmt.Sprintf("Total Budget: $%s", summary.TotalAmount.StringFixed(2)))
	f.SetCellValue(sheetData, "A4", fmt.Sprintf("Line Items: %d", summary.TotalItems))

	headers := []string{"Description", "Department", "Category", "Vendor", "Amount"}
	const startRow = 6
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, startRow)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetData, cell, header)
		f.SetCellStyle(sheetData, cell, cell, headerStyle)
	}

	for i, item := range items {
		row := startRow + 1 + i
		f.SetCellValue(sheetData, fmt.Sprintf("A%d", row), item.Description)
		f.SetCellValue(sheetData, fmt.Sprintf("B%d", row), item.Department)
		f.SetCellValue(sheetData, fmt.Sprintf("C%d", row), item.Category)
		f.SetCellValue(sheetData, fmt.Sprintf("D%d", row), item.Vendor)
		f.SetCellValue(sheetData, fmt.Sprintf("E%d", row), item.Amount.InexactFloat64())
	}

	if err := writeDepartments(f, headerStyle, items); err != nil {
		return err
	}

	if err := writeRisks(f, headerStyle, items); err != nil {
		return err
	}

	if err := writeOptimizations(f, headerStyle, items); err != nil {
		return err
	}

	return f.Write(w)
}

func writeDepartments(f *excelize.File, headerStyle int, items []models.LineItem) error {
	if _, err := f.NewSheet(sheetDepartments); err != nil {
		return err
	}

	for i, header := range []string{"Department", "Total", "Percentage", "Items"} {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetDepartments, cell, header)
		f.SetCellStyle(sheetDepartments, cell, cell, headerStyle)
	}

	for i, dept := range analysis.ByDepartment(items) {
		row := i + 2
		f.SetCellValue(sheetDepartments, fmt.Sprintf("A%d", row), dept.Department)
		f.SetCellValue(sheetDepartments, fmt.Sprintf("B%d", row), dept.Total.InexactFloat64())
		f.SetCellValue(sheetDepartments, fmt.Sprintf("C%d", row), dept.Percentage)
		f.SetCellValue(sheetDepartments, fmt.Sprintf("D%d", row), dept.Count)
	}

	return nil
}

func writeRisks(f *excelize.File, headerStyle int, items []models.LineItem) error {
	if _, err := f.NewSheet(sheetRisks); err != nil {
		return err
	}

	assessment := analysis.AssessRisks(items)

	f.SetCellValue(sheetRisks, "A1", fmt.Sprintf("Risk Level: %s", assessment.Summary.RiskLevel))
	f.SetCellStyle(sheetRisks, "A1", "A1", headerStyle)
	f.SetCellValue(sheetRisks, "A2", fmt.Sprintf("Risk Score: %d", assessment.Summary.OverallRiskScore))

	for i, header := range []string{"Description", "Department", "Amount", "% of Total"} {
		cell, err := excelize.CoordinatesToCellName(i+1, 4)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetRisks, cell, header)
		f.SetCellStyle(sheetRisks, cell, cell, headerStyle)
	}

	for i, risk := range assessment.HighCostItems {
		row := i + 5
		f.SetCellValue(sheetRisks, fmt.Sprintf("A%d", row), risk.Description)
		f.SetCellValue(sheetRisks, fmt.Sprintf("B%d", row), risk.Department)
		f.SetCellValue(sheetRisks, fmt.Sprintf("C%d", row), risk.Amount.InexactFloat64())
		f.SetCellValue(sheetRisks, fmt.Sprintf("D%d", row), risk.PercentageOfTotal)
	}

	return nil
}

func writeOptimizations(f *excelize.File, headerStyle int, items []models.LineItem) error {
	if _, err := f.NewSheet(sheetOptimizations); err != nil {
		return err
	}

	for i, header := range []string{"Category", "Recommendation", "Potential Savings", "Priority"} {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetOptimizations, cell, header)
		f.SetCellStyle(sheetOptimizations, cell, cell, headerStyle)
	}

	for i, opt := range analysis.FindOptimizations(items) {
		row := i + 2
		f.SetCellValue(sheetOptimizations, fmt.Sprintf("A%d", row), opt.Category)
		f.SetCellValue(sheetOptimizations, fmt.Sprintf("B%d", row), opt.Recommendation)
		f.SetCellValue(sheetOptimizations, fmt.Sprintf("C%d", row), opt.PotentialSavings.InexactFloat64())
		f.SetCellValue(sheetOptimizations, fmt.Sprintf("D%d", row), string(opt.Priority))
	}

	return nil
}

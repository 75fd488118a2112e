// Package importer parses uploaded budget CSV files into line items.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/budgetradar/backend/internal/importer/helpers"
	"github.com/budgetradar/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The columns recognized in the header row. Description and Amount are
// required, the others are optional.
const (
	columnDescription = "description"
	columnDepartment  = "department"
	columnCategory    = "category"
	columnVendor      = "vendor"
	columnAmount      = "amount"
)

var (
	ErrNoHeader            = errors.New("the CSV file must have a header row")
	ErrNoAmountColumn      = errors.New("the CSV file must have an \"Amount\" column")
	ErrNoDescriptionColumn = errors.New("the CSV file must have a \"Description\" column")
)

// LineItemPreview is used to preview line items that will be imported to allow for editing.
type LineItemPreview struct {
	LineItem             models.LineItem `json:"lineItem"`
	DuplicateLineItemIDs []uuid.UUID     `json:"duplicateLineItemIds"`                                       // IDs of already imported line items this line duplicates
	MatchRuleID          uuid.UUID       `json:"matchRuleId" example:"042d101d-f1de-4403-9295-59dc0ea58677"` // ID of the match rule that filled in department or category, if any
}

// Parse reads budget line items from a CSV file.
//
// The header row determines the column order. Lines with an empty
// description or an unparseable amount abort the parse with an error that
// names the offending line.
func Parse(f io.Reader) ([]LineItemPreview, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return []LineItemPreview{}, ErrNoHeader
	}
	if err != nil {
		return []LineItemPreview{}, fmt.Errorf("could not read the CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	if _, ok := columns[columnAmount]; !ok {
		return []LineItemPreview{}, ErrNoAmountColumn
	}
	if _, ok := columns[columnDescription]; !ok {
		return []LineItemPreview{}, ErrNoDescriptionColumn
	}

	var items []LineItemPreview

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		description := field(columnDescription)
		if description == "" {
			return csvReadError(reader, errors.New("the description for a line item must not be empty"))
		}

		rawAmount := field(columnAmount)
		if rawAmount == "" {
			return csvReadError(reader, errors.New("no amount is set for the line item"))
		}

		amount, err := decimal.NewFromString(strings.ReplaceAll(rawAmount, ",", ""))
		if err != nil {
			return csvReadError(reader, errors.New("the amount could not be parsed to a decimal"))
		}

		items = append(items, LineItemPreview{
			LineItem: models.LineItem{
				Description: description,
				Department:  field(columnDepartment),
				Category:    field(columnCategory),
				Vendor:      field(columnVendor),
				Amount:      amount,
				ImportHash:  helpers.Sha256String(strings.Join(record, ",")),
			},
		})
	}

	if items == nil {
		items = []LineItemPreview{}
	}

	return items, nil
}

// csvReadError returns an error including the line of the input the
// error occurred in.
func csvReadError(r *csv.Reader, err error) ([]LineItemPreview, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []LineItemPreview{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}

// Package templates holds the built-in budget template gallery.
package templates

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Item is one prefilled line item of a template.
type Item struct {
	Description string          `json:"description" example:"Script Development"` // Description of the expense
	Department  string          `json:"department" example:"Pre-Production"`      // Department of the expense
	Category    string          `json:"category" example:"Creative"`              // Category of the expense
	Amount      decimal.Decimal `json:"amount" example:"5000"`                    // Amount of the expense
}

// Template is a ready-made budget that can be turned into a dataset with
// a single request.
type Template struct {
	ID          string `json:"id" example:"film_production"`                       // Stable identifier
	Name        string `json:"name" example:"Film Production Budget"`              // Display name
	Category    string `json:"category" example:"Creative & Media"`                // Gallery category
	Description string `json:"description" example:"Complete budget for film/video production"` // What the template is for
	Popularity  int    `json:"popularity" example:"95"`                            // Sort weight for the gallery, higher first
	LineItems   []Item `json:"lineItems"`                                          // The prefilled line items

	// Derived fields, computed from the line items
	TotalAmount decimal.Decimal `json:"totalAmount" example:"28000"` // Sum of all line item amounts
	ItemCount   int             `json:"itemCount" example:"3"`       // Number of line items
	Departments []string        `json:"departments"`                 // Distinct departments in order of appearance
}

var library = []Template{
	{
		ID:          "film_production",
		Name:        "Film Production Budget",
		Category:    "Creative & Media",
		Description: "Complete budget for film/video production",
		Popularity:  95,
		LineItems: []Item{
			{Description: "Script Development", Department: "Pre-Production", Category: "Creative", Amount: decimal.NewFromInt(5000)},
			{Description: "Director Fee", Department: "Production", Category: "Talent", Amount: decimal.NewFromInt(15000)},
			{Description: "Camera Equipment", Department: "Production", Category: "Equipment", Amount: decimal.NewFromInt(8000)},
		},
	},
	{
		ID:          "marketing_campaign",
		Name:        "Marketing Campaign Budget",
		Category:    "Business & Marketing",
		Description: "Budget for digital marketing",
		Popularity:  88,
		LineItems: []Item{
			{Description: "Social Media Ads", Department: "Digital", Category: "Advertising", Amount: decimal.NewFromInt(10000)},
			{Description: "Content Creation", Department: "Content", Category: "Creative", Amount: decimal.NewFromInt(8000)},
		},
	},
	{
		ID:          "business_operations",
		Name:        "Business Operations Budget",
		Category:    "Business & Marketing",
		Description: "Typical monthly operating budget for a small business",
		Popularity:  82,
		LineItems: []Item{
			{Description: "Office Rent", Department: "Operations", Category: "Facilities", Amount: decimal.NewFromInt(5000)},
			{Description: "Software Licenses", Department: "IT", Category: "Technology", Amount: decimal.NewFromInt(2000)},
			{Description: "Marketing Campaign", Department: "Marketing", Category: "Advertising", Amount: decimal.NewFromInt(8000)},
			{Description: "Employee Salaries", Department: "HR", Category: "Personnel", Amount: decimal.NewFromInt(25000)},
			{Description: "Cloud Services", Department: "IT", Category: "Infrastructure", Amount: decimal.NewFromInt(1200)},
			{Description: "Office Supplies", Department: "Operations", Category: "Supplies", Amount: decimal.NewFromInt(300)},
			{Description: "Travel Expenses", Department: "Sales", Category: "Travel", Amount: decimal.NewFromInt(3500)},
		},
	},
}

func init() {
	for i := range library {
		library[i].derive()
	}
}

// derive fills in the computed fields so that the library entries cannot
// drift from their line items.
func (t *Template) derive() {
	t.ItemCount = len(t.LineItems)
	t.TotalAmount = decimal.Zero
	t.Departments = make([]string, 0)

	for _, item := range t.LineItems {
		t.TotalAmount = t.TotalAmount.Add(item.Amount)
		if !slices.Contains(t.Departments, item.Department) {
			t.Departments = append(t.Departments, item.Department)
		}
	}
}

// All returns all templates, most popular first.
func All() []Template {
	all := make([]Template, len(library))
	copy(all, library)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Popularity > all[j].Popularity
	})

	return all
}

// ByID returns the template with the given ID.
func ByID(id string) (Template, bool) {
	for _, t := range library {
		if t.ID == id {
			return t, true
		}
	}

	return Template{}, false
}

// Categories returns the distinct gallery categories in alphabetical
// order.
func Categories() []string {
	categories := make([]string, 0)
	for _, t := range library {
		if !slices.Contains(categories, t.Category) {
			categories = append(categories, t.Category)
		}
	}

	sort.Strings(categories)
	return categories
}

// Search returns all templates whose name or description contains the
// query, case-insensitively. An empty query matches everything.
func Search(query string) []Template {
	query = strings.ToLower(query)

	results := make([]Template, 0)
	for _, t := range All() {
		if strings.Contains(strings.ToLower(t.Name), query) ||
			strings.Contains(strings.ToLower(t.Description), query) {
			results = append(results, t)
		}
	}

	return results
}

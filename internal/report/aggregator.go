package report

import (
	"math"
	"strings"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/catalog"
)

// ResponseType is one of the nine canonical answer categories.
type ResponseType struct {
	Value string
	Label string
}

// ResponseTypes returns the canonical response scale in value order, "1"
// through "9".
func ResponseTypes() []ResponseType {
	return []ResponseType{
		{Value: "1", Label: "In no case"},
		{Value: "2", Label: "In a few cases"},
		{Value: "3", Label: "About half cases"},
		{Value: "4", Label: "In most cases"},
		{Value: "5", Label: "In all cases"},
		{Value: "6", Label: "Don't know"},
		{Value: "7", Label: "Other"},
		{Value: "8", Label: "Not applicable"},
		{Value: "9", Label: "Not answered"},
	}
}

// TypeSummary is the count and percentage of one response type across all
// answered questions.
type TypeSummary struct {
	Value      string  `json:"value"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoryRow is the per-category breakdown of response-type counts. Counts
// and Percentages are keyed by response label; zero-count cells are absent.
type CategoryRow struct {
	Category     string             `json:"category"`
	CategoryCode string             `json:"categoryCode"`
	Counts       map[string]int     `json:"breakdown"`
	Percentages  map[string]float64 `json:"percentages"`
}

// Summary bundles the two aggregate structures consumed by report renderers.
type Summary struct {
	ResponseTypes     []TypeSummary `json:"responseTypes"`
	CategoryBreakdown []CategoryRow `json:"categoryBreakdown"`
}

// categoryCodes maps category names to the short codes used in tabular
// reports. Categories without an entry fall back to their first two letters.
var categoryCodes = map[string]string{
	"Security Governance":                   "SG",
	"Information Risk Assessment":           "IR",
	"Security Management":                   "SM",
	"People Management":                     "PM",
	"Information Management":                "IM",
	"Physical Asset Management":             "PA",
	"System Development":                    "SD",
	"Business Application Management":       "BA",
	"System Access":                         "SA",
	"System Management":                     "SY",
	"Networks and Communications":           "NC",
	"Supply Chain Management":               "SC",
	"Technical Security Management":         "TS",
	"Threat and Incident Management":        "TM",
	"Physical and Environmental Management": "PE",
	"Business Continuity":                   "BC",
	"Security Assurance":                    "SA",
}

// CategoryCode returns the short code for a category.
func CategoryCode(category string) string {
	if code, ok := categoryCodes[category]; ok {
		return code
	}
	code := category
	if len(code) > 2 {
		code = code[:2]
	}
	return strings.ToUpper(code)
}

// ResponseTypeSummary counts how many answered questions carry each response
// type. Percentages are relative to the number of answered questions; with no
// answers every percentage is zero.
func ResponseTypeSummary(answers map[string]string) []TypeSummary {
	totalAnswered := len(answers)

	counts := make(map[string]int)
	for _, value := range answers {
		counts[value]++
	}

	types := ResponseTypes()
	out := make([]TypeSummary, 0, len(types))
	for _, rt := range types {
		count := counts[rt.Value]
		pct := 0.0
		if totalAnswered > 0 {
			pct = round1(float64(count) / float64(totalAnswered) * 100)
		}
		out = append(out, TypeSummary{
			Value:      rt.Value,
			Label:      rt.Label,
			Count:      count,
			Percentage: pct,
		})
	}
	return out
}

// CategoryBreakdown computes per-category response-type counts for the
// selected categories. Percentages are relative to the number of catalog
// questions in the category, so unanswered questions dilute them.
func CategoryBreakdown(answers map[string]string, cat *catalog.Catalog, selectedCategories []string) []CategoryRow {
	rows := make([]CategoryRow, 0, len(selectedCategories))
	for _, category := range selectedCategories {
		questions := cat.FilterByCategory(category)

		counts := make(map[string]int)
		percentages := make(map[string]float64)
		for _, rt := range ResponseTypes() {
			count := 0
			for _, q := range questions {
				if answers[q.ID] == rt.Value {
					count++
				}
			}
			if count == 0 {
				continue
			}
			counts[rt.Label] = count
			if len(questions) > 0 {
				percentages[rt.Label] = round1(float64(count) / float64(len(questions)) * 100)
			}
		}

		rows = append(rows, CategoryRow{
			Category:     category,
			CategoryCode: CategoryCode(category),
			Counts:       counts,
			Percentages:  percentages,
		})
	}
	return rows
}

// Summarize runs both aggregations.
func Summarize(answers map[string]string, cat *catalog.Catalog, selectedCategories []string) Summary {
	return Summary{
		ResponseTypes:     ResponseTypeSummary(answers),
		CategoryBreakdown: CategoryBreakdown(answers, cat, selectedCategories),
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

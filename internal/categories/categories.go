// Package categories defines the closed set of card categories and the
// per-category field schemas used for data entry and tabular import.
package categories

import "strings"

// Category codes. The set is closed: operations against any other code
// fail with a not-found outcome.
const (
	Module      = "MODULE"
	Master      = "MASTER"
	Maintenance = "MAINTENANCE"
	Temporary   = "TEMPORARY"
)

// StatusColumnLabel is the optional trailing import column holding the
// Active/Inactive flag. "status" is accepted as its canonical key.
const StatusColumnLabel = "Active / Inactive"

// Field couples a canonical field key (as understood by
// models.Card.SetField) with the human-readable label used in import
// templates and listings.
type Field struct {
	Key   string
	Label string
}

// Definition is the field schema of one category.
type Definition struct {
	Code   string
	Fields []Field
}

// Order lists the categories in their fixed presentation order.
var Order = []string{Module, Master, Maintenance, Temporary}

var definitions = map[string]Definition{
	Module: {
		Code: Module,
		Fields: []Field{
			{Key: "seq_no", Label: "No."},
			{Key: "sector", Label: "Module / Sector"},
			{Key: "card_name", Label: "Card Name"},
			{Key: "card_type", Label: "Card Type"},
			{Key: "card_number", Label: "Card Number"},
		},
	},
	Master: {
		Code: Master,
		Fields: []Field{
			{Key: "seq_no", Label: "No."},
			{Key: "card_class", Label: "Category"},
			{Key: "card_name", Label: "Card Name"},
			{Key: "card_type", Label: "Card Type"},
			{Key: "card_number", Label: "Card Number"},
		},
	},
	Maintenance: {
		Code: Maintenance,
		Fields: []Field{
			{Key: "seq_no", Label: "No."},
			{Key: "card_class", Label: "Category"},
			{Key: "subclass", Label: "Subcategory"},
			{Key: "card_name", Label: "Card Name"},
			{Key: "card_type", Label: "Card Type"},
			{Key: "card_number", Label: "Card Number"},
		},
	},
	Temporary: {
		Code: Temporary,
		Fields: []Field{
			{Key: "seq_no", Label: "No."},
			{Key: "card_class", Label: "Category"},
			{Key: "card_name", Label: "Card Name"},
			{Key: "card_type", Label: "Card Type"},
			{Key: "card_number", Label: "Card Number"},
		},
	},
}

// Get returns the definition for code, or ok=false for codes outside the
// known set.
func Get(code string) (Definition, bool) {
	d, ok := definitions[strings.ToUpper(strings.TrimSpace(code))]
	return d, ok
}

// TemplateHeader is the header row of an import template: every field
// label followed by the status column.
func (d Definition) TemplateHeader() []string {
	header := make([]string, 0, len(d.Fields)+1)
	for _, f := range d.Fields {
		header = append(header, f.Label)
	}
	return append(header, StatusColumnLabel)
}

// ColumnMapping resolves a tabular header row against the schema once, up
// front. Each field is matched by canonical key first, then by label; the
// status column matches "status" or StatusColumnLabel. Unmatched fields
// are absent from Fields; unrecognized columns are ignored.
type ColumnMapping struct {
	Fields map[string]int // field key -> column index
	Status int            // status column index, -1 when absent
}

// MapHeader builds the ColumnMapping for the given header row.
func (d Definition) MapHeader(header []string) ColumnMapping {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(h)] = i
	}

	m := ColumnMapping{Fields: make(map[string]int, len(d.Fields)), Status: -1}
	for _, f := range d.Fields {
		if i, ok := byName[f.Key]; ok {
			m.Fields[f.Key] = i
			continue
		}
		if i, ok := byName[f.Label]; ok {
			m.Fields[f.Key] = i
		}
	}

	if i, ok := byName["status"]; ok {
		m.Status = i
	} else if i, ok := byName[StatusColumnLabel]; ok {
		m.Status = i
	}
	return m
}

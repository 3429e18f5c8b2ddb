package sheet

import (
	"regexp"
	"strings"

	"datasheet/internal/errors"
)

// Spreadsheet exports wrap numeric-looking strings as ="123" to force text
// formatting. The pattern strips the leading =" marker and the trailing
// quote; either may be absent.
var textWrapperPattern = regexp.MustCompile(`^="|"$`)

// CleanValue strips the spreadsheet text-forcing wrapper from a cell and
// trims surrounding whitespace. Quotes elsewhere in the string are left
// untouched.
func CleanValue(s string) string {
	return strings.TrimSpace(textWrapperPattern.ReplaceAllString(s, ""))
}

// Normalize coerces raw tabular input into the fixed three-field schema.
// When hasHeader is true the first row is treated as column labels and
// discarded; labels are never validated or used. The first three columns
// become Name, UOM and Value regardless of their original labels, extra
// columns are dropped, and every cell goes through CleanValue. Rows whose
// cleaned Name is empty are dropped and the remainder reindexed densely.
//
// Inputs with fewer than three columns fail with a SCHEMA_ERROR; no partial
// table is produced.
func Normalize(rawRows [][]string, hasHeader bool) (Table, error) {
	width := 0
	for _, row := range rawRows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width < 3 {
		return Table{}, errors.SchemaError("at least three columns required")
	}

	rows := rawRows
	if hasHeader {
		rows = rows[1:]
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		// Short rows are padded with empty cells so a missing Name falls
		// through to the empty-Name drop below.
		cells := [3]string{}
		for i := 0; i < 3 && i < len(row); i++ {
			cells[i] = CleanValue(row[i])
		}
		if cells[0] == "" {
			continue
		}
		records = append(records, Record{Name: cells[0], UOM: cells[1], Value: cells[2]})
	}

	return Table{Records: records, SourceColumns: width}, nil
}

// FilterByName returns a new Table keeping only records whose Name contains
// term, compared case-insensitively. An empty term returns the table
// unchanged.
func (t Table) FilterByName(term string) Table {
	if term == "" {
		return t
	}
	needle := strings.ToLower(term)
	filtered := make([]Record, 0, len(t.Records))
	for _, rec := range t.Records {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			filtered = append(filtered, rec)
		}
	}
	return Table{Records: filtered, SourceColumns: t.SourceColumns}
}

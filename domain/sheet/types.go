package sheet

// Record is one logical data row: a name, its unit of measure, and the
// value as uninterpreted text. Names need not be unique; identity is the
// row's position in its Table.
type Record struct {
	Name  string
	UOM   string
	Value string
}

// Table is an ordered collection of Records with the fixed three-field
// schema (Name, UOM, Value). SourceColumns is the column count of the raw
// input the table was normalized from; columns beyond the third were
// discarded during normalization.
//
// Tables are treated as immutable: FilterByName returns a new Table rather
// than mutating the receiver.
type Table struct {
	Records       []Record
	SourceColumns int
}

// Len returns the number of records in the table.
func (t Table) Len() int {
	return len(t.Records)
}

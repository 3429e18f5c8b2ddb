package sheet

import (
	"testing"

	"datasheet/internal/errors"
)

func TestCleanValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "text-forced numeric", input: `="123"`, want: "123"},
		{name: "leading marker only", input: `="abc`, want: "abc"},
		{name: "trailing bare quote", input: `abc"`, want: "abc"},
		{name: "plain value untouched", input: "abc", want: "abc"},
		{name: "leading bare quote kept", input: `"abc`, want: `"abc`},
		{name: "inner quotes kept", input: `a"b"c`, want: `a"b"c`},
		{name: "whitespace trimmed", input: "  psi  ", want: "psi"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanValue(tt.input)
			if got != tt.want {
				t.Errorf("CleanValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Cleaning must be stable under repeated application.
			if again := CleanValue(got); again != got {
				t.Errorf("CleanValue not idempotent: %q -> %q -> %q", tt.input, got, again)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		rows      [][]string
		hasHeader bool
		want      []Record
		wantCode  string
	}{
		{
			name: "end to end example",
			rows: [][]string{
				{"Temp", "C", `="100"`},
				{"Pressure", "psi", "50"},
			},
			want: []Record{
				{Name: "Temp", UOM: "C", Value: "100"},
				{Name: "Pressure", UOM: "psi", Value: "50"},
			},
		},
		{
			name: "header row discarded",
			rows: [][]string{
				{"Parameter", "Unit", "Reading"},
				{"Flow", "gpm", "12"},
			},
			hasHeader: true,
			want:      []Record{{Name: "Flow", UOM: "gpm", Value: "12"}},
		},
		{
			name: "extra columns dropped",
			rows: [][]string{
				{"Flow", "gpm", "12", "ignored", "also ignored"},
			},
			want: []Record{{Name: "Flow", UOM: "gpm", Value: "12"}},
		},
		{
			name: "two columns rejected",
			rows: [][]string{
				{"Flow", "gpm"},
				{"Temp", "C"},
			},
			wantCode: errors.CodeSchemaError,
		},
		{
			name:     "empty input rejected",
			rows:     [][]string{},
			wantCode: errors.CodeSchemaError,
		},
		{
			name: "empty name dropped",
			rows: [][]string{
				{"", "C", "100"},
				{"   ", "psi", "50"},
				{`=""`, "bar", "1"},
				{"Flow", "gpm", "12"},
			},
			want: []Record{{Name: "Flow", UOM: "gpm", Value: "12"}},
		},
		{
			name: "short row padded then dropped by empty name",
			rows: [][]string{
				{"Flow", "gpm", "12"},
				{},
			},
			want: []Record{{Name: "Flow", UOM: "gpm", Value: "12"}},
		},
		{
			name: "short row with name kept",
			rows: [][]string{
				{"Flow", "gpm", "12"},
				{"Temp", "C"},
			},
			want: []Record{
				{Name: "Flow", UOM: "gpm", Value: "12"},
				{Name: "Temp", UOM: "C", Value: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Normalize(tt.rows, tt.hasHeader)

			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("Expected error with code %s, got nil", tt.wantCode)
				}
				if code := errors.GetCode(err); code != tt.wantCode {
					t.Errorf("Expected code %s, got %s", tt.wantCode, code)
				}
				if table.Len() != 0 {
					t.Errorf("Expected no partial table, got %d records", table.Len())
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(table.Records) != len(tt.want) {
				t.Fatalf("Expected %d records, got %d", len(tt.want), len(table.Records))
			}
			for i, rec := range table.Records {
				if rec != tt.want[i] {
					t.Errorf("Record %d = %+v, want %+v", i, rec, tt.want[i])
				}
			}
		})
	}
}

func TestNormalize_RowCountNeverGrows(t *testing.T) {
	rows := [][]string{
		{"A", "C", "1"},
		{"", "psi", "2"},
		{"B", "bar", "3"},
	}
	table, err := Normalize(rows, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if table.Len() > len(rows) {
		t.Errorf("Normalized row count %d exceeds input row count %d", table.Len(), len(rows))
	}
}

func TestFilterByName(t *testing.T) {
	table := Table{
		Records: []Record{
			{Name: "Temperature", UOM: "C", Value: "100"},
			{Name: "Pressure", UOM: "psi", Value: "50"},
			{Name: "temp limit", UOM: "C", Value: "120"},
		},
		SourceColumns: 3,
	}

	t.Run("case insensitive", func(t *testing.T) {
		lower := table.FilterByName("temp")
		upper := table.FilterByName("TEMP")
		if lower.Len() != 2 || upper.Len() != 2 {
			t.Fatalf("Expected 2 matches for both cases, got %d and %d", lower.Len(), upper.Len())
		}
		for i := range lower.Records {
			if lower.Records[i] != upper.Records[i] {
				t.Errorf("Row %d differs between cases: %+v vs %+v", i, lower.Records[i], upper.Records[i])
			}
		}
	})

	t.Run("empty term is a no-op", func(t *testing.T) {
		got := table.FilterByName("")
		if got.Len() != table.Len() {
			t.Fatalf("Expected unchanged table, got %d of %d rows", got.Len(), table.Len())
		}
		for i := range got.Records {
			if got.Records[i] != table.Records[i] {
				t.Errorf("Row %d changed: %+v vs %+v", i, got.Records[i], table.Records[i])
			}
		}
	})

	t.Run("no matches", func(t *testing.T) {
		if got := table.FilterByName("voltage"); got.Len() != 0 {
			t.Errorf("Expected no matches, got %d", got.Len())
		}
	})

	t.Run("original table untouched", func(t *testing.T) {
		_ = table.FilterByName("temp")
		if table.Len() != 3 {
			t.Errorf("Filtering mutated the source table: %d rows", table.Len())
		}
	})
}

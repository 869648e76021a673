package models

import (
	"testing"
)

func TestNewResultSetCopiesColumns(t *testing.T) {
	cols := []string{"name", "id"}
	rs := NewResultSet(cols)
	cols[0] = "changed"

	if rs.Columns[0] != "name" {
		t.Errorf("Expected columns to be copied, got %v", rs.Columns)
	}
	if !rs.IsEmpty() {
		t.Error("New result set should be empty")
	}
}

func TestAddRowFillsMissingColumns(t *testing.T) {
	rs := NewResultSet([]string{"name", "id", "type"})
	rs.AddRow(map[string]string{"name": "Footstep", "extra": "ignored"})

	if rs.Len() != 1 {
		t.Fatalf("Expected 1 row, got %d", rs.Len())
	}

	row := rs.Rows[0]
	if len(row) != len(rs.Columns) {
		t.Errorf("Row width %d does not match column count %d", len(row), len(rs.Columns))
	}
	if row["id"] != "" || row["type"] != "" {
		t.Errorf("Missing keys should render empty, got %+v", row)
	}
	if _, ok := row["extra"]; ok {
		t.Error("Unknown keys should not be added to the row")
	}
}

func TestRecordOrdering(t *testing.T) {
	rs := NewResultSet([]string{"b", "a"})
	rs.AddRow(map[string]string{"a": "1", "b": "2"})
	rs.AddRow(map[string]string{"a": "3"})

	tests := []struct {
		index    int
		expected []string
	}{
		{0, []string{"2", "1"}},
		{1, []string{"", "3"}},
	}

	for _, tt := range tests {
		got := rs.Record(tt.index)
		if len(got) != len(tt.expected) {
			t.Fatalf("Record(%d): expected %v, got %v", tt.index, tt.expected, got)
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("Record(%d)[%d]: expected %q, got %q", tt.index, i, tt.expected[i], got[i])
			}
		}
	}

	if rs.Record(5) != nil {
		t.Error("Out of range record should be nil")
	}
	if len(rs.Records()) != 2 {
		t.Errorf("Expected 2 records, got %d", len(rs.Records()))
	}
}

func TestNilResultSet(t *testing.T) {
	var rs *ResultSet
	if rs.Len() != 0 || !rs.IsEmpty() {
		t.Error("Nil result set should behave as empty")
	}
	if rs.Record(0) != nil {
		t.Error("Nil result set should have no records")
	}
}

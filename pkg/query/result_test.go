package query

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestBuildResultSetConsistentKeys(t *testing.T) {
	for n := 1; n <= 5; n++ {
		items := make([]interface{}, n)
		for i := range items {
			items[i] = map[string]interface{}{
				"name":   fmt.Sprintf("Sound_%d", i),
				"id":     fmt.Sprintf("{%d}", i),
				"Volume": float64(-i),
			}
		}

		rs, err := BuildResultSet(map[string]interface{}{"return": items})
		if err != nil {
			t.Fatalf("n=%d: unexpected error %v", n, err)
		}
		if rs.Len() != n {
			t.Errorf("n=%d: expected %d rows, got %d", n, n, rs.Len())
		}
		if len(rs.Columns) != 3 {
			t.Errorf("n=%d: expected 3 columns, got %v", n, rs.Columns)
		}
		for i, row := range rs.Rows {
			if len(row) != len(rs.Columns) {
				t.Errorf("n=%d row %d: expected %d fields, got %d", n, i, len(rs.Columns), len(row))
			}
		}
	}
}

func TestBuildResultSetUnionOfKeys(t *testing.T) {
	result := map[string]interface{}{
		"return": []interface{}{
			map[string]interface{}{"name": "A", "id": "1"},
			map[string]interface{}{"name": "B", "path": "\\Actor-Mixer Hierarchy\\B"},
			"not an object",
		},
	}

	rs, err := BuildResultSet(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedCols := []string{"id", "name", "path"}
	if !reflect.DeepEqual(rs.Columns, expectedCols) {
		t.Errorf("Expected columns %v, got %v", expectedCols, rs.Columns)
	}
	if rs.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", rs.Len())
	}
	if rs.Rows[0]["path"] != "" {
		t.Errorf("Missing key should render empty, got %q", rs.Rows[0]["path"])
	}
	if rs.Rows[1]["id"] != "" {
		t.Errorf("Missing key should render empty, got %q", rs.Rows[1]["id"])
	}
}

func TestBuildResultSetEmpty(t *testing.T) {
	tests := []map[string]interface{}{
		{},
		{"return": nil},
		{"return": []interface{}{}},
		{"return": []interface{}{1.0, "x"}},
	}

	for _, result := range tests {
		if _, err := BuildResultSet(result); !errors.Is(err, ErrEmptyResult) {
			t.Errorf("BuildResultSet(%v): expected ErrEmptyResult, got %v", result, err)
		}
	}
}

func TestBuildResultSetBadReturnType(t *testing.T) {
	_, err := BuildResultSet(map[string]interface{}{"return": "oops"})
	if err == nil || errors.Is(err, ErrEmptyResult) {
		t.Errorf("Expected type error, got %v", err)
	}
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected string
	}{
		{"Footstep", "Footstep"},
		{-6.0, "-6"},
		{0.25, "0.25"},
		{1e21, "1000000000000000000000"},
		{true, "true"},
		{false, "false"},
		{nil, "null"},
		{map[string]interface{}{"id": "{1}", "name": "Master"}, `{"id":"{1}","name":"Master"}`},
		{[]interface{}{"a", 1.0}, `["a",1]`},
	}

	for _, tt := range tests {
		if got := RenderValue(tt.input); got != tt.expected {
			t.Errorf("RenderValue(%v): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

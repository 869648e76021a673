package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/user/waql-tui/pkg/models"
)

// BuildResultSet converts an ak.wwise.core.object.get result into a table.
// Columns are the union of object keys in first-seen order.
func BuildResultSet(result map[string]interface{}) (*models.ResultSet, error) {
	raw, ok := result["return"]
	if !ok || raw == nil {
		return nil, ErrEmptyResult
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected \"return\" value of type %T", raw)
	}

	objects := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			objects = append(objects, obj)
		}
	}
	if len(objects) == 0 {
		return nil, ErrEmptyResult
	}

	seen := make(map[string]bool)
	var columns []string
	for _, obj := range objects {
		for _, key := range sortedKeys(obj) {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}

	rs := models.NewResultSet(columns)
	for _, obj := range objects {
		values := make(map[string]string, len(obj))
		for key, value := range obj {
			values[key] = RenderValue(value)
		}
		rs.AddRow(values)
	}
	return rs, nil
}

// RenderValue formats a decoded JSON value for a table cell
func RenderValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

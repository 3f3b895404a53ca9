package mapper

import (
	"encoding/json"
	"fmt"
)

// DecodeJSON reads the canonical JSON hand-off shape: an array of objects.
// Some REST sources wrap the array in an envelope ({"products": [...]}); the
// first array found under a known envelope key is used in that case.
func DecodeJSON(data []byte) ([]Raw, error) {
	var arr []map[string]interface{}
	if err := json.Unmarshal(data, &arr); err == nil {
		return rawRows(arr), nil
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("payload is neither a JSON array nor an object: %w", err)
	}

	for _, key := range []string{"products", "items", "rows", "data"} {
		items, ok := envelope[key].([]interface{})
		if !ok {
			continue
		}
		rows := make([]Raw, 0, len(items))
		for _, item := range items {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			rows = append(rows, NewRaw(obj))
		}
		return rows, nil
	}

	return nil, fmt.Errorf("JSON object carries no record array")
}

func rawRows(arr []map[string]interface{}) []Raw {
	rows := make([]Raw, 0, len(arr))
	for _, obj := range arr {
		rows = append(rows, NewRaw(obj))
	}
	return rows
}

// Package decode converts loosely typed event maps into structs via JSON.
package decode

import "encoding/json"

// FromMap decodes a map into T using T's json tags. Unknown keys are ignored.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}


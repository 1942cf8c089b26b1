package formatter

import (
	"encoding/json"
)

// BuildJSON serializes a response to JSON.
func BuildJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

package api

import (
	"bytes"
	"encoding/json"
)

var emptyList = json.RawMessage("[]")

// NormalizeList reduces the platform's list responses to one JSON array.
// Accepted shapes, in order of preference:
//
//	{"success": true, "data": [...]}   -> data
//	[...]                              -> as-is
//	{"data": [...]}                    -> data (no success field)
//
// Anything else (a `success: false` envelope, a non-array data field, a body
// that is not JSON) normalizes to an empty array. Silent coercion here
// is deliberate: a malformed list renders as "no results", not as an error.
func NormalizeList(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return emptyList
	}

	if trimmed[0] == '[' {
		if json.Valid(trimmed) {
			return json.RawMessage(trimmed)
		}
		return emptyList
	}

	var env Response
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return emptyList
	}
	if env.Success != nil && !*env.Success {
		return emptyList
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) > 0 && data[0] == '[' && json.Valid(data) {
		return json.RawMessage(data)
	}
	return emptyList
}

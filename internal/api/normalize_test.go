package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeIDs(t *testing.T, raw json.RawMessage) []int {
	t.Helper()
	var ids []int
	require.NoError(t, json.Unmarshal(raw, &ids))
	return ids
}

func TestNormalizeListAcceptedShapes(t *testing.T) {
	// The same sequence must come out of all three accepted shapes.
	shapes := map[string]string{
		"success envelope": `{"success": true, "data": [1, 2, 3]}`,
		"bare array":       `[1, 2, 3]`,
		"data only":        `{"data": [1, 2, 3]}`,
	}
	for name, body := range shapes {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []int{1, 2, 3}, decodeIDs(t, NormalizeList([]byte(body))))
		})
	}
}

func TestNormalizeListRejectedShapes(t *testing.T) {
	cases := map[string]string{
		"success false":     `{"success": false, "message": "nope", "data": [1]}`,
		"data not an array": `{"success": true, "data": {"a": 1}}`,
		"not json":          `<html>oops</html>`,
		"empty body":        ``,
		"null":              `null`,
		"number":            `42`,
		"broken array":      `[1, 2,`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, decodeIDs(t, NormalizeList([]byte(body))))
		})
	}
}

func TestNormalizeListWhitespace(t *testing.T) {
	assert.Equal(t, []int{7}, decodeIDs(t, NormalizeList([]byte("  \n [7] \n"))))
}

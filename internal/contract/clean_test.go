package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRemovesEmptyValues(t *testing.T) {
	input := map[string]any{
		"id":      "c1",
		"name":    "",
		"tenant":  nil,
		"tags":    []any{},
		"price":   map[string]any{},
		"servers": []any{map[string]any{"host": ""}},
	}

	got := Clean(input)
	assert.Equal(t, map[string]any{"id": "c1"}, got)
}

func TestCleanPreservesFalsyScalars(t *testing.T) {
	input := map[string]any{
		"required":           false,
		"primaryKeyPosition": -1,
		"count":              0,
		"ratio":              0.0,
	}

	got := Clean(input)
	assert.Equal(t, input, got)
}

func TestCleanRecursesBeforeDeciding(t *testing.T) {
	// A map that only contains empties must vanish after its children do.
	input := map[string]any{
		"description": map[string]any{
			"usage":   "",
			"purpose": nil,
			"customProperties": []any{
				map[string]any{"property": "", "value": nil},
			},
		},
		"schema": []any{
			map[string]any{
				"name": "t1",
				"properties": []any{
					map[string]any{"name": "pk", "required": false},
					map[string]any{"name": ""},
				},
			},
		},
	}

	got := Clean(input)
	require.NotContains(t, got, "description")

	schema, ok := got["schema"].([]any)
	require.True(t, ok)
	require.Len(t, schema, 1)

	obj := schema[0].(map[string]any)
	props := obj["properties"].([]any)
	require.Len(t, props, 1, "property with only an empty name must be dropped")
	assert.Equal(t, map[string]any{"name": "pk", "required": false}, props[0])
}

func TestCleanIdempotent(t *testing.T) {
	input := map[string]any{
		"id":     "c1",
		"flags":  []any{false, true, 0},
		"nested": map[string]any{"a": "", "b": map[string]any{"c": []any{nil, ""}}},
		"price":  map[string]any{"priceAmount": 9.95, "priceCurrency": ""},
	}

	once := Clean(input)
	twice := Clean(once)
	assert.Equal(t, once, twice)
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	input := map[string]any{
		"id":   "c1",
		"name": "",
	}
	_ = Clean(input)
	assert.Contains(t, input, "name")
}

func TestCleanEmptyInput(t *testing.T) {
	assert.Empty(t, Clean(map[string]any{}))
	assert.Empty(t, Clean(map[string]any{"everything": ""}))
}

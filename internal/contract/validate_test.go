package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func validDocument() *Document {
	return &Document{
		Version:    "1.0.0",
		Kind:       KindDataContract,
		APIVersion: "v3.0.2",
		ID:         "c1",
		Status:     "active",
	}
}

func TestValidateMinimalDocument(t *testing.T) {
	result := Validate(validDocument())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateRequiredScalars(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Document)
		wantPath string
	}{
		{"empty id", func(d *Document) { d.ID = "" }, "id"},
		{"whitespace id", func(d *Document) { d.ID = "   " }, "id"},
		{"empty version", func(d *Document) { d.Version = "" }, "version"},
		{"whitespace status", func(d *Document) { d.Status = "\t" }, "status"},
		{"wrong kind", func(d *Document) { d.Kind = "Contract" }, "kind"},
		{"missing apiVersion", func(d *Document) { d.APIVersion = "" }, "apiVersion"},
		{"unsupported apiVersion", func(d *Document) { d.APIVersion = "v9.9.9" }, "apiVersion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)
			result := Validate(doc)
			require.False(t, result.Valid)
			paths := make([]string, len(result.Errors))
			for i, e := range result.Errors {
				paths[i] = e.Path
			}
			assert.Contains(t, paths, tt.wantPath)
		})
	}
}

func TestValidatePrimaryKeyPosition(t *testing.T) {
	doc := validDocument()
	doc.Schema = []SchemaObject{{
		Name: "t1",
		Properties: []SchemaProperty{{
			Name:        "pk",
			LogicalType: "integer",
			PrimaryKey:  true,
			// PrimaryKeyPosition intentionally unset
		}},
	}}

	result := Validate(doc)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "schema[0].properties[0].primaryKeyPosition", result.Errors[0].Path)

	// -1 sentinel is equally invalid when primaryKey is set.
	doc.Schema[0].Properties[0].PrimaryKeyPosition = intPtr(-1)
	result = Validate(doc)
	assert.False(t, result.Valid)

	// A real position passes.
	doc.Schema[0].Properties[0].PrimaryKeyPosition = intPtr(1)
	result = Validate(doc)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestValidateDuplicateProperties(t *testing.T) {
	doc := validDocument()
	doc.Schema = []SchemaObject{{
		Name: "orders",
		Properties: []SchemaProperty{
			{Name: "id"},
			{Name: "id"},
		},
	}}

	result := Validate(doc)
	require.False(t, result.Valid)
	assert.Equal(t, "schema[0].properties[1].name", result.Errors[0].Path)
	assert.Contains(t, result.Errors[0].Message, "duplicate")
}

func TestValidateSamePropertyNameAcrossObjects(t *testing.T) {
	// Two objects may each have an "id" property; uniqueness is per object.
	doc := validDocument()
	doc.Schema = []SchemaObject{
		{Name: "orders", Properties: []SchemaProperty{{Name: "id"}}},
		{Name: "customers", Properties: []SchemaProperty{{Name: "id"}}},
	}
	result := Validate(doc)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestValidateQualityRules(t *testing.T) {
	doc := validDocument()
	doc.Schema = []SchemaObject{{
		Name: "t1",
		Quality: []QualityRule{
			{Name: "r1", Dimension: "accuracy", Type: "library"},
			{Name: "r2", Dimension: "ac", Type: "sql"},
			{Name: "r3", Dimension: "bogus"},
			{Name: "r4", Type: "manual"},
			{Name: "r5", MustBeBetween: []any{int64(1)}},
			{Name: "r6", MustBeBetween: []any{int64(0), int64(100)}},
		},
	}}

	result := Validate(doc)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "schema[0].quality[2].dimension", result.Errors[0].Path)
	assert.Equal(t, "schema[0].quality[3].type", result.Errors[1].Path)
	assert.Equal(t, "schema[0].quality[4].mustBeBetween", result.Errors[2].Path)
}

func TestValidateServers(t *testing.T) {
	doc := validDocument()
	doc.Servers = []Server{
		{Server: "prod", Type: "postgresql"},
		{Server: "", Type: "mainframe"},
	}

	result := Validate(doc)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "servers[1].server", result.Errors[0].Path)
	assert.Equal(t, "servers[1].type", result.Errors[1].Path)
}

func TestValidateRawRejectsUnknownFields(t *testing.T) {
	doc := validDocument()
	raw := map[string]any{
		"version": "1.0.0", "kind": "DataContract", "apiVersion": "v3.0.2",
		"id": "c1", "status": "active",
		"extraField": "surprise",
	}

	result := ValidateRaw(doc, raw)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "extraField", result.Errors[0].Path)
	assert.Contains(t, result.Errors[0].Message, "closed schema")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	doc := &Document{} // everything missing
	result := Validate(doc)
	require.False(t, result.Valid)
	// id, version, status, kind, apiVersion
	assert.GreaterOrEqual(t, len(result.Errors), 5)
}

func TestFieldErrorString(t *testing.T) {
	err := FieldError{Path: "schema[0].name", Message: "is required"}
	assert.Equal(t, "schema[0].name: is required", err.Error())
}

func TestNormalizeDimension(t *testing.T) {
	tests := []struct{ in, want string }{
		{"accuracy", "accuracy"},
		{"ac", "accuracy"},
		{"UQ", "uniqueness"},
		{"Completeness", "completeness"},
		{"tm", "timeliness"},
		{"bogus", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDimension(tt.in), "input %q", tt.in)
	}
}

func TestSupportedAPIVersions(t *testing.T) {
	for _, v := range SupportedAPIVersions {
		assert.True(t, strings.HasPrefix(v, "v"))
		assert.True(t, IsSupportedAPIVersion(v))
	}
	assert.False(t, IsSupportedAPIVersion("3.0.2"))
}

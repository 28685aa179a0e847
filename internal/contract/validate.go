package contract

// validate.go is the validation gate for reconstructed and loaded documents.
//
// Validation never stops at the first problem and never rejects the document
// outright: every invariant violation becomes a FieldError with the path of
// the offending field, and the caller gets all of them at once. The schema is
// closed: top-level keys outside the model are themselves violations, which
// catches projector/reconstructor drift early.

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError is a single invariant violation at a document path.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult is the outcome of validating a document.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (r *ValidationResult) add(path, format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Merge folds another result's errors into r.
func (r *ValidationResult) Merge(other ValidationResult) {
	if !other.Valid {
		r.Valid = false
		r.Errors = append(r.Errors, other.Errors...)
	}
}

// documentFields are the accepted top-level keys of a contract document.
var documentFields = map[string]bool{
	"version": true, "kind": true, "apiVersion": true, "id": true,
	"status": true, "name": true, "tenant": true, "dataProduct": true,
	"domain": true, "slaDefaultElement": true, "contractCreatedTs": true,
	"tags": true, "description": true, "servers": true, "schema": true,
	"support": true, "price": true, "team": true, "roles": true,
	"slaProperties": true, "authoritativeDefinitions": true,
	"customProperties": true,
}

// Validate checks every structural invariant of the document and returns all
// violations. It never mutates the document and never panics on semantically
// wrong but well-formed input.
func Validate(doc *Document) ValidationResult {
	result := ValidationResult{Valid: true}
	if doc == nil {
		result.add("", "document is nil")
		return result
	}

	validateRoot(doc, &result)
	validateServers(doc.Servers, &result)
	validateSchema(doc.Schema, &result)
	validateFlatSections(doc, &result)

	return result
}

// ValidateRaw validates a document alongside its raw decoded form, so that
// unknown top-level fields (invisible after typed decoding) are reported too.
func ValidateRaw(doc *Document, raw map[string]any) ValidationResult {
	result := Validate(doc)
	for _, f := range UnknownTopLevelFields(raw) {
		result.add(f, "unknown field (closed schema)")
	}
	return result
}

// UnknownTopLevelFields returns the top-level keys of raw that are not part
// of the contract model, sorted for stable reporting.
func UnknownTopLevelFields(raw map[string]any) []string {
	var unknown []string
	for k := range raw {
		if !documentFields[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func validateRoot(doc *Document, result *ValidationResult) {
	for _, f := range []struct{ name, value string }{
		{"id", doc.ID},
		{"version", doc.Version},
		{"status", doc.Status},
	} {
		if strings.TrimSpace(f.value) == "" {
			result.add(f.name, "cannot be empty or whitespace")
		}
	}

	if doc.Kind != KindDataContract {
		result.add("kind", "must be %q, got %q", KindDataContract, doc.Kind)
	}

	if doc.APIVersion == "" {
		result.add("apiVersion", "is required")
	} else if !IsSupportedAPIVersion(doc.APIVersion) {
		result.add("apiVersion", "unsupported version %q (supported: %s)",
			doc.APIVersion, strings.Join(SupportedAPIVersions, ", "))
	}
}

func validateServers(servers []Server, result *ValidationResult) {
	for i, srv := range servers {
		path := fmt.Sprintf("servers[%d]", i)
		if strings.TrimSpace(srv.Server) == "" {
			result.add(path+".server", "is required")
		}
		if srv.Type == "" {
			result.add(path+".type", "is required")
		} else if !IsServerType(srv.Type) {
			result.add(path+".type", "unknown server type %q", srv.Type)
		}
	}
}

func validateSchema(schema []SchemaObject, result *ValidationResult) {
	objectNames := make(map[string]bool)

	for i, obj := range schema {
		objPath := fmt.Sprintf("schema[%d]", i)
		if strings.TrimSpace(obj.Name) == "" {
			result.add(objPath+".name", "is required")
		} else if objectNames[obj.Name] {
			result.add(objPath+".name", "duplicate object name %q", obj.Name)
		}
		objectNames[obj.Name] = true

		propertyNames := make(map[string]bool)
		for j, prop := range obj.Properties {
			propPath := fmt.Sprintf("%s.properties[%d]", objPath, j)
			validateProperty(obj.Name, prop, propPath, propertyNames, result)
		}

		for k, rule := range obj.Quality {
			validateQualityRule(rule, fmt.Sprintf("%s.quality[%d]", objPath, k), result)
		}
	}
}

func validateProperty(objectName string, prop SchemaProperty, path string, seen map[string]bool, result *ValidationResult) {
	if strings.TrimSpace(prop.Name) == "" {
		result.add(path+".name", "is required")
	} else if seen[prop.Name] {
		result.add(path+".name", "duplicate property %q in object %q", prop.Name, objectName)
	}
	seen[prop.Name] = true

	if prop.LogicalType != "" && !IsLogicalType(prop.LogicalType) {
		result.add(path+".logicalType", "unknown logical type %q", prop.LogicalType)
	}

	if prop.PrimaryKey && (prop.PrimaryKeyPosition == nil || *prop.PrimaryKeyPosition < 0) {
		result.add(path+".primaryKeyPosition", "primaryKeyPosition is required when primaryKey is true")
	}
	if prop.Partitioned && (prop.PartitionKeyPosition == nil || *prop.PartitionKeyPosition < 0) {
		result.add(path+".partitionKeyPosition", "partitionKeyPosition is required when partitioned is true")
	}

	for k, rule := range prop.Quality {
		validateQualityRule(rule, fmt.Sprintf("%s.quality[%d]", path, k), result)
	}
}

func validateQualityRule(rule QualityRule, path string, result *ValidationResult) {
	if rule.Dimension != "" && NormalizeDimension(rule.Dimension) == "" {
		result.add(path+".dimension", "unknown quality dimension %q", rule.Dimension)
	}
	if rule.Type != "" && !IsQualityRuleType(rule.Type) {
		result.add(path+".type", "type must be one of: %s", strings.Join(QualityRuleTypes, ", "))
	}
	if n := len(rule.MustBeBetween); n != 0 && n != 2 {
		result.add(path+".mustBeBetween", "must have exactly 2 elements, got %d", n)
	}
	if n := len(rule.MustNotBeBetween); n != 0 && n != 2 {
		result.add(path+".mustNotBeBetween", "must have exactly 2 elements, got %d", n)
	}
}

func validateFlatSections(doc *Document, result *ValidationResult) {
	for i, item := range doc.Support {
		path := fmt.Sprintf("support[%d]", i)
		if strings.TrimSpace(item.Channel) == "" {
			result.add(path+".channel", "is required")
		}
		if strings.TrimSpace(item.URL) == "" {
			result.add(path+".url", "is required")
		}
	}

	for i, role := range doc.Roles {
		if strings.TrimSpace(role.Role) == "" {
			result.add(fmt.Sprintf("roles[%d].role", i), "is required")
		}
	}

	for i, sla := range doc.SLAProperties {
		if strings.TrimSpace(sla.Property) == "" {
			result.add(fmt.Sprintf("slaProperties[%d].property", i), "is required")
		}
	}

	for i, def := range doc.AuthoritativeDefinitions {
		path := fmt.Sprintf("authoritativeDefinitions[%d]", i)
		if strings.TrimSpace(def.URL) == "" {
			result.add(path+".url", "is required")
		}
		if strings.TrimSpace(def.Type) == "" {
			result.add(path+".type", "is required")
		}
	}

	for i, cp := range doc.CustomProperties {
		if strings.TrimSpace(cp.Property) == "" {
			result.add(fmt.Sprintf("customProperties[%d].property", i), "is required")
		}
	}
}

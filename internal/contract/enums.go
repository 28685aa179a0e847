package contract

import "strings"

// KindDataContract is the only supported document kind.
const KindDataContract = "DataContract"

// SupportedAPIVersions lists every ODCS spec version this converter accepts,
// newest first.
var SupportedAPIVersions = []string{
	"v3.1.0",
	"v3.0.2",
	"v3.0.1",
	"v3.0.0",
	"v2.2.2",
	"v2.2.1",
	"v2.2.0",
}

// LogicalTypes are the allowed values for a property's logicalType.
var LogicalTypes = []string{
	"string",
	"date",
	"number",
	"integer",
	"object",
	"array",
	"boolean",
}

// ServerTypes are the known server type identifiers.
var ServerTypes = []string{
	"api", "athena", "azure", "bigquery", "clickhouse", "databricks",
	"denodo", "dremio", "duckdb", "glue", "cloudsql", "db2", "informix",
	"kafka", "kinesis", "local", "mysql", "oracle", "postgresql", "postgres",
	"presto", "pubsub", "redshift", "s3", "sftp", "snowflake", "sqlserver",
	"synapse", "trino", "vertica", "custom",
}

// QualityRuleTypes are the allowed values for a quality rule's type.
var QualityRuleTypes = []string{"library", "sql", "custom"}

// qualityDimensions maps each dimension to its two-letter synonym.
var qualityDimensions = map[string]string{
	"accuracy":     "ac",
	"completeness": "cp",
	"conformity":   "cf",
	"consistency":  "cs",
	"coverage":     "cv",
	"timeliness":   "tm",
	"uniqueness":   "uq",
}

// NormalizeDimension resolves a quality dimension name or its two-letter
// synonym to the canonical long form. Returns "" when the value is unknown.
func NormalizeDimension(dim string) string {
	d := strings.ToLower(strings.TrimSpace(dim))
	if d == "" {
		return ""
	}
	if _, ok := qualityDimensions[d]; ok {
		return d
	}
	for long, short := range qualityDimensions {
		if d == short {
			return long
		}
	}
	return ""
}

// IsSupportedAPIVersion reports whether v is an accepted spec version.
func IsSupportedAPIVersion(v string) bool {
	return contains(SupportedAPIVersions, v)
}

// IsLogicalType reports whether t is a known property logical type.
func IsLogicalType(t string) bool {
	return contains(LogicalTypes, t)
}

// IsServerType reports whether t is a known server type.
func IsServerType(t string) bool {
	return contains(ServerTypes, t)
}

// IsQualityRuleType reports whether t is a known quality rule type.
func IsQualityRuleType(t string) bool {
	return contains(QualityRuleTypes, t)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

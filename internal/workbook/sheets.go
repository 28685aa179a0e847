// Package workbook projects a contract document into a multi-sheet Excel
// workbook and reconstructs a document from one.
//
// Sheet names and column headers are a wire contract: both directions are
// generated from the definitions in this file, so the projector cannot emit
// a column the reconstructor does not know how to join back.
package workbook

// Sheet names. Fixed; renaming any of these breaks existing workbooks.
const (
	SheetBasicInfo    = "Basic Information"
	SheetTags         = "Tags"
	SheetDescription  = "Description"
	SheetServers      = "Servers"
	SheetSchema       = "Schema"
	SheetProperties   = "Schema Properties"
	SheetTypeOptions  = "Logical Type Options"
	SheetQualityRules = "Quality Rules"
	SheetSupport      = "Support"
	SheetPricing      = "Pricing"
	SheetTeam         = "Team"
	SheetRoles        = "Roles"
	SheetSLA          = "SLA Properties"
	SheetAuthDefs     = "Authoritative Definitions"
	SheetCustomProps  = "Custom Properties"
)

// SheetOrder is the order sheets appear in a generated workbook.
var SheetOrder = []string{
	SheetBasicInfo, SheetTags, SheetDescription, SheetServers,
	SheetSchema, SheetProperties, SheetTypeOptions, SheetQualityRules,
	SheetSupport, SheetPricing, SheetTeam, SheetRoles,
	SheetSLA, SheetAuthDefs, SheetCustomProps,
}

// Column headers per sheet, in emit order.
var (
	basicInfoHeaders = []string{"Field", "Value", "Description"}

	tagsHeaders = []string{"Tag"}

	descriptionHeaders = []string{"Field", "Value"}

	serverHeaders = []string{
		"Server", "Type", "Description", "Environment",
		"Location", "Host", "Port", "Database",
	}

	schemaHeaders = []string{
		"Object Name", "Physical Name", "Logical Type", "Physical Type",
		"Description", "Business Name", "Data Granularity", "Tags",
		"Quality Rules Count", "Properties Count", "Auth Definitions Count",
	}

	propertyHeaders = []string{
		"Object Name", "Property Name", "Logical Type", "Physical Type",
		"Physical Name", "Description", "Business Name",
		"Required", "Unique", "Primary Key", "PK Position",
		"Partitioned", "Partition Position",
		"Classification", "Encrypted Name", "Critical Data Element",
		"Transform Sources", "Transform Logic", "Transform Description",
		"Examples", "Tags", "Quality Rules Count", "Auth Definitions Count",
	}

	typeOptionHeaders = []string{
		"Object Name", "Property Name", "Logical Type",
		"Format", "Min Length", "Max Length", "Pattern",
		"Minimum", "Maximum", "Exclusive Minimum", "Exclusive Maximum",
		"Multiple Of", "Min Items", "Max Items", "Unique Items",
		"Min Properties", "Max Properties", "Required Properties",
	}

	qualityHeaders = []string{
		"Object Name", "Property Name", "Level",
		"Name", "Description", "Type", "Rule", "Dimension",
		"Severity", "Business Impact", "Unit", "Valid Values",
		"Query", "Engine", "Implementation",
		"Must Be", "Must Not Be",
		"Must Be Greater Than", "Must Be Greater Or Equal",
		"Must Be Less Than", "Must Be Less Or Equal",
		"Must Be Between", "Must Not Be Between",
		"Method", "Scheduler", "Schedule", "Tags",
	}

	supportHeaders = []string{"Channel", "URL", "Description", "Tool", "Scope"}

	pricingHeaders = []string{"Field", "Value"}

	teamHeaders = []string{"Username", "Name", "Role", "Description", "Date In", "Date Out"}

	roleHeaders = []string{"Role", "Description", "Access", "First Level Approvers", "Second Level Approvers"}

	slaHeaders = []string{"Property", "Value", "Value Ext", "Unit", "Element", "Driver"}

	authDefHeaders = []string{"URL", "Type"}

	customPropHeaders = []string{"Property", "Value"}
)

// basicInfoFields maps Basic Information row keys to their display
// descriptions, in emit order.
var basicInfoFields = []struct {
	Field       string
	Description string
}{
	{"version", "Contract Version"},
	{"kind", "Contract Kind"},
	{"apiVersion", "API Version"},
	{"id", "Unique Identifier"},
	{"name", "Contract Name"},
	{"tenant", "Tenant"},
	{"status", "Status"},
	{"dataProduct", "Data Product"},
	{"domain", "Domain"},
	{"slaDefaultElement", "SLA Default Element"},
	{"contractCreatedTs", "Created Timestamp"},
}

// RuleLevel says whether a quality rule hangs off a schema object or one of
// its properties. The level is stored explicitly in the Quality Rules sheet,
// never inferred.
type RuleLevel string

const (
	LevelObject   RuleLevel = "object"
	LevelProperty RuleLevel = "property"
)

// ObjectKey identifies a schema object across sheets.
type ObjectKey struct {
	Object string
}

// PropertyKey identifies a property row: the same property name may appear
// under many objects, so the object name is part of the key.
type PropertyKey struct {
	Object   string
	Property string
}

// RuleKey identifies a quality rule row. Property is empty for object-level
// rules.
type RuleKey struct {
	Object   string
	Property string
	Level    RuleLevel
}

// PropertyKey returns the join key of the rule's owning property.
// Only meaningful for property-level rules.
func (k RuleKey) PropertyKey() PropertyKey {
	return PropertyKey{Object: k.Object, Property: k.Property}
}

// IsObjectLevel reports whether the rule attaches to the object itself.
// Rules without a property name attach to the object regardless of level.
func (k RuleKey) IsObjectLevel() bool {
	return k.Level == LevelObject || k.Property == ""
}

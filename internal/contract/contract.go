// Package contract defines the in-memory model of an ODCS data contract and
// the structural checks that guard it.
//
// The model mirrors the Open Data Contract Standard document tree: a root
// Document with scalar identity fields and optional nested collections
// (servers, schema objects, properties, quality rules, team, SLAs, custom
// properties). The package is pure data plus validation; it performs no I/O.
//
// Validation is advisory by design: a document that fails validation is still
// usable. Callers receive a ValidationResult listing every violation and
// decide whether to surface it.
package contract

// Document is the root of an ODCS data contract.
type Document struct {
	Version    string `json:"version" yaml:"version"`
	Kind       string `json:"kind" yaml:"kind"`
	APIVersion string `json:"apiVersion" yaml:"apiVersion"`
	ID         string `json:"id" yaml:"id"`
	Status     string `json:"status" yaml:"status"`

	Name              string `json:"name,omitempty" yaml:"name,omitempty"`
	Tenant            string `json:"tenant,omitempty" yaml:"tenant,omitempty"`
	DataProduct       string `json:"dataProduct,omitempty" yaml:"dataProduct,omitempty"`
	Domain            string `json:"domain,omitempty" yaml:"domain,omitempty"`
	SLADefaultElement string `json:"slaDefaultElement,omitempty" yaml:"slaDefaultElement,omitempty"`
	ContractCreatedTs string `json:"contractCreatedTs,omitempty" yaml:"contractCreatedTs,omitempty"`

	Tags                     []string                  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description              *Description              `json:"description,omitempty" yaml:"description,omitempty"`
	Servers                  []Server                  `json:"servers,omitempty" yaml:"servers,omitempty"`
	Schema                   []SchemaObject            `json:"schema,omitempty" yaml:"schema,omitempty"`
	Support                  []SupportItem             `json:"support,omitempty" yaml:"support,omitempty"`
	Price                    *Pricing                  `json:"price,omitempty" yaml:"price,omitempty"`
	Team                     []TeamMember              `json:"team,omitempty" yaml:"team,omitempty"`
	Roles                    []Role                    `json:"roles,omitempty" yaml:"roles,omitempty"`
	SLAProperties            []SLAProperty             `json:"slaProperties,omitempty" yaml:"slaProperties,omitempty"`
	AuthoritativeDefinitions []AuthoritativeDefinition `json:"authoritativeDefinitions,omitempty" yaml:"authoritativeDefinitions,omitempty"`
	CustomProperties         []CustomProperty          `json:"customProperties,omitempty" yaml:"customProperties,omitempty"`
}

// Description holds the free-text dataset description block.
type Description struct {
	Usage                    string                    `json:"usage,omitempty" yaml:"usage,omitempty"`
	Purpose                  string                    `json:"purpose,omitempty" yaml:"purpose,omitempty"`
	Limitations              string                    `json:"limitations,omitempty" yaml:"limitations,omitempty"`
	AuthoritativeDefinitions []AuthoritativeDefinition `json:"authoritativeDefinitions,omitempty" yaml:"authoritativeDefinitions,omitempty"`
	CustomProperties         []CustomProperty          `json:"customProperties,omitempty" yaml:"customProperties,omitempty"`
}

// Server describes one physical location of the contracted data.
// Type-specific connection fields are all optional.
type Server struct {
	Server      string `json:"server" yaml:"server"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`

	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Host     string `json:"host,omitempty" yaml:"host,omitempty"`
	Port     *int   `json:"port,omitempty" yaml:"port,omitempty"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
	Schema   string `json:"schema,omitempty" yaml:"schema,omitempty"`
	Project  string `json:"project,omitempty" yaml:"project,omitempty"`
	Catalog  string `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Format   string `json:"format,omitempty" yaml:"format,omitempty"`

	Roles            []Role           `json:"roles,omitempty" yaml:"roles,omitempty"`
	CustomProperties []CustomProperty `json:"customProperties,omitempty" yaml:"customProperties,omitempty"`
}

// SchemaObject is one dataset (table, topic, file) in the contract schema.
// Its name is the join key for every child sheet.
type SchemaObject struct {
	Name                       string `json:"name" yaml:"name"`
	LogicalType                string `json:"logicalType,omitempty" yaml:"logicalType,omitempty"`
	PhysicalName               string `json:"physicalName,omitempty" yaml:"physicalName,omitempty"`
	PhysicalType               string `json:"physicalType,omitempty" yaml:"physicalType,omitempty"`
	Description                string `json:"description,omitempty" yaml:"description,omitempty"`
	BusinessName               string `json:"businessName,omitempty" yaml:"businessName,omitempty"`
	DataGranularityDescription string `json:"dataGranularityDescription,omitempty" yaml:"dataGranularityDescription,omitempty"`

	Properties               []SchemaProperty          `json:"properties,omitempty" yaml:"properties,omitempty"`
	Tags                     []string                  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Quality                  []QualityRule             `json:"quality,omitempty" yaml:"quality,omitempty"`
	AuthoritativeDefinitions []AuthoritativeDefinition `json:"authoritativeDefinitions,omitempty" yaml:"authoritativeDefinitions,omitempty"`
	CustomProperties         []CustomProperty          `json:"customProperties,omitempty" yaml:"customProperties,omitempty"`
}

// SchemaProperty is one column/field of a SchemaObject. A property belongs to
// exactly one object; the (object name, property name) pair identifies it.
//
// Constraint flags serialize even when false, and unset key positions carry
// the -1 sentinel, matching the wire behavior of reconstructed documents.
type SchemaProperty struct {
	Name               string              `json:"name" yaml:"name"`
	LogicalType        string              `json:"logicalType,omitempty" yaml:"logicalType,omitempty"`
	LogicalTypeOptions *LogicalTypeOptions `json:"logicalTypeOptions,omitempty" yaml:"logicalTypeOptions,omitempty"`
	PhysicalType       string              `json:"physicalType,omitempty" yaml:"physicalType,omitempty"`
	PhysicalName       string              `json:"physicalName,omitempty" yaml:"physicalName,omitempty"`
	Description        string              `json:"description,omitempty" yaml:"description,omitempty"`
	BusinessName       string              `json:"businessName,omitempty" yaml:"businessName,omitempty"`

	Required             bool `json:"required" yaml:"required"`
	Unique               bool `json:"unique" yaml:"unique"`
	PrimaryKey           bool `json:"primaryKey" yaml:"primaryKey"`
	PrimaryKeyPosition   *int `json:"primaryKeyPosition,omitempty" yaml:"primaryKeyPosition,omitempty"`
	Partitioned          bool `json:"partitioned" yaml:"partitioned"`
	PartitionKeyPosition *int `json:"partitionKeyPosition,omitempty" yaml:"partitionKeyPosition,omitempty"`
	CriticalDataElement  bool `json:"criticalDataElement" yaml:"criticalDataElement"`

	Classification string `json:"classification,omitempty" yaml:"classification,omitempty"`
	EncryptedName  string `json:"encryptedName,omitempty" yaml:"encryptedName,omitempty"`

	TransformSourceObjects []string `json:"transformSourceObjects,omitempty" yaml:"transformSourceObjects,omitempty"`
	TransformLogic         string   `json:"transformLogic,omitempty" yaml:"transformLogic,omitempty"`
	TransformDescription   string   `json:"transformDescription,omitempty" yaml:"transformDescription,omitempty"`

	Examples         []any            `json:"examples,omitempty" yaml:"examples,omitempty"`
	Tags             []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Quality          []QualityRule    `json:"quality,omitempty" yaml:"quality,omitempty"`
	CustomProperties []CustomProperty `json:"customProperties,omitempty" yaml:"customProperties,omitempty"`
}

// LogicalTypeOptions constrains a property's logical type. Which fields are
// meaningful depends on the type: format/length/pattern for strings, ranges
// for numbers, item counts for arrays, property counts for objects.
type LogicalTypeOptions struct {
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	Minimum          any   `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          any   `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *bool `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *bool `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       any   `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`

	MinItems    *int  `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int  `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	UniqueItems *bool `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	MinProperties *int     `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`
	MaxProperties *int     `json:"maxProperties,omitempty" yaml:"maxProperties,omitempty"`
	Required      []string `json:"required,omitempty" yaml:"required,omitempty"`
}

// IsZero reports whether no option is set. Used to avoid emitting empty
// option rows and attaching empty option blocks.
func (o *LogicalTypeOptions) IsZero() bool {
	if o == nil {
		return true
	}
	return o.Format == "" && o.MinLength == nil && o.MaxLength == nil &&
		o.Pattern == "" && o.Minimum == nil && o.Maximum == nil &&
		o.ExclusiveMinimum == nil && o.ExclusiveMaximum == nil &&
		o.MultipleOf == nil && o.MinItems == nil && o.MaxItems == nil &&
		o.UniqueItems == nil && o.MinProperties == nil && o.MaxProperties == nil &&
		len(o.Required) == 0
}

// QualityRule is one data quality check, attached to either a schema object
// or a single property. The attachment level is explicit in the tabular form.
type QualityRule struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Dimension   string `json:"dimension,omitempty" yaml:"dimension,omitempty"`

	Rule        string `json:"rule,omitempty" yaml:"rule,omitempty"`
	ValidValues []any  `json:"validValues,omitempty" yaml:"validValues,omitempty"`

	Query          string `json:"query,omitempty" yaml:"query,omitempty"`
	Engine         string `json:"engine,omitempty" yaml:"engine,omitempty"`
	Implementation string `json:"implementation,omitempty" yaml:"implementation,omitempty"`

	MustBe                 any   `json:"mustBe,omitempty" yaml:"mustBe,omitempty"`
	MustNotBe              any   `json:"mustNotBe,omitempty" yaml:"mustNotBe,omitempty"`
	MustBeGreaterThan      any   `json:"mustBeGreaterThan,omitempty" yaml:"mustBeGreaterThan,omitempty"`
	MustBeGreaterOrEqualTo any   `json:"mustBeGreaterOrEqualTo,omitempty" yaml:"mustBeGreaterOrEqualTo,omitempty"`
	MustBeLessThan         any   `json:"mustBeLessThan,omitempty" yaml:"mustBeLessThan,omitempty"`
	MustBeLessOrEqualTo    any   `json:"mustBeLessOrEqualTo,omitempty" yaml:"mustBeLessOrEqualTo,omitempty"`
	MustBeBetween          []any `json:"mustBeBetween,omitempty" yaml:"mustBeBetween,omitempty"`
	MustNotBeBetween       []any `json:"mustNotBeBetween,omitempty" yaml:"mustNotBeBetween,omitempty"`

	Severity       string   `json:"severity,omitempty" yaml:"severity,omitempty"`
	BusinessImpact string   `json:"businessImpact,omitempty" yaml:"businessImpact,omitempty"`
	Unit           string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Method         string   `json:"method,omitempty" yaml:"method,omitempty"`
	Scheduler      string   `json:"scheduler,omitempty" yaml:"scheduler,omitempty"`
	Schedule       string   `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Tags           []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// SupportItem is one support channel for the contract.
type SupportItem struct {
	Channel       string `json:"channel" yaml:"channel"`
	URL           string `json:"url" yaml:"url"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Tool          string `json:"tool,omitempty" yaml:"tool,omitempty"`
	Scope         string `json:"scope,omitempty" yaml:"scope,omitempty"`
	InvitationURL string `json:"invitationUrl,omitempty" yaml:"invitationUrl,omitempty"`
}

// Pricing holds the optional price block.
type Pricing struct {
	PriceAmount   *float64 `json:"priceAmount,omitempty" yaml:"priceAmount,omitempty"`
	PriceCurrency string   `json:"priceCurrency,omitempty" yaml:"priceCurrency,omitempty"`
	PriceUnit     string   `json:"priceUnit,omitempty" yaml:"priceUnit,omitempty"`
}

// TeamMember is one entry in the contract's team roster.
type TeamMember struct {
	Username           string `json:"username,omitempty" yaml:"username,omitempty"`
	Name               string `json:"name,omitempty" yaml:"name,omitempty"`
	Description        string `json:"description,omitempty" yaml:"description,omitempty"`
	Role               string `json:"role,omitempty" yaml:"role,omitempty"`
	DateIn             string `json:"dateIn,omitempty" yaml:"dateIn,omitempty"`
	DateOut            string `json:"dateOut,omitempty" yaml:"dateOut,omitempty"`
	ReplacedByUsername string `json:"replacedByUsername,omitempty" yaml:"replacedByUsername,omitempty"`
}

// Role is an IAM role granting access to the data.
type Role struct {
	Role                 string           `json:"role" yaml:"role"`
	Description          string           `json:"description,omitempty" yaml:"description,omitempty"`
	Access               string           `json:"access,omitempty" yaml:"access,omitempty"`
	FirstLevelApprovers  string           `json:"firstLevelApprovers,omitempty" yaml:"firstLevelApprovers,omitempty"`
	SecondLevelApprovers string           `json:"secondLevelApprovers,omitempty" yaml:"secondLevelApprovers,omitempty"`
	CustomProperties     []CustomProperty `json:"customProperties,omitempty" yaml:"customProperties,omitempty"`
}

// SLAProperty is one service-level agreement line.
type SLAProperty struct {
	Property string `json:"property" yaml:"property"`
	Value    any    `json:"value" yaml:"value"`
	ValueExt any    `json:"valueExt,omitempty" yaml:"valueExt,omitempty"`
	Unit     string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Element  string `json:"element,omitempty" yaml:"element,omitempty"`
	Driver   string `json:"driver,omitempty" yaml:"driver,omitempty"`
}

// AuthoritativeDefinition links the contract to an external authority.
type AuthoritativeDefinition struct {
	URL  string `json:"url" yaml:"url"`
	Type string `json:"type" yaml:"type"`
}

// CustomProperty is a free-form key/value extension point.
type CustomProperty struct {
	Property string `json:"property" yaml:"property"`
	Value    any    `json:"value" yaml:"value"`
}

// ObjectByName returns the schema object with the given name, or nil.
func (d *Document) ObjectByName(name string) *SchemaObject {
	for i := range d.Schema {
		if d.Schema[i].Name == name {
			return &d.Schema[i]
		}
	}
	return nil
}

// PropertyByName returns the property with the given name, or nil.
func (o *SchemaObject) PropertyByName(name string) *SchemaProperty {
	for i := range o.Properties {
		if o.Properties[i].Name == name {
			return &o.Properties[i]
		}
	}
	return nil
}

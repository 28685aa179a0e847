package workbook

// reconstruct.go is the reverse direction: workbook -> Document.
//
// Sheets are read independently and rejoined through the key columns the
// projector wrote. Rows whose keys match nothing (a property row naming an
// unknown object, a rule row naming an unknown property) are dropped from
// the document but recorded in the ParseReport so callers can surface them.

import (
	"fmt"
	"time"

	"github.com/thiruselvaa/odcs-converter/internal/coerce"
	"github.com/thiruselvaa/odcs-converter/internal/contract"
	"github.com/xuri/excelize/v2"
)

// Warning flags a workbook row that could not be fully honored.
type Warning struct {
	Sheet   string
	Row     int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s row %d: %s", w.Sheet, w.Row, w.Message)
}

// ParseReport collects non-fatal issues found while reconstructing.
type ParseReport struct {
	Warnings []Warning
}

func (r *ParseReport) warnf(sheet string, row int, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Sheet:   sheet,
		Row:     row,
		Message: fmt.Sprintf(format, args...),
	})
}

// timestampLayouts are tried in order when parsing contractCreatedTs.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Reconstruct assembles a document from a workbook. Missing sheets are
// treated as empty. The error return covers unreadable workbooks only;
// per-row problems land in the report.
func Reconstruct(f *excelize.File) (*contract.Document, *ParseReport, error) {
	doc := &contract.Document{}
	report := &ParseReport{}

	steps := []func(*excelize.File, *contract.Document, *ParseReport) error{
		readBasicInfo,
		readTags,
		readDescription,
		readServers,
		readSchema,
		readProperties,
		readTypeOptions,
		readQualityRules,
		readSupport,
		readPricing,
		readTeam,
		readRoles,
		readSLAProperties,
		readAuthDefs,
		readCustomProperties,
	}
	for _, step := range steps {
		if err := step(f, doc, report); err != nil {
			return nil, nil, err
		}
	}

	return doc, report, nil
}

func readBasicInfo(f *excelize.File, doc *contract.Document, report *ParseReport) error {
	rows, err := loadSheet(f, SheetBasicInfo)
	if err != nil {
		return err
	}
	for _, row := range rows {
		value := row.Get("Value")
		if value == "" {
			continue
		}
		switch row.Get("Field") {
		case "version":
			doc.Version = value
		case "kind":
			doc.Kind = value
		case "apiVersion":
			doc.APIVersion = value
		case "id":
			doc.ID = value
		case "name":
			doc.Name = value
		case "tenant":
			doc.Tenant = value
		case "status":
			doc.Status = value
		case "dataProduct":
			doc.DataProduct = value
		case "domain":
			doc.Domain = value
		case "slaDefaultElement":
			doc.SLADefaultElement = value
		case "contractCreatedTs":
			doc.ContractCreatedTs = parseTimestamp(value, row.Number, report)
		}
	}
	return nil
}

// parseTimestamp normalizes a created-timestamp cell to RFC 3339. Values
// that parse under no known layout are kept verbatim with a warning rather
// than discarded.
func parseTimestamp(value string, rowNum int, report *ParseReport) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(time.RFC3339)
		}
	}
	report.warnf(SheetBasicInfo, rowNum, "unrecognized timestamp %q kept as-is", value)
	return value
}

func readTags(f *excelize.File, doc *contract.Document, _ *ParseReport) error {
	rows, err := loadSheet(f, SheetTags)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if tag := row.Get("Tag"); tag != "" {
			doc.Tags = append(doc.Tags, tag)
		}
	}
	return nil
}

func readDescription(f *excelize.File, doc *contract.Document, _ *ParseReport) error {
	rows, err := loadSheet(f, SheetDescription)
	if err != nil {
		return err
	}
	desc := contract.Description{}
	found := false
	for _, row := range rows {
		value := row.Get("Value")
		if value == "" {
			continue
		}
		switch row.Get("Field") {
		case "usage":
			desc.Usage = value
			found = true
		case "purpose":
			desc.Purpose = value
			found = true
		case "limitations":
			desc.Limitations = value
			found = true
		}
	}
	if found {
		doc.Description = &desc
	}
	return nil
}

func readServers(f *excelize.File, doc *contract.Document, report *ParseReport) error {
	rows, err := loadSheet(f, SheetServers)
	if err != nil {
		return err
	}
	for _, row := range rows {
		srv := contract.Server{
			Server:      row.Get("Server"),
			Type:        row.Get("Type"),
			Description: row.Get("Description"),
			Environment: row.Get("Environment"),
			Location:    row.Get("Location"),
			Host:        row.Get("Host"),
			Database:    row.Get("Database"),
		}
		if row.Has("Port") {
			if n, ok := coerce.Number(row.Get("Port")).(int64); ok {
				port := int(n)
				srv.Port = &port
			} else {
				report.warnf(SheetServers, row.Number, "port %q is not a number", row.Get("Port"))
			}
		}
		doc.Servers = append(doc.Servers, srv)
	}
	return nil
}

func readSchema(f *excelize.File, doc *contract.Document, _ *ParseReport) error {
	rows, err := loadSheet(f, SheetSchema)
	if err != nil {
		return err
	}
	for _, row := range rows {
		name := row.Get("Object Name")
		if name == "" {
			continue
		}
		doc.Schema = append(doc.Schema, contract.SchemaObject{
			Name:                       name,
			PhysicalName:               row.Get("Physical Name"),
			LogicalType:                row.Get("Logical Type"),
			PhysicalType:               row.Get("Physical Type"),
			Description:                row.Get("Description"),
			BusinessName:               row.Get("Business Name"),
			DataGranularityDescription: row.Get("Data Granularity"),
			Tags:                       coerce.SplitList(row.Get("Tags")),
		})
	}
	return nil
}

func readProperties(f *excelize.File, doc *contract.Document, report *ParseReport) error {
	rows, err := loadSheet(f, SheetProperties)
	if err != nil {
		return err
	}
	for _, row := range rows {
		obj := doc.ObjectByName(row.Get("Object Name"))
		if obj == nil {
			report.warnf(SheetProperties, row.Number,
				"property %q references unknown object %q, dropped",
				row.Get("Property Name"), row.Get("Object Name"))
			continue
		}
		name := row.Get("Property Name")
		if name == "" {
			continue
		}

		pkPos := coerce.Int(row.Get("PK Position"))
		partPos := coerce.Int(row.Get("Partition Position"))
		prop := contract.SchemaProperty{
			Name:         name,
			LogicalType:  row.Get("Logical Type"),
			PhysicalType: row.Get("Physical Type"),
			PhysicalName: row.Get("Physical Name"),
			Description:  row.Get("Description"),
			BusinessName: row.Get("Business Name"),

			Required:             coerce.Bool(row.Get("Required")),
			Unique:               coerce.Bool(row.Get("Unique")),
			PrimaryKey:           coerce.Bool(row.Get("Primary Key")),
			PrimaryKeyPosition:   &pkPos,
			Partitioned:          coerce.Bool(row.Get("Partitioned")),
			PartitionKeyPosition: &partPos,
			CriticalDataElement:  coerce.Bool(row.Get("Critical Data Element")),

			Classification: row.Get("Classification"),
			EncryptedName:  row.Get("Encrypted Name"),

			TransformSourceObjects: coerce.SplitList(row.Get("Transform Sources")),
			TransformLogic:         row.Get("Transform Logic"),
			TransformDescription:   row.Get("Transform Description"),

			Tags: coerce.SplitList(row.Get("Tags")),
		}
		for _, example := range coerce.SplitList(row.Get("Examples")) {
			prop.Examples = append(prop.Examples, example)
		}
		obj.Properties = append(obj.Properties, prop)
	}
	return nil
}

func readTypeOptions(f *excelize.File, doc *contract.Document, report *ParseReport) error {
	rows, err := loadSheet(f, SheetTypeOptions)
	if err != nil {
		return err
	}
	for _, row := range rows {
		key := PropertyKey{Object: row.Get("Object Name"), Property: row.Get("Property Name")}
		prop := findProperty(doc, key)
		if prop == nil {
			report.warnf(SheetTypeOptions, row.Number,
				"type options reference unknown property %s.%s, dropped",
				key.Object, key.Property)
			continue
		}

		opts := contract.LogicalTypeOptions{
			Format:           row.Get("Format"),
			MinLength:        optionalInt(row, "Min Length"),
			MaxLength:        optionalInt(row, "Max Length"),
			Pattern:          row.Get("Pattern"),
			Minimum:          optionalNumber(row, "Minimum"),
			Maximum:          optionalNumber(row, "Maximum"),
			ExclusiveMinimum: optionalBool(row, "Exclusive Minimum"),
			ExclusiveMaximum: optionalBool(row, "Exclusive Maximum"),
			MultipleOf:       optionalNumber(row, "Multiple Of"),
			MinItems:         optionalInt(row, "Min Items"),
			MaxItems:         optionalInt(row, "Max Items"),
			UniqueItems:      optionalBool(row, "Unique Items"),
			MinProperties:    optionalInt(row, "Min Properties"),
			MaxProperties:    optionalInt(row, "Max Properties"),
			Required:         coerce.SplitList(row.Get("Required Properties")),
		}
		if !opts.IsZero() {
			prop.LogicalTypeOptions = &opts
		}
	}
	return nil
}

func readQualityRules(f *excelize.File, doc *contract.Document, report *ParseReport) error {
	rows, err := loadSheet(f, SheetQualityRules)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if !row.Has("Name") && !row.Has("Description") {
			continue
		}

		rule := contract.QualityRule{
			Name:        row.Get("Name"),
			Description: row.Get("Description"),
			Type:        row.Get("Type"),
			Dimension:   row.Get("Dimension"),
			Rule:        row.Get("Rule"),

			Severity:       row.Get("Severity"),
			BusinessImpact: row.Get("Business Impact"),
			Unit:           row.Get("Unit"),

			Query:          row.Get("Query"),
			Engine:         row.Get("Engine"),
			Implementation: row.Get("Implementation"),

			MustBe:                 optionalNumber(row, "Must Be"),
			MustNotBe:              optionalNumber(row, "Must Not Be"),
			MustBeGreaterThan:      optionalNumber(row, "Must Be Greater Than"),
			MustBeGreaterOrEqualTo: optionalNumber(row, "Must Be Greater Or Equal"),
			MustBeLessThan:         optionalNumber(row, "Must Be Less Than"),
			MustBeLessOrEqualTo:    optionalNumber(row, "Must Be Less Or Equal"),
			MustBeBetween:          numberList(row.Get("Must Be Between")),
			MustNotBeBetween:       numberList(row.Get("Must Not Be Between")),

			Method:    row.Get("Method"),
			Scheduler: row.Get("Scheduler"),
			Schedule:  row.Get("Schedule"),
			Tags:      coerce.SplitList(row.Get("Tags")),
		}
		// Valid values stay trimmed strings; enum members like "01" must not
		// collapse into numbers.
		for _, v := range coerce.SplitList(row.Get("Valid Values")) {
			rule.ValidValues = append(rule.ValidValues, v)
		}
		if rule.Type == "" {
			rule.Type = "library"
		}

		key := RuleKey{
			Object:   row.Get("Object Name"),
			Property: row.Get("Property Name"),
			Level:    RuleLevel(row.Get("Level")),
		}
		obj := doc.ObjectByName(key.Object)
		if obj == nil {
			report.warnf(SheetQualityRules, row.Number,
				"quality rule %q references unknown object %q, dropped", rule.Name, key.Object)
			continue
		}
		if key.IsObjectLevel() {
			obj.Quality = append(obj.Quality, rule)
			continue
		}
		prop := obj.PropertyByName(key.Property)
		if prop == nil {
			report.warnf(SheetQualityRules, row.Number,
				"quality rule %q references unknown property %s.%s, dropped",
				rule.Name, key.Object, key.Property)
			continue
		}
		prop.Quality = append(prop.Quality, rule)
	}
	return nil
}

func readSupport(f *excelize.File, doc *contract.Document, _ *ParseReport) error {
	rows, err := loadSheet(f, SheetSupport)
	if err != nil {
		return err
	}
	for _, row := range rows {
		doc.Support = append(doc.Support, contract.SupportItem{
			Channel:     row.Get("Channel"),
			URL:         row.Get("URL"),
			Description: row.Get("Description"),
			Tool:        row.Get("Tool"),
			Scope:       row.Get("Scope"),
		})
	}
	return nil
}

func readPricing(f *excelize.File, doc *contract.Document, report *ParseReport) error {
	rows, err := loadSheet(f, SheetPricing)
	if err != nil {
		return err
	}
	price := contract.Pricing{}
	found := false
	for _, row := range rows {
		value := row.Get("Value")
		if value == "" {
			continue
		}
		switch row.Get("Field") {
		case "priceAmount":
			switch n := coerce.Number(value).(type) {
			case float64:
				price.PriceAmount = &n
				found = true
			case int64:
				v := float64(n)
				price.PriceAmount = &v
				found = true
			default:
				report.warnf(SheetPricing, row.Number, "price amount %q is not a number", value)
			}
		case "priceCurrency":
			price.PriceCurrency = value
			found = true
		case "priceUnit":
			price.PriceUnit = value
			found = true
		}
	}
	if found {
		doc.Price = &price
	}
	return nil
}

func readTeam(f *excelize.File, doc *contract.Document, _ *ParseReport) error {
	rows, err := loadSheet(f, SheetTeam)
	if err != nil {
		return err
	}
	for _, row := range rows {
		doc.Team = append(doc.Team, contract.TeamMember{
			Username:    row.Get("Username"),
			Name:        row.Get("Name"),
			Role:        row.Get("Role"),
			Description: row.Get("Description"),
			DateIn:      row.Get("Date In"),
			DateOut:     row.Get("Date Out"),
		})
	}
	return nil
}

func readRoles(f *excelize.File, doc *contract.Document, _ *ParseReport) error {
	rows, err := loadSheet(f, SheetRoles)
	if err != nil {
		return err
	}
	for _, row := range rows {
		doc.Roles = append(doc.Roles, contract.Role{
			Role:                 row.Get("Role"),
			Description:          row.Get("Description"),
			Access:               row.Get("Access"),
			FirstLevelApprovers:  row.Get("First Level Approvers"),
			SecondLevelApprovers: row.Get("Second Level Approvers"),
		})
	}
	return nil
}

func readSLAProperties(f *excelize.File, doc *contract.Document, _ *ParseReport) error {
	rows, err := loadSheet(f, SheetSLA)
	if err != nil {
		return err
	}
	for _, row := range rows {
		sla := contract.SLAProperty{
			Property: row.Get("Property"),
			Value:    coerce.Coerce(row.Get("Value")),
			Unit:     row.Get("Unit"),
			Element:  row.Get("Element"),
			Driver:   row.Get("Driver"),
		}
		if row.Has("Value Ext") {
			sla.ValueExt = coerce.Coerce(row.Get("Value Ext"))
		}
		doc.SLAProperties = append(doc.SLAProperties, sla)
	}
	return nil
}

func readAuthDefs(f *excelize.File, doc *contract.Document, _ *ParseReport) error {
	rows, err := loadSheet(f, SheetAuthDefs)
	if err != nil {
		return err
	}
	for _, row := range rows {
		doc.AuthoritativeDefinitions = append(doc.AuthoritativeDefinitions, contract.AuthoritativeDefinition{
			URL:  row.Get("URL"),
			Type: row.Get("Type"),
		})
	}
	return nil
}

func readCustomProperties(f *excelize.File, doc *contract.Document, _ *ParseReport) error {
	rows, err := loadSheet(f, SheetCustomProps)
	if err != nil {
		return err
	}
	for _, row := range rows {
		doc.CustomProperties = append(doc.CustomProperties, contract.CustomProperty{
			Property: row.Get("Property"),
			Value:    coerce.Coerce(row.Get("Value")),
		})
	}
	return nil
}

func findProperty(doc *contract.Document, key PropertyKey) *contract.SchemaProperty {
	obj := doc.ObjectByName(key.Object)
	if obj == nil {
		return nil
	}
	return obj.PropertyByName(key.Property)
}

func optionalInt(row Row, header string) *int {
	if !row.Has(header) {
		return nil
	}
	n := coerce.Int(row.Get(header))
	return &n
}

func optionalBool(row Row, header string) *bool {
	if !row.Has(header) {
		return nil
	}
	b := coerce.Bool(row.Get(header))
	return &b
}

func optionalNumber(row Row, header string) any {
	if !row.Has(header) {
		return nil
	}
	return coerce.Number(row.Get(header))
}

func numberList(cell string) []any {
	parts := coerce.SplitList(cell)
	if len(parts) == 0 {
		return nil
	}
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		if n := coerce.Number(p); n != nil {
			out = append(out, n)
		}
	}
	return out
}

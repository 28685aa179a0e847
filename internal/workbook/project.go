package workbook

// project.go is the forward direction: Document -> workbook.
//
// The projector walks the document tree once and emits one row per entity
// instance into the sheet for its class. Every child row carries the key
// columns of its parent (object name, property name, rule level) so the
// reverse direction can rejoin the tree; dropping a key column here makes
// reconstruction lossy. The input document is never mutated.

import (
	"fmt"
	"strings"

	"github.com/thiruselvaa/odcs-converter/internal/coerce"
	"github.com/thiruselvaa/odcs-converter/internal/contract"
	"github.com/xuri/excelize/v2"
)

// Project converts a document into a new multi-sheet workbook.
func Project(doc *contract.Document) (*excelize.File, error) {
	f := excelize.NewFile()

	style, err := headerStyle(f)
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	writers := []func(*excelize.File, int, *contract.Document) error{
		writeBasicInfo,
		writeTags,
		writeDescription,
		writeServers,
		writeSchema,
		writeProperties,
		writeTypeOptions,
		writeQualityRules,
		writeSupport,
		writePricing,
		writeTeam,
		writeRoles,
		writeSLAProperties,
		writeAuthDefs,
		writeCustomProperties,
	}
	for _, write := range writers {
		if err := write(f, style, doc); err != nil {
			return nil, err
		}
	}

	// Drop the default sheet and land the reader on Basic Information.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if idx, err := f.GetSheetIndex(SheetBasicInfo); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	return f, nil
}

func writeBasicInfo(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetBasicInfo, style)
	if err != nil {
		return err
	}
	if err := w.writeHeader(basicInfoHeaders); err != nil {
		return err
	}

	values := map[string]string{
		"version":           doc.Version,
		"kind":              doc.Kind,
		"apiVersion":        doc.APIVersion,
		"id":                doc.ID,
		"name":              doc.Name,
		"tenant":            doc.Tenant,
		"status":            doc.Status,
		"dataProduct":       doc.DataProduct,
		"domain":            doc.Domain,
		"slaDefaultElement": doc.SLADefaultElement,
		"contractCreatedTs": doc.ContractCreatedTs,
	}
	for _, field := range basicInfoFields {
		if err := w.writeRow([]any{field.Field, values[field.Field], field.Description}); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeTags(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetTags, style)
	if err != nil {
		return err
	}
	if err := w.writeHeader(tagsHeaders); err != nil {
		return err
	}
	for _, tag := range doc.Tags {
		if err := w.writeRow([]any{tag}); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeDescription(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetDescription, style)
	if err != nil {
		return err
	}
	if err := w.writeHeader(descriptionHeaders); err != nil {
		return err
	}

	desc := doc.Description
	if desc == nil {
		desc = &contract.Description{}
	}
	rows := [][2]string{
		{"usage", desc.Usage},
		{"purpose", desc.Purpose},
		{"limitations", desc.Limitations},
	}
	for _, row := range rows {
		if err := w.writeRow([]any{row[0], row[1]}); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeServers(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetServers, style)
	if err != nil {
		return err
	}
	if len(doc.Servers) == 0 {
		return w.placeholder("No servers defined")
	}
	if err := w.writeHeader(serverHeaders); err != nil {
		return err
	}
	for _, srv := range doc.Servers {
		row := []any{
			srv.Server, srv.Type, srv.Description, srv.Environment,
			srv.Location, srv.Host, intCell(srv.Port), srv.Database,
		}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeSchema(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetSchema, style)
	if err != nil {
		return err
	}
	if len(doc.Schema) == 0 {
		return w.placeholder("No schema objects defined")
	}
	if err := w.writeHeader(schemaHeaders); err != nil {
		return err
	}
	for _, obj := range doc.Schema {
		row := []any{
			obj.Name, obj.PhysicalName, obj.LogicalType, obj.PhysicalType,
			obj.Description, obj.BusinessName, obj.DataGranularityDescription,
			coerce.JoinList(obj.Tags),
			len(obj.Quality), len(obj.Properties), len(obj.AuthoritativeDefinitions),
		}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeProperties(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetProperties, style)
	if err != nil {
		return err
	}

	var rows [][]any
	for _, obj := range doc.Schema {
		for _, prop := range obj.Properties {
			key := PropertyKey{Object: obj.Name, Property: prop.Name}
			rows = append(rows, propertyRow(key, prop))
		}
	}
	if len(rows) == 0 {
		return w.placeholder("No schema properties defined")
	}

	if err := w.writeHeader(propertyHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

// propertyRow builds one Schema Properties row in header order.
func propertyRow(key PropertyKey, prop contract.SchemaProperty) []any {
	return []any{
		key.Object, key.Property,
		prop.LogicalType, prop.PhysicalType, prop.PhysicalName,
		prop.Description, prop.BusinessName,
		prop.Required, prop.Unique, prop.PrimaryKey,
		positionCell(prop.PrimaryKeyPosition),
		prop.Partitioned, positionCell(prop.PartitionKeyPosition),
		prop.Classification, prop.EncryptedName, prop.CriticalDataElement,
		coerce.JoinList(prop.TransformSourceObjects),
		prop.TransformLogic, prop.TransformDescription,
		joinValues(prop.Examples), coerce.JoinList(prop.Tags),
		len(prop.Quality), 0,
	}
}

func writeTypeOptions(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetTypeOptions, style)
	if err != nil {
		return err
	}

	var rows [][]any
	for _, obj := range doc.Schema {
		for _, prop := range obj.Properties {
			if prop.LogicalTypeOptions.IsZero() {
				continue
			}
			key := PropertyKey{Object: obj.Name, Property: prop.Name}
			rows = append(rows, typeOptionRow(key, prop.LogicalType, prop.LogicalTypeOptions))
		}
	}
	if len(rows) == 0 {
		return w.placeholder("No logical type options defined")
	}

	if err := w.writeHeader(typeOptionHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

// typeOptionRow builds one Logical Type Options row in header order.
func typeOptionRow(key PropertyKey, logicalType string, o *contract.LogicalTypeOptions) []any {
	return []any{
		key.Object, key.Property, logicalType,
		o.Format, intCell(o.MinLength), intCell(o.MaxLength), o.Pattern,
		anyCell(o.Minimum), anyCell(o.Maximum),
		boolCell(o.ExclusiveMinimum), boolCell(o.ExclusiveMaximum),
		anyCell(o.MultipleOf),
		intCell(o.MinItems), intCell(o.MaxItems), boolCell(o.UniqueItems),
		intCell(o.MinProperties), intCell(o.MaxProperties),
		coerce.JoinList(o.Required),
	}
}

func writeQualityRules(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetQualityRules, style)
	if err != nil {
		return err
	}

	var rows [][]any
	for _, obj := range doc.Schema {
		for _, rule := range obj.Quality {
			key := RuleKey{Object: obj.Name, Level: LevelObject}
			rows = append(rows, qualityRow(key, rule))
		}
		for _, prop := range obj.Properties {
			for _, rule := range prop.Quality {
				key := RuleKey{Object: obj.Name, Property: prop.Name, Level: LevelProperty}
				rows = append(rows, qualityRow(key, rule))
			}
		}
	}
	if len(rows) == 0 {
		return w.placeholder("No quality rules defined")
	}

	if err := w.writeHeader(qualityHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

// qualityRow builds one Quality Rules row in header order.
func qualityRow(key RuleKey, rule contract.QualityRule) []any {
	return []any{
		key.Object, key.Property, string(key.Level),
		rule.Name, rule.Description, rule.Type, rule.Rule, rule.Dimension,
		rule.Severity, rule.BusinessImpact, rule.Unit,
		joinValues(rule.ValidValues),
		rule.Query, rule.Engine, rule.Implementation,
		anyCell(rule.MustBe), anyCell(rule.MustNotBe),
		anyCell(rule.MustBeGreaterThan), anyCell(rule.MustBeGreaterOrEqualTo),
		anyCell(rule.MustBeLessThan), anyCell(rule.MustBeLessOrEqualTo),
		joinValues(rule.MustBeBetween), joinValues(rule.MustNotBeBetween),
		rule.Method, rule.Scheduler, rule.Schedule,
		coerce.JoinList(rule.Tags),
	}
}

func writeSupport(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetSupport, style)
	if err != nil {
		return err
	}
	if len(doc.Support) == 0 {
		return w.placeholder("No support channels defined")
	}
	if err := w.writeHeader(supportHeaders); err != nil {
		return err
	}
	for _, item := range doc.Support {
		row := []any{item.Channel, item.URL, item.Description, item.Tool, item.Scope}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

func writePricing(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetPricing, style)
	if err != nil {
		return err
	}
	if err := w.writeHeader(pricingHeaders); err != nil {
		return err
	}

	price := doc.Price
	if price == nil {
		price = &contract.Pricing{}
	}
	rows := [][]any{
		{"priceAmount", floatCell(price.PriceAmount)},
		{"priceCurrency", price.PriceCurrency},
		{"priceUnit", price.PriceUnit},
	}
	for _, row := range rows {
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeTeam(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetTeam, style)
	if err != nil {
		return err
	}
	if len(doc.Team) == 0 {
		return w.placeholder("No team members defined")
	}
	if err := w.writeHeader(teamHeaders); err != nil {
		return err
	}
	for _, member := range doc.Team {
		row := []any{
			member.Username, member.Name, member.Role,
			member.Description, member.DateIn, member.DateOut,
		}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeRoles(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetRoles, style)
	if err != nil {
		return err
	}
	if len(doc.Roles) == 0 {
		return w.placeholder("No roles defined")
	}
	if err := w.writeHeader(roleHeaders); err != nil {
		return err
	}
	for _, role := range doc.Roles {
		row := []any{
			role.Role, role.Description, role.Access,
			role.FirstLevelApprovers, role.SecondLevelApprovers,
		}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeSLAProperties(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetSLA, style)
	if err != nil {
		return err
	}
	if len(doc.SLAProperties) == 0 {
		return w.placeholder("No SLA properties defined")
	}
	if err := w.writeHeader(slaHeaders); err != nil {
		return err
	}
	for _, sla := range doc.SLAProperties {
		row := []any{
			sla.Property, anyCell(sla.Value), anyCell(sla.ValueExt),
			sla.Unit, sla.Element, sla.Driver,
		}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeAuthDefs(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetAuthDefs, style)
	if err != nil {
		return err
	}
	if len(doc.AuthoritativeDefinitions) == 0 {
		return w.placeholder("No authoritative definitions defined")
	}
	if err := w.writeHeader(authDefHeaders); err != nil {
		return err
	}
	for _, def := range doc.AuthoritativeDefinitions {
		if err := w.writeRow([]any{def.URL, def.Type}); err != nil {
			return err
		}
	}
	return w.finish()
}

func writeCustomProperties(f *excelize.File, style int, doc *contract.Document) error {
	w, err := newSheetWriter(f, SheetCustomProps, style)
	if err != nil {
		return err
	}
	if len(doc.CustomProperties) == 0 {
		return w.placeholder("No custom properties defined")
	}
	if err := w.writeHeader(customPropHeaders); err != nil {
		return err
	}
	for _, cp := range doc.CustomProperties {
		if err := w.writeRow([]any{cp.Property, anyCell(cp.Value)}); err != nil {
			return err
		}
	}
	return w.finish()
}

// Cell helpers: optional values render as empty cells, except key positions
// which carry the -1 "unset" sentinel on the wire.

func intCell(p *int) any {
	if p == nil {
		return ""
	}
	return *p
}

func positionCell(p *int) any {
	if p == nil {
		return -1
	}
	return *p
}

func boolCell(p *bool) any {
	if p == nil {
		return ""
	}
	return *p
}

func floatCell(p *float64) any {
	if p == nil {
		return ""
	}
	return *p
}

func anyCell(v any) any {
	if v == nil {
		return ""
	}
	return v
}

// joinValues comma-joins a heterogeneous list for a single cell.
func joinValues(items []any) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/thiruselvaa/odcs-converter/internal/contract"
)

func intPtr(i int) *int          { return &i }
func boolPtr(b bool) *bool       { return &b }
func floatPtr(f float64) *float64 { return &f }

func sampleDocument() *contract.Document {
	return &contract.Document{
		Version:           "1.0.0",
		Kind:              contract.KindDataContract,
		APIVersion:        "v3.0.2",
		ID:                "orders-contract",
		Name:              "Orders",
		Tenant:            "retail",
		Status:            "active",
		Domain:            "sales",
		ContractCreatedTs: "2024-03-01T10:00:00Z",
		Tags:              []string{"orders", "core"},
		Description: &contract.Description{
			Usage:   "Analytics on completed orders.",
			Purpose: "Single source of truth for order facts.",
		},
		Servers: []contract.Server{{
			Server:      "prod",
			Type:        "postgresql",
			Environment: "production",
			Host:        "db.internal",
			Port:        intPtr(5432),
			Database:    "orders",
		}},
		Schema: []contract.SchemaObject{{
			Name:         "orders",
			PhysicalName: "orders_v1",
			LogicalType:  "object",
			PhysicalType: "table",
			Tags:         []string{"fact"},
			Quality: []contract.QualityRule{{
				Name:      "row-count",
				Dimension: "completeness",
				Type:      "library",
				Rule:      "rowCount",
				MustBeGreaterThan: int64(0),
			}},
			Properties: []contract.SchemaProperty{{
				Name:               "id",
				LogicalType:        "integer",
				PhysicalType:       "bigint",
				Required:           true,
				Unique:             true,
				PrimaryKey:         true,
				PrimaryKeyPosition: intPtr(1),
				Examples:           []any{"1001", "1002"},
				LogicalTypeOptions: &contract.LogicalTypeOptions{
					Minimum:          int64(1),
					ExclusiveMinimum: boolPtr(false),
				},
				Quality: []contract.QualityRule{{
					Name:          "id-range",
					Dimension:     "accuracy",
					Type:          "library",
					MustBeBetween: []any{int64(1), int64(1000000)},
				}},
			}},
		}},
		Support: []contract.SupportItem{{
			Channel: "ops", URL: "https://chat.example.com/ops", Tool: "slack",
		}},
		Price: &contract.Pricing{
			PriceAmount: floatPtr(9.95), PriceCurrency: "USD", PriceUnit: "megabyte",
		},
		Team: []contract.TeamMember{{
			Username: "mhopper", Name: "M. Hopper", Role: "owner", DateIn: "2023-01-15",
		}},
		Roles: []contract.Role{{
			Role: "orders_reader", Access: "read", FirstLevelApprovers: "data-office",
		}},
		SLAProperties: []contract.SLAProperty{{
			Property: "latency", Value: int64(4), Unit: "d", Element: "orders.order_ts",
		}},
		AuthoritativeDefinitions: []contract.AuthoritativeDefinition{{
			URL: "https://wiki.example.com/orders", Type: "businessDefinition",
		}},
		CustomProperties: []contract.CustomProperty{{
			Property: "refRulesetId", Value: int64(53581),
		}},
	}
}

func TestProjectSheetLayout(t *testing.T) {
	f, err := Project(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, SheetOrder, f.GetSheetList())

	// Header row of a populated sheet.
	rows, err := f.GetRows(SheetServers)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, serverHeaders, rows[0])
}

func TestProjectEmptySectionsGetPlaceholders(t *testing.T) {
	doc := &contract.Document{
		Version: "1.0.0", Kind: contract.KindDataContract,
		APIVersion: "v3.0.2", ID: "c1", Status: "draft",
	}
	f, err := Project(doc)
	require.NoError(t, err)

	placeholders := map[string]string{
		SheetServers:      "No servers defined",
		SheetSchema:       "No schema objects defined",
		SheetProperties:   "No schema properties defined",
		SheetTypeOptions:  "No logical type options defined",
		SheetQualityRules: "No quality rules defined",
		SheetSupport:      "No support channels defined",
		SheetTeam:         "No team members defined",
		SheetRoles:        "No roles defined",
		SheetSLA:          "No SLA properties defined",
		SheetAuthDefs:     "No authoritative definitions defined",
		SheetCustomProps:  "No custom properties defined",
	}
	for sheet, want := range placeholders {
		got, err := f.GetCellValue(sheet, "A1")
		require.NoError(t, err, sheet)
		assert.Equal(t, want, got, sheet)
	}

	// Basic Information always carries its full field list.
	rows, err := f.GetRows(SheetBasicInfo)
	require.NoError(t, err)
	assert.Len(t, rows, 1+len(basicInfoFields))
}

func TestRoundTrip(t *testing.T) {
	f, err := Project(sampleDocument())
	require.NoError(t, err)

	got, report, err := Reconstruct(f)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, contract.KindDataContract, got.Kind)
	assert.Equal(t, "v3.0.2", got.APIVersion)
	assert.Equal(t, "orders-contract", got.ID)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, "2024-03-01T10:00:00Z", got.ContractCreatedTs)
	assert.Equal(t, []string{"orders", "core"}, got.Tags)

	require.NotNil(t, got.Description)
	assert.Equal(t, "Analytics on completed orders.", got.Description.Usage)

	require.Len(t, got.Servers, 1)
	require.NotNil(t, got.Servers[0].Port)
	assert.Equal(t, 5432, *got.Servers[0].Port)

	require.Len(t, got.Schema, 1)
	obj := got.Schema[0]
	assert.Equal(t, "orders", obj.Name)
	assert.Equal(t, []string{"fact"}, obj.Tags)

	require.Len(t, obj.Quality, 1)
	assert.Equal(t, "row-count", obj.Quality[0].Name)
	assert.Equal(t, int64(0), obj.Quality[0].MustBeGreaterThan)

	require.Len(t, obj.Properties, 1)
	prop := obj.Properties[0]
	assert.Equal(t, "id", prop.Name)
	assert.True(t, prop.Required)
	assert.True(t, prop.PrimaryKey)
	require.NotNil(t, prop.PrimaryKeyPosition)
	assert.Equal(t, 1, *prop.PrimaryKeyPosition)
	require.NotNil(t, prop.PartitionKeyPosition, "unset positions come back as the -1 sentinel")
	assert.Equal(t, -1, *prop.PartitionKeyPosition)
	assert.Equal(t, []any{"1001", "1002"}, prop.Examples)

	require.NotNil(t, prop.LogicalTypeOptions)
	assert.Equal(t, int64(1), prop.LogicalTypeOptions.Minimum)
	require.NotNil(t, prop.LogicalTypeOptions.ExclusiveMinimum)
	assert.False(t, *prop.LogicalTypeOptions.ExclusiveMinimum)

	require.Len(t, prop.Quality, 1)
	assert.Equal(t, "id-range", prop.Quality[0].Name)
	assert.Equal(t, []any{int64(1), int64(1000000)}, prop.Quality[0].MustBeBetween)

	require.NotNil(t, got.Price)
	require.NotNil(t, got.Price.PriceAmount)
	assert.InDelta(t, 9.95, *got.Price.PriceAmount, 1e-9)

	require.Len(t, got.SLAProperties, 1)
	assert.Equal(t, int64(4), got.SLAProperties[0].Value)

	require.Len(t, got.CustomProperties, 1)
	assert.Equal(t, int64(53581), got.CustomProperties[0].Value)

	result := contract.Validate(got)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestRoundTripJoinAcrossObjects(t *testing.T) {
	// Two objects each own an "id" property; the join key is the pair.
	doc := &contract.Document{
		Version: "1.0.0", Kind: contract.KindDataContract,
		APIVersion: "v3.0.2", ID: "c1", Status: "active",
		Schema: []contract.SchemaObject{
			{Name: "orders", Properties: []contract.SchemaProperty{
				{Name: "id", LogicalType: "integer"},
			}},
			{Name: "customers", Properties: []contract.SchemaProperty{
				{Name: "id", LogicalType: "string"},
			}},
		},
	}

	f, err := Project(doc)
	require.NoError(t, err)
	got, report, err := Reconstruct(f)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	require.Len(t, got.Schema, 2)
	require.Len(t, got.Schema[0].Properties, 1)
	require.Len(t, got.Schema[1].Properties, 1)
	assert.Equal(t, "integer", got.Schema[0].Properties[0].LogicalType)
	assert.Equal(t, "string", got.Schema[1].Properties[0].LogicalType)
}

func TestRoundTripPreservesLiteralCellText(t *testing.T) {
	// Quotes and leading = are user data, not spreadsheet artifacts.
	doc := &contract.Document{
		Version: "1.0.0", Kind: contract.KindDataContract,
		APIVersion: "v3.0.2", ID: "c1", Status: "active",
		Description: &contract.Description{Usage: `"quoted description"`},
		Schema: []contract.SchemaObject{
			{Name: "orders", Properties: []contract.SchemaProperty{
				{Name: "total", LogicalType: "number", TransformLogic: "=price*qty"},
			}},
		},
	}

	f, err := Project(doc)
	require.NoError(t, err)
	got, report, err := Reconstruct(f)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	require.NotNil(t, got.Description)
	assert.Equal(t, `"quoted description"`, got.Description.Usage)
	require.Len(t, got.Schema, 1)
	require.Len(t, got.Schema[0].Properties, 1)
	assert.Equal(t, "=price*qty", got.Schema[0].Properties[0].TransformLogic)
}

func TestRoundTripKeepsValidValuesAsStrings(t *testing.T) {
	doc := &contract.Document{
		Version: "1.0.0", Kind: contract.KindDataContract,
		APIVersion: "v3.0.2", ID: "c1", Status: "active",
		Schema: []contract.SchemaObject{{
			Name: "orders",
			Quality: []contract.QualityRule{{
				Name: "status-domain", Type: "library", Rule: "validValues",
				ValidValues: []any{"01", "02", "cancelled"},
			}},
		}},
	}

	f, err := Project(doc)
	require.NoError(t, err)
	got, report, err := Reconstruct(f)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	require.Len(t, got.Schema, 1)
	require.Len(t, got.Schema[0].Quality, 1)
	assert.Equal(t, []any{"01", "02", "cancelled"}, got.Schema[0].Quality[0].ValidValues)
}

func TestReconstructDropsOrphanRows(t *testing.T) {
	f := excelize.NewFile()
	writeTestSheet(t, f, SheetSchema, schemaHeaders, [][]any{
		{"orders"},
	})
	writeTestSheet(t, f, SheetProperties, propertyHeaders, [][]any{
		{"orders", "id", "integer"},
		{"customers", "id", "string"}, // no such object
	})
	writeTestSheet(t, f, SheetQualityRules, qualityHeaders, [][]any{
		{"orders", "missing", "property", "r1", "checks a property that is not there"},
	})

	doc, report, err := Reconstruct(f)
	require.NoError(t, err)

	require.Len(t, doc.Schema, 1)
	assert.Len(t, doc.Schema[0].Properties, 1)
	assert.Empty(t, doc.Schema[0].Quality)

	require.Len(t, report.Warnings, 2)
	assert.Equal(t, SheetProperties, report.Warnings[0].Sheet)
	assert.Equal(t, 3, report.Warnings[0].Row)
	assert.Contains(t, report.Warnings[0].Message, "unknown object")
	assert.Equal(t, SheetQualityRules, report.Warnings[1].Sheet)
	assert.Contains(t, report.Warnings[1].Message, "unknown property")
}

func TestReconstructToleratesMissingSheets(t *testing.T) {
	f := excelize.NewFile()
	writeTestSheet(t, f, SheetBasicInfo, basicInfoHeaders, [][]any{
		{"id", "c1"},
		{"version", "1.0.0"},
	})

	doc, report, err := Reconstruct(f)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, "c1", doc.ID)
	assert.Empty(t, doc.Servers)
	assert.Empty(t, doc.Schema)
}

func TestReconstructTimestampFallback(t *testing.T) {
	f := excelize.NewFile()
	writeTestSheet(t, f, SheetBasicInfo, basicInfoHeaders, [][]any{
		{"contractCreatedTs", "sometime in March"},
	})

	doc, report, err := Reconstruct(f)
	require.NoError(t, err)
	assert.Equal(t, "sometime in March", doc.ContractCreatedTs)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0].Message, "timestamp")
}

func TestReconstructTimestampLayouts(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2024-03-01T10:00:00Z", "2024-03-01T10:00:00Z"},
		{"2024-03-01T10:00:00", "2024-03-01T10:00:00Z"},
		{"2024-03-01 10:00:00", "2024-03-01T10:00:00Z"},
	}
	for _, tt := range tests {
		f := excelize.NewFile()
		writeTestSheet(t, f, SheetBasicInfo, basicInfoHeaders, [][]any{
			{"contractCreatedTs", tt.in},
		})
		doc, report, err := Reconstruct(f)
		require.NoError(t, err)
		assert.Empty(t, report.Warnings, "input %q", tt.in)
		assert.Equal(t, tt.want, doc.ContractCreatedTs, "input %q", tt.in)
	}
}

func TestReconstructDefaultsQualityRuleType(t *testing.T) {
	f := excelize.NewFile()
	writeTestSheet(t, f, SheetSchema, schemaHeaders, [][]any{{"orders"}})
	writeTestSheet(t, f, SheetQualityRules, qualityHeaders, [][]any{
		{"orders", "", "object", "nonNull"},
	})

	doc, _, err := Reconstruct(f)
	require.NoError(t, err)
	require.Len(t, doc.Schema[0].Quality, 1)
	assert.Equal(t, "library", doc.Schema[0].Quality[0].Type)
}

func TestTemplateLayout(t *testing.T) {
	f, err := Template()
	require.NoError(t, err)

	assert.Equal(t, SheetOrder, f.GetSheetList())

	rows, err := f.GetRows(SheetBasicInfo)
	require.NoError(t, err)
	require.Len(t, rows, 1+len(basicInfoFields))
	assert.Equal(t, "version", rows[1][0])
	assert.Equal(t, "Contract Version", rows[1][2])

	rows, err = f.GetRows(SheetProperties)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, propertyHeaders, rows[0])
}

func writeTestSheet(t *testing.T, f *excelize.File, sheet string, headers []string, rows [][]any) {
	t.Helper()
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)

	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &cells))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
}

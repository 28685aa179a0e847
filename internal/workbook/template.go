package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Template builds an empty workbook with every sheet, styled headers and the
// Basic Information fields pre-filled, ready for hand editing.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()

	style, err := headerStyle(f)
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	headers := map[string][]string{
		SheetBasicInfo:    basicInfoHeaders,
		SheetTags:         tagsHeaders,
		SheetDescription:  descriptionHeaders,
		SheetServers:      serverHeaders,
		SheetSchema:       schemaHeaders,
		SheetProperties:   propertyHeaders,
		SheetTypeOptions:  typeOptionHeaders,
		SheetQualityRules: qualityHeaders,
		SheetSupport:      supportHeaders,
		SheetPricing:      pricingHeaders,
		SheetTeam:         teamHeaders,
		SheetRoles:        roleHeaders,
		SheetSLA:          slaHeaders,
		SheetAuthDefs:     authDefHeaders,
		SheetCustomProps:  customPropHeaders,
	}

	for _, sheet := range SheetOrder {
		w, err := newSheetWriter(f, sheet, style)
		if err != nil {
			return nil, err
		}
		if err := w.writeHeader(headers[sheet]); err != nil {
			return nil, err
		}

		switch sheet {
		case SheetBasicInfo:
			for _, field := range basicInfoFields {
				if err := w.writeRow([]any{field.Field, "", field.Description}); err != nil {
					return nil, err
				}
			}
		case SheetDescription:
			for _, field := range []string{"usage", "purpose", "limitations"} {
				if err := w.writeRow([]any{field, ""}); err != nil {
					return nil, err
				}
			}
		case SheetPricing:
			for _, field := range []string{"priceAmount", "priceCurrency", "priceUnit"} {
				if err := w.writeRow([]any{field, ""}); err != nil {
					return nil, err
				}
			}
		}

		if err := w.finish(); err != nil {
			return nil, err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if idx, err := f.GetSheetIndex(SheetBasicInfo); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

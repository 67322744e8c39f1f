package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/ankitable-go/pkg/ankitable/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook opens an xlsx file and extracts one sheet as a Table.
// An empty sheetName selects the first sheet.
func ReadWorkbook(path, sheetName string, trim bool) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheetName = sheets[0]
	}

	table, err := ExtractTable(f, sheetName, trim)
	if err != nil {
		return nil, err
	}
	table.Source = path + "#" + sheetName
	return table, nil
}

// ExtractTable extracts the records of a sheet. Rows are cropped to the
// sheet's print area when one is defined, otherwise to the bounding box of
// non-empty cells, and padded so every record has the same width.
// Rows that are empty within the crop are skipped.
func ExtractTable(f *excelize.File, sheetName string, trim bool) (*models.Table, error) {
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	area, ok := sheetArea(f, sheetName, rows)
	if !ok {
		return &models.Table{}, nil
	}

	table := &models.Table{}
	for r := area.R1; r <= area.R2; r++ {
		var row []string
		if r-1 < len(rows) {
			row = rows[r-1]
		}

		rec := make(models.Record, area.Cols())
		hasData := false
		for c := area.C1; c <= area.C2; c++ {
			var v string
			if c-1 < len(row) {
				v = row[c-1]
			}
			if trim {
				v = strings.TrimFunc(v, isTrimmable)
			}
			if v != "" {
				hasData = true
			}
			rec[c-area.C1] = v
		}

		if hasData {
			table.Records = append(table.Records, rec)
		}
	}

	return table, nil
}

// sheetArea picks the first print area defined for the sheet, falling back to the data bounds.
func sheetArea(f *excelize.File, sheetName string, rows [][]string) (models.CellRange, bool) {
	if areas, err := ExtractPrintAreas(f); err == nil {
		if sheetAreas := areas[sheetName]; len(sheetAreas) > 0 {
			return sheetAreas[0], true
		}
	}
	return findDataBounds(rows)
}

package parser

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ukaji3/ankitable-go/pkg/ankitable/models"
	"github.com/xuri/excelize/v2"
)

func saveWorkbook(t *testing.T, f *excelize.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	// Data starts at B2 and the last row leaves its final cell empty.
	f.SetCellValue(sheetName, "B2", "Term")
	f.SetCellValue(sheetName, "C2", "Meaning")
	f.SetCellValue(sheetName, "D2", "Note")
	f.SetCellValue(sheetName, "B3", "hola")
	f.SetCellValue(sheetName, "C3", " hello ")
	f.SetCellValue(sheetName, "D3", "¿greeting")
	f.SetCellValue(sheetName, "B5", "adiós")
	f.SetCellValue(sheetName, "C5", 42)

	path := saveWorkbook(t, f)

	table, err := ReadWorkbook(path, "", true)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}

	expected := []models.Record{
		{"Term", "Meaning", "Note"},
		{"hola", "hello", "¿greeting"},
		{"adiós", "42", ""},
	}
	if !reflect.DeepEqual(table.Records, expected) {
		t.Errorf("ReadWorkbook = %q, expected %q", table.Records, expected)
	}
	if table.Source != path+"#Sheet1" {
		t.Errorf("Source = %q", table.Source)
	}
}

func TestReadWorkbook_PrintArea(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "ignored heading")
	f.SetCellValue(sheetName, "A3", "Q")
	f.SetCellValue(sheetName, "B3", "A")
	f.SetCellValue(sheetName, "A4", "2+2")
	f.SetCellValue(sheetName, "B4", "4")
	f.SetCellValue(sheetName, "C4", "outside")
	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: "Sheet1!$A$3:$B$4",
		Scope:    sheetName,
	}); err != nil {
		t.Fatalf("SetDefinedName failed: %v", err)
	}

	path := saveWorkbook(t, f)

	table, err := ReadWorkbook(path, sheetName, true)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}

	expected := []models.Record{{"Q", "A"}, {"2+2", "4"}}
	if !reflect.DeepEqual(table.Records, expected) {
		t.Errorf("ReadWorkbook = %q, expected %q", table.Records, expected)
	}
}

func TestReadWorkbook_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	path := saveWorkbook(t, f)

	if _, err := ReadWorkbook(path, "Nope", true); err == nil {
		t.Error("ReadWorkbook accepted a missing sheet")
	}
}

func TestReadWorkbook_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	path := saveWorkbook(t, f)

	table, err := ReadWorkbook(path, "", true)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("expected empty table, got %q", table.Records)
	}
}

func TestFindDataBounds(t *testing.T) {
	rows := [][]string{
		{},
		{"", "", "x"},
		{"", "y", "", "z"},
	}
	got, ok := findDataBounds(rows)
	want := models.CellRange{R1: 2, C1: 2, R2: 3, C2: 4}
	if !ok || got != want {
		t.Errorf("findDataBounds = %+v, %v, expected %+v", got, ok, want)
	}
	if got.Rows() != 2 || got.Cols() != 3 {
		t.Errorf("Rows/Cols = %d/%d", got.Rows(), got.Cols())
	}

	if _, ok := findDataBounds([][]string{{"", ""}}); ok {
		t.Error("findDataBounds reported bounds for an empty sheet")
	}
}

func TestParsePrintAreaReference(t *testing.T) {
	tests := []struct {
		ref   string
		sheet string
		areas []models.CellRange
	}{
		{"Sheet1!$A$1:$D$10", "Sheet1", []models.CellRange{{R1: 1, C1: 1, R2: 10, C2: 4}}},
		{"'My Sheet'!$B$2:$C$3", "My Sheet", []models.CellRange{{R1: 2, C1: 2, R2: 3, C2: 3}}},
		{"Sheet1!$A$1:$B$2,Sheet1!$D$1:$E$2", "Sheet1", []models.CellRange{
			{R1: 1, C1: 1, R2: 2, C2: 2},
			{R1: 1, C1: 4, R2: 2, C2: 5},
		}},
		{"Sheet1!A1", "Sheet1", nil},
		{"$A$1:$B$2", "", nil},
	}

	for _, tt := range tests {
		sheet, areas := parsePrintAreaReference(tt.ref)
		if sheet != tt.sheet || !reflect.DeepEqual(areas, tt.areas) {
			t.Errorf("parsePrintAreaReference(%q) = (%q, %+v), expected (%q, %+v)",
				tt.ref, sheet, areas, tt.sheet, tt.areas)
		}
	}
}

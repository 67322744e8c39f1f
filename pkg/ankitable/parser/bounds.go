package parser

import (
	"github.com/ukaji3/ankitable-go/pkg/ankitable/models"
)

// findDataBounds finds the bounding box of non-empty cells as a 1-based range.
// It reports false when every cell is empty.
func findDataBounds(rows [][]string) (models.CellRange, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	if minRow < 0 {
		return models.CellRange{}, false
	}
	return models.CellRange{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

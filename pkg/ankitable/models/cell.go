package models

// CellKind tells the renderer how a data cell is emitted.
type CellKind int

const (
	// CellCloze is wrapped in a numbered cloze marker and consumes a cloze number.
	CellCloze CellKind = iota
	// CellLiteral is emitted as-is (HTML-escaped only) without a cloze marker.
	CellLiteral
)

// String returns the kind name used in logs and test failures.
func (k CellKind) String() string {
	switch k {
	case CellCloze:
		return "cloze"
	case CellLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Cell is a classified data cell.
type Cell struct {
	// Kind selects cloze or literal rendering.
	Kind CellKind `json:"kind"`
	// Text is the cell content with any literal prefix already removed.
	Text string `json:"text"`
}

// Cloze returns a cell that will be wrapped in a cloze marker.
func Cloze(text string) Cell {
	return Cell{Kind: CellCloze, Text: text}
}

// Literal returns a cell that will be emitted without a cloze marker.
func Literal(text string) Cell {
	return Cell{Kind: CellLiteral, Text: text}
}

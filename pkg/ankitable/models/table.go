// Package models defines data structures shared by the parser and the renderer.
package models

// Record is one row of cells in file order.
type Record []string

// Table is the full ordered collection of records read from one input.
// The first record is the header; the remaining records are data records.
type Table struct {
	// Source names where the table was read from (file path or sheet), for diagnostics.
	Source string `json:"source,omitempty"`
	// Records holds every parsed record, header first.
	Records []Record `json:"records"`
}

// Header returns the header record, or nil for an empty table.
func (t *Table) Header() Record {
	if t == nil || len(t.Records) == 0 {
		return nil
	}
	return t.Records[0]
}

// Data returns the data records (everything after the header).
func (t *Table) Data() []Record {
	if t == nil || len(t.Records) < 2 {
		return nil
	}
	return t.Records[1:]
}

// Len returns the number of records including the header.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

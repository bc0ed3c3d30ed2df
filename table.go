package ingest

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

// Table is an in-memory tabular structure with ordered named columns and
// rows of string cells. The zero value is not usable; create instances with
// [NewTable].
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		t.index[col] = i
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns the i-th row. The returned slice must not be modified.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Cell returns the value of column col in row i. The second return value is
// false if the column does not exist.
func (t *Table) Cell(i int, col string) (string, bool) {
	j, ok := t.index[col]
	if !ok {
		return "", false
	}
	return t.rows[i][j], true
}

// AppendRow appends row to the table. The row length must match the number
// of columns.
func (t *Table) AppendRow(row []string) error {
	if len(row) != len(t.columns) {
		return errors.Errorf("row has %d cells, table has %d columns", len(row), len(t.columns))
	}
	t.rows = append(t.rows, append([]string(nil), row...))
	return nil
}

// WriteCSV writes the table to w in CSV format, header first.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	cw.Flush()
	return cw.Error()
}

// Concat concatenates tables row-wise. The result columns are the union of
// all input columns in first-seen order; cells for columns a source table
// does not have are filled with the empty string. Nil tables are skipped, so
// results of the unsupported ingestor can be passed through unchecked.
// Concat of no tables returns an empty table with no columns.
func Concat(tables ...*Table) *Table {
	var columns []string
	seen := make(map[string]bool)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, col := range t.columns {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	out := NewTable(columns)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.rows {
			merged := make([]string, len(columns))
			for j, col := range t.columns {
				merged[out.index[col]] = row[j]
			}
			out.rows = append(out.rows, merged)
		}
	}
	return out
}

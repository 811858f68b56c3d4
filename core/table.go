package core

// Table is an ordered set of named string columns and rows of cells.
// Every row has exactly one cell per column. A Table is never modified after
// construction; build a new one instead.
type Table struct {
	columns []string
	rows    [][]string
}

// NewTable creates a Table from columns and rows. Rows shorter than the
// column set are padded with empty cells and longer rows are truncated.
// The inputs are copied.
func NewTable(columns []string, rows [][]string) Table {
	t := Table{columns: append([]string(nil), columns...)}
	if len(rows) == 0 {
		return t
	}
	t.rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, len(columns))
		copy(row, r)
		t.rows = append(t.rows, row)
	}
	return t
}

// Columns returns a copy of the column names.
func (t Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Rows returns a copy of all rows.
func (t Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.rows) == 0
}

// Cell returns the cell at row i under the named column, or "" when either
// does not exist.
func (t Table) Cell(i int, column string) string {
	if i < 0 || i >= len(t.rows) {
		return ""
	}
	for j, c := range t.columns {
		if c == column {
			return t.rows[i][j]
		}
	}
	return ""
}

// Column returns every cell under the named column, in row order.
func (t Table) Column(column string) []string {
	idx := -1
	for j, c := range t.columns {
		if c == column {
			idx = j
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[idx]
	}
	return out
}

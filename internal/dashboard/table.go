package dashboard

import (
	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/stats"
)

// TableRenderer rebuilds the server table for every snapshot.
type TableRenderer struct {
	view TableView
	rows []Row
}

// NewTableRenderer creates a renderer that draws into view.
func NewTableRenderer(view TableView) *TableRenderer {
	return &TableRenderer{view: view}
}

// Render discards all previous rows and builds one row per record, in
// snapshot order.
func (t *TableRenderer) Render(snap *stats.Snapshot) error {
	if t.view == nil {
		return errors.New(errors.ErrRender, "table view not attached", "")
	}

	rows := make([]Row, 0, snap.Len())
	for i, srv := range snap.Servers {
		rows = append(rows, Row{Index: i, Record: srv})
	}

	t.rows = rows
	t.view.Render(rows)
	return nil
}

// Rows returns the rows from the last successful render.
func (t *TableRenderer) Rows() []Row {
	return t.rows
}

// Row returns the row at index i.
func (t *TableRenderer) Row(i int) (Row, bool) {
	if i < 0 || i >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[i], true
}

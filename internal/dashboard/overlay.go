package dashboard

import "github.com/rileyhilliard/lbdash/internal/stats"

// Pointer offset applied to the overlay so it does not sit under the cursor.
const (
	OverlayOffsetX = 2
	OverlayOffsetY = 1
)

// Field is one labeled line of the hover panel.
type Field struct {
	Label string
	Value string
}

// Overlay is the hover panel. It is either hidden or visible and tracking
// the pointer; there are no other states.
type Overlay struct {
	visible bool
	row     int
	record  stats.Server
	x, y    int
}

// NewOverlay returns a hidden overlay.
func NewOverlay() *Overlay {
	return &Overlay{row: -1}
}

// Enter populates the overlay from row and shows it at the pointer.
// Entering another row while visible swaps the content in place.
func (o *Overlay) Enter(row Row, x, y int) {
	o.row = row.Index
	o.record = row.Record
	o.x, o.y = x, y
	o.visible = true
}

// Leave hides the overlay if row is the hovered row. A late leave for a
// row that has already been replaced by another enter is ignored.
func (o *Overlay) Leave(row int) {
	if !o.visible || row != o.row {
		return
	}
	o.hide()
}

// Move tracks the pointer while visible.
func (o *Overlay) Move(x, y int) {
	if !o.visible {
		return
	}
	o.x, o.y = x, y
}

// Refresh re-populates a visible overlay after the table was rebuilt: the
// pointer is still over the same row index, which may now hold a different
// record. The overlay hides if that row no longer exists.
func (o *Overlay) Refresh(rows []Row) {
	if !o.visible {
		return
	}
	if o.row < 0 || o.row >= len(rows) {
		o.hide()
		return
	}
	o.record = rows[o.row].Record
}

func (o *Overlay) hide() {
	o.visible = false
	o.row = -1
	o.record = stats.Server{}
}

// Visible reports whether the overlay is shown.
func (o *Overlay) Visible() bool {
	return o.visible
}

// Row returns the hovered row index, or -1 when hidden.
func (o *Overlay) Row() int {
	if !o.visible {
		return -1
	}
	return o.row
}

// Record returns the record the overlay currently shows.
func (o *Overlay) Record() stats.Server {
	return o.record
}

// Position returns the panel's top-left corner: the pointer plus offset.
func (o *Overlay) Position() (x, y int) {
	return o.x + OverlayOffsetX, o.y + OverlayOffsetY
}

// Pointer returns the last tracked pointer position.
func (o *Overlay) Pointer() (x, y int) {
	return o.x, o.y
}

// Fields returns the panel's lines. Telemetry the record does not carry
// is left out.
func (o *Overlay) Fields() []Field {
	return RecordFields(o.record)
}

// RecordFields builds hover panel lines for a record.
func RecordFields(srv stats.Server) []Field {
	fields := []Field{
		{Label: "URL", Value: srv.URL},
		{Label: "Status", Value: srv.StatusText()},
		{Label: "Requests", Value: Row{Record: srv}.RequestsText()},
	}

	optional := []Field{
		{Label: "CPU", Value: srv.FormatCPU()},
		{Label: "RAM", Value: srv.FormatRAM()},
		{Label: "Latency", Value: srv.FormatLatency()},
		{Label: "Uptime", Value: srv.FormatUpTime()},
	}
	for _, f := range optional {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// Package monitor is the terminal front end for the stats dashboard.
//
// It draws the state held by a dashboard.Dashboard and feeds it pointer and
// timer events. The package uses Bubble Tea, which follows The Elm
// Architecture:
//
//   - Model: owns the Dashboard, its Poller and the terminal widgets
//   - Update: ticks, fetch results, keys and mouse motion
//   - View: header, server table, chart viewport, footer, and the hover
//     panel spliced on top
//
// # Message Flow
//
//  1. tickMsg fires every dashboard.PollInterval
//  2. fetchCmd reserves a sequence number and fetches in its own goroutine
//  3. resultMsg is handed to Poller.Deliver, which drops failures and
//     stale results and applies the rest to the Dashboard
//  4. View re-renders from the widgets the Dashboard just updated
//
// # Widgets
//
//	termTable      - dashboard.TableView, one line per server
//	termPie        - dashboard.PieChart, a stacked share bar with legend
//	termLineChart  - dashboard.LineChart, braille request line over a
//	                 health strip, backed by ring buffers
//	termCharts     - dashboard.ChartFactory and ChartArea
//
// # Hover
//
// Mouse motion over a table row enters that row; motion inside it moves
// the panel; motion off the table leaves. The panel is drawn with
// PlaceOverlay, which splices it into the frame cell by cell.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Fetch now
//	j/k, ↑/↓    - Scroll the chart area
//	?           - Toggle help overlay
//	Esc         - Close help
package monitor

// Package dashboard reconciles polled stats snapshots against rendered
// widget state.
//
// A Dashboard owns four pieces of state and updates them in a fixed order
// for every snapshot it accepts:
//
//	TableRenderer     - rebuilds one Row per server record (full replacement)
//	DistributionChart - one pie chart, constructed once, series replaced in place
//	SeriesSet         - one line chart per server id, FIFO window of WindowSize samples
//	Overlay           - hover panel fed from the row under the pointer
//
// Widgets are reached only through the TableView, PieChart, LineChart,
// ChartFactory and ChartArea interfaces, so the same reconciliation logic
// drives the terminal front end in internal/monitor and the in-memory
// fakes used by tests.
//
// Poller pairs a stats.Fetcher with a Dashboard. Every fetch is stamped
// with a sequence number and a result is applied only if it is newer than
// the last applied one, so a slow fetch that finishes after a newer one is
// dropped instead of overwriting fresher state. Failed fetches never touch
// the Dashboard.
package dashboard

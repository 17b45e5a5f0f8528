// Package stats defines the snapshot document served by a stats endpoint
// and the HTTP client that polls it.
//
// A snapshot is the full set of server records for one poll cycle:
//
//	{ "servers": [ { "url": "...", "status": true, "requests": 5,
//	                 "cpu": 12.5, "ram": 40.1, "latency": 3, "up_time": "0:01:02" } ] }
//
// The telemetry fields (cpu, ram, latency, up_time) are optional and decode
// to nil pointers when absent, so consumers can tell "missing" from zero.
package stats

package stats

import (
	"fmt"
	"time"
)

// Server is one monitored endpoint's status and metrics at snapshot time.
type Server struct {
	URL      string `json:"url"`
	Status   bool   `json:"status"`
	Requests int64  `json:"requests"`

	CPU     *float64 `json:"cpu,omitempty"`     // percent
	RAM     *float64 `json:"ram,omitempty"`     // MB
	Latency *float64 `json:"latency,omitempty"` // ms
	UpTime  *string  `json:"up_time,omitempty"`
}

// Snapshot is one poll cycle's full, ordered set of server records.
type Snapshot struct {
	Servers []Server `json:"servers"`

	// FetchedAt is set by the client, not decoded from the body.
	FetchedAt time.Time `json:"-"`
}

// StatusText returns "UP" or "DOWN".
func (s Server) StatusText() string {
	if s.Status {
		return "UP"
	}
	return "DOWN"
}

// Health returns 1 for an up server and 0 for a down one.
func (s Server) Health() float64 {
	if s.Status {
		return 1
	}
	return 0
}

// FormatCPU returns the CPU percentage for display, or "" when absent.
func (s Server) FormatCPU() string {
	if s.CPU == nil {
		return ""
	}
	return fmt.Sprintf("%.1f%%", *s.CPU)
}

// FormatRAM returns the resident memory in MB for display, or "" when absent.
func (s Server) FormatRAM() string {
	if s.RAM == nil {
		return ""
	}
	return fmt.Sprintf("%.1f MB", *s.RAM)
}

// FormatLatency returns the latency for display, or "" when absent.
func (s Server) FormatLatency() string {
	if s.Latency == nil {
		return ""
	}
	return fmt.Sprintf("%.0f ms", *s.Latency)
}

// FormatUpTime returns the uptime string, or "" when absent.
func (s Server) FormatUpTime() string {
	if s.UpTime == nil {
		return ""
	}
	return *s.UpTime
}

// Len returns the number of server records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Servers)
}

// validate checks the invariants a decoded snapshot must hold:
// every record has an identifier and identifiers are unique.
func (s *Snapshot) validate() error {
	seen := make(map[string]bool, len(s.Servers))
	for i, srv := range s.Servers {
		if srv.URL == "" {
			return fmt.Errorf("server %d has no url", i)
		}
		if seen[srv.URL] {
			return fmt.Errorf("duplicate server url %q", srv.URL)
		}
		seen[srv.URL] = true
	}
	return nil
}

// Float64 returns a pointer to v. Convenient for building records with
// optional telemetry.
func Float64(v float64) *float64 {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}

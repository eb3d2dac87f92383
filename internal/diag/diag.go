// Package diag defines the diagnostic records streamed to monitor
// clients.
package diag

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code"`
	Summary  string         `json:"summary"`
	Detail   string         `json:"detail,omitempty"`
	Evidence map[string]any `json:"evidence,omitempty"`
}

// New builds a record with the code and summary every diagnostic needs.
func New(s Severity, code, summary string) Diagnostic {
	return Diagnostic{Severity: s, Code: code, Summary: summary}
}

package model

// Severity ranks an alert.
type Severity string

// Alert severities.
const (
	Critical Severity = "critical"
	Warning  Severity = "warning"
	Success  Severity = "success"
)

// Alert is a threshold-triggered message. Message carries emoji and emphasis
// markers for the terminal; PlainMessage is safe for documents without emoji fonts.
type Alert struct {
	Severity     Severity
	Message      string
	PlainMessage string
}

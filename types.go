package dimschema

// Severity expresses the severity level for issues.
type Severity int

const (
	Error Severity = iota // Zero value: an Issue without explicit severity is an error.
	Warn
	Ignore
)

// String returns the lowercase severity name used in CLI and log output.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warn:
		return "warn"
	default:
		return "ignore"
	}
}

// Strictness configures enforcement while decoding documents.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys); Ignore keeps the last value silently.
}

package dimschema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
	CodeUnsupported   = "unsupported"
	CodeTooShort      = "too_short"
	CodeInvalidFormat = "invalid_format"
	// Cross-field and cross-document rules
	CodeDomainRange  = "domain_range"
	CodeUniqueness   = "uniqueness"
	CodeBusinessRule = "business_rule"
	// Dimension tree consistency (skipped entries, empty names, ...)
	CodeInvariant = "invariant"
	// Persistence layer (load/save failures surfaced as issues)
	CodePersistence = "persistence"
)

// Issue represents a single validation entry.
type Issue struct {
	Path     string // JSON Pointer (for example: /answers/2/code).
	Code     string // One of the codes listed above.
	Message  string
	Label    string   // Human label of the offending property, when a schema supplied one.
	Severity Severity // Error unless stated otherwise.
	Cause    error    // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"string","got":"number"})
	// for i18n and tooling.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /item
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasErrors reports whether any issue is at Error severity.
func (iss Issues) HasErrors() bool {
	for _, it := range iss {
		if it.Severity == Error {
			return true
		}
	}
	return false
}

// Filter returns the issues at or above the given severity (Error ranks
// highest).
func (iss Issues) Filter(min Severity) Issues {
	var out Issues
	for _, it := range iss {
		if it.Severity <= min {
			out = append(out, it)
		}
	}
	return out
}

// Paths lists issue paths in order, mostly useful in tests and logs.
func (iss Issues) Paths() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Path)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

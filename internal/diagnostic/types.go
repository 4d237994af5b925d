package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"copy-generator/internal/common"
)

// Diagnostics collects problems found while loading a manifest and
// resolving generation requests.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type is the qualified name of the type this relates to (if any).
	Type string
	// Member is the member or attribute this relates to (if any).
	Member string
	// Source is the manifest file the problem was found in (if known).
	Source string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError records an error. Errors abort the generation pass.
func (d *Diagnostics) AddError(code, message, typeName, member string) {
	d.Errors = append(d.Errors, newDiagnostic(DiagnosticError, code, message, typeName, member))
}

// AddWarning records a problem that drops a request or member but lets the
// pass continue.
func (d *Diagnostics) AddWarning(code, message, typeName, member string) {
	d.Warnings = append(d.Warnings, newDiagnostic(DiagnosticWarning, code, message, typeName, member))
}

// AddInfo records a note that is only shown at debug level.
func (d *Diagnostics) AddInfo(code, message, typeName, member string) {
	d.Infos = append(d.Infos, newDiagnostic(DiagnosticInfo, code, message, typeName, member))
}

func newDiagnostic(severity DiagnosticSeverity, code, message, typeName, member string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Type: typeName, Member: member}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// WithSource stamps every diagnostic that has no source yet with the given
// manifest path.
func (d *Diagnostics) WithSource(source string) {
	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for i := range list {
			if list[i].Source == "" {
				list[i].Source = source
			}
		}
	}
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error joins all error diagnostics into one error, or returns nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	errs := make([]error, len(d.Errors))
	for i := range d.Errors {
		errs[i] = d.Errors[i]
	}

	return errors.Join(errs...)
}

// Error implements error so a diagnostic can be wrapped and joined.
func (d Diagnostic) Error() string {
	return d.String()
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Source != "" {
		prefix = append(prefix, d.Source+":")
	}

	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

package taxonomy

import "fmt"

// LoadError represents a failure reading or decoding a taxonomy source file.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// FieldIssue describes a single validation failure.
type FieldIssue struct {
	Field       string
	Description string
}

// ValidationError aggregates every issue found while validating a taxonomy
// source, so a broken dataset reports all problems in one pass.
type ValidationError struct {
	Subject string
	Issues  []FieldIssue
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s validation failed with %d error(s):", e.Subject, len(e.Issues))
	for i, issue := range e.Issues {
		msg += fmt.Sprintf("\n  %d. %s: %s", i+1, issue.Field, issue.Description)
	}
	return msg
}

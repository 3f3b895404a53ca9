package service

import "fmt"

// ErrorKind classifies a failed pipeline run. The kind drives alerting,
// CLI exit reporting, and the HTTP status of manual runs.
type ErrorKind string

const (
	// FetchError: transport or auth failure, nothing was written.
	FetchError ErrorKind = "FetchError"
	// ParseError: the payload itself is malformed, not just one record.
	ParseError ErrorKind = "ParseError"
	// EmptyResult: zero mappable records; the previous batch is kept.
	EmptyResult ErrorKind = "EmptyResult"
	// RuleError: a business-rule step failed; non-fatal, the run degrades.
	RuleError ErrorKind = "RuleError"
	// PersistError: the replace transaction failed; old data was retained.
	PersistError ErrorKind = "PersistError"
	// ConfigError: missing settings, mapping or fallback branch.
	ConfigError ErrorKind = "ConfigError"
)

// PipelineError is the terminal Failed state of one run.
type PipelineError struct {
	Kind       ErrorKind
	Enterprise string
	Err        error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s for enterprise %s: %v", e.Kind, e.Enterprise, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

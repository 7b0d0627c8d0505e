// Package errors defines the typed failures smellscan reports per file and
// per configuration field. Each type unwraps to its cause.
package errors

import (
	"fmt"
	"os"
	"strings"
)

// ErrorType classifies a failure for callers that branch on it, such as the
// scanner deciding whether a file is skipped or reported.
type ErrorType string

const (
	ErrorTypeAnalysis ErrorType = "analysis"
	ErrorTypeParse    ErrorType = "parse"

	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypeFileTooLarge ErrorType = "file_too_large"
	ErrorTypeBinaryFile   ErrorType = "binary_file"
	ErrorTypePermission   ErrorType = "permission"
	ErrorTypeFileRead     ErrorType = "file_read"
)

// AnalysisError is returned when the detectors cannot run over a tree.
type AnalysisError struct {
	Type      ErrorType
	Operation string
	FilePath  string
	Err       error
}

func NewAnalysisError(op string, err error) *AnalysisError {
	return &AnalysisError{Type: ErrorTypeAnalysis, Operation: op, Err: err}
}

// WithFile sets FilePath and returns e for chaining.
func (e *AnalysisError) WithFile(path string) *AnalysisError {
	e.FilePath = path
	return e
}

func (e *AnalysisError) Error() string {
	where := ""
	if e.FilePath != "" {
		where = " for " + e.FilePath
	}
	return fmt.Sprintf("%s %s failed%s: %v", e.Type, e.Operation, where, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// ParseError is returned when no syntax tree could be produced at all.
// Trees that merely contain error nodes are not parse errors.
type ParseError struct {
	Type     ErrorType
	Language string
	FilePath string
	Err      error
}

func NewParseError(language, path string, err error) *ParseError {
	return &ParseError{Type: ErrorTypeParse, Language: language, FilePath: path, Err: err}
}

func (e *ParseError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("parse error (%s): %v", e.Language, e.Err)
	}
	return fmt.Sprintf("parse error in %s (%s): %v", e.FilePath, e.Language, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FileError wraps a failure to stat, read or accept a file.
type FileError struct {
	Type      ErrorType
	Path      string
	Operation string
	Err       error
}

// NewFileError classifies err as not-found, permission or read.
func NewFileError(op, path string, err error) *FileError {
	kind := ErrorTypeFileRead
	if os.IsNotExist(err) {
		kind = ErrorTypeFileNotFound
	} else if os.IsPermission(err) {
		kind = ErrorTypePermission
	}
	return &FileError{Type: kind, Path: path, Operation: op, Err: err}
}

// WithType replaces the classification, for rejections such as size or
// binary content that are not os errors.
func (e *FileError) WithType(t ErrorType) *FileError {
	e.Type = t
	return e
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ConfigError names the offending dotted field path and, when known, the
// value that was rejected.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("config error for field %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// MultiError collects independent failures, such as several missing scan
// roots, so all of them are reported at once.
type MultiError struct {
	Errors []error
}

// NewMultiError drops nil entries from errs.
func NewMultiError(errs []error) *MultiError {
	m := &MultiError{Errors: make([]error, 0, len(errs))}
	for _, err := range errs {
		if err != nil {
			m.Errors = append(m.Errors, err)
		}
	}
	return m
}

// ErrOrNil returns nil for an empty or nil MultiError so callers can return
// it directly.
func (e *MultiError) ErrOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

func (e *MultiError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *MultiError) Unwrap() []error { return e.Errors }

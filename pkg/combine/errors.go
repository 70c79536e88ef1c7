// File: pkg/combine/errors.go
package combine

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Fatal error kinds. Every error returned by Scan, LoadExtraPatterns,
// Filter.Apply, WriteDocument and Run matches exactly one of these with errors.Is.
var (
	ErrInvalidRoot = errors.New("invalid root")
	ErrConfig      = errors.New("config file error")
	ErrOutput      = errors.New("output error")
)

// Reasons that further qualify a kind.
var (
	ErrNotExist     = errors.New("does not exist")
	ErrNotDirectory = errors.New("is not a directory")
	ErrNotRegular   = errors.New("is not a regular file")
	ErrUndecodable  = errors.New("is not valid UTF-8 text")
)

// PathError records a fatal failure, the operation that caused it and the
// offending path.
type PathError struct {
	Kind error  // One of ErrInvalidRoot, ErrConfig, ErrOutput.
	Op   string // What was being attempted, e.g. "resolve", "scan".
	Path string // Offending path.
	Err  error  // Underlying cause.
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%v: %s %q: %v", e.Kind, e.Op, e.Path, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *PathError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func rootError(op, path string, err error) error {
	return errors.WithStack(&PathError{Kind: ErrInvalidRoot, Op: op, Path: path, Err: err})
}

func configError(op, path string, err error) error {
	return errors.WithStack(&PathError{Kind: ErrConfig, Op: op, Path: path, Err: err})
}

func outputError(op, path string, err error) error {
	return errors.WithStack(&PathError{Kind: ErrOutput, Op: op, Path: path, Err: err})
}

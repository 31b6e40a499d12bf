package manifest

import "fmt"

// NotFoundError means no package.json exists in the start directory or any
// of its parents.
type NotFoundError struct {
	Start string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found in %s or any parent directory", FileName, e.Start)
}

// IoError wraps a failure to read or write the manifest file.
type IoError struct {
	Op   string // "resolve", "stat", "read" or "write"
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// ParseError means the manifest text is not a JSON object.
// Path is empty when the text did not come from a file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid manifest JSON: %v", e.Err)
	}
	return fmt.Sprintf("invalid manifest JSON in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

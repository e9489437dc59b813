package main

import "fmt"

type ErrorKind string

const (
	InvalidArchive      ErrorKind = "invalid-archive"
	ExtractionError     ErrorKind = "extraction-error"
	ChecksumUnavailable ErrorKind = "checksum-unavailable"
	DeletionError       ErrorKind = "deletion-error"
	OperatorCancelled   ErrorKind = "operator-cancelled"
)

// PipelineError classifies a per-archive failure so the outer loop can
// report it and move on to the next archive.
type PipelineError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func pipeErr(kind ErrorKind, path string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Path: path, Err: err}
}

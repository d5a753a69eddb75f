// Package dedupe implements the duplicate detection and resolution engine:
// size bucketing, content fingerprinting, equivalence resolution,
// retention policy and disposal.
package dedupe

import "fmt"

// ReadError indicates a file became unreadable while its fingerprint was
// being computed. The file keeps an empty fingerprint and is excluded from
// content-based matching for the run; it never matches other files by
// content, readable or not.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// DisposalError indicates the trash facility rejected a move. The file is
// skipped and disposal continues; no retry is attempted.
type DisposalError struct {
	Path string
	Err  error
}

func (e *DisposalError) Error() string {
	return fmt.Sprintf("failed to trash %s: %v", e.Path, e.Err)
}

func (e *DisposalError) Unwrap() error {
	return e.Err
}

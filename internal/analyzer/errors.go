package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy rejects a new invocation while one is still in flight on the
	// same Analyzer. Invocations are not queued; the caller may re-invoke.
	ErrBusy = errors.New("an analysis is already in progress")

	// ErrNoSourceFiles means discovery found nothing to analyze.
	ErrNoSourceFiles = errors.New("no Solidity source files found")

	// ErrAllGroupsFailed means every file group's submission failed, so the
	// run produced nothing.
	ErrAllGroupsFailed = errors.New("all file group submissions failed")
)

// NotSourceFileError rejects a seed file that is not a Solidity source.
type NotSourceFileError struct {
	Path string
}

func (e *NotSourceFileError) Error() string {
	return fmt.Sprintf("%q is not a Solidity source file", e.Path)
}

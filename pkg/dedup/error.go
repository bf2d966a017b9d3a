// pkg/dedup/error.go
package dedup

import (
	"errors"
	"fmt"

	"github.com/mshammas/csvdeduplicator/pkg/csvio"
	"github.com/mshammas/csvdeduplicator/pkg/selector"
)

// ErrorCategory classifies run-terminating errors. Every category is fatal:
// this is a one-shot batch tool, so there is no retry or recovery. The run
// aborts with a descriptive message and a non-zero exit status.
type ErrorCategory int

const (
	ErrorCategoryNone ErrorCategory = iota
	// ErrorCategorySpec covers invalid column specifications.
	ErrorCategorySpec
	// ErrorCategoryInput covers empty or unreadable input.
	ErrorCategoryInput
	// ErrorCategoryIO covers output write failures.
	ErrorCategoryIO
	// ErrorCategoryAudit covers audit store failures.
	ErrorCategoryAudit
	// ErrorCategoryInternal covers verification failures, which indicate a
	// bug rather than bad input.
	ErrorCategoryInternal
)

// String returns a string representation of the error category.
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategorySpec:
		return "ColumnSpec"
	case ErrorCategoryInput:
		return "Input"
	case ErrorCategoryIO:
		return "IO"
	case ErrorCategoryAudit:
		return "Audit"
	case ErrorCategoryInternal:
		return "Internal"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// ExitCode maps the category to the process exit status used by the CLI.
func (ec ErrorCategory) ExitCode() int {
	switch ec {
	case ErrorCategoryNone:
		return 0
	case ErrorCategorySpec:
		return 2
	case ErrorCategoryInput:
		return 3
	default:
		return 1
	}
}

// CategorizeError determines the category of a run error.
func CategorizeError(err error) ErrorCategory {
	switch {
	case err == nil:
		return ErrorCategoryNone
	case errors.Is(err, selector.ErrInvalidColumnSpec):
		return ErrorCategorySpec
	case errors.Is(err, csvio.ErrEmptyInput):
		return ErrorCategoryInput
	case errors.Is(err, ErrVerificationFailed):
		return ErrorCategoryInternal
	case errors.Is(err, errAudit):
		return ErrorCategoryAudit
	default:
		return ErrorCategoryIO
	}
}

// errAudit marks audit store failures so they can be categorized after
// wrapping.
var errAudit = errors.New("audit store failure")

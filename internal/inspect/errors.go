package inspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thanhnp/psbt-apis/internal/address"
	"github.com/thanhnp/psbt-apis/internal/psbt"
)

// Stage names the pipeline step an Error came from
type Stage string

const (
	StageNetwork     Stage = "network"
	StageDecode      Stage = "decode"
	StageDeserialize Stage = "deserialize"
	StageExtract     Stage = "extract"
	StageCompute     Stage = "compute"
)

// Error kinds. Test with errors.Is.
var (
	ErrEncoding       = psbt.ErrEncoding
	ErrFormat         = psbt.ErrFormat
	ErrResolutionGap  = psbt.ErrResolutionGap
	ErrUnknownNetwork = address.ErrUnknownNetwork

	// ErrIncompleteData indicates one or more inputs are unresolved so no fee can be computed
	ErrIncompleteData = errors.New("inspect: incomplete input data")

	// ErrInvalidAmount indicates outputs exceed inputs or an amount sum overflows
	ErrInvalidAmount = errors.New("inspect: invalid amount")
)

// Error is returned by every failed Parse/Summarize call
type Error struct {
	Stage Stage
	Err   error
}

// Error returns error description
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Kind returns the short name of the error kind, suitable for API responses
func (e *Error) Kind() string {
	switch {
	case errors.Is(e.Err, ErrEncoding):
		return "encoding"
	case errors.Is(e.Err, ErrFormat):
		return "format"
	case errors.Is(e.Err, ErrIncompleteData):
		return "incomplete_data"
	case errors.Is(e.Err, ErrResolutionGap):
		return "resolution_gap"
	case errors.Is(e.Err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(e.Err, ErrUnknownNetwork):
		return "unknown_network"
	default:
		return "internal"
	}
}

// IncompleteDataError lists the inputs whose spent output could not be resolved
type IncompleteDataError struct {
	Gaps []*psbt.ResolutionGap
}

// Error returns error description
func (e *IncompleteDataError) Error() string {
	reasons := make([]string, len(e.Gaps))
	for i, gap := range e.Gaps {
		reasons[i] = fmt.Sprintf("input %d: %s", gap.Input, gap.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrIncompleteData, strings.Join(reasons, "; "))
}

// Is implements comparator method for the errors package
func (e *IncompleteDataError) Is(target error) bool {
	return target == ErrIncompleteData
}

// Unwrap exposes the individual gaps
func (e *IncompleteDataError) Unwrap() []error {
	errs := make([]error, len(e.Gaps))
	for i, gap := range e.Gaps {
		errs[i] = gap
	}
	return errs
}

// Indexes returns the unresolved input indexes in input order
func (e *IncompleteDataError) Indexes() []int {
	idx := make([]int, len(e.Gaps))
	for i, gap := range e.Gaps {
		idx[i] = gap.Input
	}
	return idx
}

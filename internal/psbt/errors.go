package psbt

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding indicates the input text is not valid base64
	ErrEncoding = errors.New("psbt: invalid base64 encoding")

	// ErrFormat indicates the bytes are not a structurally valid PSBT
	ErrFormat = errors.New("psbt: invalid format")

	// ErrResolutionGap indicates the output spent by an input could not be determined
	ErrResolutionGap = errors.New("psbt: spent output unresolved")
)

// formatErrorf wraps ErrFormat with a description of what went wrong
func formatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// Gap reasons
const (
	GapNoUtxo          = "no witness or non-witness utxo"
	GapIndexOutOfRange = "prevout index out of range"
	GapTxidMismatch    = "non-witness utxo does not match prevout txid"
	GapNoSuchInput     = "input index out of range"
)

// ResolutionGap describes why a single input could not be resolved
type ResolutionGap struct {
	Input  int
	Reason string
}

// Error returns error description
func (g *ResolutionGap) Error() string {
	return fmt.Sprintf("%s: input %d: %s", ErrResolutionGap, g.Input, g.Reason)
}

// Is implements comparator method for the errors package
func (g *ResolutionGap) Is(target error) bool {
	return target == ErrResolutionGap
}

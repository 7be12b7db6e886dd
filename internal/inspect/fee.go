package inspect

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/btcsuite/btcd/wire"

	"github.com/thanhnp/psbt-apis/internal/psbt"
)

// Resolution holds the spent outputs of all inputs of a packet
type Resolution struct {
	Spent []*wire.TxOut // indexed like the inputs, nil when unresolved
	Gaps  []*psbt.ResolutionGap
}

// Resolve resolves every input. Gaps are collected, not fatal.
func Resolve(p *psbt.Packet) Resolution {
	res := Resolution{Spent: make([]*wire.TxOut, len(p.Inputs))}
	for i := range p.Inputs {
		spent, err := p.ResolveInput(i)
		if err != nil {
			var gap *psbt.ResolutionGap
			if !errors.As(err, &gap) {
				gap = &psbt.ResolutionGap{Input: i, Reason: err.Error()}
			}
			res.Gaps = append(res.Gaps, gap)
			continue
		}
		res.Spent[i] = spent
	}
	return res
}

// ComputeFee returns the sum of spent values minus the sum of output values
func ComputeFee(res Resolution, outputs []*wire.TxOut) (uint64, error) {
	if len(res.Gaps) > 0 {
		return 0, &IncompleteDataError{Gaps: res.Gaps}
	}

	in, err := sumValues(res.Spent)
	if err != nil {
		return 0, fmt.Errorf("inputs: %w", err)
	}
	out, err := sumValues(outputs)
	if err != nil {
		return 0, fmt.Errorf("outputs: %w", err)
	}

	if out > in {
		return 0, fmt.Errorf("%w: outputs total %d exceeds inputs total %d", ErrInvalidAmount, out, in)
	}
	return in - out, nil
}

// sumValues adds output values as unsigned satoshi amounts
func sumValues(txOuts []*wire.TxOut) (uint64, error) {
	var total, carry uint64
	for _, txOut := range txOuts {
		total, carry = bits.Add64(total, uint64(txOut.Value), 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: sum overflows", ErrInvalidAmount)
		}
	}
	return total, nil
}

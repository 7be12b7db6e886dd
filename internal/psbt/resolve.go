package psbt

import (
	"github.com/btcsuite/btcd/wire"
)

// ResolveInput returns the output spent by input i.
//
// A witness utxo is authoritative and wins over a non-witness utxo present on
// the same input. The non-witness utxo is only consulted when no witness utxo
// exists, and must hash to the prevout txid and contain the prevout index.
// Any other case is reported as a *ResolutionGap.
func (p *Packet) ResolveInput(i int) (*wire.TxOut, error) {
	if i < 0 || i >= len(p.Inputs) {
		return nil, &ResolutionGap{Input: i, Reason: GapNoSuchInput}
	}
	in := p.Inputs[i]

	if in.WitnessUtxo != nil {
		return in.WitnessUtxo, nil
	}

	if in.NonWitnessUtxo != nil {
		prevOut := p.UnsignedTx.TxIn[i].PreviousOutPoint
		if in.NonWitnessUtxo.TxHash() != prevOut.Hash {
			return nil, &ResolutionGap{Input: i, Reason: GapTxidMismatch}
		}
		if uint64(prevOut.Index) >= uint64(len(in.NonWitnessUtxo.TxOut)) {
			return nil, &ResolutionGap{Input: i, Reason: GapIndexOutOfRange}
		}
		return in.NonWitnessUtxo.TxOut[prevOut.Index], nil
	}

	return nil, &ResolutionGap{Input: i, Reason: GapNoUtxo}
}

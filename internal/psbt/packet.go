package psbt

import (
	"github.com/btcsuite/btcd/wire"
)

// Magic is the fixed header of every serialized PSBT: "psbt" followed by 0xff
var Magic = [5]byte{0x70, 0x73, 0x62, 0x74, 0xff}

// Key types this package interprets; everything else is kept as Unknown
const (
	GlobalUnsignedTxType    = 0x00
	InputNonWitnessUtxoType = 0x00
	InputWitnessUtxoType    = 0x01
)

// Unknown is a key-value record the inspector does not interpret
type Unknown struct {
	Key   []byte
	Value []byte
}

// Input holds the per-input map of a PSBT
type Input struct {
	NonWitnessUtxo *wire.MsgTx
	WitnessUtxo    *wire.TxOut
	Unknowns       []Unknown
}

// Output holds the per-output map of a PSBT
type Output struct {
	Unknowns []Unknown
}

// Packet is a deserialized PSBT document.
// len(Inputs) == len(UnsignedTx.TxIn) and len(Outputs) == len(UnsignedTx.TxOut).
type Packet struct {
	UnsignedTx *wire.MsgTx
	Unknowns   []Unknown
	Inputs     []Input
	Outputs    []Output
}

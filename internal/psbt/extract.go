package psbt

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// SerializeUnsignedTx returns the canonical non-witness serialization of the
// embedded unsigned transaction
func (p *Packet) SerializeUnsignedTx() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(p.UnsignedTx.SerializeSizeStripped())
	if err := p.UnsignedTx.SerializeNoWitness(&buf); err != nil {
		return nil, fmt.Errorf("psbt: serialize unsigned tx: %w", err)
	}
	return buf.Bytes(), nil
}

// Extract returns the embedded unsigned transaction together with its txid,
// the double SHA-256 of SerializeUnsignedTx in byte-reversed hex
func (p *Packet) Extract() (*wire.MsgTx, string, error) {
	raw, err := p.SerializeUnsignedTx()
	if err != nil {
		return nil, "", err
	}
	return p.UnsignedTx, chainhash.DoubleHashH(raw).String(), nil
}

package psbt

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/wire"
)

// Serialize writes the packet in BIP-174 binary form, for building fixtures
// and round-trip checks. Interpreted records are written first in key type
// order, then the unknowns in their original order.
func (p *Packet) Serialize(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}

	rawTx, err := p.SerializeUnsignedTx()
	if err != nil {
		return err
	}
	if err := writeRecord(w, []byte{GlobalUnsignedTxType}, rawTx); err != nil {
		return err
	}
	if err := writeUnknowns(w, p.Unknowns); err != nil {
		return err
	}

	for _, in := range p.Inputs {
		if in.NonWitnessUtxo != nil {
			var buf bytes.Buffer
			if err := in.NonWitnessUtxo.Serialize(&buf); err != nil {
				return err
			}
			if err := writeRecord(w, []byte{InputNonWitnessUtxoType}, buf.Bytes()); err != nil {
				return err
			}
		}
		if in.WitnessUtxo != nil {
			var buf bytes.Buffer
			var value [8]byte
			binary.LittleEndian.PutUint64(value[:], uint64(in.WitnessUtxo.Value))
			buf.Write(value[:])
			if err := wire.WriteVarBytes(&buf, 0, in.WitnessUtxo.PkScript); err != nil {
				return err
			}
			if err := writeRecord(w, []byte{InputWitnessUtxoType}, buf.Bytes()); err != nil {
				return err
			}
		}
		if err := writeUnknowns(w, in.Unknowns); err != nil {
			return err
		}
	}

	for _, out := range p.Outputs {
		if err := writeUnknowns(w, out.Unknowns); err != nil {
			return err
		}
	}
	return nil
}

// B64Encode returns the base64 form of Serialize
func (p *Packet) B64Encode() (string, error) {
	var buf bytes.Buffer
	if err := p.Serialize(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeUnknowns writes opaque records followed by the map separator
func writeUnknowns(w io.Writer, unknowns []Unknown) error {
	for _, u := range unknowns {
		if err := writeRecord(w, u.Key, u.Value); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte{0x00})
	return err
}

func writeRecord(w io.Writer, key, value []byte) error {
	if err := wire.WriteVarBytes(w, 0, key); err != nil {
		return err
	}
	return wire.WriteVarBytes(w, 0, value)
}

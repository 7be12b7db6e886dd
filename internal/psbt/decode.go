package psbt

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcd/wire"
)

// DecodeBase64 decodes the textual (base64) form of a PSBT into raw bytes
func DecodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return data, nil
}

// NewFromBase64 decodes and deserializes a base64 PSBT in one step. Fixtures
// and round-trip checks use it; callers that report the failing stage call
// DecodeBase64 and Deserialize separately.
func NewFromBase64(s string) (*Packet, error) {
	data, err := DecodeBase64(s)
	if err != nil {
		return nil, err
	}
	return Deserialize(data)
}

// keyValue is one raw record of a PSBT map
type keyValue struct {
	key   []byte
	value []byte
}

// Deserialize parses the BIP-174 binary form of a PSBT
func Deserialize(data []byte) (*Packet, error) {
	if len(data) < len(Magic) || !bytes.Equal(data[:len(Magic)], Magic[:]) {
		return nil, formatErrorf("bad magic bytes")
	}
	r := bytes.NewReader(data[len(Magic):])

	globals, err := readMap(r, "global map")
	if err != nil {
		return nil, err
	}

	p := &Packet{}
	for _, kv := range globals {
		if kv.key[0] != GlobalUnsignedTxType {
			p.Unknowns = append(p.Unknowns, Unknown{Key: kv.key, Value: kv.value})
			continue
		}
		if len(kv.key) != 1 {
			return nil, formatErrorf("unsigned tx key has %d bytes, want 1", len(kv.key))
		}
		if p.UnsignedTx, err = parseUnsignedTx(kv.value); err != nil {
			return nil, err
		}
	}
	if p.UnsignedTx == nil {
		return nil, formatErrorf("global map has no unsigned tx")
	}

	p.Inputs = make([]Input, len(p.UnsignedTx.TxIn))
	for i := range p.Inputs {
		pairs, err := readMap(r, fmt.Sprintf("input map %d", i))
		if err != nil {
			return nil, err
		}
		if err := p.Inputs[i].fill(pairs); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
	}

	p.Outputs = make([]Output, len(p.UnsignedTx.TxOut))
	for i := range p.Outputs {
		pairs, err := readMap(r, fmt.Sprintf("output map %d", i))
		if err != nil {
			return nil, err
		}
		for _, kv := range pairs {
			p.Outputs[i].Unknowns = append(p.Outputs[i].Unknowns, Unknown{Key: kv.key, Value: kv.value})
		}
	}
	if r.Len() != 0 {
		return nil, formatErrorf("%d trailing bytes after output maps", r.Len())
	}

	return p, nil
}

// fill interprets the records of one input map
func (in *Input) fill(pairs []keyValue) error {
	for _, kv := range pairs {
		switch kv.key[0] {
		case InputNonWitnessUtxoType:
			if len(kv.key) != 1 {
				return formatErrorf("non-witness utxo key has %d bytes, want 1", len(kv.key))
			}
			r := bytes.NewReader(kv.value)
			tx := wire.NewMsgTx(wire.TxVersion)
			if err := tx.Deserialize(r); err != nil {
				return formatErrorf("non-witness utxo: %v", err)
			}
			if r.Len() != 0 {
				return formatErrorf("non-witness utxo: %d trailing bytes", r.Len())
			}
			in.NonWitnessUtxo = tx
		case InputWitnessUtxoType:
			if len(kv.key) != 1 {
				return formatErrorf("witness utxo key has %d bytes, want 1", len(kv.key))
			}
			txOut, err := parseTxOut(kv.value)
			if err != nil {
				return err
			}
			in.WitnessUtxo = txOut
		default:
			in.Unknowns = append(in.Unknowns, Unknown{Key: kv.key, Value: kv.value})
		}
	}
	return nil
}

// parseUnsignedTx decodes the global unsigned transaction, which must be in
// non-witness form with empty scriptSigs
func parseUnsignedTx(value []byte) (*wire.MsgTx, error) {
	r := bytes.NewReader(value)
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.DeserializeNoWitness(r); err != nil {
		return nil, formatErrorf("unsigned tx: %v", err)
	}
	if r.Len() != 0 {
		return nil, formatErrorf("unsigned tx: %d trailing bytes", r.Len())
	}
	for i, txIn := range tx.TxIn {
		if len(txIn.SignatureScript) != 0 || len(txIn.Witness) != 0 {
			return nil, formatErrorf("unsigned tx input %d is signed", i)
		}
	}
	return tx, nil
}

// parseTxOut decodes a single serialized output: 8-byte LE value then script
func parseTxOut(value []byte) (*wire.TxOut, error) {
	if len(value) < 8 {
		return nil, formatErrorf("witness utxo: %d bytes is too short", len(value))
	}
	r := bytes.NewReader(value[8:])
	script, err := wire.ReadVarBytes(r, 0, uint32(len(value)), "witness utxo script")
	if err != nil {
		return nil, formatErrorf("witness utxo: %v", err)
	}
	if r.Len() != 0 {
		return nil, formatErrorf("witness utxo: %d trailing bytes", r.Len())
	}
	return wire.NewTxOut(int64(binary.LittleEndian.Uint64(value[:8])), script), nil
}

// readMap reads key-value records up to and including the 0x00 separator
func readMap(r *bytes.Reader, what string) ([]keyValue, error) {
	var pairs []keyValue
	seen := make(map[string]struct{})
	for {
		keyLen, err := wire.ReadVarInt(r, 0)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, formatErrorf("%s: missing or unterminated", what)
			}
			return nil, formatErrorf("%s: key length: %v", what, err)
		}
		if keyLen == 0 {
			return pairs, nil
		}

		key, err := readBytes(r, keyLen)
		if err != nil {
			return nil, formatErrorf("%s: key: %v", what, err)
		}
		valueLen, err := wire.ReadVarInt(r, 0)
		if err != nil {
			return nil, formatErrorf("%s: value length: %v", what, err)
		}
		value, err := readBytes(r, valueLen)
		if err != nil {
			return nil, formatErrorf("%s: value: %v", what, err)
		}

		if _, dup := seen[string(key)]; dup {
			return nil, formatErrorf("%s: duplicate key %x", what, key)
		}
		seen[string(key)] = struct{}{}
		pairs = append(pairs, keyValue{key: key, value: value})
	}
}

// readBytes reads exactly n bytes, refusing lengths that overrun the buffer
func readBytes(r *bytes.Reader, n uint64) ([]byte, error) {
	if n > uint64(r.Len()) {
		return nil, fmt.Errorf("declared length %d overruns %d remaining bytes", n, r.Len())
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

package address

import (
	"github.com/btcsuite/btcd/txscript"
)

// Class enumerates the script templates that have an address form
type Class int

const (
	NonStandard Class = iota
	PubKeyHash
	ScriptHash
	WitnessPubKeyHash
	WitnessScriptHash
	Taproot
	WitnessUnknown
)

var classNames = map[Class]string{
	NonStandard:       "nonstandard",
	PubKeyHash:        "pubkeyhash",
	ScriptHash:        "scripthash",
	WitnessPubKeyHash: "witness_v0_keyhash",
	WitnessScriptHash: "witness_v0_scripthash",
	Taproot:           "witness_v1_taproot",
	WitnessUnknown:    "witness_unknown",
}

// String returns the class name used by bitcoind's decodescript
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return classNames[NonStandard]
}

// Template is a script-pubkey matched against the known templates.
// Program is the hash (P2PKH, P2SH) or the witness program; Version is the
// witness version and only meaningful for witness classes.
type Template struct {
	Class   Class
	Version byte
	Program []byte
}

// Classify matches a script-pubkey against the known templates
func Classify(script []byte) Template {
	switch txscript.GetScriptClass(script) {
	case txscript.PubKeyHashTy:
		// OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG
		return Template{Class: PubKeyHash, Program: script[3:23]}
	case txscript.ScriptHashTy:
		// OP_HASH160 <20> OP_EQUAL
		return Template{Class: ScriptHash, Program: script[2:22]}
	case txscript.WitnessV0PubKeyHashTy:
		return witnessTemplate(WitnessPubKeyHash, script)
	case txscript.WitnessV0ScriptHashTy:
		return witnessTemplate(WitnessScriptHash, script)
	case txscript.WitnessV1TaprootTy:
		return witnessTemplate(Taproot, script)
	}

	version, program, err := txscript.ExtractWitnessProgramInfo(script)
	if err != nil || version == 0 {
		// v0 programs other than 20 or 32 bytes are unspendable
		return Template{Class: NonStandard}
	}
	return Template{Class: WitnessUnknown, Version: byte(version), Program: program}
}

func witnessTemplate(class Class, script []byte) Template {
	version, program, err := txscript.ExtractWitnessProgramInfo(script)
	if err != nil {
		return Template{Class: NonStandard}
	}
	return Template{Class: class, Version: byte(version), Program: program}
}

package address

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Encode derives the address of a script-pubkey on the given network.
// It reports false when the script matches no template with an address form.
func Encode(script []byte, net Network) (string, bool) {
	return Classify(script).Encode(net)
}

// Encode renders the template under the network's encoding rules
func (t Template) Encode(net Network) (string, bool) {
	var (
		addr btcutil.Address
		err  error
	)
	switch t.Class {
	case PubKeyHash:
		addr, err = btcutil.NewAddressPubKeyHash(t.Program, net.Params)
	case ScriptHash:
		addr, err = btcutil.NewAddressScriptHashFromHash(t.Program, net.Params)
	case WitnessPubKeyHash:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(t.Program, net.Params)
	case WitnessScriptHash:
		addr, err = btcutil.NewAddressWitnessScriptHash(t.Program, net.Params)
	case Taproot:
		addr, err = btcutil.NewAddressTaproot(t.Program, net.Params)
	case WitnessUnknown:
		return encodeSegWit(net.Params.Bech32HRPSegwit, t.Version, t.Program)
	default:
		return "", false
	}
	if err != nil {
		return "", false
	}
	return addr.EncodeAddress(), true
}

// encodeSegWit builds a bech32m address for witness versions btcutil has no type for
func encodeSegWit(hrp string, version byte, program []byte) (string, bool) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", false
	}
	s, err := bech32.EncodeM(hrp, append([]byte{version}, converted...))
	if err != nil {
		return "", false
	}
	return s, true
}

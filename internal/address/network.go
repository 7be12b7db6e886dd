package address

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	ltcchaincfg "github.com/ltcsuite/ltcd/chaincfg"
)

// ErrUnknownNetwork indicates the network selector is not recognized
var ErrUnknownNetwork = errors.New("address: unknown network")

// Network selects the address encoding rules (version bytes and bech32 HRP)
type Network struct {
	Name   string
	Params *chaincfg.Params
}

// Supported networks. Signet shares testnet's encoding, so their addresses are identical.
var (
	Bitcoin         = Network{Name: "bitcoin", Params: &chaincfg.MainNetParams}
	Testnet         = Network{Name: "testnet", Params: &chaincfg.TestNet3Params}
	Signet          = Network{Name: "signet", Params: &chaincfg.SigNetParams}
	Regtest         = Network{Name: "regtest", Params: &chaincfg.RegressionNetParams}
	Litecoin        = Network{Name: "litecoin", Params: fromLitecoin(&ltcchaincfg.MainNetParams)}
	LitecoinTestnet = Network{Name: "litecoin-testnet", Params: fromLitecoin(&ltcchaincfg.TestNet4Params)}
)

// networks maps selectors (including aliases) to networks
var networks = map[string]Network{
	"bitcoin":          Bitcoin,
	"btc":              Bitcoin,
	"mainnet":          Bitcoin,
	"testnet":          Testnet,
	"signet":           Signet,
	"regtest":          Regtest,
	"litecoin":         Litecoin,
	"ltc":              Litecoin,
	"litecoin-testnet": LitecoinTestnet,
}

// fromLitecoin copies the address encoding fields of litecoin params into
// btcd params so btcutil can encode litecoin addresses
func fromLitecoin(p *ltcchaincfg.Params) *chaincfg.Params {
	return &chaincfg.Params{
		Name:             p.Name,
		PubKeyHashAddrID: p.PubKeyHashAddrID,
		ScriptHashAddrID: p.ScriptHashAddrID,
		Bech32HRPSegwit:  p.Bech32HRPSegwit,
	}
}

// ParseNetwork returns the network for a selector. The empty selector is bitcoin mainnet.
func ParseNetwork(name string) (Network, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Bitcoin, nil
	}
	if net, ok := networks[name]; ok {
		return net, nil
	}
	return Network{}, fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownNetwork, name, strings.Join(Names(), ", "))
}

// Names returns all accepted selectors, sorted
func Names() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns the canonical selector
func (n Network) String() string {
	return n.Name
}

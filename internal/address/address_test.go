package address_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thanhnp/psbt-apis/internal/address"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncodeVectors(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		network  address.Network
		expected string
	}{
		{"p2pkh mainnet", "76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac", address.Bitcoin, "1A1zP1eP5QGefi2DMPTfTLr5kdBSmf6sT"},
		{"p2wpkh mainnet", "0014751e76e8199196d454941c45d1b3a323f1433bd6", address.Bitcoin, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"},
		{"p2wpkh testnet", "0014751e76e8199196d454941c45d1b3a323f1433bd6", address.Testnet, "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"},
		{"p2wsh mainnet", "00201863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262", address.Bitcoin,
			"bc1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3qccfmv3"},
		{"p2wsh testnet", "00201863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262", address.Testnet,
			"tb1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3q0sl5k7"},
		{"p2tr mainnet", "512079be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", address.Bitcoin,
			"bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqzk5jj0"},
		{"witness v16 mainnet", "6002751e", address.Bitcoin, "bc1sw50qgdz25j"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			addr, ok := address.Encode(mustHex(t, test.script), test.network)
			require.True(t, ok)
			require.Equal(t, test.expected, addr)
		})
	}
}

func TestEncodePrefixes(t *testing.T) {
	p2pkh := "76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac"
	p2sh := "a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1887"
	p2wpkh := "0014751e76e8199196d454941c45d1b3a323f1433bd6"
	p2tr := "512079be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

	tests := []struct {
		script  string
		network address.Network
		prefix  string
	}{
		{p2pkh, address.Testnet, "m"},
		{p2sh, address.Bitcoin, "3"},
		{p2sh, address.Testnet, "2"},
		{p2wpkh, address.Signet, "tb1q"},
		{p2wpkh, address.Regtest, "bcrt1q"},
		{p2tr, address.Testnet, "tb1p"},
		{p2tr, address.Regtest, "bcrt1p"},
		{p2pkh, address.Litecoin, "L"},
		{p2sh, address.Litecoin, "M"},
		{p2wpkh, address.Litecoin, "ltc1q"},
		{p2wpkh, address.LitecoinTestnet, "tltc1q"},
	}
	for _, test := range tests {
		t.Run(test.network.Name+"/"+test.prefix, func(t *testing.T) {
			addr, ok := address.Encode(mustHex(t, test.script), test.network)
			require.True(t, ok)
			require.True(t, strings.HasPrefix(addr, test.prefix), "address %s has no prefix %s", addr, test.prefix)
		})
	}
}

func TestEncodeDivergesAcrossNetworks(t *testing.T) {
	scripts := []string{
		"76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac",
		"a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1887",
		"0014751e76e8199196d454941c45d1b3a323f1433bd6",
		"00201863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262",
		"512079be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
	}
	for _, s := range scripts {
		script := mustHex(t, s)

		mainnet, ok := address.Encode(script, address.Bitcoin)
		require.True(t, ok)
		testnet, ok := address.Encode(script, address.Testnet)
		require.True(t, ok)
		regtest, ok := address.Encode(script, address.Regtest)
		require.True(t, ok)
		signet, ok := address.Encode(script, address.Signet)
		require.True(t, ok)

		require.NotEqual(t, mainnet, testnet)
		require.NotEqual(t, mainnet, regtest)
		// signet uses testnet's version bytes and HRP
		require.Equal(t, testnet, signet)

		again, ok := address.Encode(script, address.Bitcoin)
		require.True(t, ok)
		require.Equal(t, mainnet, again)
	}
}

func TestEncodeNonStandard(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"empty", ""},
		{"op_return", "6a0b68656c6c6f20776f726c64"},
		{"p2pk", "2102" + strings.Repeat("11", 32) + "ac"},
		{"bare multisig", "5121" + "02" + strings.Repeat("22", 32) + "21" + "03" + strings.Repeat("33", 32) + "52ae"},
		{"v0 program of odd size", "0019" + strings.Repeat("44", 25)},
		{"push length mismatch", "0014" + strings.Repeat("55", 19)},
		{"p2pkh missing checksig", "76a914" + strings.Repeat("66", 20) + "88"},
		{"oversized witness program", "5129" + strings.Repeat("77", 41)},
		{"non-canonical program push", "004c14" + strings.Repeat("88", 20)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			script := mustHex(t, test.script)
			require.Equal(t, address.NonStandard, address.Classify(script).Class)

			addr, ok := address.Encode(script, address.Bitcoin)
			require.False(t, ok)
			require.Empty(t, addr)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		script  string
		class   address.Class
		version byte
		program string
	}{
		{"76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac", address.PubKeyHash, 0, "62e907b15cbf27d5425399ebf6f0fb50ebb88f18"},
		{"a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1887", address.ScriptHash, 0, "62e907b15cbf27d5425399ebf6f0fb50ebb88f18"},
		{"0014751e76e8199196d454941c45d1b3a323f1433bd6", address.WitnessPubKeyHash, 0, "751e76e8199196d454941c45d1b3a323f1433bd6"},
		{"00201863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262", address.WitnessScriptHash, 0,
			"1863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262"},
		{"512079be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", address.Taproot, 1,
			"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"},
		{"6002751e", address.WitnessUnknown, 16, "751e"},
		{"5102751e", address.WitnessUnknown, 1, "751e"},
	}
	for _, test := range tests {
		t.Run(test.class.String(), func(t *testing.T) {
			tmpl := address.Classify(mustHex(t, test.script))
			require.Equal(t, test.class, tmpl.Class)
			require.Equal(t, test.version, tmpl.Version)
			require.Equal(t, mustHex(t, test.program), tmpl.Program)
		})
	}
}

func TestParseNetwork(t *testing.T) {
	tests := []struct {
		selector string
		expected address.Network
	}{
		{"", address.Bitcoin},
		{"bitcoin", address.Bitcoin},
		{"mainnet", address.Bitcoin},
		{"MAINNET", address.Bitcoin},
		{" testnet ", address.Testnet},
		{"signet", address.Signet},
		{"regtest", address.Regtest},
		{"litecoin", address.Litecoin},
		{"litecoin-testnet", address.LitecoinTestnet},
	}
	for _, test := range tests {
		net, err := address.ParseNetwork(test.selector)
		require.NoError(t, err)
		require.Equal(t, test.expected.Name, net.Name)
	}

	_, err := address.ParseNetwork("dogecoin")
	require.ErrorIs(t, err, address.ErrUnknownNetwork)
	require.Contains(t, address.Names(), "mainnet")
}

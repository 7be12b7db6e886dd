package psbt_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/psbt-apis/internal/psbt"
)

func TestResolveInput(t *testing.T) {
	prevTx := newPrevTx(7777, 8888)
	prevHash := prevTx.TxHash()

	t.Run("witness utxo wins over non-witness utxo", func(t *testing.T) {
		p := newPacket([]wire.OutPoint{{Hash: prevHash, Index: 0}}, wire.NewTxOut(1, p2wpkh(0x20)))
		p.Inputs[0].WitnessUtxo = wire.NewTxOut(10000, p2wpkh(0x21))
		p.Inputs[0].NonWitnessUtxo = prevTx

		spent, err := p.ResolveInput(0)
		require.NoError(t, err)
		require.EqualValues(t, 10000, spent.Value)
		require.Equal(t, p2wpkh(0x21), spent.PkScript)
	})

	t.Run("witness utxo wins even when non-witness utxo is inconsistent", func(t *testing.T) {
		p := newPacket([]wire.OutPoint{{Hash: chainhash.Hash{0x99}, Index: 5}}, wire.NewTxOut(1, p2wpkh(0x20)))
		p.Inputs[0].WitnessUtxo = wire.NewTxOut(10000, p2wpkh(0x21))
		p.Inputs[0].NonWitnessUtxo = prevTx

		spent, err := p.ResolveInput(0)
		require.NoError(t, err)
		require.EqualValues(t, 10000, spent.Value)
	})

	t.Run("non-witness utxo by prevout index", func(t *testing.T) {
		p := newPacket([]wire.OutPoint{{Hash: prevHash, Index: 1}}, wire.NewTxOut(1, p2wpkh(0x20)))
		p.Inputs[0].NonWitnessUtxo = prevTx

		spent, err := p.ResolveInput(0)
		require.NoError(t, err)
		require.EqualValues(t, 8888, spent.Value)
		require.Equal(t, prevTx.TxOut[1].PkScript, spent.PkScript)
	})

	gaps := []struct {
		name   string
		input  int
		setup  func(p *psbt.Packet)
		prev   wire.OutPoint
		reason string
	}{
		{
			name:   "prevout index out of range",
			prev:   wire.OutPoint{Hash: prevHash, Index: 2},
			setup:  func(p *psbt.Packet) { p.Inputs[0].NonWitnessUtxo = prevTx },
			reason: psbt.GapIndexOutOfRange,
		},
		{
			name:   "non-witness utxo for another transaction",
			prev:   wire.OutPoint{Hash: chainhash.Hash{0x42}, Index: 0},
			setup:  func(p *psbt.Packet) { p.Inputs[0].NonWitnessUtxo = prevTx },
			reason: psbt.GapTxidMismatch,
		},
		{
			name:   "no utxo data",
			prev:   wire.OutPoint{Hash: prevHash, Index: 0},
			setup:  func(p *psbt.Packet) {},
			reason: psbt.GapNoUtxo,
		},
		{
			name:   "no such input",
			input:  3,
			prev:   wire.OutPoint{Hash: prevHash, Index: 0},
			setup:  func(p *psbt.Packet) {},
			reason: psbt.GapNoSuchInput,
		},
	}
	for _, test := range gaps {
		t.Run(test.name, func(t *testing.T) {
			p := newPacket([]wire.OutPoint{test.prev}, wire.NewTxOut(1, p2wpkh(0x20)))
			test.setup(p)

			spent, err := p.ResolveInput(test.input)
			require.Nil(t, spent)
			require.ErrorIs(t, err, psbt.ErrResolutionGap)

			var gap *psbt.ResolutionGap
			require.ErrorAs(t, err, &gap)
			require.Equal(t, test.input, gap.Input)
			require.Equal(t, test.reason, gap.Reason)
		})
	}
}

func TestResolveInputAfterDecode(t *testing.T) {
	prevTx := newPrevTx(600)
	p := newPacket([]wire.OutPoint{{Hash: prevTx.TxHash(), Index: 4}}, wire.NewTxOut(1, p2wpkh(0x30)))
	p.Inputs[0].NonWitnessUtxo = prevTx

	decoded, err := psbt.Deserialize(serialize(t, p))
	require.NoError(t, err)

	_, err = decoded.ResolveInput(0)
	require.ErrorIs(t, err, psbt.ErrResolutionGap)
}

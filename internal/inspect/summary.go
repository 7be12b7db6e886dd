package inspect

import (
	"fmt"

	"github.com/thanhnp/psbt-apis/internal/address"
	"github.com/thanhnp/psbt-apis/internal/models"
	"github.com/thanhnp/psbt-apis/internal/psbt"
)

// ParseString is Parse with the network given as a selector string.
// An empty selector means bitcoin mainnet.
func ParseString(psbtBase64, network string) (*models.Summary, error) {
	net, err := address.ParseNetwork(network)
	if err != nil {
		return nil, &Error{Stage: StageNetwork, Err: err}
	}
	return Parse(psbtBase64, net)
}

// Parse decodes a base64 PSBT and summarizes it for the given network.
// It holds no state and is safe for concurrent use.
func Parse(psbtBase64 string, net address.Network) (*models.Summary, error) {
	data, err := psbt.DecodeBase64(psbtBase64)
	if err != nil {
		return nil, &Error{Stage: StageDecode, Err: err}
	}

	p, err := psbt.Deserialize(data)
	if err != nil {
		return nil, &Error{Stage: StageDeserialize, Err: err}
	}

	return Summarize(p, net)
}

// Summarize builds the Summary of a deserialized packet
func Summarize(p *psbt.Packet, net address.Network) (*models.Summary, error) {
	tx, txid, err := p.Extract()
	if err != nil {
		return nil, &Error{Stage: StageExtract, Err: err}
	}
	if len(tx.TxOut) == 0 {
		return nil, &Error{Stage: StageExtract, Err: fmt.Errorf("%w: transaction has no outputs", ErrFormat)}
	}

	res := Resolve(p)
	fee, err := ComputeFee(res, tx.TxOut)
	if err != nil {
		return nil, &Error{Stage: StageCompute, Err: err}
	}

	inputAddresses := make([]string, 0, len(res.Spent))
	for _, spent := range res.Spent {
		if addr, ok := address.Encode(spent.PkScript, net); ok {
			inputAddresses = append(inputAddresses, addr)
		}
	}

	payTo := make([]models.PayTo, len(tx.TxOut))
	for i, txOut := range tx.TxOut {
		addr, ok := address.Encode(txOut.PkScript, net)
		if !ok {
			addr = models.UnrepresentableAddress
		}
		payTo[i] = models.PayTo{Amount: uint64(txOut.Value), PayTo: addr}
	}

	return &models.Summary{
		TxID:           txid,
		SendAddress:    payTo[0].PayTo,
		InputAddresses: inputAddresses,
		Fee:            fee,
		TotalAmount:    payTo[0].Amount,
		PayToInfo:      payTo,
	}, nil
}

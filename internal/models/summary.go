package models

import (
	"time"
)

// UnrepresentableAddress marks an output whose script has no address form
const UnrepresentableAddress = "unrepresentable"

// Summary describes what a PSBT does once signed and broadcast.
//
// SendAddress and TotalAmount are taken from output 0. This is a convention of
// the inspector, not a protocol rule: the payment may sit at any index and
// output 0 may just as well be change.
type Summary struct {
	TxID           string   `json:"txid"`
	SendAddress    string   `json:"send_address"`
	InputAddresses []string `json:"input_addresses"`
	Fee            uint64   `json:"fee"`          // in satoshis
	TotalAmount    uint64   `json:"total_amount"` // in satoshis
	PayToInfo      []PayTo  `json:"pay_to_info"`
}

// PayTo is one output of the transaction
type PayTo struct {
	Amount uint64 `json:"amount"` // in satoshis
	PayTo  string `json:"pay_to"`
}

// SummaryRecord is a summary kept in the history store
type SummaryRecord struct {
	Network   string    `json:"network"`
	Summary   *Summary  `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

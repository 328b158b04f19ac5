package txn

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/helium-wallet/pkg/crypto"
)

// Defaults used by the network when the corresponding chain vars are unset.
const (
	DefaultDCPayloadSize    = 24
	DefaultTxnFeeMultiplier = 5000
)

// FeeConfig is the fee schedule published by the network.
type FeeConfig struct {
	// TxnFees enables fees. When false every transaction is free.
	TxnFees bool
	// DCPayloadSize is the number of bytes one Data Credit pays for.
	DCPayloadSize uint64
	// TxnFeeMultiplier scales the per-payload fee.
	TxnFeeMultiplier uint64
}

// Fee returns the fee for an encoded payload of size bytes.
func (c FeeConfig) Fee(size int) (uint64, error) {
	if !c.TxnFees {
		return 0, nil
	}
	if c.DCPayloadSize == 0 {
		return 0, errors.New("fee config: dc_payload_size must be positive")
	}
	n := uint64(size)
	return (n + c.DCPayloadSize - 1) / c.DCPayloadSize * c.TxnFeeMultiplier, nil
}

// Quote is a fee bound to the record shape it was calculated for.
// The zero Quote is not valid for signing.
type Quote struct {
	fee   uint64
	shape [32]byte
}

// Fee returns the quoted fee.
func (q Quote) Fee() uint64 { return q.fee }

// CalculateFee prices a record. The record is sized with a zero fee and a
// placeholder signature of full length, matching the network's rule.
func CalculateFee(t Txn, cfg FeeConfig) (Quote, error) {
	if t == nil {
		return Quote{}, errors.New("calculate fee: nil transaction")
	}
	payload := shapeBytes(t)
	fee, err := cfg.Fee(len(payload))
	if err != nil {
		return Quote{}, fmt.Errorf("calculate fee: %w", err)
	}
	return Quote{fee: fee, shape: crypto.Hash(payload)}, nil
}

// shapeBytes is the encoding used for both sizing and staleness checks.
func shapeBytes(t Txn) []byte {
	var placeholder [crypto.SignatureSize]byte
	return t.encode(nil, 0, placeholder[:])
}

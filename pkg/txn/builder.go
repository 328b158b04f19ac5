package txn

import (
	"errors"
	"fmt"
	"math"

	"github.com/Klingon-tech/helium-wallet/pkg/types"
)

// ErrNonceOverflow is returned when the account nonce cannot be advanced.
var ErrNonceOverflow = errors.New("nonce overflow")

// NextNonce returns the nonce a new transaction must carry given the
// account's speculative nonce.
func NextNonce(speculative uint64) (uint64, error) {
	if speculative == math.MaxUint64 {
		return 0, ErrNonceOverflow
	}
	return speculative + 1, nil
}

// NewTokenBurn builds an unsigned, zero-fee burn of amount bones from
// payer to payee. speculativeNonce is the account's speculative_nonce.
func NewTokenBurn(payer, payee types.PublicKey, amount types.HNT, memo types.Memo, speculativeNonce uint64) (*TokenBurnV1, error) {
	if err := checkParties(payer, payee); err != nil {
		return nil, err
	}
	nonce, err := NextNonce(speculativeNonce)
	if err != nil {
		return nil, err
	}
	return &TokenBurnV1{
		Payer:  payer,
		Payee:  payee,
		Amount: amount.Bones(),
		Nonce:  nonce,
		Memo:   memo,
	}, nil
}

// NewSecurityExchange builds an unsigned, zero-fee transfer of amount
// security bones. speculativeSecNonce is the account's speculative_sec_nonce.
func NewSecurityExchange(payer, payee types.PublicKey, amount types.HST, speculativeSecNonce uint64) (*SecurityExchangeV1, error) {
	if err := checkParties(payer, payee); err != nil {
		return nil, err
	}
	nonce, err := NextNonce(speculativeSecNonce)
	if err != nil {
		return nil, err
	}
	return &SecurityExchangeV1{
		Payer:  payer,
		Payee:  payee,
		Amount: amount.Bones(),
		Nonce:  nonce,
	}, nil
}

func checkParties(payer, payee types.PublicKey) error {
	if payer.IsZero() {
		return fmt.Errorf("%w: missing payer", types.ErrInvalidPublicKey)
	}
	if payee.IsZero() {
		return fmt.Errorf("%w: missing payee", types.ErrInvalidPublicKey)
	}
	if payer.Network() != payee.Network() {
		return fmt.Errorf("%w: payee is on %s, payer is on %s",
			types.ErrInvalidPublicKey, payee.Network(), payer.Network())
	}
	return nil
}

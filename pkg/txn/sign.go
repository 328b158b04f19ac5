package txn

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/helium-wallet/pkg/crypto"
)

var (
	// ErrStaleFee is returned when a record changed after it was priced,
	// or the quote was never calculated.
	ErrStaleFee = errors.New("fee quote does not match transaction")

	// ErrSignerMismatch is returned when the signer is not the payer.
	ErrSignerMismatch = errors.New("signer is not the transaction payer")
)

// Sign assigns the quoted fee and signs the record on behalf of its payer.
// The quote must come from CalculateFee on the record in its current shape.
func Sign(t Txn, q Quote, signer crypto.Signer) (*Envelope, error) {
	if t == nil {
		return nil, errors.New("sign: nil transaction")
	}
	if crypto.Hash(shapeBytes(t)) != q.shape {
		return nil, fmt.Errorf("sign %s: %w", t.Kind(), ErrStaleFee)
	}
	if signer.PublicKey() != t.payer() {
		return nil, fmt.Errorf("sign %s: %w", t.Kind(), ErrSignerMismatch)
	}

	t.setFee(q.fee)
	sig, err := signer.Sign(t.encode(nil, q.fee, nil))
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", t.Kind(), err)
	}
	t.setSignature(sig)
	return &Envelope{txn: t}, nil
}

// Verify checks the record's signature against its payer.
func Verify(t Txn) bool {
	return crypto.Verify(t.payer(), SigningBytes(t), t.signature())
}

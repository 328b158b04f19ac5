// Package txn defines the Helium transaction records the wallet builds,
// their canonical protobuf encoding, fee calculation and signing.
package txn

import (
	"fmt"

	"github.com/Klingon-tech/helium-wallet/pkg/crypto"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
	"google.golang.org/protobuf/encoding/protowire"
)

// Kind tags a transaction variant. The value is the field number of the
// variant inside the blockchain_txn envelope.
type Kind protowire.Number

const (
	KindSecurityExchange Kind = 14
	KindTokenBurn        Kind = 17
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindSecurityExchange:
		return "security_exchange_v1"
	case KindTokenBurn:
		return "token_burn_v1"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Txn is a transaction record. The set of implementations is closed to
// this package: TokenBurnV1 and SecurityExchangeV1.
type Txn interface {
	Kind() Kind
	// encode appends the protobuf form using the given fee and signature
	// in place of the record's own fields.
	encode(b []byte, fee uint64, sig []byte) []byte
	payer() types.PublicKey
	fee() uint64
	signature() []byte
	setFee(fee uint64)
	setSignature(sig []byte)
}

// TokenBurnV1 burns HNT from Payer into Data Credits credited to Payee.
type TokenBurnV1 struct {
	Payer     types.PublicKey
	Payee     types.PublicKey
	Amount    uint64
	Nonce     uint64
	Signature []byte
	Fee       uint64
	Memo      types.Memo
}

// SecurityExchangeV1 transfers security tokens from Payer to Payee.
type SecurityExchangeV1 struct {
	Payer     types.PublicKey
	Payee     types.PublicKey
	Amount    uint64
	Fee       uint64
	Nonce     uint64
	Signature []byte
}

func (t *TokenBurnV1) Kind() Kind { return KindTokenBurn }

// Field numbers: payer=1 payee=2 amount=3 nonce=4 signature=5 fee=6 memo=7.
func (t *TokenBurnV1) encode(b []byte, fee uint64, sig []byte) []byte {
	b = appendBytes(b, 1, t.Payer[:])
	b = appendBytes(b, 2, t.Payee[:])
	b = appendVarint(b, 3, t.Amount)
	b = appendVarint(b, 4, t.Nonce)
	b = appendBytes(b, 5, sig)
	b = appendVarint(b, 6, fee)
	b = appendVarint(b, 7, uint64(t.Memo))
	return b
}

func (t *TokenBurnV1) payer() types.PublicKey { return t.Payer }
func (t *TokenBurnV1) fee() uint64 { return t.Fee }
func (t *TokenBurnV1) signature() []byte { return t.Signature }
func (t *TokenBurnV1) setFee(fee uint64) { t.Fee = fee }
func (t *TokenBurnV1) setSignature(sig []byte) { t.Signature = sig }

func (t *SecurityExchangeV1) Kind() Kind { return KindSecurityExchange }

// Field numbers: payer=1 payee=2 amount=3 fee=4 nonce=5 signature=6.
func (t *SecurityExchangeV1) encode(b []byte, fee uint64, sig []byte) []byte {
	b = appendBytes(b, 1, t.Payer[:])
	b = appendBytes(b, 2, t.Payee[:])
	b = appendVarint(b, 3, t.Amount)
	b = appendVarint(b, 4, fee)
	b = appendVarint(b, 5, t.Nonce)
	b = appendBytes(b, 6, sig)
	return b
}

func (t *SecurityExchangeV1) payer() types.PublicKey { return t.Payer }
func (t *SecurityExchangeV1) fee() uint64 { return t.Fee }
func (t *SecurityExchangeV1) signature() []byte { return t.Signature }
func (t *SecurityExchangeV1) setFee(fee uint64) { t.Fee = fee }
func (t *SecurityExchangeV1) setSignature(sig []byte) { t.Signature = sig }

// Marshal returns the canonical protobuf encoding of the record as it
// currently stands, signature included.
func Marshal(t Txn) []byte {
	return t.encode(nil, t.fee(), t.signature())
}

// SigningBytes returns the bytes a signature commits to: the record with
// its signature field cleared.
func SigningBytes(t Txn) []byte {
	return t.encode(nil, t.fee(), nil)
}

// Hash returns the transaction hash in Helium's text form.
func Hash(t Txn) string {
	return crypto.HashString(crypto.Hash(SigningBytes(t)))
}

// proto3 omits zero scalars and empty byte fields.
func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

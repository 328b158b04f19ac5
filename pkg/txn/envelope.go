package txn

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/Klingon-tech/helium-wallet/pkg/types"
	"google.golang.org/protobuf/encoding/protowire"
)

// Envelope wraps a signed record for submission (blockchain_txn).
type Envelope struct {
	txn Txn
}

// Txn returns the wrapped record.
func (e *Envelope) Txn() Txn { return e.txn }

// Marshal returns the wire form of the envelope.
func (e *Envelope) Marshal() []byte {
	b := protowire.AppendTag(nil, protowire.Number(e.txn.Kind()), protowire.BytesType)
	return protowire.AppendBytes(b, Marshal(e.txn))
}

// Base64 returns the standard base64 wire form, as submitted to the API.
func (e *Envelope) Base64() string {
	return base64.StdEncoding.EncodeToString(e.Marshal())
}

// Hash returns the hash of the wrapped record.
func (e *Envelope) Hash() string { return Hash(e.txn) }

// DecodeEnvelope parses the wire form of an envelope holding one of the
// supported record kinds.
func DecodeEnvelope(b []byte) (*Envelope, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return nil, fmt.Errorf("decode envelope: %w", protowire.ParseError(n))
	}
	if typ != protowire.BytesType {
		return nil, fmt.Errorf("decode envelope: field %d has wire type %d", num, typ)
	}
	body, m := protowire.ConsumeBytes(b[n:])
	if m < 0 {
		return nil, fmt.Errorf("decode envelope: %w", protowire.ParseError(m))
	}
	if n+m != len(b) {
		return nil, errors.New("decode envelope: trailing bytes")
	}

	var t Txn
	switch Kind(num) {
	case KindTokenBurn:
		t = &TokenBurnV1{}
	case KindSecurityExchange:
		t = &SecurityExchangeV1{}
	default:
		return nil, fmt.Errorf("decode envelope: unsupported kind %d", num)
	}
	if err := decodeFields(body, t); err != nil {
		return nil, fmt.Errorf("decode %s: %w", t.Kind(), err)
	}
	return &Envelope{txn: t}, nil
}

// decodeFields walks a record body and assigns known fields.
func decodeFields(b []byte, t Txn) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		var (
			raw []byte
			v   uint64
		)
		switch typ {
		case protowire.BytesType:
			raw, n = protowire.ConsumeBytes(b)
		case protowire.VarintType:
			v, n = protowire.ConsumeVarint(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if err := assignField(t, num, raw, v); err != nil {
			return err
		}
	}
	return nil
}

func assignField(t Txn, num protowire.Number, raw []byte, v uint64) error {
	var err error
	switch rec := t.(type) {
	case *TokenBurnV1:
		switch num {
		case 1:
			rec.Payer, err = types.PublicKeyFromBytes(raw)
		case 2:
			rec.Payee, err = types.PublicKeyFromBytes(raw)
		case 3:
			rec.Amount = v
		case 4:
			rec.Nonce = v
		case 5:
			rec.Signature = append([]byte(nil), raw...)
		case 6:
			rec.Fee = v
		case 7:
			rec.Memo = types.Memo(v)
		}
	case *SecurityExchangeV1:
		switch num {
		case 1:
			rec.Payer, err = types.PublicKeyFromBytes(raw)
		case 2:
			rec.Payee, err = types.PublicKeyFromBytes(raw)
		case 3:
			rec.Amount = v
		case 4:
			rec.Fee = v
		case 5:
			rec.Nonce = v
		case 6:
			rec.Signature = append([]byte(nil), raw...)
		}
	}
	return err
}

package report

import (
	"fmt"
	"strconv"

	"github.com/Klingon-tech/helium-wallet/internal/api"
	"github.com/Klingon-tech/helium-wallet/pkg/txn"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
)

// NoHash is shown in place of the hash of a transaction that was not
// submitted.
const NoHash = "none"

type burnDoc struct {
	Payee  types.PublicKey `json:"payee"`
	Amount types.HNT       `json:"amount"`
	Memo   string          `json:"memo"`
	Fee    uint64          `json:"fee"`
	Nonce  uint64          `json:"nonce"`
	Hash   *string         `json:"hash"`
	Txn    string          `json:"txn"`
}

type securityTransferDoc struct {
	Payee  types.PublicKey `json:"payee"`
	Amount types.HST       `json:"amount"`
	Fee    uint64          `json:"fee"`
	Nonce  uint64          `json:"nonce"`
	Hash   *string         `json:"hash"`
	Txn    string          `json:"txn"`
}

// Burn reports a signed token burn. status is nil when the transaction
// was not submitted.
func Burn(env *txn.Envelope, status *api.PendingTxnStatus) (*Report, error) {
	t, ok := env.Txn().(*txn.TokenBurnV1)
	if !ok {
		return nil, fmt.Errorf("report burn: envelope holds %s", env.Txn().Kind())
	}
	if err := checkPayee(t.Payee); err != nil {
		return nil, err
	}
	hash := statusHash(status)
	return &Report{
		Fields: []Field{
			{"Payee", t.Payee.String()},
			{"Memo", t.Memo.String()},
			{"Amount", types.HNT(t.Amount).String()},
			{"Fee", strconv.FormatUint(t.Fee, 10)},
			{"Nonce", strconv.FormatUint(t.Nonce, 10)},
			{"Hash", hashText(hash)},
		},
		Doc: burnDoc{
			Payee:  t.Payee,
			Amount: types.HNT(t.Amount),
			Memo:   t.Memo.String(),
			Fee:    t.Fee,
			Nonce:  t.Nonce,
			Hash:   hash,
			Txn:    env.Base64(),
		},
		Preview: status == nil,
	}, nil
}

// SecurityTransfer reports a signed security exchange.
func SecurityTransfer(env *txn.Envelope, status *api.PendingTxnStatus) (*Report, error) {
	t, ok := env.Txn().(*txn.SecurityExchangeV1)
	if !ok {
		return nil, fmt.Errorf("report security transfer: envelope holds %s", env.Txn().Kind())
	}
	if err := checkPayee(t.Payee); err != nil {
		return nil, err
	}
	hash := statusHash(status)
	return &Report{
		Fields: []Field{
			{"Payee", t.Payee.String()},
			{"Amount", types.HST(t.Amount).String()},
			{"Fee", strconv.FormatUint(t.Fee, 10)},
			{"Nonce", strconv.FormatUint(t.Nonce, 10)},
			{"Hash", hashText(hash)},
		},
		Doc: securityTransferDoc{
			Payee:  t.Payee,
			Amount: types.HST(t.Amount),
			Fee:    t.Fee,
			Nonce:  t.Nonce,
			Hash:   hash,
			Txn:    env.Base64(),
		},
		Preview: status == nil,
	}, nil
}

// checkPayee rejects keys whose bytes do not round-trip through the
// address encoding.
func checkPayee(pk types.PublicKey) error {
	if _, err := types.PublicKeyFromBytes(pk.Bytes()); err != nil {
		return fmt.Errorf("encode payee: %w", err)
	}
	return nil
}

func statusHash(status *api.PendingTxnStatus) *string {
	if status == nil {
		return nil
	}
	h := status.Hash
	return &h
}

func hashText(h *string) string {
	if h == nil {
		return NoHash
	}
	return *h
}

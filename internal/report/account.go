package report

import (
	"strconv"
	"time"

	"github.com/Klingon-tech/helium-wallet/internal/api"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
	"github.com/dustin/go-humanize"
)

type balanceDoc struct {
	Address             string    `json:"address"`
	Balance             types.HNT `json:"balance"`
	SecBalance          types.HST `json:"sec_balance"`
	DCBalance           uint64    `json:"dc_balance"`
	Nonce               uint64    `json:"nonce"`
	SpeculativeNonce    uint64    `json:"speculative_nonce"`
	SecNonce            uint64    `json:"sec_nonce"`
	SpeculativeSecNonce uint64    `json:"speculative_sec_nonce"`
}

// Balance reports an account's balances and nonces.
func Balance(acct *api.Account) *Report {
	return &Report{
		Fields: []Field{
			{"Address", acct.Address},
			{"HNT", types.HNT(acct.Balance).String()},
			{"HST", types.HST(acct.SecBalance).String()},
			{"DC", humanize.Comma(int64(acct.DCBalance))},
			{"Nonce", strconv.FormatUint(acct.Nonce, 10)},
			{"Speculative Nonce", strconv.FormatUint(acct.SpeculativeNonce, 10)},
			{"Sec Nonce", strconv.FormatUint(acct.SecNonce, 10)},
			{"Speculative Sec Nonce", strconv.FormatUint(acct.SpeculativeSecNonce, 10)},
		},
		Doc: balanceDoc{
			Address:             acct.Address,
			Balance:             types.HNT(acct.Balance),
			SecBalance:          types.HST(acct.SecBalance),
			DCBalance:           acct.DCBalance,
			Nonce:               acct.Nonce,
			SpeculativeNonce:    acct.SpeculativeNonce,
			SecNonce:            acct.SecNonce,
			SpeculativeSecNonce: acct.SpeculativeSecNonce,
		},
	}
}

// WalletInfo describes a wallet file for the info and create commands.
type WalletInfo struct {
	Address   types.PublicKey `json:"address"`
	Network   types.Network   `json:"network"`
	File      string          `json:"file"`
	CreatedAt time.Time       `json:"created_at"`
	// Mnemonic is only set right after a new key was generated.
	Mnemonic string `json:"mnemonic,omitempty"`
}

// Wallet reports a wallet file.
func Wallet(info WalletInfo) *Report {
	r := &Report{
		Fields: []Field{
			{"Address", info.Address.String()},
			{"Network", info.Network.String()},
			{"File", info.File},
			{"Created", info.CreatedAt.Format(time.RFC3339)},
		},
		Doc: info,
	}
	if info.Mnemonic != "" {
		r.Fields = append(r.Fields, Field{"Mnemonic", info.Mnemonic})
	}
	return r
}

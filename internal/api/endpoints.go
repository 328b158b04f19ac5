package api

import (
	"context"
	"errors"

	"github.com/Klingon-tech/helium-wallet/pkg/txn"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
)

// Account is the server's view of an address. Balances are in bones
// (HNT, HST) or whole Data Credits.
type Account struct {
	Address             string `json:"address"`
	Balance             uint64 `json:"balance"`
	DCBalance           uint64 `json:"dc_balance"`
	SecBalance          uint64 `json:"sec_balance"`
	Nonce               uint64 `json:"nonce"`
	SpeculativeNonce    uint64 `json:"speculative_nonce"`
	SecNonce            uint64 `json:"sec_nonce"`
	SpeculativeSecNonce uint64 `json:"speculative_sec_nonce"`
}

// GetAccount fetches the current state of an account.
func (c *Client) GetAccount(ctx context.Context, pk types.PublicKey) (*Account, error) {
	var acct Account
	if err := c.get(ctx, "/accounts/"+escape(pk.String()), &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// chainVars holds the subset of /vars that prices transactions.
// Pointers distinguish unset vars from zero.
type chainVars struct {
	TxnFees          *bool   `json:"txn_fees"`
	DCPayloadSize    *uint64 `json:"dc_payload_size"`
	TxnFeeMultiplier *uint64 `json:"txn_fee_multiplier"`
}

// GetTxnFees fetches the fee schedule. Vars the chain does not set take
// the network defaults; fees are disabled when txn_fees is unset.
func (c *Client) GetTxnFees(ctx context.Context) (txn.FeeConfig, error) {
	var vars chainVars
	if err := c.get(ctx, "/vars", &vars); err != nil {
		return txn.FeeConfig{}, err
	}

	cfg := txn.FeeConfig{
		DCPayloadSize:    txn.DefaultDCPayloadSize,
		TxnFeeMultiplier: txn.DefaultTxnFeeMultiplier,
	}
	if vars.TxnFees != nil {
		cfg.TxnFees = *vars.TxnFees
	}
	if vars.DCPayloadSize != nil {
		cfg.DCPayloadSize = *vars.DCPayloadSize
	}
	if vars.TxnFeeMultiplier != nil {
		cfg.TxnFeeMultiplier = *vars.TxnFeeMultiplier
	}
	return cfg, nil
}

// PendingTxnStatus is the API's receipt for a submitted transaction.
type PendingTxnStatus struct {
	Hash string `json:"hash"`
}

// SubmitTxn posts a signed envelope to the pending transaction queue.
func (c *Client) SubmitTxn(ctx context.Context, env *txn.Envelope) (*PendingTxnStatus, error) {
	req := struct {
		Txn string `json:"txn"`
	}{Txn: env.Base64()}

	var status PendingTxnStatus
	if err := c.post(ctx, "/pending_transactions", req, &status); err != nil {
		return nil, err
	}
	if status.Hash == "" {
		return nil, errors.New("submit transaction: response has no hash")
	}
	return &status, nil
}

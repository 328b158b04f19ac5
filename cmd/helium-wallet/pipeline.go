package main

import (
	"context"

	"github.com/Klingon-tech/helium-wallet/internal/api"
	"github.com/Klingon-tech/helium-wallet/internal/log"
	"github.com/Klingon-tech/helium-wallet/internal/report"
	"github.com/Klingon-tech/helium-wallet/internal/wallet"
	"github.com/Klingon-tech/helium-wallet/pkg/txn"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
)

// txnCommand describes one transaction kind: how to build the unsigned
// record from account state and how to report the signed result.
type txnCommand struct {
	build  func(payer types.PublicKey, acct *api.Account) (txn.Txn, error)
	report func(env *txn.Envelope, status *api.PendingTxnStatus) (*report.Report, error)
	commit bool
}

// runTxn loads and decrypts the wallet, builds the record against fresh
// account state, prices and signs it, submits it when commit is set and
// prints the report. Any failure aborts before output.
func (a *app) runTxn(ctx context.Context, c txnCommand) error {
	printer, err := a.printer()
	if err != nil {
		return err
	}

	w, err := wallet.LoadFiles(a.cfg.Files)
	if err != nil {
		return err
	}
	password, err := a.password("Password: ", false)
	if err != nil {
		return err
	}
	kp, err := w.Decrypt(password)
	zero(password)
	if err != nil {
		return err
	}
	defer kp.Zero()

	client := a.client(w.Network())
	acct, err := client.GetAccount(ctx, w.PublicKey())
	if err != nil {
		return err
	}
	log.CLI.Debug().
		Str("address", w.PublicKey().String()).
		Uint64("speculative_nonce", acct.SpeculativeNonce).
		Uint64("speculative_sec_nonce", acct.SpeculativeSecNonce).
		Msg("account fetched")

	t, err := c.build(w.PublicKey(), acct)
	if err != nil {
		return err
	}
	fees, err := client.GetTxnFees(ctx)
	if err != nil {
		return err
	}
	quote, err := txn.CalculateFee(t, fees)
	if err != nil {
		return err
	}
	env, err := txn.Sign(t, quote, kp)
	if err != nil {
		return err
	}
	log.Txn.Debug().
		Stringer("kind", t.Kind()).
		Uint64("fee", quote.Fee()).
		Str("hash", env.Hash()).
		Msg("transaction signed")

	var status *api.PendingTxnStatus
	if c.commit {
		status, err = client.SubmitTxn(ctx, env)
		if err != nil {
			return err
		}
		log.Txn.Info().Str("hash", status.Hash).Msg("transaction submitted")
	}

	r, err := c.report(env, status)
	if err != nil {
		return err
	}
	return printer.Print(r)
}

package main

import (
	"github.com/Klingon-tech/helium-wallet/internal/api"
	"github.com/Klingon-tech/helium-wallet/internal/report"
	"github.com/Klingon-tech/helium-wallet/pkg/txn"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
	"github.com/spf13/cobra"
)

func newBurnCmd(a *app) *cobra.Command {
	var (
		payee  types.PublicKey
		memo   types.Memo
		amount types.HNT
		commit bool
	)
	cmd := &cobra.Command{
		Use:   "burn --payee <PUBKEY> --amount <HNT> [--memo <BASE64>] [--commit]",
		Short: "Burn HNT into Data Credits for a payee",
		Long: "Burn HNT from this wallet into Data Credits credited to the payee.\n" +
			"Without --commit the signed transaction is only printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTxn(cmd.Context(), txnCommand{
				build: func(payer types.PublicKey, acct *api.Account) (txn.Txn, error) {
					return txn.NewTokenBurn(payer, payee, amount, memo, acct.SpeculativeNonce)
				},
				report: report.Burn,
				commit: commit,
			})
		},
	}

	f := cmd.Flags()
	f.Var(&payee, "payee", "account receiving the Data Credits")
	f.Var(&memo, "memo", "base64 encoded memo of at most 8 bytes")
	f.Var(&amount, "amount", "HNT to burn, up to 8 decimals")
	f.BoolVar(&commit, "commit", false, "submit the transaction to the network")
	_ = cmd.MarkFlagRequired("payee")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

package main

import (
	"fmt"

	"github.com/Klingon-tech/helium-wallet/internal/api"
	"github.com/Klingon-tech/helium-wallet/internal/report"
	"github.com/Klingon-tech/helium-wallet/pkg/txn"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
	"github.com/spf13/cobra"
)

func newSecuritiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "securities",
		Short: "Work with security tokens",
	}
	cmd.AddCommand(newSecuritiesTransferCmd(a))
	return cmd
}

func newSecuritiesTransferCmd(a *app) *cobra.Command {
	var commit bool
	cmd := &cobra.Command{
		Use:   "transfer <PUBKEY> <HST_AMOUNT> [--commit]",
		Short: "Transfer security tokens to another account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payee, err := types.ParsePublicKey(args[0])
			if err != nil {
				return fmt.Errorf("payee: %w", err)
			}
			amount, err := types.ParseHST(args[1])
			if err != nil {
				return fmt.Errorf("amount: %w", err)
			}
			return a.runTxn(cmd.Context(), txnCommand{
				build: func(payer types.PublicKey, acct *api.Account) (txn.Txn, error) {
					return txn.NewSecurityExchange(payer, payee, amount, acct.SpeculativeSecNonce)
				},
				report: report.SecurityTransfer,
				commit: commit,
			})
		},
	}
	cmd.Flags().BoolVar(&commit, "commit", false, "submit the transaction to the network")
	return cmd
}

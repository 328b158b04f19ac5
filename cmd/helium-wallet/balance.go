package main

import (
	"fmt"

	"github.com/Klingon-tech/helium-wallet/internal/report"
	"github.com/Klingon-tech/helium-wallet/internal/wallet"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
	"github.com/spf13/cobra"
)

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [ADDRESS]",
		Short: "Show balances and nonces of the wallet or another account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := a.printer()
			if err != nil {
				return err
			}

			var address types.PublicKey
			if len(args) == 1 {
				if address, err = types.ParsePublicKey(args[0]); err != nil {
					return fmt.Errorf("address: %w", err)
				}
			} else {
				w, err := wallet.LoadFiles(a.cfg.Files)
				if err != nil {
					return err
				}
				address = w.PublicKey()
			}

			acct, err := a.client(address.Network()).GetAccount(cmd.Context(), address)
			if err != nil {
				return err
			}
			return printer.Print(report.Balance(acct))
		},
	}
}

package main

import (
	"github.com/Klingon-tech/helium-wallet/internal/report"
	"github.com/Klingon-tech/helium-wallet/internal/wallet"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the wallet address and network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := a.printer()
			if err != nil {
				return err
			}
			w, err := wallet.LoadFiles(a.cfg.Files)
			if err != nil {
				return err
			}
			return printer.Print(report.Wallet(report.WalletInfo{
				Address:   w.PublicKey(),
				Network:   w.Network(),
				File:      w.Path(),
				CreatedAt: w.CreatedAt(),
			}))
		},
	}
}

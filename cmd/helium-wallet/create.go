package main

import (
	"fmt"

	"github.com/Klingon-tech/helium-wallet/internal/report"
	"github.com/Klingon-tech/helium-wallet/internal/wallet"
	"github.com/Klingon-tech/helium-wallet/pkg/crypto"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		network types.Network
		seed    bool
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "create [--network mainnet|testnet] [--seed] [--force]",
		Short: "Create a new wallet file",
		Long: "Create a wallet file holding a new ed25519 key, or restore one from its\n" +
			"24-word recovery phrase with --seed. The recovery phrase of a new key is\n" +
			"printed once; write it down.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.Files) != 1 {
				return wallet.ErrShardedWallet
			}
			path := a.cfg.Files[0]
			printer, err := a.printer()
			if err != nil {
				return err
			}

			var (
				kp       *crypto.Keypair
				mnemonic string
			)
			if seed {
				phrase, err := a.readLine("Recovery phrase: ")
				if err != nil {
					return err
				}
				raw, err := wallet.SeedFromMnemonic(phrase)
				if err != nil {
					return err
				}
				kp, err = crypto.KeypairFromSeed(network, raw)
				zero(raw)
				if err != nil {
					return err
				}
			} else {
				if kp, err = crypto.GenerateKeypair(network); err != nil {
					return err
				}
				raw := kp.Seed()
				mnemonic, err = wallet.MnemonicFromSeed(raw)
				zero(raw)
				if err != nil {
					return err
				}
			}
			defer kp.Zero()

			password, err := a.password("Password: ", true)
			if err != nil {
				return err
			}
			defer zero(password)

			w, err := wallet.Create(path, kp, password, a.encParams, force)
			if err != nil {
				return fmt.Errorf("create wallet: %w", err)
			}
			return printer.Print(report.Wallet(report.WalletInfo{
				Address:   w.PublicKey(),
				Network:   w.Network(),
				File:      w.Path(),
				CreatedAt: w.CreatedAt(),
				Mnemonic:  mnemonic,
			}))
		},
	}

	f := cmd.Flags()
	f.Var(&network, "network", "network of the new key: mainnet or testnet")
	f.BoolVar(&seed, "seed", false, "restore the key from a 24-word recovery phrase read from stdin")
	f.BoolVar(&force, "force", false, "overwrite an existing wallet file")
	return cmd
}

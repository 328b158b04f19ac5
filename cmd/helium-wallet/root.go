package main

import (
	"io"
	"os"

	"github.com/Klingon-tech/helium-wallet/config"
	"github.com/Klingon-tech/helium-wallet/internal/api"
	"github.com/Klingon-tech/helium-wallet/internal/log"
	"github.com/Klingon-tech/helium-wallet/internal/report"
	"github.com/Klingon-tech/helium-wallet/internal/wallet"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"file":      "file",
	"format":    "format",
	"api_url":   "api-url",
	"timeout":   "timeout",
	"log.level": "log-level",
}

// app carries what every command needs. Tests replace the I/O fields.
type app struct {
	cfg        *config.Config
	configFile string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	password  func(prompt string, confirm bool) ([]byte, error)
	encParams wallet.EncryptionParams
}

func newApp() *app {
	a := &app{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		encParams: wallet.DefaultParams(),
	}
	a.password = a.readPassword
	return a
}

func newRootCmd(a *app) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "helium-wallet",
		Short:         "Helium command line wallet",
		Long:          "Build, sign and submit Helium transactions from an encrypted local wallet.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, a.configFile)
			if err != nil {
				return err
			}
			if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
				return err
			}
			a.cfg = cfg
			log.CLI.Debug().Str("command", cmd.CommandPath()).Strs("files", cfg.Files).Msg("config loaded")
			return nil
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	def := config.Default()
	pf := root.PersistentFlags()
	pf.StringSliceP("file", "f", def.Files, "wallet file to use (repeatable)")
	format := report.Format(def.Format)
	pf.Var(&format, "format", "output format: table or json")
	pf.String("api-url", "", "Helium API base URL (default depends on the wallet network)")
	pf.Duration("timeout", def.Timeout, "timeout for each API request")
	pf.String("log-level", def.Log.Level, "log level: debug, info, warn, error or disabled")
	pf.StringVar(&a.configFile, "config", "", "config file (default "+config.DefaultConfigFile()+")")

	bindFlags(v, pf)

	root.AddCommand(
		newBurnCmd(a),
		newSecuritiesCmd(a),
		newCreateCmd(a),
		newInfoCmd(a),
		newBalanceCmd(a),
	)
	return root
}

// client returns an API client for network, honouring the configured URL
// and timeout.
func (a *app) client(network types.Network) *api.Client {
	c := api.NewWithTimeout(a.cfg.APIURLFor(network), a.cfg.Timeout)
	log.API.Debug().Str("url", c.BaseURL()).Stringer("network", network).Msg("using api")
	return c
}

func (a *app) printer() (*report.Printer, error) {
	format, err := report.ParseFormat(a.cfg.Format)
	if err != nil {
		return nil, err
	}
	return report.NewPrinter(a.stdout, format), nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for key, name := range flagKeys {
		// Lookup cannot fail for flags registered in newRootCmd.
		_ = v.BindPFlag(key, fs.Lookup(name))
	}
}

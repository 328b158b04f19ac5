package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the wallet reads.
const EnvPrefix = "HELIUM_WALLET"

// Load resolves the configuration from v, which may already have command
// flags bound to it under the mapstructure keys of Config. file names a
// TOML config file; when empty the default file is read if it exists.
func Load(v *viper.Viper, file string) (*Config, error) {
	def := Default()
	v.SetDefault("api_url", def.APIURL)
	v.SetDefault("file", def.Files)
	v.SetDefault("format", def.Format)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.json", def.Log.JSON)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// HELIUM_API_URL is the variable the wallet has always honoured.
	if err := v.BindEnv("api_url", EnvPrefix+"_API_URL", "HELIUM_API_URL"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	explicit := file != ""
	if !explicit {
		file = DefaultConfigFile()
	}
	if err := readFile(v, file, explicit); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(v *viper.Viper, file string, required bool) error {
	if _, err := os.Stat(file); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}
	v.SetConfigFile(file)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", file, err)
	}
	return nil
}

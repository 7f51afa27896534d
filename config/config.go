// Package config loads the notarization client's YAML configuration.
// Secrets (node API token, signing mnemonic) come from the environment so
// they never live in the config file or the repository.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/caretrail/docnotary/pkg/logtrace"
)

const envPrefix = "DOCNOTARY"

// DefaultMnemonicEnv names the environment variable holding the signing
// mnemonic unless the config overrides it.
const DefaultMnemonicEnv = "DOCNOTARY_MNEMONIC"

// Config is the YAML configuration structure.
type Config struct {
	Node struct {
		Address string `mapstructure:"address"`
		Token   string `mapstructure:"token"`
	} `mapstructure:"node"`

	Network string `mapstructure:"network"`

	Explorer struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"explorer"`

	Signer struct {
		// MnemonicEnv names the env var from which the mnemonic is read;
		// the mnemonic itself is never written to the config file.
		MnemonicEnv string `mapstructure:"mnemonic_env"`
	} `mapstructure:"signer"`

	Store struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"store"`

	Confirmation struct {
		MaxWaitRounds uint64 `mapstructure:"max_wait_rounds"`
	} `mapstructure:"confirmation"`
}

// LoadConfig loads the configuration from a YAML file with environment
// overrides (prefix DOCNOTARY_, dots become underscores: node.token →
// DOCNOTARY_NODE_TOKEN).
func LoadConfig(filename string) (*Config, error) {
	ctx := context.Background()

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(absPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults registered up front so env overrides bind even for keys
	// the file omits.
	v.SetDefault("node.address", "localhost:4001")
	v.SetDefault("node.token", "")
	v.SetDefault("network", "testnet")
	v.SetDefault("explorer.base_url", "")
	v.SetDefault("signer.mnemonic_env", DefaultMnemonicEnv)
	v.SetDefault("store.path", "./data/notarizations.db")
	v.SetDefault("confirmation.max_wait_rounds", 10)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config file %s: %w", absPath, err)
		}
		logtrace.Info(ctx, "config file not found, using defaults and environment", logtrace.Fields{
			"path": absPath,
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.Network {
	case "mainnet", "testnet", "betanet":
	default:
		return nil, fmt.Errorf("unknown network %q (expected mainnet, testnet, or betanet)", cfg.Network)
	}

	if dir := filepath.Dir(cfg.Store.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	logtrace.Info(ctx, "configuration loaded", logtrace.Fields{
		"path":               absPath,
		logtrace.FieldNetwork: cfg.Network,
		"node_address":       cfg.Node.Address,
		"store_path":         cfg.Store.Path,
	})
	return &cfg, nil
}

// Mnemonic reads the signing mnemonic from the configured environment
// variable. The value is returned to the caller and never logged.
func (c *Config) Mnemonic() (string, error) {
	name := c.Signer.MnemonicEnv
	if name == "" {
		name = DefaultMnemonicEnv
	}
	words := strings.TrimSpace(os.Getenv(name))
	if words == "" {
		return "", fmt.Errorf("signing mnemonic not set: export %s", name)
	}
	return words, nil
}

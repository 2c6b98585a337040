package config

// Package config provides a reusable loader for the transaction core's
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.2.0

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/synnergy-chain/txcore/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.2.0"

// Config represents the unified configuration consumed by the transaction
// core and the binaries built on top of it. It mirrors the structure of the
// YAML files under config/.
type Config struct {
	Chain struct {
		// TotalSupply bounds amount and fee on every transaction (spec.md
		// invariant 3). It is expressed in base units.
		TotalSupply uint64 `mapstructure:"total_supply" json:"total_supply" yaml:"total_supply"`

		// DelegatesPerRound is the window of consecutive blocks used to
		// compute a transaction's round when it is confirmed.
		DelegatesPerRound uint64 `mapstructure:"delegates_per_round" json:"delegates_per_round" yaml:"delegates_per_round"`

		// GenesisBlockID identifies the block whose transactions are exempt
		// from the sender-balance and second-signature pre-checks.
		GenesisBlockID string `mapstructure:"genesis_block_id" json:"genesis_block_id" yaml:"genesis_block_id"`

		// SenderPublicKeyExceptions lists transaction ids grandfathered from
		// the sender-public-key-matches-account check (spec.md §4.6 check 3).
		SenderPublicKeyExceptions []string `mapstructure:"sender_public_key_exceptions" json:"sender_public_key_exceptions" yaml:"sender_public_key_exceptions"`

		// EpochUnixSeconds is the chain epoch used by the slot calendar.
		EpochUnixSeconds int64 `mapstructure:"epoch_unix_seconds" json:"epoch_unix_seconds" yaml:"epoch_unix_seconds"`

		// SlotIntervalSeconds is the duration of a single slot.
		SlotIntervalSeconds int64 `mapstructure:"slot_interval_seconds" json:"slot_interval_seconds" yaml:"slot_interval_seconds"`
	} `mapstructure:"chain" json:"chain" yaml:"chain"`

	Storage struct {
		WALPath string `mapstructure:"wal_path" json:"wal_path" yaml:"wal_path"`
	} `mapstructure:"storage" json:"storage" yaml:"storage"`

	Logging struct {
		Level string `mapstructure:"level" json:"level" yaml:"level"`
		File  string `mapstructure:"file" json:"file" yaml:"file"`
	} `mapstructure:"logging" json:"logging" yaml:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // picks up from .env

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the TXCORE_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("TXCORE_ENV", ""))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package config

import (
	"flag"

	"github.com/keyshard/walletkeeper/internal/crypto"
)

// Config is the top-level configuration container for the wallet CLI.
// It is populated by merging values from command-line flags, environment
// variables, and an optional JSON file, with built-in defaults filling
// whatever remains unset.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type Config struct {
	// Wallet holds all wallet file and cryptography settings.
	Wallet Wallet `envPrefix:"WALLET_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from flags and environment variables.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Verbose enables debug-level logging.
	// Env: WALLET_VERBOSE
	Verbose bool `env:"WALLET_VERBOSE"`
}

// Wallet groups the settings of the wallet being operated on.
type Wallet struct {
	// File is the wallet file path. Shard files of a sharded wallet are
	// derived from it by appending a 1-based numeric suffix.
	// Env: WALLET_FILE
	File string `env:"FILE"`

	// WorkFactor is the PBKDF2 iteration count used when creating or
	// upgrading a wallet. Persisted in the wallet file, so decryption
	// never consults this setting.
	// Env: WALLET_WORK_FACTOR
	WorkFactor uint32 `env:"WORK_FACTOR"`

	// ShareCount is n, the number of shards generated for a sharded
	// wallet.
	// Env: WALLET_SHARE_COUNT
	ShareCount uint `env:"SHARE_COUNT"`

	// RecoveryThreshold is k, the minimum number of shards required to
	// recover a sharded wallet.
	// Env: WALLET_RECOVERY_THRESHOLD
	RecoveryThreshold uint `env:"RECOVERY_THRESHOLD"`

	// Force allows overwriting existing wallet files on create/upgrade.
	// Env: WALLET_FORCE
	Force bool `env:"FORCE"`
}

// defaults returns the built-in configuration merged in last: every field
// a user may leave unset has a working value here.
func defaults() *Config {
	return &Config{
		Wallet: Wallet{
			File:              "wallet.key",
			WorkFactor:        crypto.DefaultWorkFactor,
			ShareCount:        5,
			RecoveryThreshold: 3,
		},
	}
}

// Get loads, merges, and validates the CLI configuration from all
// available sources in priority order (first source wins for non-zero
// fields):
//  1. Command-line flags registered on fs and parsed from args
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *Config or an error if any source fails to
// load or the final config fails validation.
func Get(fs *flag.FlagSet, args []string) (*Config, error) {
	return newConfigBuilder().
		withFlags(fs, args).
		withEnv().
		withJSON().
		withDefaults().
		build()
}

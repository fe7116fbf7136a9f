// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package config

import "fmt"

// validate checks that the final merged [Config] satisfies all invariants
// the CLI relies on before any command runs.
//
// Sharding bounds are checked here as well, even though the cryptography
// layer re-validates them, so that a bad -n/-k pair fails before the user
// is prompted for a password.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *Config) validate() error {
	if cfg.Wallet.File == "" {
		return fmt.Errorf("%w: wallet file path is empty", ErrInvalidWalletConfigs)
	}

	if cfg.Wallet.WorkFactor == 0 {
		return fmt.Errorf("%w: work factor must be positive", ErrInvalidWalletConfigs)
	}

	n, k := cfg.Wallet.ShareCount, cfg.Wallet.RecoveryThreshold
	if k < 1 || n < k || n > 255 {
		return fmt.Errorf("%w: need 1 <= required shards <= shards <= 255, got %d of %d",
			ErrInvalidShardingConfigs, k, n)
	}

	return nil
}

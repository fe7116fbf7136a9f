package config

import (
	"flag"
	"fmt"
)

// ParseFlags registers all configuration flags on fs and parses args.
//
// Flags:
//
//	-o/-out wallet file path (shard files get a .1, .2, ... suffix)
//	-work-factor PBKDF2 iteration count for create/upgrade
//	-n/-shards number of shards for a sharded wallet
//	-k/-required-shards shards required to recover a sharded wallet
//	-force overwrite existing wallet files
//	-c/-config json file path with configs
//	-v/-verbose debug logging
//
// Each command builds its own flag set, so only the values of flags the
// user actually passed end up non-zero here.
func ParseFlags(fs *flag.FlagSet, args []string) (*Config, error) {
	var walletFile string
	var workFactor uint
	var shareCount uint
	var recoveryThreshold uint
	var force bool
	var jsonConfigPath string
	var verbose bool

	fs.StringVar(&walletFile, "o", "", "Wallet file path")
	fs.StringVar(&walletFile, "out", "", "Wallet file path (alias)")
	fs.UintVar(&workFactor, "work-factor", 0, "PBKDF2 iteration count")
	fs.UintVar(&shareCount, "n", 0, "Number of shards")
	fs.UintVar(&shareCount, "shards", 0, "Number of shards (alias)")
	fs.UintVar(&recoveryThreshold, "k", 0, "Shards required for recovery")
	fs.UintVar(&recoveryThreshold, "required-shards", 0, "Shards required for recovery (alias)")
	fs.BoolVar(&force, "force", false, "Overwrite existing wallet files")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.BoolVar(&verbose, "v", false, "Debug logging")
	fs.BoolVar(&verbose, "verbose", false, "Debug logging (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if workFactor > uint(^uint32(0)) {
		return nil, fmt.Errorf("%w: work factor %d overflows 32 bits", ErrInvalidWalletConfigs, workFactor)
	}

	return &Config{
		Wallet: Wallet{
			File:              walletFile,
			WorkFactor:        uint32(workFactor),
			ShareCount:        shareCount,
			RecoveryThreshold: recoveryThreshold,
			Force:             force,
		},
		JSONFilePath: jsonConfigPath,
		Verbose:      verbose,
	}, nil
}

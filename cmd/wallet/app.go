// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/keyshard/walletkeeper/internal/config"
	"github.com/keyshard/walletkeeper/internal/logger"
	"github.com/keyshard/walletkeeper/internal/store"
	"github.com/keyshard/walletkeeper/internal/wallet"
)

// app bundles the wiring every command needs: merged configuration, the
// logger, the wallet facade and the file store.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	svc   *wallet.Service
	files store.WalletStore

	// args holds the positional arguments left after flag parsing,
	// interpreted as explicit wallet record paths.
	args []string

	// outSet records whether the user explicitly passed -o/-out, as
	// opposed to the wallet path coming from defaults or other sources.
	outSet bool
}

func newApp(command string, args []string) (*app, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	cfg, err := config.Get(fs, args)
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger("wallet", cfg.Verbose)
	log.Debug().Any("config", cfg).Msg("received configs")

	outSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "o" || f.Name == "out" {
			outSet = true
		}
	})

	return &app{
		cfg:    cfg,
		log:    log,
		svc:    wallet.NewService(log),
		files:  store.NewFileWalletStore(log),
		args:   fs.Args(),
		outSet: outSet,
	}, nil
}

// loadRecords resolves which files make up the wallet and loads them.
// Explicit positional paths win; otherwise the configured wallet file is
// used when present, falling back to its numbered shard set. Selecting a
// subset of shards by path is how a threshold recovery is performed.
func (a *app) loadRecords() ([]wallet.Record, []string, error) {
	paths := a.args
	if len(paths) == 0 {
		if _, err := os.Stat(a.cfg.Wallet.File); err == nil {
			paths = []string{a.cfg.Wallet.File}
		} else {
			shardPaths, err := a.files.DiscoverShards(a.cfg.Wallet.File)
			if err != nil {
				return nil, nil, err
			}
			paths = shardPaths
		}
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no wallet found at %s", a.cfg.Wallet.File)
	}

	records, err := a.files.Load(paths...)
	if err != nil {
		return nil, nil, err
	}
	return records, paths, nil
}

// sharding builds the k-of-n parameters from config, or nil for a basic
// wallet. Bounds were already checked during config validation.
func (a *app) sharding(sharded bool) *wallet.ShardingConfig {
	if !sharded {
		return nil
	}
	return &wallet.ShardingConfig{
		ShareCount:        uint8(a.cfg.Wallet.ShareCount),
		RecoveryThreshold: uint8(a.cfg.Wallet.RecoveryThreshold),
	}
}

// splitFormat peels an optional leading basic|sharded argument off args.
// The default format is basic.
func splitFormat(args []string) (sharded bool, rest []string, err error) {
	rest = args
	format := "basic"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		format, rest = args[0], args[1:]
	}

	switch format {
	case "basic":
		return false, rest, nil
	case "sharded":
		return true, rest, nil
	default:
		return false, nil, fmt.Errorf("unknown wallet format %q", format)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/keyshard/walletkeeper/internal/logger"
	"github.com/keyshard/walletkeeper/internal/wallet"
)

// fileWalletStore is the default [WalletStore] backed by the local
// filesystem. Wallet files are created with owner-only permissions: they
// hold ciphertext, but the public key header alone already identifies the
// wallet.
type fileWalletStore struct {
	log *logger.Logger
}

// NewFileWalletStore constructs the default filesystem [WalletStore].
func NewFileWalletStore(log *logger.Logger) WalletStore {
	return &fileWalletStore{log: log}
}

// Save implements [WalletStore]. Existence of every target path is checked
// up front so a multi-shard save never leaves a partial set behind a
// refused overwrite.
func (f *fileWalletStore) Save(basePath string, force bool, records ...wallet.Record) ([]string, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	// Naming follows the record kind, not the record count: even a 1-of-1
	// sharded wallet keeps the numeric shard suffix so discovery finds it.
	paths := make([]string, len(records))
	for i, rec := range records {
		if rec.Kind() == wallet.KindSharded {
			paths[i] = shardPath(basePath, i+1)
		} else {
			paths[i] = basePath
		}
	}

	if !force {
		for _, path := range paths {
			if _, err := os.Stat(path); err == nil {
				return nil, fmt.Errorf("%w: %s", ErrWalletExists, path)
			}
		}
	}

	for i, rec := range records {
		if err := f.writeRecord(paths[i], force, rec); err != nil {
			return nil, err
		}
		f.log.Debug().
			Str("path", paths[i]).
			Str("format", rec.Kind().String()).
			Msg("wallet record written")
	}
	return paths, nil
}

// writeRecord persists one record through a scoped file handle: the file
// is closed on every exit path and a close failure after a clean write is
// still reported.
func (f *fileWalletStore) writeRecord(path string, force bool, rec wallet.Record) (err error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fmt.Errorf("open wallet file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close wallet file: %w", closeErr)
		}
	}()

	if err := wallet.Write(file, rec); err != nil {
		return fmt.Errorf("write wallet file %s: %w", path, err)
	}
	return nil
}

// Load implements [WalletStore].
func (f *fileWalletStore) Load(paths ...string) ([]wallet.Record, error) {
	records := make([]wallet.Record, 0, len(paths))
	for _, path := range paths {
		rec, err := f.readRecord(path)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (f *fileWalletStore) readRecord(path string) (rec wallet.Record, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wallet file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close wallet file: %w", closeErr)
		}
	}()

	rec, err = wallet.Read(file)
	if err != nil {
		return nil, fmt.Errorf("read wallet file %s: %w", path, err)
	}
	return rec, nil
}

// DiscoverShards implements [WalletStore]. Shard files are numbered from 1
// without gaps, so enumeration stops at the first missing suffix.
func (f *fileWalletStore) DiscoverShards(basePath string) ([]string, error) {
	var paths []string
	for i := 1; i <= int(^uint8(0)); i++ {
		path := shardPath(basePath, i)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				break
			}
			return nil, fmt.Errorf("stat shard file: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// shardPath names the i-th shard file of a wallet: base path plus a
// 1-based numeric suffix, e.g. wallet.key.3.
func shardPath(basePath string, i int) string {
	return fmt.Sprintf("%s.%d", basePath, i)
}

// BasePath strips the numeric shard suffix from a shard file path,
// returning the wallet base path. Paths without a valid shard suffix are
// returned unchanged.
func BasePath(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return path
	}
	if n, err := strconv.Atoi(path[i+1:]); err == nil && n >= 1 && n <= int(^uint8(0)) {
		return path[:i]
	}
	return path
}

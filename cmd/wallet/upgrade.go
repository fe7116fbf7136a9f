package main

import (
	"fmt"

	"github.com/keyshard/walletkeeper/internal/crypto"
	"github.com/keyshard/walletkeeper/internal/store"
)

// runUpgrade re-encrypts an existing wallet in the requested format with
// fresh salt, nonce and sharing key, keeping the same keypair and
// password. The configured work factor applies to the new records, which
// are written next to the source records unless -o names another path.
func runUpgrade(args []string) error {
	sharded, rest, err := splitFormat(args)
	if err != nil {
		return err
	}

	a, err := newApp("upgrade", rest)
	if err != nil {
		return err
	}

	records, sourcePaths, err := a.loadRecords()
	if err != nil {
		return err
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	defer crypto.Zero(password)

	upgraded, err := a.svc.Upgrade(password, a.cfg.Wallet.WorkFactor, a.sharding(sharded), records...)
	if err != nil {
		return err
	}

	// When the source was named by explicit paths and no -o was given, the
	// upgraded wallet belongs next to its source, not at the default path.
	base := a.cfg.Wallet.File
	if !a.outSet && len(a.args) > 0 {
		base = store.BasePath(sourcePaths[0])
	}

	paths, err := a.files.Save(base, a.cfg.Wallet.Force, upgraded...)
	if err != nil {
		return err
	}

	fmt.Printf("Public key: %s\n", a.svc.PublicKey(upgraded[0]))
	for _, path := range paths {
		fmt.Printf("Written: %s\n", path)
	}
	return nil
}

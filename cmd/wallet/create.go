package main

import (
	"fmt"

	"github.com/keyshard/walletkeeper/internal/crypto"
)

// runCreate generates a fresh keypair, encrypts it behind a password and
// writes the wallet file, or the full shard set for a sharded wallet.
func runCreate(args []string) error {
	sharded, rest, err := splitFormat(args)
	if err != nil {
		return err
	}

	a, err := newApp("create", rest)
	if err != nil {
		return err
	}

	password, err := promptNewPassword()
	if err != nil {
		return err
	}
	defer crypto.Zero(password)

	records, err := a.svc.Create(password, a.cfg.Wallet.WorkFactor, a.sharding(sharded))
	if err != nil {
		return err
	}

	paths, err := a.files.Save(a.cfg.Wallet.File, a.cfg.Wallet.Force, records...)
	if err != nil {
		return err
	}

	fmt.Printf("Public key: %s\n", a.svc.PublicKey(records[0]))
	for _, path := range paths {
		fmt.Printf("Written: %s\n", path)
	}
	return nil
}

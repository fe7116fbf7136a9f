package main

import (
	"fmt"

	"github.com/keyshard/walletkeeper/internal/crypto"
)

// runVerify decrypts the wallet to prove the password is correct, then
// discards the keypair. For a sharded wallet at least the recovery
// threshold of shard files must be available.
func runVerify(args []string) error {
	a, err := newApp("verify", args)
	if err != nil {
		return err
	}

	records, _, err := a.loadRecords()
	if err != nil {
		return err
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	defer crypto.Zero(password)

	keypair, err := a.svc.Decrypt(password, records...)
	if err != nil {
		return err
	}
	defer keypair.Destroy()

	fmt.Printf("Public key: %s\n", keypair.Public)
	fmt.Println("Verify: OK")
	return nil
}

package main

import "fmt"

// runInfo prints wallet details read from the unencrypted record headers.
// No password is required.
func runInfo(args []string) error {
	a, err := newApp("info", args)
	if err != nil {
		return err
	}

	records, paths, err := a.loadRecords()
	if err != nil {
		return err
	}

	fmt.Printf("Public key: %s\n", a.svc.PublicKey(records[0]))
	fmt.Printf("Format: %s\n", records[0].Kind())

	if !a.svc.IsSharded(records[0]) {
		fmt.Printf("File: %s\n", paths[0])
		return nil
	}

	shards, err := a.svc.Shards(records...)
	if err != nil {
		return err
	}
	fmt.Printf("Recovery: %d of %d shards\n", shards[0].Threshold, shards[0].ShareCount)
	for i, shard := range shards {
		fmt.Printf("Shard %d: %s\n", shard.Share.Index, paths[i])
	}
	return nil
}

// Package wallet implements the versioned binary wallet container and the
// operation surface used by the CLI: create, decrypt, upgrade and
// inspection of Basic (single file) and Sharded (k-of-n files) wallets.
//
// A wallet record is always the encrypted representation; the decrypted
// keypair exists only transiently in memory and can never be serialized.
// All byte persistence is delegated to the store collaborator.
package wallet

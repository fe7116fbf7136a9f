// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package wallet

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/keyshard/walletkeeper/internal/crypto"
	"github.com/keyshard/walletkeeper/models"
)

// Basic is the encrypted persisted unit of a single-file wallet.
//
// Binary layout after the format tag, fixed field order:
//
//	public key (33) ‖ nonce (12) ‖ salt (8) ‖ work factor (u32 LE) ‖
//	tag (16) ‖ ciphertext (remainder of stream)
type Basic struct {
	// Pub is stored unencrypted so the wallet can be identified without
	// decryption. It is also the associated data the authentication tag
	// binds to, so header substitution is detected on decrypt.
	Pub models.PublicKey

	// Nonce was generated fresh for the one encryption call that produced
	// Ciphertext and is never reused under the same derived key.
	Nonce [crypto.NonceSize]byte

	// Salt is the per-wallet key-derivation salt.
	Salt [crypto.SaltSize]byte

	// WorkFactor is the key-derivation iteration count, persisted verbatim
	// so recovery re-derives the identical key.
	WorkFactor uint32

	// Tag authenticates Ciphertext and the public key header.
	Tag [crypto.TagSize]byte

	// Ciphertext is the encrypted serialized keypair.
	Ciphertext []byte
}

// Kind implements [Record].
func (b *Basic) Kind() Kind { return KindBasic }

// PublicKey implements [Record].
func (b *Basic) PublicKey() models.PublicKey { return b.Pub }

func (b *Basic) encode(w io.Writer) error {
	if err := b.Pub.Write(w); err != nil {
		return err
	}
	if _, err := w.Write(b.Nonce[:]); err != nil {
		return err
	}
	if _, err := w.Write(b.Salt[:]); err != nil {
		return err
	}
	var workFactor [4]byte
	binary.LittleEndian.PutUint32(workFactor[:], b.WorkFactor)
	if _, err := w.Write(workFactor[:]); err != nil {
		return err
	}
	if _, err := w.Write(b.Tag[:]); err != nil {
		return err
	}
	_, err := w.Write(b.Ciphertext)
	return err
}

func readBasic(r io.Reader) (*Basic, error) {
	b := &Basic{}

	pub, err := models.ReadPublicKey(r)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", ErrFormat, err)
	}
	b.Pub = pub

	if _, err := io.ReadFull(r, b.Nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", ErrFormat, err)
	}
	if _, err := io.ReadFull(r, b.Salt[:]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrFormat, err)
	}
	var workFactor [4]byte
	if _, err := io.ReadFull(r, workFactor[:]); err != nil {
		return nil, fmt.Errorf("%w: work factor: %v", ErrFormat, err)
	}
	b.WorkFactor = binary.LittleEndian.Uint32(workFactor[:])
	if _, err := io.ReadFull(r, b.Tag[:]); err != nil {
		return nil, fmt.Errorf("%w: tag: %v", ErrFormat, err)
	}
	if b.Ciphertext, err = io.ReadAll(r); err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", ErrFormat, err)
	}
	return b, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the fixed size of the random salt mixed into key
	// derivation. Generated once per wallet at creation and persisted
	// alongside the ciphertext.
	SaltSize = 8

	// KeySize is the size of every derived symmetric key (AES-256).
	KeySize = 32

	// DefaultWorkFactor is the PBKDF2 iteration count used when the caller
	// does not choose one. Roughly a second of derivation on commodity
	// hardware.
	DefaultWorkFactor uint32 = 1_000_000
)

// pbkdf2Deriver is the default [KeyDeriver] backed by PBKDF2-HMAC-SHA256.
type pbkdf2Deriver struct{}

// NewKeyDeriver constructs the default PBKDF2-HMAC-SHA256 [KeyDeriver].
func NewKeyDeriver() KeyDeriver {
	return &pbkdf2Deriver{}
}

// Stretch implements [KeyDeriver]. It reads a fresh [SaltSize]-byte salt
// from the OS CSPRNG and derives a [KeySize]-byte key. Returns
// [ErrDerivation] if the random read fails or workFactor is zero.
func (d *pbkdf2Deriver) Stretch(password []byte, workFactor uint32) ([]byte, []byte, error) {
	if workFactor == 0 {
		return nil, nil, fmt.Errorf("%w: work factor must be positive", ErrDerivation)
	}
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, fmt.Errorf("%w: generate salt: %v", ErrDerivation, err)
	}
	key, err := d.ReStretch(password, workFactor, salt)
	if err != nil {
		return nil, nil, err
	}
	return salt, key, nil
}

// ReStretch implements [KeyDeriver]. The derivation is deterministic: the
// same password, work factor and salt always produce the same key, so a
// wrong password is detected later by tag verification, never here.
func (d *pbkdf2Deriver) ReStretch(password []byte, workFactor uint32, salt []byte) ([]byte, error) {
	if workFactor == 0 {
		return nil, fmt.Errorf("%w: work factor must be positive", ErrDerivation)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt length %d, want %d", ErrDerivation, len(salt), SaltSize)
	}
	return pbkdf2.Key(password, salt, int(workFactor), KeySize, sha256.New), nil
}

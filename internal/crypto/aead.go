// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// NonceSize is the fixed size of the AES-GCM nonce, generated fresh
	// for every encryption call and persisted with the record.
	NonceSize = 12

	// TagSize is the fixed size of the detached authentication tag proving
	// ciphertext integrity and confirming the correct key was used.
	TagSize = 16
)

// gcmCipher is the default [Cipher] backed by AES-256-GCM with a detached
// authentication tag.
type gcmCipher struct{}

// NewCipher constructs the default AES-256-GCM [Cipher].
func NewCipher() Cipher {
	return &gcmCipher{}
}

// Seal implements [Cipher]. The nonce is read from the OS CSPRNG inside
// this method on every call, so a nonce can never be repeated under the
// same key by a confused caller. The tag is returned detached from the
// ciphertext because the wallet format stores the two in separate fields.
func (c *gcmCipher) Seal(key, aad, plaintext []byte) ([]byte, []byte, []byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	// gcm.Seal appends ciphertext ‖ tag; split the tag off.
	sealed := aead.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - TagSize
	return nonce, sealed[split:], sealed[:split], nil
}

// Open implements [Cipher]. Any tag mismatch (wrong password, flipped
// ciphertext bit, altered associated data) returns [ErrAuthentication]
// with no further detail and no partial plaintext.
func (c *gcmCipher) Open(key, aad, nonce, tag, ciphertext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize || len(tag) != TagSize {
		return nil, ErrAuthentication
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return aead, nil
}

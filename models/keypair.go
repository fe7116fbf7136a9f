// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package models

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// KeyTypeEd25519 is the key-type discriminant byte written in front of every
// serialized public key and keypair. It is the only key type currently
// supported.
const KeyTypeEd25519 byte = 0x01

// PublicKeyBinarySize is the serialized size of a [PublicKey]:
// one key-type byte followed by the 32 raw ed25519 public key bytes.
const PublicKeyBinarySize = 1 + ed25519.PublicKeySize

// KeypairBinarySize is the serialized size of a [Keypair]:
// one key-type byte followed by the 64 raw ed25519 private key bytes
// (the ed25519 private key embeds the public key in its second half).
const KeypairBinarySize = 1 + ed25519.PrivateKeySize

// Serialization errors. Callers should match with [errors.Is].
var (
	// ErrUnknownKeyType is returned when a serialized key carries a
	// key-type byte other than [KeyTypeEd25519].
	ErrUnknownKeyType = errors.New("unknown key type")

	// ErrMalformedKeypair is returned when serialized keypair bytes are
	// internally inconsistent (the embedded public key does not match the
	// private key).
	ErrMalformedKeypair = errors.New("malformed keypair")
)

// PublicKey is the raw 32-byte ed25519 public key of a wallet.
// It is stored unencrypted in every wallet record so a wallet can be
// identified without decryption.
type PublicKey [ed25519.PublicKeySize]byte

// Write serializes the public key as key-type byte ‖ raw key bytes.
func (p PublicKey) Write(w io.Writer) error {
	if _, err := w.Write([]byte{KeyTypeEd25519}); err != nil {
		return err
	}
	_, err := w.Write(p[:])
	return err
}

// Bin returns the full binary form of the public key (type byte included).
// This is the byte string wallet encryption binds to as associated data.
func (p PublicKey) Bin() []byte {
	return append([]byte{KeyTypeEd25519}, p[:]...)
}

// String renders the public key as a hex address for display and logging.
func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

// Verify reports whether sig is a valid ed25519 signature of msg under p.
func (p PublicKey) Verify(msg, sig []byte) bool {
	return ed25519.Verify(p[:], msg, sig)
}

// ReadPublicKey deserializes a [PublicKey] written by [PublicKey.Write].
func ReadPublicKey(r io.Reader) (PublicKey, error) {
	var pub PublicKey
	var keyType [1]byte
	if _, err := io.ReadFull(r, keyType[:]); err != nil {
		return pub, err
	}
	if keyType[0] != KeyTypeEd25519 {
		return pub, fmt.Errorf("%w: 0x%02x", ErrUnknownKeyType, keyType[0])
	}
	if _, err := io.ReadFull(r, pub[:]); err != nil {
		return pub, err
	}
	return pub, nil
}

// Keypair is an ed25519 signing keypair. The private half exists decrypted
// only transiently in memory and is never persisted in plaintext; call
// [Keypair.Destroy] as soon as the keypair is no longer needed.
type Keypair struct {
	// Public is the public half, safe to store and display.
	Public PublicKey

	private ed25519.PrivateKey
}

// GenerateKeypair creates a fresh keypair from the OS CSPRNG.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	kp := &Keypair{private: priv}
	copy(kp.Public[:], pub)
	return kp, nil
}

// Sign signs msg with the private key.
func (k *Keypair) Sign(msg []byte) []byte {
	return ed25519.Sign(k.private, msg)
}

// Write serializes the keypair as key-type byte ‖ raw private key bytes.
// The output is the plaintext that wallet encryption protects; it must
// never be written anywhere unencrypted.
func (k *Keypair) Write(w io.Writer) error {
	if _, err := w.Write([]byte{KeyTypeEd25519}); err != nil {
		return err
	}
	_, err := w.Write(k.private)
	return err
}

// Equal reports whether both keypairs hold identical key material.
func (k *Keypair) Equal(other *Keypair) bool {
	if other == nil {
		return false
	}
	return k.Public == other.Public && bytes.Equal(k.private, other.private)
}

// Destroy overwrites the private key material in place. The keypair must
// not be used afterwards.
func (k *Keypair) Destroy() {
	for i := range k.private {
		k.private[i] = 0
	}
	k.private = nil
}

// ReadKeypair deserializes a [Keypair] written by [Keypair.Write] and
// checks that the embedded public key matches the private key.
func ReadKeypair(r io.Reader) (*Keypair, error) {
	var keyType [1]byte
	if _, err := io.ReadFull(r, keyType[:]); err != nil {
		return nil, err
	}
	if keyType[0] != KeyTypeEd25519 {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownKeyType, keyType[0])
	}
	priv := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	if _, err := io.ReadFull(r, priv); err != nil {
		return nil, err
	}
	// The embedded public half must be the one the seed produces, otherwise
	// the bytes were corrupted or stitched together from different keys.
	derived := ed25519.NewKeyFromSeed(priv[:ed25519.SeedSize])
	consistent := bytes.Equal(derived[ed25519.SeedSize:], priv[ed25519.SeedSize:])
	for i := range derived {
		derived[i] = 0
	}
	if !consistent {
		return nil, ErrMalformedKeypair
	}

	kp := &Keypair{private: priv}
	copy(kp.Public[:], priv[ed25519.SeedSize:])
	return kp, nil
}

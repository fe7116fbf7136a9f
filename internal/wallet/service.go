// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package wallet

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/keyshard/walletkeeper/internal/crypto"
	"github.com/keyshard/walletkeeper/internal/logger"
	"github.com/keyshard/walletkeeper/models"
)

// ShardingConfig selects the Sharded format and its k-of-n parameters.
// A nil ShardingConfig selects the Basic format.
type ShardingConfig struct {
	// ShareCount is n, the number of shard records to generate.
	ShareCount uint8

	// RecoveryThreshold is k, the minimum number of shards required to
	// recover the wallet.
	RecoveryThreshold uint8
}

// Service is the wallet facade consumed by the CLI. It orchestrates key
// derivation, authenticated encryption and secret sharing; it performs no
// I/O and keeps no state between calls, so independent wallet operations
// may run concurrently on the same Service.
type Service struct {
	deriver crypto.KeyDeriver
	cipher  crypto.Cipher
	sharer  crypto.SecretSharer
	log     *logger.Logger
}

// NewService constructs a [Service] wired with the default cryptographic
// components: PBKDF2-HMAC-SHA256 derivation, AES-256-GCM encryption and
// GF(256) Shamir secret sharing.
func NewService(log *logger.Logger) *Service {
	return NewServiceWith(crypto.NewKeyDeriver(), crypto.NewCipher(), crypto.NewSecretSharer(), log)
}

// NewServiceWith constructs a [Service] from explicit components. Intended
// for tests that substitute a deterministic or failing implementation.
func NewServiceWith(deriver crypto.KeyDeriver, cipher crypto.Cipher, sharer crypto.SecretSharer, log *logger.Logger) *Service {
	return &Service{
		deriver: deriver,
		cipher:  cipher,
		sharer:  sharer,
		log:     log,
	}
}

// Create generates a fresh keypair and encrypts it behind password. With a
// nil sharding config it returns a single [*Basic] record; otherwise it
// returns sharding.ShareCount [*Sharded] records generated together.
// Any failure aborts the whole operation; no partial wallet is returned.
func (s *Service) Create(password []byte, workFactor uint32, sharding *ShardingConfig) ([]Record, error) {
	keypair, err := models.GenerateKeypair()
	if err != nil {
		return nil, err
	}
	defer keypair.Destroy()

	records, err := s.seal(keypair, password, workFactor, sharding)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Str("public_key", keypair.Public.String()).
		Str("format", records[0].Kind().String()).
		Msg("wallet created")
	return records, nil
}

// Decrypt recovers the keypair from one basic record, or from at least
// the recovery threshold of congruent sibling shard records. A wrong
// password and tampered data are indistinguishable: both surface as
// [crypto.ErrAuthentication].
func (s *Service) Decrypt(password []byte, records ...Record) (*models.Keypair, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records supplied", ErrFormat)
	}
	switch first := records[0].(type) {
	case *Basic:
		if len(records) != 1 {
			return nil, fmt.Errorf("%w: a basic wallet is a single record, got %d",
				ErrFormat, len(records))
		}
		return s.decryptBasic(first, password)
	case *Sharded:
		return s.decryptSharded(records, password)
	default:
		return nil, fmt.Errorf("%w: unknown record type %T", ErrFormat, first)
	}
}

// Upgrade fully decrypts an existing wallet and recreates it under the
// target format: basic when sharding is nil, sharded otherwise. The new
// records carry the supplied work factor and fresh salt, nonce and sharing
// key; cryptographic randomness is never reused across formats.
func (s *Service) Upgrade(password []byte, workFactor uint32, sharding *ShardingConfig, records ...Record) ([]Record, error) {
	keypair, err := s.Decrypt(password, records...)
	if err != nil {
		return nil, err
	}
	defer keypair.Destroy()

	upgraded, err := s.seal(keypair, password, workFactor, sharding)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Str("public_key", keypair.Public.String()).
		Str("from", records[0].Kind().String()).
		Str("to", upgraded[0].Kind().String()).
		Msg("wallet upgraded")
	return upgraded, nil
}

// IsSharded reports whether the record belongs to a sharded wallet.
func (s *Service) IsSharded(rec Record) bool {
	_, ok := rec.(*Sharded)
	return ok
}

// PublicKey returns the wallet's public key from the unencrypted header;
// no password is required.
func (s *Service) PublicKey(rec Record) models.PublicKey {
	return rec.PublicKey()
}

// Shards returns the typed shard handles of a sharded wallet, in record
// order. Fails with [ErrNotSharded] when any record is basic.
func (s *Service) Shards(records ...Record) ([]*Sharded, error) {
	shards := make([]*Sharded, 0, len(records))
	for _, rec := range records {
		shard, ok := rec.(*Sharded)
		if !ok {
			return nil, ErrNotSharded
		}
		shards = append(shards, shard)
	}
	return shards, nil
}

// seal encrypts an existing keypair into one or more records. Shared by
// Create and Upgrade; never persists anything itself.
func (s *Service) seal(keypair *models.Keypair, password []byte, workFactor uint32, sharding *ShardingConfig) ([]Record, error) {
	if workFactor == 0 {
		return nil, ErrInvalidWorkFactor
	}

	salt, passwordKey, err := s.deriver.Stretch(password, workFactor)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(passwordKey)

	var plain bytes.Buffer
	if err := keypair.Write(&plain); err != nil {
		return nil, err
	}
	plaintext := plain.Bytes()
	defer crypto.Zero(plaintext)

	aad := keypair.Public.Bin()

	if sharding == nil {
		nonce, tag, ciphertext, err := s.cipher.Seal(passwordKey, aad, plaintext)
		if err != nil {
			return nil, err
		}
		basic := &Basic{
			Pub:        keypair.Public,
			WorkFactor: workFactor,
			Ciphertext: ciphertext,
		}
		copy(basic.Nonce[:], nonce)
		copy(basic.Salt[:], salt)
		copy(basic.Tag[:], tag)
		return []Record{basic}, nil
	}

	// Sharded: a fresh random sharing key is mixed into the password key.
	// The sharing key, not the keypair, is what gets split k-of-n, so
	// every shard carries the same single ciphertext.
	sharingKey := make([]byte, crypto.KeySize)
	if _, err := io.ReadFull(rand.Reader, sharingKey); err != nil {
		return nil, fmt.Errorf("generate sharing key: %w", err)
	}
	defer crypto.Zero(sharingKey)

	shares, err := s.sharer.Split(sharingKey, int(sharding.ShareCount), int(sharding.RecoveryThreshold))
	if err != nil {
		return nil, err
	}

	sealKey := shardedKey(sharingKey, passwordKey)
	defer crypto.Zero(sealKey)

	nonce, tag, ciphertext, err := s.cipher.Seal(sealKey, aad, plaintext)
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(shares))
	for i, share := range shares {
		shard := &Sharded{
			ShareCount: sharding.ShareCount,
			Threshold:  sharding.RecoveryThreshold,
			Share:      share,
			Pub:        keypair.Public,
			WorkFactor: workFactor,
			Ciphertext: ciphertext,
		}
		copy(shard.Nonce[:], nonce)
		copy(shard.Salt[:], salt)
		copy(shard.Tag[:], tag)
		records[i] = shard
	}
	return records, nil
}

func (s *Service) decryptBasic(rec *Basic, password []byte) (*models.Keypair, error) {
	key, err := s.deriver.ReStretch(password, rec.WorkFactor, rec.Salt[:])
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(key)

	plaintext, err := s.cipher.Open(key, rec.Pub.Bin(), rec.Nonce[:], rec.Tag[:], rec.Ciphertext)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(plaintext)

	return readKeypair(plaintext, rec.Pub)
}

func (s *Service) decryptSharded(records []Record, password []byte) (*models.Keypair, error) {
	first := records[0].(*Sharded)

	shares := make([]crypto.Share, 0, len(records))
	for _, rec := range records {
		shard, ok := rec.(*Sharded)
		if !ok {
			return nil, fmt.Errorf("%w: mixed basic and sharded records",
				crypto.ErrInconsistentShares)
		}
		if !shard.congruent(first) {
			return nil, fmt.Errorf("%w: shard records belong to different wallets",
				crypto.ErrInconsistentShares)
		}
		shares = append(shares, shard.Share)
	}
	if len(shares) < int(first.Threshold) {
		return nil, fmt.Errorf("%w: have %d shard records, need %d",
			crypto.ErrInsufficientShares, len(shares), first.Threshold)
	}

	passwordKey, err := s.deriver.ReStretch(password, first.WorkFactor, first.Salt[:])
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(passwordKey)

	sharingKey, err := s.sharer.Combine(shares, int(first.Threshold))
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(sharingKey)

	openKey := shardedKey(sharingKey, passwordKey)
	defer crypto.Zero(openKey)

	plaintext, err := s.cipher.Open(openKey, first.Pub.Bin(), first.Nonce[:], first.Tag[:], first.Ciphertext)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(plaintext)

	return readKeypair(plaintext, first.Pub)
}

// readKeypair deserializes a decrypted plaintext and cross-checks the
// recovered public key against the record header.
func readKeypair(plaintext []byte, pub models.PublicKey) (*models.Keypair, error) {
	keypair, err := models.ReadKeypair(bytes.NewReader(plaintext))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if keypair.Public != pub {
		keypair.Destroy()
		return nil, fmt.Errorf("%w: recovered public key does not match record header", ErrFormat)
	}
	return keypair, nil
}

// shardedKey derives the AEAD key of a sharded wallet by keying
// HMAC-SHA256 with the sharing key over the password-derived key. Both
// the password and a threshold of shards are needed to reproduce it.
func shardedKey(sharingKey, passwordKey []byte) []byte {
	mac := hmac.New(sha256.New, sharingKey)
	mac.Write(passwordKey)
	return mac.Sum(nil)
}

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

// ShareValueSize is the fixed size of the share payload carried by every
// shard record: one Shamir share of the 32-byte sharing key that, combined
// with the password-derived key, unlocks the ciphertext.
const ShareValueSize = crypto.KeySize

// Sharded is one shard record of a k-of-n wallet. All shards of one wallet
// are generated together and carry identical public key, nonce, salt, work
// factor, tag and ciphertext; only the share differs. Regenerating a lost
// shard requires a full decrypt-and-recreate of the whole set; shards are
// never independently re-shareable.
//
// Binary layout after the format tag, fixed field order:
//
//	share count (u8) ‖ recovery threshold (u8) ‖ share index (u8) ‖
//	share value (32) ‖ public key (33) ‖ nonce (12) ‖ salt (8) ‖
//	work factor (u32 LE) ‖ tag (16) ‖ ciphertext (remainder of stream)
type Sharded struct {
	// ShareCount is n, the number of shard records generated together.
	ShareCount uint8

	// Threshold is k, the minimum number of sibling shards required for
	// recovery. 1 ≤ k ≤ n ≤ 255 always holds for a well-formed wallet.
	Threshold uint8

	// Share is this record's Shamir share of the sharing key.
	Share crypto.Share

	// Pub, Nonce, Salt, WorkFactor, Tag and Ciphertext are identical
	// across all shards of the wallet; see [Basic] for their meaning.
	Pub        models.PublicKey
	Nonce      [crypto.NonceSize]byte
	Salt       [crypto.SaltSize]byte
	WorkFactor uint32
	Tag        [crypto.TagSize]byte
	Ciphertext []byte
}

// Kind implements [Record].
func (s *Sharded) Kind() Kind { return KindSharded }

// PublicKey implements [Record].
func (s *Sharded) PublicKey() models.PublicKey { return s.Pub }

func (s *Sharded) encode(w io.Writer) error {
	if len(s.Share.Value) != ShareValueSize {
		return fmt.Errorf("%w: share value length %d, want %d",
			ErrFormat, len(s.Share.Value), ShareValueSize)
	}
	if _, err := w.Write([]byte{s.ShareCount, s.Threshold, s.Share.Index}); err != nil {
		return err
	}
	if _, err := w.Write(s.Share.Value); err != nil {
		return err
	}
	if err := s.Pub.Write(w); err != nil {
		return err
	}
	if _, err := w.Write(s.Nonce[:]); err != nil {
		return err
	}
	if _, err := w.Write(s.Salt[:]); err != nil {
		return err
	}
	var workFactor [4]byte
	binary.LittleEndian.PutUint32(workFactor[:], s.WorkFactor)
	if _, err := w.Write(workFactor[:]); err != nil {
		return err
	}
	if _, err := w.Write(s.Tag[:]); err != nil {
		return err
	}
	_, err := w.Write(s.Ciphertext)
	return err
}

func readSharded(r io.Reader) (*Sharded, error) {
	s := &Sharded{}

	var header [3]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: shard header: %v", ErrFormat, err)
	}
	s.ShareCount, s.Threshold, s.Share.Index = header[0], header[1], header[2]
	if s.Threshold < 1 || s.ShareCount < s.Threshold {
		return nil, fmt.Errorf("%w: share count %d, recovery threshold %d",
			ErrFormat, s.ShareCount, s.Threshold)
	}
	if s.Share.Index < 1 || s.Share.Index > s.ShareCount {
		return nil, fmt.Errorf("%w: share index %d out of range", ErrFormat, s.Share.Index)
	}

	s.Share.Value = make([]byte, ShareValueSize)
	if _, err := io.ReadFull(r, s.Share.Value); err != nil {
		return nil, fmt.Errorf("%w: share value: %v", ErrFormat, err)
	}

	pub, err := models.ReadPublicKey(r)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", ErrFormat, err)
	}
	s.Pub = pub

	if _, err := io.ReadFull(r, s.Nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", ErrFormat, err)
	}
	if _, err := io.ReadFull(r, s.Salt[:]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrFormat, err)
	}
	var workFactor [4]byte
	if _, err := io.ReadFull(r, workFactor[:]); err != nil {
		return nil, fmt.Errorf("%w: work factor: %v", ErrFormat, err)
	}
	s.WorkFactor = binary.LittleEndian.Uint32(workFactor[:])
	if _, err := io.ReadFull(r, s.Tag[:]); err != nil {
		return nil, fmt.Errorf("%w: tag: %v", ErrFormat, err)
	}
	if s.Ciphertext, err = io.ReadAll(r); err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", ErrFormat, err)
	}
	return s, nil
}

// congruent reports whether other belongs to the same sharded wallet set:
// identical public key, nonce, salt, work factor, tag and sharing
// parameters.
func (s *Sharded) congruent(other *Sharded) bool {
	return s.ShareCount == other.ShareCount &&
		s.Threshold == other.Threshold &&
		s.Pub == other.Pub &&
		s.Nonce == other.Nonce &&
		s.Salt == other.Salt &&
		s.WorkFactor == other.WorkFactor &&
		s.Tag == other.Tag
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package wallet

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/keyshard/walletkeeper/models"
)

// Kind is the 2-byte little-endian format discriminant leading every
// persisted wallet record. Basic and Sharded have disjoint binary layouts
// and disjoint recovery procedures, so dispatch is exhaustive on this tag.
type Kind uint16

const (
	// KindBasic tags a single-file wallet record.
	KindBasic Kind = 0x0001

	// KindSharded tags one shard record of a k-of-n wallet.
	KindSharded Kind = 0x0101
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindSharded:
		return "sharded"
	default:
		return fmt.Sprintf("unknown(0x%04x)", uint16(k))
	}
}

// Record is one persisted wallet representation in its encrypted form.
// The two implementations are [*Basic] and [*Sharded]; consumers dispatch
// with a type switch. The public key is readable without decryption so a
// wallet can be identified by inspection alone.
type Record interface {
	// Kind reports the format discriminant of the record.
	Kind() Kind

	// PublicKey returns the unencrypted public key stored in the header.
	PublicKey() models.PublicKey

	// encode writes the format-specific fields, without the leading kind
	// tag. Implementations live in this package only.
	encode(w io.Writer) error
}

// Read parses one persisted wallet record: the leading format tag followed
// by the format-specific fields. An unknown tag or truncated header fails
// with [ErrFormat].
func Read(r io.Reader) (Record, error) {
	var tag [2]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return nil, fmt.Errorf("%w: missing format tag: %v", ErrFormat, err)
	}

	switch kind := Kind(binary.LittleEndian.Uint16(tag[:])); kind {
	case KindBasic:
		return readBasic(r)
	case KindSharded:
		return readSharded(r)
	default:
		return nil, fmt.Errorf("%w: format tag 0x%04x", ErrFormat, uint16(kind))
	}
}

// Write serializes one record: format tag, then the fields in the fixed
// order of the record's layout.
func Write(w io.Writer, rec Record) error {
	var tag [2]byte
	binary.LittleEndian.PutUint16(tag[:], uint16(rec.Kind()))
	if _, err := w.Write(tag[:]); err != nil {
		return err
	}
	return rec.encode(w)
}

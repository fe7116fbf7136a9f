// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The walletkeeper Authors

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// MaxShareCount is the largest supported number of shares. Share indices
// are single nonzero bytes, which caps n at 255.
const MaxShareCount = 255

// Share is one Shamir share of a secret: the x-coordinate the polynomials
// were evaluated at, and one y-coordinate byte per secret byte. A share in
// isolation carries zero information about the secret.
type Share struct {
	// Index is the 1-based x-coordinate. Zero is never a valid index:
	// evaluating at x=0 would leak the secret itself.
	Index byte

	// Value has the same length as the secret that was split.
	Value []byte
}

// GF(2^8) arithmetic over the AES polynomial x^8+x^4+x^3+x+1, via log/exp
// tables for generator 3. The exp table is doubled so multiplication and
// division skip the mod-255 reduction.
var (
	gfExp [510]byte
	gfLog [256]byte
)

func init() {
	x := byte(1)
	for i := 0; i < 255; i++ {
		gfExp[i] = x
		gfLog[x] = byte(i)
		// x *= 3 in GF(2^8): x*2 xor x.
		double := x << 1
		if x&0x80 != 0 {
			double ^= 0x1b
		}
		x = double ^ x
	}
	for i := 255; i < 510; i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+int(gfLog[b])]
}

// gfDiv divides a by b. b must be nonzero; callers guarantee it because
// share indices are nonzero and pairwise distinct.
func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+255-int(gfLog[b])]
}

// shamirSharer is the default [SecretSharer]: byte-wise polynomial secret
// sharing over GF(256) with Lagrange interpolation at x=0.
type shamirSharer struct{}

// NewSecretSharer constructs the default GF(256) [SecretSharer].
func NewSecretSharer() SecretSharer {
	return &shamirSharer{}
}

// Split implements [SecretSharer]. Every secret byte gets its own random
// polynomial of degree threshold-1 whose constant term is the secret byte;
// share i holds the evaluations at x=i+1. Coefficients come from the OS
// CSPRNG only: the below-threshold secrecy guarantee is information-
// theoretic exactly as long as they are truly random.
func (s *shamirSharer) Split(secret []byte, shareCount, threshold int) ([]Share, error) {
	if threshold < 1 || shareCount < threshold || shareCount > MaxShareCount {
		return nil, fmt.Errorf("%w: share count %d, recovery threshold %d",
			ErrInvalidParameters, shareCount, threshold)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidParameters)
	}

	// threshold-1 random coefficients per secret byte, laid out
	// per-position. Wiped before returning: coefficients are as sensitive
	// as the secret.
	coeffs := make([]byte, (threshold-1)*len(secret))
	if _, err := io.ReadFull(rand.Reader, coeffs); err != nil {
		return nil, fmt.Errorf("generate coefficients: %w", err)
	}
	defer Zero(coeffs)

	shares := make([]Share, shareCount)
	for i := range shares {
		x := byte(i + 1)
		value := make([]byte, len(secret))
		for pos, b := range secret {
			// Horner evaluation, top coefficient first; the constant
			// term is the secret byte itself.
			acc := byte(0)
			for j := threshold - 2; j >= 0; j-- {
				acc = gfMul(acc, x) ^ coeffs[pos*(threshold-1)+j]
			}
			value[pos] = gfMul(acc, x) ^ b
		}
		shares[i] = Share{Index: x, Value: value}
	}
	return shares, nil
}

// Combine implements [SecretSharer]. It interpolates the per-byte
// polynomials at x=0 across all supplied shares; any subset of at least
// threshold consistent shares yields the identical secret. Below the
// threshold it fails with [ErrInsufficientShares] and never returns a
// plausible wrong secret.
func (s *shamirSharer) Combine(shares []Share, threshold int) ([]byte, error) {
	if threshold < 1 || threshold > MaxShareCount {
		return nil, fmt.Errorf("%w: recovery threshold %d", ErrInvalidParameters, threshold)
	}
	if len(shares) < threshold {
		return nil, fmt.Errorf("%w: have %d, need %d",
			ErrInsufficientShares, len(shares), threshold)
	}

	size := len(shares[0].Value)
	if size == 0 {
		return nil, fmt.Errorf("%w: empty share value", ErrInconsistentShares)
	}
	var seen [256]bool
	for _, share := range shares {
		if share.Index == 0 {
			return nil, fmt.Errorf("%w: zero share index", ErrInconsistentShares)
		}
		if seen[share.Index] {
			return nil, fmt.Errorf("%w: duplicate share index %d",
				ErrInconsistentShares, share.Index)
		}
		seen[share.Index] = true
		if len(share.Value) != size {
			return nil, fmt.Errorf("%w: share value length %d, want %d",
				ErrInconsistentShares, len(share.Value), size)
		}
	}

	secret := make([]byte, size)
	for pos := range secret {
		var acc byte
		for j, sj := range shares {
			// Lagrange basis coefficient at x=0 for point j.
			num, den := byte(1), byte(1)
			for m, sm := range shares {
				if m == j {
					continue
				}
				num = gfMul(num, sm.Index)
				den = gfMul(den, sm.Index^sj.Index)
			}
			acc ^= gfMul(sj.Value[pos], gfDiv(num, den))
		}
		secret[pos] = acc
	}
	return secret, nil
}

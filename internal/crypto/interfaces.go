package crypto

// KeyDeriver turns a password plus a work factor into a symmetric key.
// Derivation is deliberately slow: the work factor trades brute-force
// resistance against latency and must be persisted alongside the
// ciphertext, because recovery cannot guess it.
//
// Scheme:
//
//	salt, key = Stretch(password, workFactor)         (encrypt path)
//	key       = ReStretch(password, workFactor, salt) (decrypt path)
//
// Both paths are byte-for-byte reproducible given the same salt and work
// factor, which is what lets tag verification detect a wrong password.
type KeyDeriver interface {
	// Stretch generates a fresh random salt and derives a symmetric key
	// from password, salt and workFactor. Fails only on backend failure.
	Stretch(password []byte, workFactor uint32) (salt, key []byte, err error)

	// ReStretch repeats the derivation with an existing salt. Same inputs
	// always yield the same key.
	ReStretch(password []byte, workFactor uint32, salt []byte) ([]byte, error)
}

// Cipher provides authenticated encryption of raw secret bytes with a
// detached authentication tag. The nonce is generated internally on every
// Seal call and is never caller-supplied: nonce reuse under the same key is
// a fatal security violation and is structurally prevented.
type Cipher interface {
	// Seal encrypts plaintext under key, binding aad into the tag.
	Seal(key, aad, plaintext []byte) (nonce, tag, ciphertext []byte, err error)

	// Open decrypts ciphertext and verifies the tag. Returns
	// [ErrAuthentication] on any mismatch, releasing no plaintext.
	Open(key, aad, nonce, tag, ciphertext []byte) ([]byte, error)
}

// SecretSharer splits an arbitrary byte secret into n shares such that any
// k reconstruct it and fewer than k reveal nothing (information-theoretic).
type SecretSharer interface {
	// Split produces shareCount shares with recovery threshold k.
	Split(secret []byte, shareCount, threshold int) ([]Share, error)

	// Combine reconstructs the secret from at least threshold shares with
	// pairwise-distinct indices. Which k of the n shares are supplied does
	// not affect the result.
	Combine(shares []Share, threshold int) ([]byte, error)
}

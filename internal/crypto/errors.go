package crypto

import "errors"

// Sentinel errors returned by the cryptographic components to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values; the CLI layer decides user-facing messaging.
var (
	// ErrDerivation is returned when the key-derivation backend fails,
	// for example when the OS CSPRNG cannot produce a salt. A wrong
	// password is NOT a derivation failure; it surfaces later as
	// [ErrAuthentication] during decryption.
	ErrDerivation = errors.New("key derivation failed")

	// ErrAuthentication is returned when authenticated decryption fails
	// tag verification. A wrong password and corrupted or tampered data
	// are intentionally indistinguishable to avoid an oracle; no partial
	// plaintext is ever released.
	ErrAuthentication = errors.New("authentication failed")

	// ErrInvalidParameters is returned when secret sharing is requested
	// with a share count or recovery threshold outside 1 ≤ k ≤ n ≤ 255,
	// or with an empty secret.
	ErrInvalidParameters = errors.New("invalid secret sharing parameters")

	// ErrInsufficientShares is returned when reconstruction is attempted
	// with fewer shares than the recovery threshold.
	ErrInsufficientShares = errors.New("not enough shares to recover the secret")

	// ErrInconsistentShares is returned when supplied shares are malformed
	// or mutually inconsistent: duplicate or zero indices, or values of
	// differing lengths.
	ErrInconsistentShares = errors.New("inconsistent shares")
)

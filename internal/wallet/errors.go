package wallet

import "errors"

// Sentinel errors returned by wallet container operations. Callers should
// use [errors.Is] to match against these values. Cryptographic failures
// (authentication, share reconstruction) surface as the sentinels of the
// internal crypto package and are never retried: they are not transient.
var (
	// ErrFormat is returned when persisted bytes carry an unrecognized
	// format tag or a malformed/truncated header.
	ErrFormat = errors.New("unrecognized or malformed wallet record")

	// ErrInvalidWorkFactor is returned when wallet creation is requested
	// with a zero work factor. The work factor is persisted verbatim and
	// recovery re-derives the identical key from it, so it must be a
	// positive iteration count.
	ErrInvalidWorkFactor = errors.New("work factor must be positive")

	// ErrNotSharded is returned when a shard-only operation is applied to
	// a basic wallet record.
	ErrNotSharded = errors.New("wallet is not sharded")
)

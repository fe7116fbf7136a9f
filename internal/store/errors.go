package store

import "errors"

// Sentinel errors returned by wallet persistence. Underlying OS errors are
// wrapped, never swallowed, so callers can still match with [errors.Is]
// against os-level sentinels like fs.ErrNotExist.
var (
	// ErrWalletExists is returned when Save would overwrite an existing
	// wallet file and force was not requested.
	ErrWalletExists = errors.New("wallet file already exists")

	// ErrNoRecords is returned when Save is called with nothing to write.
	ErrNoRecords = errors.New("no wallet records to save")
)

package store

import (
	"github.com/keyshard/walletkeeper/internal/wallet"
)

// WalletStore persists and loads encrypted wallet records. The
// cryptographic core performs no I/O itself; every byte it produces or
// consumes passes through this collaborator, which acquires each file in
// a scoped manner: open, read or write fully, close on every exit path.
type WalletStore interface {
	// Save writes the records derived from one wallet. A single basic
	// record is written to basePath; N shard records are written to
	// basePath.1 … basePath.N, suffixed by 1-based position. Returns the
	// written paths in order. Unless force is set, an existing file fails
	// the whole operation before anything is written.
	Save(basePath string, force bool, records ...wallet.Record) ([]string, error)

	// Load reads one record per path, in order.
	Load(paths ...string) ([]wallet.Record, error)

	// DiscoverShards lists existing sibling shard files of basePath
	// (basePath.1 …, in index order), stopping at the first gap.
	DiscoverShards(basePath string) ([]string, error)
}

package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyshard/walletkeeper/internal/logger"
	"github.com/keyshard/walletkeeper/internal/wallet"
)

const testWorkFactor uint32 = 10_000

func testRecords(t *testing.T, sharding *wallet.ShardingConfig) []wallet.Record {
	t.Helper()
	svc := wallet.NewService(logger.Nop())
	records, err := svc.Create([]byte("pass123"), testWorkFactor, sharding)
	require.NoError(t, err)
	return records
}

func TestSave_LoadBasicRoundTrip(t *testing.T) {
	s := NewFileWalletStore(logger.Nop())
	records := testRecords(t, nil)
	path := filepath.Join(t.TempDir(), "wallet.key")

	paths, err := s.Save(path, false, records...)
	require.NoError(t, err)
	require.Equal(t, []string{path}, paths)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := s.Load(paths...)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, records[0], loaded[0])
}

func TestSave_LoadShardedRoundTrip(t *testing.T) {
	s := NewFileWalletStore(logger.Nop())
	records := testRecords(t, &wallet.ShardingConfig{ShareCount: 3, RecoveryThreshold: 2})
	path := filepath.Join(t.TempDir(), "wallet.key")

	paths, err := s.Save(path, false, records...)
	require.NoError(t, err)
	assert.Equal(t, []string{path + ".1", path + ".2", path + ".3"}, paths)

	loaded, err := s.Load(paths...)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i := range records {
		assert.Equal(t, records[i], loaded[i])
	}
}

// A degenerate 1-of-1 sharded wallet still gets the numeric shard suffix;
// only basic records are written to the bare base path.
func TestSave_SingleShardKeepsSuffix(t *testing.T) {
	s := NewFileWalletStore(logger.Nop())
	records := testRecords(t, &wallet.ShardingConfig{ShareCount: 1, RecoveryThreshold: 1})
	path := filepath.Join(t.TempDir(), "wallet.key")

	paths, err := s.Save(path, false, records...)
	require.NoError(t, err)
	assert.Equal(t, []string{path + ".1"}, paths)

	found, err := s.DiscoverShards(path)
	require.NoError(t, err)
	assert.Equal(t, paths, found)
}

func TestBasePath(t *testing.T) {
	assert.Equal(t, "wallet.key", BasePath("wallet.key.3"))
	assert.Equal(t, "wallet.key", BasePath("wallet.key.255"))
	assert.Equal(t, "wallet.key", BasePath("wallet.key"))
	assert.Equal(t, "wallet.key.0", BasePath("wallet.key.0"))
	assert.Equal(t, "wallet.key.256", BasePath("wallet.key.256"))
	assert.Equal(t, "wallet", BasePath("wallet"))
}

func TestSave_RefusesOverwriteWithoutForce(t *testing.T) {
	s := NewFileWalletStore(logger.Nop())
	records := testRecords(t, nil)
	path := filepath.Join(t.TempDir(), "wallet.key")

	_, err := s.Save(path, false, records...)
	require.NoError(t, err)

	_, err = s.Save(path, false, records...)
	assert.ErrorIs(t, err, ErrWalletExists)

	_, err = s.Save(path, true, records...)
	assert.NoError(t, err)
}

func TestSave_ChecksAllShardTargetsUpFront(t *testing.T) {
	s := NewFileWalletStore(logger.Nop())
	records := testRecords(t, &wallet.ShardingConfig{ShareCount: 3, RecoveryThreshold: 2})
	path := filepath.Join(t.TempDir(), "wallet.key")

	// Only the last target exists; nothing at all must be written.
	require.NoError(t, os.WriteFile(path+".3", []byte("occupied"), 0o600))

	_, err := s.Save(path, false, records...)
	assert.ErrorIs(t, err, ErrWalletExists)

	_, statErr := os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(statErr), "partial shard set was written")
}

func TestSave_NoRecordsFails(t *testing.T) {
	s := NewFileWalletStore(logger.Nop())

	_, err := s.Save(filepath.Join(t.TempDir(), "wallet.key"), false)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestLoad_MissingFileFails(t *testing.T) {
	s := NewFileWalletStore(logger.Nop())

	_, err := s.Load(filepath.Join(t.TempDir(), "absent.key"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDiscoverShards_StopsAtFirstGap(t *testing.T) {
	s := NewFileWalletStore(logger.Nop())
	records := testRecords(t, &wallet.ShardingConfig{ShareCount: 5, RecoveryThreshold: 3})
	path := filepath.Join(t.TempDir(), "wallet.key")

	paths, err := s.Save(path, false, records...)
	require.NoError(t, err)

	found, err := s.DiscoverShards(path)
	require.NoError(t, err)
	assert.Equal(t, paths, found)

	// Removing shard 2 leaves only shard 1 discoverable.
	require.NoError(t, os.Remove(path+".2"))
	found, err = s.DiscoverShards(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path + ".1"}, found)
}

func TestDiscoverShards_NoShards(t *testing.T) {
	s := NewFileWalletStore(logger.Nop())

	found, err := s.DiscoverShards(filepath.Join(t.TempDir(), "wallet.key"))
	require.NoError(t, err)
	assert.Empty(t, found)
}

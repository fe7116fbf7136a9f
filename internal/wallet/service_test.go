package wallet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyshard/walletkeeper/internal/crypto"
	"github.com/keyshard/walletkeeper/internal/logger"
)

// Scenario work factor; kept deliberately low so the suite stays fast while
// still exercising real PBKDF2 derivation.
const testWorkFactor uint32 = 10_000

func testService() *Service {
	return NewService(logger.Nop())
}

// ── basic wallets ─────────────────────────────────────────────────────────────

// Create a basic wallet with password "pass123"; decrypting with the same
// password succeeds and the returned public key matches the unencrypted
// record header.
func TestService_BasicRoundTrip(t *testing.T) {
	svc := testService()

	records, err := svc.Create([]byte("pass123"), testWorkFactor, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, svc.IsSharded(records[0]))

	keypair, err := svc.Decrypt([]byte("pass123"), records...)
	require.NoError(t, err)
	defer keypair.Destroy()

	assert.Equal(t, svc.PublicKey(records[0]), keypair.Public)

	basic, ok := records[0].(*Basic)
	require.True(t, ok)
	assert.Equal(t, testWorkFactor, basic.WorkFactor)
}

func TestService_BasicWrongPasswordFails(t *testing.T) {
	svc := testService()

	records, err := svc.Create([]byte("pass123"), testWorkFactor, nil)
	require.NoError(t, err)

	keypair, err := svc.Decrypt([]byte("pass124"), records...)
	assert.Nil(t, keypair)
	assert.ErrorIs(t, err, crypto.ErrAuthentication)
}

func TestService_BasicSurvivesSerialization(t *testing.T) {
	svc := testService()

	records, err := svc.Create([]byte("pass123"), testWorkFactor, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records[0]))
	restored, err := Read(&buf)
	require.NoError(t, err)

	keypair, err := svc.Decrypt([]byte("pass123"), restored)
	require.NoError(t, err)
	defer keypair.Destroy()
	assert.Equal(t, restored.PublicKey(), keypair.Public)
}

func TestService_TamperedCiphertextFails(t *testing.T) {
	svc := testService()

	records, err := svc.Create([]byte("pass123"), testWorkFactor, nil)
	require.NoError(t, err)
	basic := records[0].(*Basic)

	basic.Ciphertext[0] ^= 0x01
	_, err = svc.Decrypt([]byte("pass123"), basic)
	assert.ErrorIs(t, err, crypto.ErrAuthentication)

	basic.Ciphertext[0] ^= 0x01
	basic.Tag[0] ^= 0x80
	_, err = svc.Decrypt([]byte("pass123"), basic)
	assert.ErrorIs(t, err, crypto.ErrAuthentication)
}

func TestService_CreateRejectsZeroWorkFactor(t *testing.T) {
	svc := testService()

	_, err := svc.Create([]byte("pass123"), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidWorkFactor)
}

// ── sharded wallets ───────────────────────────────────────────────────────────

// Create a 3-of-5 sharded wallet; any 3 of the 5 shard records combine and
// decrypt successfully, and any 2 fail with insufficient shares.
func TestService_ShardedThresholdRecovery(t *testing.T) {
	svc := testService()
	sharding := &ShardingConfig{ShareCount: 5, RecoveryThreshold: 3}

	records, err := svc.Create([]byte("pass123"), testWorkFactor, sharding)
	require.NoError(t, err)
	require.Len(t, records, 5)

	reference, err := svc.Decrypt([]byte("pass123"), records...)
	require.NoError(t, err)
	defer reference.Destroy()

	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			for k := j + 1; k < 5; k++ {
				keypair, err := svc.Decrypt([]byte("pass123"), records[i], records[j], records[k])
				require.NoError(t, err, "shards %d,%d,%d", i, j, k)
				assert.True(t, keypair.Equal(reference), "shards %d,%d,%d", i, j, k)
				keypair.Destroy()
			}
		}
	}

	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			_, err := svc.Decrypt([]byte("pass123"), records[i], records[j])
			assert.ErrorIs(t, err, crypto.ErrInsufficientShares, "shards %d,%d", i, j)
		}
	}
}

func TestService_ShardedWrongPasswordFails(t *testing.T) {
	svc := testService()
	sharding := &ShardingConfig{ShareCount: 3, RecoveryThreshold: 2}

	records, err := svc.Create([]byte("pass123"), testWorkFactor, sharding)
	require.NoError(t, err)

	_, err = svc.Decrypt([]byte("wrong"), records[0], records[2])
	assert.ErrorIs(t, err, crypto.ErrAuthentication)
}

func TestService_ShardedRecordsShareHeader(t *testing.T) {
	svc := testService()
	sharding := &ShardingConfig{ShareCount: 4, RecoveryThreshold: 2}

	records, err := svc.Create([]byte("pass123"), testWorkFactor, sharding)
	require.NoError(t, err)

	shards, err := svc.Shards(records...)
	require.NoError(t, err)
	require.Len(t, shards, 4)

	first := shards[0]
	seen := map[byte]bool{}
	for i, shard := range shards {
		assert.True(t, svc.IsSharded(shard))
		assert.Equal(t, byte(i+1), shard.Share.Index)
		assert.False(t, seen[shard.Share.Index], "duplicate share index")
		seen[shard.Share.Index] = true
		assert.True(t, first.congruent(shard), "shard %d not congruent", i)
		assert.Equal(t, first.Ciphertext, shard.Ciphertext)
		if i > 0 {
			assert.NotEqual(t, first.Share.Value, shard.Share.Value)
		}
	}
}

func TestService_ShardedRejectsForeignShard(t *testing.T) {
	svc := testService()
	sharding := &ShardingConfig{ShareCount: 3, RecoveryThreshold: 2}

	records, err := svc.Create([]byte("pass123"), testWorkFactor, sharding)
	require.NoError(t, err)
	foreign, err := svc.Create([]byte("pass123"), testWorkFactor, sharding)
	require.NoError(t, err)

	_, err = svc.Decrypt([]byte("pass123"), records[0], foreign[1])
	assert.ErrorIs(t, err, crypto.ErrInconsistentShares)
}

func TestService_ShardedRejectsMixedKinds(t *testing.T) {
	svc := testService()

	sharded, err := svc.Create([]byte("pass123"), testWorkFactor,
		&ShardingConfig{ShareCount: 3, RecoveryThreshold: 2})
	require.NoError(t, err)
	basic, err := svc.Create([]byte("pass123"), testWorkFactor, nil)
	require.NoError(t, err)

	_, err = svc.Decrypt([]byte("pass123"), sharded[0], basic[0])
	assert.ErrorIs(t, err, crypto.ErrInconsistentShares)

	_, err = svc.Shards(sharded[0], basic[0])
	assert.ErrorIs(t, err, ErrNotSharded)
}

func TestService_CreateRejectsBadShardingParameters(t *testing.T) {
	svc := testService()

	_, err := svc.Create([]byte("pass123"), testWorkFactor,
		&ShardingConfig{ShareCount: 3, RecoveryThreshold: 4})
	assert.ErrorIs(t, err, crypto.ErrInvalidParameters)

	_, err = svc.Create([]byte("pass123"), testWorkFactor,
		&ShardingConfig{ShareCount: 5, RecoveryThreshold: 0})
	assert.ErrorIs(t, err, crypto.ErrInvalidParameters)
}

// ── upgrade ───────────────────────────────────────────────────────────────────

// Upgrade a basic wallet to 3-of-5 sharded with the same password; any 3
// resulting shards yield the identical keypair, and the new records carry
// fresh randomness.
func TestService_UpgradeBasicToSharded(t *testing.T) {
	svc := testService()

	basicRecords, err := svc.Create([]byte("pass123"), testWorkFactor, nil)
	require.NoError(t, err)
	original, err := svc.Decrypt([]byte("pass123"), basicRecords...)
	require.NoError(t, err)
	defer original.Destroy()

	shardedRecords, err := svc.Upgrade([]byte("pass123"), testWorkFactor,
		&ShardingConfig{ShareCount: 5, RecoveryThreshold: 3}, basicRecords...)
	require.NoError(t, err)
	require.Len(t, shardedRecords, 5)

	recovered, err := svc.Decrypt([]byte("pass123"), shardedRecords[4], shardedRecords[0], shardedRecords[2])
	require.NoError(t, err)
	defer recovered.Destroy()
	assert.True(t, recovered.Equal(original))

	// Fresh randomness: the upgraded records must not reuse the old salt
	// or nonce.
	basic := basicRecords[0].(*Basic)
	shard := shardedRecords[0].(*Sharded)
	assert.NotEqual(t, basic.Salt, shard.Salt)
	assert.NotEqual(t, basic.Nonce, shard.Nonce)
}

func TestService_UpgradeShardedToBasic(t *testing.T) {
	svc := testService()

	shardedRecords, err := svc.Create([]byte("pass123"), testWorkFactor,
		&ShardingConfig{ShareCount: 5, RecoveryThreshold: 3})
	require.NoError(t, err)
	original, err := svc.Decrypt([]byte("pass123"), shardedRecords...)
	require.NoError(t, err)
	defer original.Destroy()

	basicRecords, err := svc.Upgrade([]byte("pass123"), testWorkFactor, nil,
		shardedRecords[0], shardedRecords[1], shardedRecords[3])
	require.NoError(t, err)
	require.Len(t, basicRecords, 1)

	recovered, err := svc.Decrypt([]byte("pass123"), basicRecords...)
	require.NoError(t, err)
	defer recovered.Destroy()
	assert.True(t, recovered.Equal(original))
}

func TestService_UpgradeWrongPasswordFails(t *testing.T) {
	svc := testService()

	records, err := svc.Create([]byte("pass123"), testWorkFactor, nil)
	require.NoError(t, err)

	_, err = svc.Upgrade([]byte("nope"), testWorkFactor,
		&ShardingConfig{ShareCount: 5, RecoveryThreshold: 3}, records...)
	assert.ErrorIs(t, err, crypto.ErrAuthentication)
}

func TestService_DecryptNoRecordsFails(t *testing.T) {
	svc := testService()

	_, err := svc.Decrypt([]byte("pass123"))
	assert.ErrorIs(t, err, ErrFormat)
}

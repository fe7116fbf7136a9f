package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidWalletConfigs indicates invalid wallet settings (for
	// example, an empty wallet file path or a zero work factor).
	ErrInvalidWalletConfigs = errors.New("invalid wallet configuration")
	// ErrInvalidShardingConfigs indicates an unusable shard layout (for
	// example, more required shards than shards generated, or a shard
	// count above 255).
	ErrInvalidShardingConfigs = errors.New("invalid sharding configuration")
)

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// StructuredJSONConfig mirrors [Config] with json tags for file-based
// configuration. Kept separate so wire naming can evolve without touching
// the runtime config type.
type StructuredJSONConfig struct {
	Wallet struct {
		File              string `json:"file"`
		WorkFactor        uint32 `json:"work_factor"`
		ShareCount        uint   `json:"share_count"`
		RecoveryThreshold uint   `json:"recovery_threshold"`
		Force             bool   `json:"force"`
	} `json:"wallet,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		Wallet: Wallet{
			File:              jsonCfg.Wallet.File,
			WorkFactor:        jsonCfg.Wallet.WorkFactor,
			ShareCount:        jsonCfg.Wallet.ShareCount,
			RecoveryThreshold: jsonCfg.Wallet.RecoveryThreshold,
			Force:             jsonCfg.Wallet.Force,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

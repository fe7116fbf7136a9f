// Package config provides configuration loading, merging, and validation
// for the wallet CLI.
//
// Configuration is assembled from multiple sources in the following
// priority order (earlier sources win for non-zero fields):
//  1. Command-line flags
//  2. Environment variables (WALLET_* / CONFIG)
//  3. JSON config file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// The main entry point is [Get], which every CLI command calls with its
// own flag set.
package config

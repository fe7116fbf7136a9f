package main

import (
	"fmt"
	"os"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	var err error
	switch args[0] {
	case "create":
		err = runCreate(args[1:])
	case "info":
		err = runInfo(args[1:])
	case "verify":
		err = runVerify(args[1:])
	case "upgrade":
		err = runUpgrade(args[1:])
	case "version":
		printBuildInfo()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage()
		return 2
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: wallet <command> [flags] [paths...]

Commands:
  create [basic|sharded]   Generate a new encrypted wallet (default basic)
  info                     Print wallet details from the unencrypted header
  verify                   Check that a password decrypts the wallet
  upgrade [basic|sharded]  Re-encrypt an existing wallet in another format
  version                  Print build information

Common flags:
  -o, -out            Wallet file path (default wallet.key)
  -work-factor        PBKDF2 iteration count
  -n, -shards         Number of shards for a sharded wallet
  -k, -required-shards  Shards required for recovery
  -force              Overwrite existing wallet files
  -c, -config         JSON config file path
  -v, -verbose        Debug logging

Environment variables WALLET_FILE, WALLET_WORK_FACTOR, WALLET_SHARE_COUNT,
WALLET_RECOVERY_THRESHOLD, WALLET_FORCE and CONFIG mirror the flags.
`)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

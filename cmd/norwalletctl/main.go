// Command norwalletctl is the operator CLI for the Nor Wallet Core:
// wallet creation/derivation and chain queries over JSON-RPC.
package main

import (
	"fmt"
	"os"

	"github.com/norwallet/walletcore/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/norwallet/walletcore/internal/network"
	"github.com/norwallet/walletcore/pkg/manager"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Query the balance of an address on the configured chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, _ := cmd.Flags().GetInt64("chain-id")
		if !cmd.Flags().Changed("chain-id") {
			chainID = appConfig.ChainID
		}
		cfg, err := network.ByChainID(chainID)
		if err != nil {
			return err
		}
		// A --rpc-url override (or NORWALLET_RPC_URL env var, via
		// appConfig) takes precedence over the profile's own endpoint,
		// for pointing a known chain id at a local fork or test node.
		if rpcURL, _ := cmd.Flags().GetString("rpc-url"); rpcURL != "" {
			cfg.RPCURL = rpcURL
		} else if cfg.ChainID == appConfig.ChainID && appConfig.RPCURL != "" {
			cfg.RPCURL = appConfig.RPCURL
		}
		rpc := manager.NewRpcManager(cfg)
		balance, err := rpc.GetBalance(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}
		fmt.Printf("%s on %s: %s wei\n", args[0], cfg.Name, balance.String())
		return nil
	},
}

func init() {
	balanceCmd.Flags().Int64("chain-id", appConfig.ChainID, "chain id to query")
	balanceCmd.Flags().String("rpc-url", "", "override the chain profile's RPC endpoint")
	rootCmd.AddCommand(balanceCmd)
}

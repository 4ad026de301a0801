// Package cli implements the norwalletctl command tree, following the
// teacher's internal/cli layout: a cobra root command configured via
// cobra.OnInitialize + viper config-file/env binding, with each operation
// as its own subcommand file.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/norwallet/walletcore/internal/config"
	"github.com/norwallet/walletcore/internal/registry"
)

// applyLogLevel rebuilds the default slog logger at the resolved level,
// since slog has no "change the default handler's level" call.
func applyLogLevel(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

var (
	cfgFile string
	version = "0.1.0"

	reg = registry.New()

	// appConfig holds the ambient chain/RPC/logging defaults every
	// subcommand falls back to when a flag is left unset, populated from
	// the environment in initConfig (viper.AutomaticEnv layers on top for
	// values also settable via ~/.norwalletctl.yaml).
	appConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "norwalletctl",
	Short: "Nor Wallet Core command-line interface",
	Long: `norwalletctl drives the Nor Wallet Core key-management and
transaction-signing engine: BIP-39/BIP-44 wallet creation, EVM and TRON
transaction signing, ERC-4337 UserOperation signing, and JSON-RPC chain
queries.`,
	Version: version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.norwalletctl.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".norwalletctl")
	}

	viper.SetEnvPrefix("NORWALLET")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	appConfig = config.FromEnv()
	if chainID := viper.GetInt64("chain-id"); chainID != 0 {
		appConfig.ChainID = chainID
	}
	if rpcURL := viper.GetString("rpc-url"); rpcURL != "" {
		appConfig.RPCURL = rpcURL
	}
	applyLogLevel(appConfig.LogLevel)
}

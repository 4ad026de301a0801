package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/norwallet/walletcore/internal/walletcore"
	"github.com/norwallet/walletcore/pkg/manager"
	"github.com/norwallet/walletcore/pkg/models"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new wallet from a fresh mnemonic",
	RunE: func(cmd *cobra.Command, args []string) error {
		coinType, err := coinTypeFlag(cmd)
		if err != nil {
			return err
		}
		wm := manager.NewWalletManager(reg)
		info, err := wm.CreateWallet(coinType)
		if err != nil {
			return fmt.Errorf("create wallet: %w", err)
		}
		mnemonic, err := wm.ExportMnemonic(info.ID)
		if err != nil {
			return fmt.Errorf("export mnemonic: %w", err)
		}
		fmt.Printf("Wallet ID: %s\n", info.ID)
		fmt.Printf("Mnemonic:  %s\n", mnemonic)
		fmt.Println("\nSECURITY WARNING: store this mnemonic offline; anyone with it controls the wallet.")
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [mnemonic|privkey] [value]",
	Short: "Import a wallet from an existing mnemonic or raw private key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		coinType, err := coinTypeFlag(cmd)
		if err != nil {
			return err
		}
		wm := manager.NewWalletManager(reg)
		var info *models.WalletInfo
		switch args[0] {
		case "mnemonic":
			info, err = wm.ImportMnemonic(coinType, args[1], "")
		case "privkey":
			info, err = wm.ImportPrivateKeyHex(coinType, args[1])
		default:
			return fmt.Errorf("unknown import kind %q (want mnemonic or privkey)", args[0])
		}
		if err != nil {
			return fmt.Errorf("import wallet: %w", err)
		}
		fmt.Printf("Wallet ID: %s\n", info.ID)
		for _, acc := range info.Accounts {
			fmt.Printf("  [%d] %s (%s)\n", acc.Index, acc.Address, acc.DerivationPath)
		}
		return nil
	},
}

var deriveCmd = &cobra.Command{
	Use:   "derive [wallet-id] [index]",
	Short: "Derive an account at the given index",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var index uint32
		if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
			return fmt.Errorf("invalid index: %w", err)
		}
		wm := manager.NewWalletManager(reg)
		acc, err := wm.DeriveAccount(args[0], index)
		if err != nil {
			return fmt.Errorf("derive account: %w", err)
		}
		fmt.Printf("Index:           %d\n", acc.Index)
		fmt.Printf("Derivation Path: %s\n", acc.DerivationPath)
		fmt.Printf("Address:         %s\n", acc.Address)
		return nil
	},
}

func coinTypeFlag(cmd *cobra.Command) (walletcore.CoinType, error) {
	name, _ := cmd.Flags().GetString("coin")
	switch name {
	case "", "eth":
		return walletcore.CoinTypeETH, nil
	case "trx":
		return walletcore.CoinTypeTRX, nil
	default:
		return 0, fmt.Errorf("unknown coin type %q (want eth or trx)", name)
	}
}

func init() {
	createCmd.Flags().String("coin", "eth", "coin type: eth or trx")
	importCmd.Flags().String("coin", "eth", "coin type: eth or trx")
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(deriveCmd)
}

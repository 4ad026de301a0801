package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/norwallet/walletcore/internal/codec"
	"github.com/norwallet/walletcore/pkg/manager"
)

var signMessageCmd = &cobra.Command{
	Use:   "sign-message [wallet-id] [index] [message]",
	Short: "Sign a message with EIP-191 personal-sign framing",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var index uint32
		if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
			return fmt.Errorf("invalid index: %w", err)
		}
		em := manager.NewEvmManager(reg)
		sig, err := em.SignPersonalMessage(args[0], index, []byte(args[2]))
		if err != nil {
			return fmt.Errorf("sign message: %w", err)
		}
		fmt.Printf("Signature: %s\n", codec.HexEncode(sig))
		return nil
	},
}

var recoverCmd = &cobra.Command{
	Use:   "recover [hash-hex] [signature-hex]",
	Short: "Recover the address that produced a signature over a hash",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := codec.HexDecode(args[0])
		if err != nil {
			return fmt.Errorf("invalid hash: %w", err)
		}
		sig, err := hex.DecodeString(trimHexPrefix(args[1]))
		if err != nil {
			return fmt.Errorf("invalid signature: %w", err)
		}
		em := manager.NewEvmManager(reg)
		addr, err := em.RecoverSigner(hash, sig)
		if err != nil {
			return fmt.Errorf("recover signer: %w", err)
		}
		fmt.Printf("Signer: %s\n", addr)
		return nil
	},
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func init() {
	rootCmd.AddCommand(signMessageCmd)
	rootCmd.AddCommand(recoverCmd)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key pair for an actor",
	RunE:  generateRun,
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the actor address for the key",
	RunE:  addressRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(addressCmd)
}

func generateRun(cmd *cobra.Command, args []string) error {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return err
	}

	path := getPrivateKeyPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if err := crypto.SaveECDSA(path, privateKey); err != nil {
		return err
	}

	pterm.Success.Printfln("key written to %s for %s", path, crypto.PubkeyToAddress(privateKey.PublicKey).Hex())
	return nil
}

func addressRun(cmd *cobra.Command, args []string) error {
	address, err := loadAddress()
	if err != nil {
		return err
	}

	fmt.Println(address)
	return nil
}

// loadAddress returns the actor address for the configured key.
func loadAddress() (string, error) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		return "", fmt.Errorf("load key: %w", err)
	}

	return crypto.PubkeyToAddress(privateKey.PublicKey).Hex(), nil
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/rsa"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <plaintext>",
	Short: "Generate a key, encrypt and decrypt an integer",
	Long: `Generate a fresh key pair, encrypt the plaintext and decrypt it again.
Exits non-zero if the decrypted value differs or the plaintext does not fit
below the modulus.

Example:
  rsactl roundtrip --size 128 1234`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")
		seed, _ := cmd.Flags().GetString("seed")

		key, err := generateKey(cmd.Context(), runtimeConfig, size, seed, "")
		if err != nil {
			return err
		}
		return roundtrip(cmd.OutOrStdout(), key, args[0])
	},
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
	roundtripCmd.Flags().Int("size", 0, "Modulus size in bits (default: key_size from configuration)")
	roundtripCmd.Flags().String("seed", "", "Hex encoded 32 byte seed for deterministic generation")
}

func roundtrip(w io.Writer, key *rsa.KeyPair, plaintext string) error {
	m, err := parseInt("plaintext", plaintext)
	if err != nil {
		return err
	}
	if m.Sign() < 0 || m.Cmp(key.Modulus()) >= 0 {
		return fmt.Errorf("plaintext must lie in [0, n) for a %d-bit modulus", key.Size())
	}

	c := key.Encrypt(m)
	decrypted := key.Decrypt(c)

	fmt.Fprintf(w, "modulus: %s\nciphertext: %s\ndecrypted: %s\n", key.Modulus(), c, decrypted)
	if decrypted.Cmp(m) != 0 {
		return fmt.Errorf("round trip mismatch: got %s, want %s", decrypted, m)
	}
	return nil
}

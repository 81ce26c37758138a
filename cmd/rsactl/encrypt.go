package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/rsa"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <plaintext>",
	Short: "Encrypt an integer with a public key",
	Long: `Compute plaintext^e mod n.

The plaintext must lie in [0, n) to survive decryption.

Example:
  rsactl encrypt --modulus 3233 --exponent 17 65`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modulus, _ := cmd.Flags().GetString("modulus")
		exponent, _ := cmd.Flags().GetString("exponent")

		ciphertext, err := encrypt(modulus, exponent, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ciphertext)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().String("modulus", "", "Modulus n")
	encryptCmd.Flags().String("exponent", fmt.Sprint(rsa.PublicExponent), "Public exponent e")
}

func encrypt(modulus, exponent, plaintext string) (*big.Int, error) {
	n, err := parseInt("modulus", modulus)
	if err != nil {
		return nil, err
	}
	e, err := parseInt("exponent", exponent)
	if err != nil {
		return nil, err
	}
	m, err := parseInt("plaintext", plaintext)
	if err != nil {
		return nil, err
	}

	pub, err := rsa.NewPublicKey(n, e)
	if err != nil {
		return nil, err
	}
	return pub.Encrypt(m), nil
}

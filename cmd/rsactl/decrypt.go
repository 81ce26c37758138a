package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/rsa"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <ciphertext>",
	Short: "Decrypt an integer with a private key",
	Long: `Compute ciphertext^d mod n.

Example:
  rsactl decrypt --modulus 3233 --private-exponent 413 2790`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modulus, _ := cmd.Flags().GetString("modulus")
		privateExponent, _ := cmd.Flags().GetString("private-exponent")

		plaintext, err := decrypt(modulus, privateExponent, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), plaintext)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().String("modulus", "", "Modulus n")
	decryptCmd.Flags().String("private-exponent", "", "Private exponent d")
}

func decrypt(modulus, privateExponent, ciphertext string) (*big.Int, error) {
	n, err := parseInt("modulus", modulus)
	if err != nil {
		return nil, err
	}
	d, err := parseInt("private exponent", privateExponent)
	if err != nil {
		return nil, err
	}
	c, err := parseInt("ciphertext", ciphertext)
	if err != nil {
		return nil, err
	}

	key, err := rsa.FromComponents(n, big.NewInt(rsa.PublicExponent), d)
	if err != nil {
		return nil, err
	}
	return key.Decrypt(c), nil
}

package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/numtheory"
)

// mathCmd represents the math command
var mathCmd = &cobra.Command{
	Use:   "math",
	Short: "Number theory helpers",
	Long:  `Evaluate the gcd, lcm and coprimality helpers used by key generation.`,
}

var mathGCDCmd = &cobra.Command{
	Use:   "gcd <a> <b>",
	Short: "Greatest common divisor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := parsePair(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), numtheory.GCD(a, b))
		return nil
	},
}

var mathLCMCmd = &cobra.Command{
	Use:   "lcm <a> <b>",
	Short: "Least common multiple",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := parsePair(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), numtheory.LCM(a, b))
		return nil
	},
}

var mathCoprimeCmd = &cobra.Command{
	Use:   "coprime <a> <b>",
	Short: "Report whether gcd(a, b) is 1",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := parsePair(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), numtheory.IsCoprime(a, b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mathCmd)
	mathCmd.AddCommand(mathGCDCmd)
	mathCmd.AddCommand(mathLCMCmd)
	mathCmd.AddCommand(mathCoprimeCmd)
}

func parsePair(args []string) (a, b *big.Int, err error) {
	if a, err = parseInt("a", args[0]); err != nil {
		return nil, nil, err
	}
	if b, err = parseInt("b", args[1]); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/sampling"
)

var primeCmd = &cobra.Command{
	Use:   "prime <bits>",
	Short: "Sample a probable prime of the given size",
	Long: `Sample a probable prime with exactly the given number of bits, using the
same candidate range and certainty as key generation.

Example:
  rsactl prime 512`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bits, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid bit count %q", args[0])
		}
		seed, _ := cmd.Flags().GetString("seed")

		opts, err := seedOption(seed)
		if err != nil {
			return err
		}
		sampler := sampling.New(append(runtimeConfig.SamplerOptions(), opts...)...)

		p, err := sampler.RandomProbablePrime(bits)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(primeCmd)
	primeCmd.Flags().String("seed", "", "Hex encoded 32 byte seed for deterministic sampling")
}

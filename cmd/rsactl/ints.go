package main

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/sampling"
)

// parseInt parses a decimal or 0x/0o/0b prefixed integer.
func parseInt(name, value string) (*big.Int, error) {
	if value == "" {
		return nil, fmt.Errorf("%s is required", name)
	}
	n, ok := new(big.Int).SetString(value, 0)
	if !ok {
		return nil, fmt.Errorf("invalid %s %q: not an integer", name, value)
	}
	return n, nil
}

// seedOption turns a 64 character hex seed into a deterministic sampler
// source. An empty seed keeps crypto/rand.
func seedOption(seed string) ([]sampling.Option, error) {
	if seed == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(seed)
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("seed must be 64 hex characters")
	}
	var s [32]byte
	copy(s[:], raw)
	return []sampling.Option{sampling.WithSeed(s)}, nil
}

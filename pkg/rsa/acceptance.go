package rsa

//go:generate go run github.com/dmarkham/enumer -type AcceptancePolicy -trimprefix AcceptancePolicy -transform lower -yaml -output acceptance.gen.go

import (
	"math/big"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/numtheory"
)

// AcceptancePolicy decides whether a sampled prime pair becomes a key.
type AcceptancePolicy int

const (
	// AcceptancePolicyObserved accepts a pair when e is coprime to λ(n) OR the
	// primes are far enough apart. The OR lets pairs with no private exponent
	// through; the generator catches those when the inverse fails.
	AcceptancePolicyObserved AcceptancePolicy = iota

	// AcceptancePolicyStrict requires both coprimality and distance.
	AcceptancePolicyStrict
)

// distanceShift is how many low bits of |p-q| are ignored when checking the
// primes are far enough apart.
const distanceShift = 100

func (a AcceptancePolicy) accepts(e, lambda, p, q *big.Int, primeBits int) bool {
	coprime := numtheory.IsCoprime(e, lambda)
	apart := farApart(p, q, primeBits)

	if a == AcceptancePolicyStrict {
		return coprime && apart
	}
	return coprime || apart
}

// farApart reports whether |p-q| >> (primeBits-100) is non-zero. A negative
// shift count shifts left instead, so for small primes this reduces to p != q.
func farApart(p, q *big.Int, primeBits int) bool {
	diff := new(big.Int).Sub(p, q)
	diff.Abs(diff)

	shift := primeBits - distanceShift
	if shift >= 0 {
		diff.Rsh(diff, uint(shift))
	} else {
		diff.Lsh(diff, uint(-shift))
	}

	return diff.Sign() != 0
}

package numtheory

import "math/big"

var one = big.NewInt(1)

// GCD returns the non-negative greatest common divisor of a and b using the
// Euclidean algorithm. GCD(0, 0) is 0.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)

	// gcd(a, b) = gcd(b, a mod b) until b reaches zero
	for y.Sign() != 0 {
		x.Rem(x, y)
		x, y = y, x
	}

	return x
}

// LCM returns |a*b| / gcd(a, b). LCM(0, 0) is 0 rather than a division by zero.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 && b.Sign() == 0 {
		return new(big.Int)
	}

	product := new(big.Int).Mul(a, b)
	product.Abs(product)

	return product.Quo(product, GCD(a, b))
}

// IsCoprime reports whether gcd(a, b) == 1.
func IsCoprime(a, b *big.Int) bool {
	return GCD(a, b).Cmp(one) == 0
}

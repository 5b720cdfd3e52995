// Package random provides cryptographically strong random sources.
//
// The sources draw from crypto/rand and carry no state, so they are safe for
// concurrent use and cannot be seeded or perturbed by callers.
package random

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
)

// Default is the process-wide crypto-backed source.
var Default = Crypto{}

// Crypto draws uniformly distributed integers from crypto/rand.
type Crypto struct{}

// Intn returns a uniform integer in [0, n). It panics if n <= 0, like
// math/rand.
//
// crypto/rand does not fail on supported platforms, so a read error is a
// broken runtime and panics as well.
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}
	value, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("random: read crypto source: %v", err))
	}
	return int(value.Int64())
}

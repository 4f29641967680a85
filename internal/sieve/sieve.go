// Package sieve implements the sieve of Eratosthenes.
package sieve

import "math"

// Primes returns every prime p with p <= limit in ascending order.
func Primes(limit int) []int {
	if limit < 2 {
		return []int{}
	}

	composite := make([]bool, limit+1)
	root := int(math.Sqrt(float64(limit)))
	for i := 2; i <= root; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}

	primes := make([]int, 0, estimate(limit))
	for n := 2; n <= limit; n++ {
		if !composite[n] {
			primes = append(primes, n)
		}
	}
	return primes
}

// estimate is an upper bound on the prime count below limit, n / (ln n - 1.1).
func estimate(limit int) int {
	if limit < 17 {
		return limit
	}
	n := float64(limit)
	return int(n/(math.Log(n)-1.1)) + 1
}

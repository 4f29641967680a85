package main

import (
	"fmt"
	"strconv"
	"time"
	"unsafe"

	"github.com/spf13/cobra"

	"crossbench/internal/config"
	"crossbench/internal/sieve"
)

func newSieveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sieve [limits...]",
		Short: "Run the prime sieve over growing limits",
		Long: `Runs the sieve of Eratosthenes for each limit (default: sieve.limits from the
configuration) and prints the time taken, the size of the result and the
number of primes found.`,
		RunE: runSieve,
	}
}

func init() {
	rootCmd.AddCommand(newSieveCmd())
}

func runSieve(cmd *cobra.Command, args []string) error {
	var limits []int
	if len(args) == 0 {
		cfg, err := config.FromViper()
		if err != nil {
			return err
		}
		limits = cfg.SieveLimits
	} else {
		limits = make([]int, 0, len(args))
		for _, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid limit %q: %w", arg, err)
			}
			limits = append(limits, n)
		}
	}

	out := cmd.OutOrStdout()
	for _, limit := range limits {
		fmt.Fprintf(out, "\nTesting with limit: %d\n", limit)

		start := time.Now()
		primes := sieve.Primes(limit)
		elapsed := time.Since(start)

		size := int(unsafe.Sizeof(primes)) + len(primes)*int(unsafe.Sizeof(0))
		fmt.Fprintf(out, "Time taken: %v\n", elapsed)
		fmt.Fprintf(out, "Memory used: %d bytes\n", size)
		fmt.Fprintf(out, "Number of primes found: %d\n", len(primes))

		if limit == 100 {
			fmt.Fprintf(out, "First few primes: %v\n", primes[:10])
		}
	}
	return nil
}

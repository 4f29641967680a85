package main

import (
	"github.com/spf13/cobra"

	"crossbench/internal/config"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare the two run records without measuring anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper()
			if err != nil {
				return err
			}
			return compareRuns(cmd.OutOrStdout(), cfg)
		},
	}
}

func init() {
	rootCmd.AddCommand(newCompareCmd())
}

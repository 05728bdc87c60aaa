// Package cli wires the fragref commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fragref",
		Short: "Fragref keeps PR references in changelog fragments up to date",
		Long: `Fragref rewrites pull-request reference placeholders in changelog
fragment files and conditionally commits and pushes the result. It is meant
to run on CI after every push to the main branch, so merged changes pick up
their PR numbers without manual editing.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// newVersionCmd creates the version command
func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fragref %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

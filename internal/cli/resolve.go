package cli

import (
	"github.com/spf13/cobra"

	"fragref.dev/fragref/internal/actions"
)

// newResolveCmd creates the resolve command
func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Rewrite placeholder PR references in place, without committing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = rt.splog.Close() }()

			res, err := rt.newResolver(ctx)
			if err != nil {
				return err
			}

			return actions.ResolveAction(ctx, res, rt.splog)
		},
	}
}

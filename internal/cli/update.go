package cli

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"fragref.dev/fragref/internal/actions"
	"fragref.dev/fragref/internal/output"
)

// newUpdateCmd creates the update command
func newUpdateCmd() *cobra.Command {
	var (
		dryRun bool
		noPush bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Resolve PR references, then commit and push if anything changed",
		Long: `Update rewrites placeholder PR references in the changelog directory.
If any file under that directory then differs from the committed state, exactly
that directory is staged, committed with the configured bot identity and
message, and pushed to the origin's current branch. When nothing changed the
command logs that fact and exits without committing.`,
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

			opts := actions.UpdateOptions{
				DryRun: dryRun,
				NoPush: noPush,
			}

			// Only prompt when a human is watching
			if !yes && output.IsTerminal() {
				opts.Confirm = func() (bool, error) {
					confirmed := false
					err := survey.AskOne(&survey.Confirm{
						Message: "Push the reference-update commit?",
						Default: true,
					}, &confirmed)
					return confirmed, err
				}
			}

			return actions.UpdateAction(ctx, opts, rt.repo, rt.cfg, res, rt.splog)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Resolve references but do not commit or push")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "Commit without pushing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not prompt before pushing")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"fragref.dev/fragref/internal/actions"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "List change fragments and unresolved PR references",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = rt.splog.Close() }()

			return actions.StatusAction(actions.StatusOptions{Check: check}, rt.scanner, rt.splog)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Exit non-zero when unresolved references remain")

	return cmd
}

package actions

import (
	"fmt"

	fragreferrors "fragref.dev/fragref/internal/errors"
	"fragref.dev/fragref/internal/fragment"
	"fragref.dev/fragref/internal/output"
)

// StatusOptions contains options for the status action
type StatusOptions struct {
	// Check makes the action return an error when unresolved references remain
	Check bool
}

// StatusAction lists change fragments and their reference state
func StatusAction(opts StatusOptions, scanner *fragment.Scanner, splog *output.Splog) error {
	fragments, err := scanner.Scan()
	if err != nil {
		return err
	}

	if len(fragments) == 0 {
		splog.Info("no change fragments in %s", scanner.Dir())
		return nil
	}

	var unresolved []string
	for _, f := range fragments {
		switch {
		case f.Unresolved > 0:
			splog.Info("%s %s", output.ColorUnresolved(f.Path), output.ColorDim(fmt.Sprintf("(%d unresolved)", f.Unresolved)))
			unresolved = append(unresolved, f.Path)
		case f.Resolved > 0:
			splog.Info("%s", output.ColorResolved(f.Path))
		default:
			splog.Info("%s %s", f.Path, output.ColorDim("(no PR reference)"))
		}
	}

	if opts.Check && len(unresolved) > 0 {
		return fragreferrors.NewUnresolvedFragmentsError(unresolved)
	}

	return nil
}

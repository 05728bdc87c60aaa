package actions

import (
	"context"
	"fmt"

	"fragref.dev/fragref/internal/output"
	"fragref.dev/fragref/internal/resolver"
)

// ResolveAction runs only the reference-update pass, with no git side effects
func ResolveAction(ctx context.Context, res *resolver.Resolver, splog *output.Splog) error {
	result, err := res.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve PR references: %w", err)
	}

	if len(result.Resolved) == 0 && len(result.Unresolved) == 0 {
		splog.Info("nothing to resolve")
		return nil
	}

	splog.Info("resolved %d fragment(s), %d unresolved", len(result.Resolved), len(result.Unresolved))
	return nil
}

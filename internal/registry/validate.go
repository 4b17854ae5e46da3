package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/manifreeze/internal/ctxlog"
)

// Validate checks the ledger for registrations that cannot coexist in one
// image. A file registered twice means two manifests claim the same
// module; two different files sharing an import stem would shadow each
// other at import time. Both are reported together so the operator sees
// every conflict in one pass.
func (l *Ledger) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	seenFiles := make(map[string]struct{})
	seenStems := make(map[string]FrozenModule)

	for _, mod := range l.modules {
		qualified := mod.Dir + "/" + mod.File
		if _, ok := seenFiles[qualified]; ok {
			errs = append(errs, fmt.Sprintf("module '%s' is registered more than once", qualified))
			continue
		}
		seenFiles[qualified] = struct{}{}

		if prev, ok := seenStems[mod.Stem]; ok {
			errs = append(errs, fmt.Sprintf(
				"import name '%s' is claimed by both '%s/%s' and '%s'",
				mod.Stem, prev.Dir, prev.File, qualified))
			continue
		}
		seenStems[mod.Stem] = mod
	}

	if len(errs) > 0 {
		return fmt.Errorf("ledger validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Ledger validation passed.", "includes", len(l.includes), "modules", len(l.modules))
	return nil
}

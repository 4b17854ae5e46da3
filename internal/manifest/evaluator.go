package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/manifreeze/internal/config"
	"github.com/vk/manifreeze/internal/ctxlog"
	"github.com/vk/manifreeze/internal/fsutil"
	"github.com/vk/manifreeze/internal/registry"
)

// Evaluator evaluates manifests into a registration ledger. It is not
// safe for concurrent use: evaluation is one synchronous pass, and the
// touched-path record below belongs to the most recent call.
type Evaluator struct {
	loader  config.Loader
	touched []string
}

// NewEvaluator creates an Evaluator that reads manifests through the given
// loader.
func NewEvaluator(loader config.Loader) *Evaluator {
	return &Evaluator{loader: loader}
}

// Evaluate resolves path to a manifest file and evaluates it, writing
// every registration into the ledger. The returned metadata is the root
// manifest's metadata block, or nil when it has none.
func (e *Evaluator) Evaluate(ctx context.Context, path string, ledger *registry.Ledger) (*config.Metadata, error) {
	e.touched = e.touched[:0]

	manifestPath, err := fsutil.ResolveManifest(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve manifest %s: %w", path, err)
	}

	root, err := e.evaluateFile(ctx, manifestPath, ledger, nil)
	if err != nil {
		return nil, err
	}
	return root.Metadata, nil
}

// TouchedPaths returns every manifest file loaded and every directory
// scanned by the most recent Evaluate call, in visiting order. Watch mode
// uses this to decide what to observe for changes.
func (e *Evaluator) TouchedPaths() []string {
	out := make([]string, len(e.touched))
	copy(out, e.touched)
	return out
}

// evaluateFile evaluates one manifest file. The stack holds the cleaned
// paths of every manifest currently being evaluated, outermost first, and
// guards against include cycles.
func (e *Evaluator) evaluateFile(ctx context.Context, manifestPath string, ledger *registry.Ledger, stack []string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)

	cleaned := filepath.Clean(manifestPath)
	for _, active := range stack {
		if active == cleaned {
			cycle := append(stack, cleaned)
			return nil, fmt.Errorf("include cycle detected: %s", strings.Join(cycle, " -> "))
		}
	}
	stack = append(stack, cleaned)
	e.touched = append(e.touched, cleaned)

	m, err := e.loader.Load(ctx, manifestPath)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(manifestPath)

	// Includes run unconditionally, before any scan of this manifest.
	for _, inc := range m.Includes {
		ledger.AddInclude(inc.Path)
		logger.Info("Registered include.", "path", inc.Path, "manifest", manifestPath)

		if err := e.descend(ctx, baseDir, inc.Path, ledger, stack); err != nil {
			return nil, err
		}
	}

	for _, frz := range m.Freezes {
		if err := e.freeze(ctx, baseDir, frz, ledger); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// descend follows one include directive into its nested manifest. A
// target without a manifest file of its own is registration-only: the
// downstream build tool interprets the path, and there is nothing here to
// evaluate.
func (e *Evaluator) descend(ctx context.Context, baseDir, incPath string, ledger *registry.Ledger, stack []string) error {
	logger := ctxlog.FromContext(ctx)

	nested := filepath.Join(baseDir, incPath, fsutil.DefaultManifestName)
	if _, err := os.Stat(nested); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Include target has no nested manifest, registration only.", "path", incPath)
			return nil
		}
		return fmt.Errorf("could not read nested manifest %s: %w", nested, err)
	}

	logger.Debug("Descending into nested manifest.", "path", nested)
	_, err := e.evaluateFile(ctx, nested, ledger, stack)
	return err
}

// freeze executes one freeze directive: a non-recursive scan of a single
// directory, registering every file whose name matches the pattern.
func (e *Evaluator) freeze(ctx context.Context, baseDir string, frz *config.Freeze, ledger *registry.Ledger) error {
	logger := ctxlog.FromContext(ctx)

	scanDir := filepath.Join(baseDir, frz.Dir)
	if _, err := os.Stat(scanDir); err != nil {
		return fmt.Errorf("freeze directory %s: %w", frz.Dir, err)
	}
	e.touched = append(e.touched, scanDir)

	matches, err := fsutil.MatchFiles(scanDir, frz.Pattern)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", frz.Dir, err)
	}

	if len(matches) == 0 {
		logger.Warn("No module candidates found.", "dir", frz.Dir, "pattern", frz.Pattern)
		return nil
	}

	for _, match := range matches {
		rel, err := filepath.Rel(baseDir, match)
		if err != nil {
			return fmt.Errorf("could not relativize %s: %w", match, err)
		}

		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 2 {
			// Known limitation carried over from the original tool: a
			// registration is exactly (parent directory, file name), so a
			// deeper path cannot be represented and must not be silently
			// truncated.
			return fmt.Errorf(
				"cannot freeze %s: path has %d segments, registration requires exactly a parent directory and a file name",
				rel, len(parts))
		}

		dir, file := parts[0], parts[1]
		ledger.AddModule(dir, file, frz.Kind, frz.Opt)
		logger.Info("Froze module.", "dir", dir, "file", file, "kind", frz.Kind, "opt", frz.Opt)
	}

	return nil
}

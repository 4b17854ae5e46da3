package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/vk/manifreeze/internal/ctxlog"
	"github.com/vk/manifreeze/internal/lockfile"
	"github.com/vk/manifreeze/internal/manifest"
	"github.com/vk/manifreeze/internal/registry"
)

// Run executes the main application logic based on the App's
// configuration: one manifest evaluation, and in watch mode an evaluation
// per relevant filesystem change until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	eval := manifest.NewEvaluator(a.loader)
	if err := a.evaluateOnce(ctx, eval); err != nil {
		return err
	}

	if a.config.Watch {
		return a.watch(ctx, eval)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// evaluateOnce performs one complete evaluation: load and walk the
// manifest tree, validate the resulting ledger, and write the lock
// document.
func (a *App) evaluateOnce(ctx context.Context, eval *manifest.Evaluator) error {
	evaluationID := uuid.NewString()
	logger := a.logger.With("evaluation", evaluationID)
	ctx = ctxlog.WithLogger(ctx, logger)

	logger.Info("🧊 Starting manifest evaluation...", "manifest", a.config.ManifestPath)

	ledger := registry.New()
	meta, err := eval.Evaluate(ctx, a.config.ManifestPath, ledger)
	if err != nil {
		return fmt.Errorf("manifest evaluation failed: %w", err)
	}

	if err := ledger.Validate(ctx); err != nil {
		return fmt.Errorf("ledger rejected: %w", err)
	}

	doc := lockfile.Build(evaluationID, meta, ledger)
	if err := a.writeLock(doc); err != nil {
		return err
	}

	a.ledger = ledger
	logger.Info("🏁 Manifest evaluation complete.",
		"includes", len(ledger.Includes()),
		"modules", len(ledger.Modules()),
	)
	return nil
}

// writeLock renders the lock document to the configured output path, or to
// the App's output writer when none is configured.
func (a *App) writeLock(doc *lockfile.Document) error {
	if a.config.OutputPath == "" {
		return lockfile.Write(a.outW, doc)
	}

	f, err := os.Create(a.config.OutputPath)
	if err != nil {
		return fmt.Errorf("could not create lock file %s: %w", a.config.OutputPath, err)
	}
	defer f.Close()

	if err := lockfile.Write(f, doc); err != nil {
		return err
	}
	return f.Close()
}

// Ledger returns the ledger of the most recent completed evaluation. This
// is primarily for testing.
func (a *App) Ledger() *registry.Ledger {
	return a.ledger
}

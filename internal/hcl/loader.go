package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/manifreeze/internal/config"
	"github.com/vk/manifreeze/internal/ctxlog"
	"github.com/vk/manifreeze/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the manifest file at path and translates it into the
// format-agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifest file.", "path", path)

	// hclparse caches parsed files by path. A Loader outlives a single
	// evaluation in watch mode, so each load gets a fresh parser to keep
	// re-evaluations reading from disk.
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var raw schema.Manifest
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}

	manifest, err := l.translate(&raw, path)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	logger.Debug("Manifest loaded.",
		"path", path,
		"includes", len(manifest.Includes),
		"freezes", len(manifest.Freezes),
	)
	return manifest, nil
}

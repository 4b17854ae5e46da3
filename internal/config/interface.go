package config

import (
	"context"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads the manifest file at path and translates it into the
	// format-agnostic model. It does not follow include directives; the
	// evaluator drives recursion so that registration order stays under
	// its control.
	Load(ctx context.Context, path string) (*Manifest, error)
}

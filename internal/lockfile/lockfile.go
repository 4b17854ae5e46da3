// Package lockfile renders a registration ledger as a TOML lock document
// for the downstream firmware build.
package lockfile

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/vk/manifreeze/internal/config"
	"github.com/vk/manifreeze/internal/registry"
)

// Document is the serialized form of one manifest evaluation. Field order
// and entry order are deterministic: entries appear exactly in ledger
// (registration) order, so two evaluations of the same tree produce
// byte-identical documents apart from the evaluation id.
type Document struct {
	Evaluation  string   `toml:"evaluation"`
	Description string   `toml:"description,omitempty"`
	Version     string   `toml:"version,omitempty"`
	Includes    []Entry  `toml:"include,omitempty"`
	Modules     []Module `toml:"module,omitempty"`
}

// Entry is one include registration.
type Entry struct {
	Path string `toml:"path"`
}

// Module is one frozen-module registration.
type Module struct {
	Dir  string `toml:"dir"`
	File string `toml:"file"`
	Stem string `toml:"stem"`
	Kind string `toml:"kind"`
	Opt  int    `toml:"opt"`
}

// Build assembles a Document from a ledger. evaluationID tags the run the
// document came from; meta may be nil.
func Build(evaluationID string, meta *config.Metadata, ledger *registry.Ledger) *Document {
	doc := &Document{Evaluation: evaluationID}
	if meta != nil {
		doc.Description = meta.Description
		doc.Version = meta.Version
	}

	for _, inc := range ledger.Includes() {
		doc.Includes = append(doc.Includes, Entry{Path: inc.Path})
	}
	for _, mod := range ledger.Modules() {
		doc.Modules = append(doc.Modules, Module{
			Dir:  mod.Dir,
			File: mod.File,
			Stem: mod.Stem,
			Kind: string(mod.Kind),
			Opt:  mod.Opt,
		})
	}
	return doc
}

// Write renders the document as TOML onto w.
func Write(w io.Writer, doc *Document) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode lock file: %w", err)
	}
	return nil
}

package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Manifest Structures ---

// Metadata represents the optional `metadata` block describing the image a
// manifest builds.
type Metadata struct {
	Description string `hcl:"description,optional"`
	Version     string `hcl:"version,optional"`
}

// Include represents an `include` block. The label is the path of a nested
// manifest directory, registered unconditionally and evaluated recursively
// when it carries a manifest file of its own.
type Include struct {
	Path string   `hcl:"path,label"`
	Body hcl.Body `hcl:",remain"`
}

// Freeze represents a `freeze` block: one non-recursive directory scan
// whose matches are registered as frozen modules. `opt` stays an
// expression here; the translation layer evaluates it to a bytecode
// optimisation level.
type Freeze struct {
	Dir     string         `hcl:"dir,label"`
	Pattern string         `hcl:"pattern,optional"`
	Kind    string         `hcl:"kind,optional"`
	Opt     hcl.Expression `hcl:"opt,optional"`
}

// Manifest represents the top-level structure of a manifest file,
// containing all include and freeze directives in document order.
type Manifest struct {
	Metadata *Metadata  `hcl:"metadata,block"`
	Includes []*Include `hcl:"include,block"`
	Freezes  []*Freeze  `hcl:"freeze,block"`
	Body     hcl.Body   `hcl:",remain"`
}

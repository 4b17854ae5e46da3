package config

// Manifest is the unified, format-agnostic representation of one parsed
// manifest file. Directive order within each slice is document order.
type Manifest struct {
	// Path is the manifest file this model was loaded from, as given to
	// the loader. It anchors the relative paths of the directives below.
	Path string

	Metadata *Metadata
	Includes []*Include
	Freezes  []*Freeze
}

// Metadata describes the image a manifest builds. Both fields are optional
// and carried verbatim into the lock file.
type Metadata struct {
	Description string
	Version     string
}

// Include is the format-agnostic representation of an `include` directive:
// a static reference to a nested manifest directory, fixed at authoring
// time.
type Include struct {
	// Path is the include target, relative to the including manifest's
	// directory.
	Path string
}

// FreezeKind selects how a frozen module's source is embedded in the
// image.
type FreezeKind string

const (
	// KindMpy embeds the module as pre-compiled bytecode.
	KindMpy FreezeKind = "mpy"
	// KindStr embeds the module's source text as-is.
	KindStr FreezeKind = "str"
)

// Freeze is the format-agnostic representation of a `freeze` directive:
// one non-recursive scan of Dir for files matching Pattern.
type Freeze struct {
	// Dir is the directory to scan, relative to the manifest's directory.
	Dir string
	// Pattern is the glob the candidate file names must match.
	Pattern string
	// Kind selects the embedding mode for every match of this directive.
	Kind FreezeKind
	// Opt is the bytecode optimisation level, 0 through 3.
	Opt int
}

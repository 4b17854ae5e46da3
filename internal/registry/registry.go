package registry

import (
	"strings"

	"github.com/vk/manifreeze/internal/config"
)

// Include is one registered include directive.
type Include struct {
	// Path is the include target exactly as the manifest declared it.
	Path string
}

// FrozenModule is one registered frozen-module candidate.
type FrozenModule struct {
	// Dir is the immediate parent directory name of the matched file.
	Dir string
	// File is the matched file's name, extension included.
	File string
	// Stem is File without its extension; it is the name the module is
	// imported under once frozen.
	Stem string
	// Kind selects how the module's source is embedded.
	Kind config.FreezeKind
	// Opt is the bytecode optimisation level the module is compiled with.
	Opt int
}

// Ledger holds the ordered registrations of a single manifest evaluation.
// It is not safe for concurrent use; an evaluation is a single synchronous
// pass and the ledger inherits that model.
type Ledger struct {
	includes []Include
	modules  []FrozenModule
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{}
}

// AddInclude appends an include registration.
func (l *Ledger) AddInclude(path string) {
	l.includes = append(l.includes, Include{Path: path})
}

// AddModule appends a frozen-module registration. The stem is derived here
// so every caller records it the same way.
func (l *Ledger) AddModule(dir, file string, kind config.FreezeKind, opt int) {
	stem := file
	if i := strings.LastIndex(file, "."); i > 0 {
		stem = file[:i]
	}
	l.modules = append(l.modules, FrozenModule{
		Dir:  dir,
		File: file,
		Stem: stem,
		Kind: kind,
		Opt:  opt,
	})
}

// Includes returns the registered includes in registration order.
func (l *Ledger) Includes() []Include {
	out := make([]Include, len(l.includes))
	copy(out, l.includes)
	return out
}

// Modules returns the registered frozen modules in registration order.
func (l *Ledger) Modules() []FrozenModule {
	out := make([]FrozenModule, len(l.modules))
	copy(out, l.modules)
	return out
}

// Len reports the total number of registrations, includes and modules
// combined.
func (l *Ledger) Len() int {
	return len(l.includes) + len(l.modules)
}

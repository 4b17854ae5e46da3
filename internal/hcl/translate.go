package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/manifreeze/internal/config"
	"github.com/vk/manifreeze/internal/schema"
)

// defaultPattern is applied when a freeze directive names no pattern of
// its own.
const defaultPattern = "*.py"

// translate converts the HCL-specific manifest schema into the agnostic
// model, evaluating directive expressions along the way.
func (l *Loader) translate(raw *schema.Manifest, path string) (*config.Manifest, error) {
	m := &config.Manifest{Path: path}

	if raw.Metadata != nil {
		m.Metadata = &config.Metadata{
			Description: raw.Metadata.Description,
			Version:     raw.Metadata.Version,
		}
	}

	for _, inc := range raw.Includes {
		if inc.Path == "" {
			return nil, fmt.Errorf("include directive with empty path")
		}
		m.Includes = append(m.Includes, &config.Include{Path: inc.Path})
	}

	for _, frz := range raw.Freezes {
		translated, err := l.translateFreeze(frz)
		if err != nil {
			return nil, err
		}
		m.Freezes = append(m.Freezes, translated)
	}

	return m, nil
}

// translateFreeze converts one freeze block, applying defaults and
// evaluating the opt expression to a bytecode optimisation level.
func (l *Loader) translateFreeze(frz *schema.Freeze) (*config.Freeze, error) {
	if frz.Dir == "" {
		return nil, fmt.Errorf("freeze directive with empty directory")
	}

	pattern := frz.Pattern
	if pattern == "" {
		pattern = defaultPattern
	}

	kind := config.KindMpy
	switch frz.Kind {
	case "", string(config.KindMpy):
		// default
	case string(config.KindStr):
		kind = config.KindStr
	default:
		return nil, fmt.Errorf("freeze %q: unknown kind %q, must be %q or %q",
			frz.Dir, frz.Kind, config.KindMpy, config.KindStr)
	}

	opt, err := evalOpt(frz.Opt)
	if err != nil {
		return nil, fmt.Errorf("freeze %q: %w", frz.Dir, err)
	}

	return &config.Freeze{
		Dir:     frz.Dir,
		Pattern: pattern,
		Kind:    kind,
		Opt:     opt,
	}, nil
}

// evalOpt evaluates the opt expression to an optimisation level in [0,3].
// An absent expression evaluates to level 0.
func evalOpt(expr hcl.Expression) (int, error) {
	if expr == nil {
		return 0, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("could not evaluate opt: %w", diags)
	}
	if val.IsNull() {
		return 0, nil
	}
	if val.Type() != cty.Number {
		return 0, fmt.Errorf("opt must be a number, got %s", val.Type().FriendlyName())
	}

	var opt int
	if err := gocty.FromCtyValue(val, &opt); err != nil {
		return 0, fmt.Errorf("opt is not a whole number: %w", err)
	}
	if opt < 0 || opt > 3 {
		return 0, fmt.Errorf("opt level %d out of range, must be 0 through 3", opt)
	}
	return opt, nil
}

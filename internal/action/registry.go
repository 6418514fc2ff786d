package action

import (
	"fmt"
	"sort"
)

// builtinActions maps canonical action names to their aliases.
var builtinActions = map[string][]string{
	"fmt":    {"format", "rustfmt"},
	"check":  {"typecheck"},
	"clippy": {"lint"},
}

// Options carries the per-action settings used to build an Action by name.
type Options struct {
	FmtConfig   string
	FmtCheck    bool
	Features    string
	AllFeatures bool
}

// Canonical returns the canonical action name for name or one of its aliases.
func Canonical(name string) (string, error) {
	if _, ok := builtinActions[name]; ok {
		return name, nil
	}
	for canonical, aliases := range builtinActions {
		for _, a := range aliases {
			if a == name {
				return canonical, nil
			}
		}
	}
	return "", fmt.Errorf("unknown action '%s', must be one of: %v", name, Known())
}

// Aliases returns the alternative names accepted for a canonical action.
func Aliases(name string) []string {
	return builtinActions[name]
}

// Known returns the canonical action names in sorted order.
func Known() []string {
	names := make([]string, 0, len(builtinActions))
	for name := range builtinActions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named action from opts.
func New(name string, opts Options) (Action, error) {
	canonical, err := Canonical(name)
	if err != nil {
		return nil, err
	}

	switch canonical {
	case "fmt":
		return Format{Config: opts.FmtConfig, Check: opts.FmtCheck}, nil
	case "check":
		c := Check{Features: opts.Features, AllFeatures: opts.AllFeatures}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return Lint{}, nil
	}
}

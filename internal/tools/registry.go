package tools

import (
	"fmt"
	"sort"
)

// builtins holds the integrations compiled into the binary, keyed by name.
var builtins = map[string]Integration{}

func register(i Integration) {
	builtins[i.Name()] = i
}

func init() {
	register(cursorIntegration{})
	register(claudeIntegration{})
	register(vscodeIntegration{})
	register(copilotIntegration{})
}

// Get returns the integration with the given name.
func Get(name string) (Integration, error) {
	i, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("tools: unknown tool %q (known: %v)", name, Names())
	}
	return i, nil
}

// Names returns the registered integration names, sorted.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

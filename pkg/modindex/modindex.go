// Package modindex renders src/bindings/mod.rs from the registry.
package modindex

import (
	"fmt"
	"strings"

	"github.com/arc-language/stm32bind/pkg/core"
	"github.com/arc-language/stm32bind/pkg/layout"
	"github.com/arc-language/stm32bind/pkg/registry"
)

// Render returns the index source for specs, in order. Every spec gets a
// module declaration; aliased specs additionally get a re-export after a
// single blank line. A feature gate precedes each line it applies to.
func Render(specs []registry.BindingSpec) string {
	var b strings.Builder
	hasAlias := false
	for _, s := range specs {
		writeGate(&b, s.Feature)
		fmt.Fprintf(&b, "pub mod %s;\n", s.Module)
		if s.Alias != "" {
			hasAlias = true
		}
	}

	if !hasAlias {
		return b.String()
	}

	b.WriteString("\n")
	for _, s := range specs {
		if s.Alias == "" {
			continue
		}
		writeGate(&b, s.Feature)
		fmt.Fprintf(&b, "pub use self::%s as %s;\n", s.Module, s.Alias)
	}
	return b.String()
}

func writeGate(b *strings.Builder, feature string) {
	if feature != "" {
		fmt.Fprintf(b, "#[cfg(feature = \"%s\")]\n", feature)
	}
}

// Write renders the index for specs and writes it into the output tree
func Write(opts core.Options, specs []registry.BindingSpec) error {
	return layout.WriteFile(layout.IndexPath(opts), Render(specs))
}

// pkg/platform/resolver.go
package platform

import (
	"fmt"

	"github.com/arc-language/stm32bind/pkg/backend"
	"github.com/arc-language/stm32bind/pkg/core"
)

// ResolveBackend builds the bindgen backend named by config.
// An absolute bindgen_path is used as-is; a bare name must be in PATH.
func ResolveBackend(platform *Platform, config *core.Config, bcfg *backend.Config) (*backend.Bindgen, error) {
	if bcfg == nil {
		bcfg = backend.DefaultConfig()
	}

	name := config.BindgenPath
	if name == "" {
		name = "bindgen"
	}

	if name == "bindgen" && !platform.Has("bindgen") {
		return nil, fmt.Errorf("bindgen is not available on this system (install it with `cargo install bindgen-cli`)")
	}

	bcfg.Path = name
	b, err := backend.NewBindgen(bcfg)
	if err != nil {
		return nil, fmt.Errorf("initializing backend: %w", err)
	}
	return b, nil
}

// HostIncludes returns the include source matching the platform
func (p *Platform) HostIncludes() backend.HostIncludes {
	return backend.HostIncludesFor(p.OS)
}

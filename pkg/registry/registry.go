// pkg/registry/registry.go
package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/arc-language/stm32bind/pkg/core"
)

//go:embed specs.toml
var defaultSpecs []byte

// Artifact is a prebuilt binary or auxiliary file copied into the output.
// Source is relative to the vendor tree, Destination to the output directory.
type Artifact struct {
	Source      string `toml:"source" yaml:"source"`
	Destination string `toml:"destination" yaml:"destination"`
}

// BindingSpec describes one header-to-module generation unit
type BindingSpec struct {
	Module      string     `toml:"module" yaml:"module"`
	Header      string     `toml:"header" yaml:"header"`
	IncludeDirs []string   `toml:"include_dirs" yaml:"include_dirs,omitempty"`
	ExtraArgs   []string   `toml:"extra_args" yaml:"extra_args,omitempty"`
	Allowlist   []string   `toml:"allowlist" yaml:"allowlist,omitempty"`
	Artifacts   []Artifact `toml:"artifacts" yaml:"artifacts,omitempty"`
	Feature     string     `toml:"feature,omitempty" yaml:"feature,omitempty"`
	Alias       string     `toml:"alias,omitempty" yaml:"alias,omitempty"`
}

// file mirrors the on-disk layout of specs.toml
type file struct {
	Specs []BindingSpec `toml:"spec" yaml:"spec"`
}

// Registry is an ordered, read-only table of binding specs
type Registry struct {
	specs []BindingSpec
	index map[string]int
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the registry compiled into the binary. It is decoded once.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Parse(defaultSpecs)
	})
	return defaultReg, defaultErr
}

// Parse decodes and validates a TOML registry document
func Parse(data []byte) (*Registry, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("registry: failed to parse specs: %w", err)
	}
	return New(f.Specs...)
}

// New builds a registry from specs in the given order
func New(specs ...BindingSpec) (*Registry, error) {
	r := &Registry{
		specs: make([]BindingSpec, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	copy(r.specs, specs)

	aliases := make(map[string]string)
	for i, s := range r.specs {
		if s.Module == "" {
			return nil, &core.Error{Op: "registry", Err: fmt.Errorf("%w: spec #%d has no module name", core.ErrInvalidSpec, i)}
		}
		if s.Header == "" {
			return nil, &core.Error{Op: "registry", Module: s.Module, Err: fmt.Errorf("%w: header is required", core.ErrInvalidSpec)}
		}
		if _, dup := r.index[s.Module]; dup {
			return nil, &core.Error{Op: "registry", Module: s.Module, Err: fmt.Errorf("%w: duplicate module", core.ErrInvalidSpec)}
		}
		r.index[s.Module] = i
		if s.Alias != "" {
			if owner, dup := aliases[s.Alias]; dup {
				return nil, &core.Error{Op: "registry", Module: s.Module, Err: fmt.Errorf("%w: alias %q already used by %s", core.ErrInvalidSpec, s.Alias, owner)}
			}
			aliases[s.Alias] = s.Module
		}
	}

	// Aliases may name a module declared later, so this needs the full index
	for _, s := range r.specs {
		if s.Alias == "" {
			continue
		}
		if _, clash := r.index[s.Alias]; clash {
			return nil, &core.Error{Op: "registry", Module: s.Module, Err: fmt.Errorf("%w: alias %q shadows a module name", core.ErrInvalidSpec, s.Alias)}
		}
	}

	return r, nil
}

// Specs returns the specs in registry order. The slice is a copy.
func (r *Registry) Specs() []BindingSpec {
	out := make([]BindingSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Len returns the number of specs
func (r *Registry) Len() int {
	return len(r.specs)
}

// Load returns the spec for module
func (r *Registry) Load(module string) (*BindingSpec, error) {
	i, ok := r.index[module]
	if !ok {
		return nil, fmt.Errorf("registry: module '%s' not found", module)
	}
	s := r.specs[i]
	return &s, nil
}

// Encode writes the registry back out as TOML
func (r *Registry) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(file{Specs: r.specs}); err != nil {
		return nil, fmt.Errorf("registry: encoding specs: %w", err)
	}
	return buf.Bytes(), nil
}

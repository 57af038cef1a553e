// stm32bind.go
package stm32bind

import (
	"context"
	"fmt"

	"github.com/arc-language/stm32bind/pkg/backend"
	"github.com/arc-language/stm32bind/pkg/core"
	"github.com/arc-language/stm32bind/pkg/digest"
	"github.com/arc-language/stm32bind/pkg/engine"
	"github.com/arc-language/stm32bind/pkg/platform"
	"github.com/arc-language/stm32bind/pkg/registry"
	"github.com/arc-language/stm32bind/pkg/revision"
	"go.uber.org/zap"
)

// Re-export core types for convenience
type (
	Options      = core.Options
	Config       = core.Config
	BindingSpec  = registry.BindingSpec
	Artifact     = registry.Artifact
	Registry     = registry.Registry
	Backend      = backend.Backend
	HostIncludes = backend.HostIncludes
)

// NewOptions resolves the entry parameters into run options
func NewOptions(outDir, sourcesDir, targetTriple, localIncludeDir string) (Options, error) {
	return core.NewOptions(outDir, sourcesDir, targetTriple, localIncludeDir)
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// DefaultRegistry returns the binding specs compiled into the binary
func DefaultRegistry() (*Registry, error) {
	return registry.Default()
}

// Option customizes a Generator
type Option func(*Generator)

// WithRegistry replaces the compiled-in registry
func WithRegistry(reg *Registry) Option {
	return func(g *Generator) { g.registry = reg }
}

// WithBackend replaces the bindgen executable
func WithBackend(b Backend) Option {
	return func(g *Generator) { g.backend = b }
}

// WithHostIncludes replaces the host include source
func WithHostIncludes(h HostIncludes) Option {
	return func(g *Generator) { g.hosts = h }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// Generator produces a bindings crate from the registry
type Generator struct {
	opts     Options
	config   *Config
	registry *Registry
	backend  Backend
	hosts    HostIncludes
	logger   *zap.Logger
	engine   *engine.Engine
}

// NewGenerator wires the pipeline. Anything not supplied through options is
// resolved from the host: the compiled-in registry, bindgen from
// config.BindgenPath, and the include source for the running OS.
func NewGenerator(opts Options, config *Config, options ...Option) (*Generator, error) {
	if config == nil {
		config = core.DefaultConfig()
	}

	g := &Generator{opts: opts, config: config}
	for _, o := range options {
		o(g)
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}

	if g.registry == nil {
		reg, err := registry.Default()
		if err != nil {
			return nil, fmt.Errorf("loading registry: %w", err)
		}
		g.registry = reg
	}

	if g.backend == nil || g.hosts == nil {
		plat, err := platform.Detect()
		if err != nil {
			return nil, fmt.Errorf("detecting platform: %w", err)
		}
		if g.hosts == nil {
			g.hosts = plat.HostIncludes()
		}
		if g.backend == nil {
			b, err := platform.ResolveBackend(plat, config, &backend.Config{Logger: g.logger})
			if err != nil {
				return nil, err
			}
			g.backend = b
		}
	}

	g.engine = engine.New(opts, g.registry, g.backend,
		engine.WithLogger(g.logger),
		engine.WithHostIncludes(g.hosts),
	)
	return g, nil
}

// Run generates the output tree. Any error aborts the run.
func (g *Generator) Run(ctx context.Context) error {
	g.logRevision()
	return g.engine.Run(ctx)
}

// logRevision logs the vendor HEAD. The dirty check scans the whole work
// tree, so it only runs when debug output is on.
func (g *Generator) logRevision() {
	describe := revision.Head
	if g.logger.Core().Enabled(zap.DebugLevel) {
		describe = revision.Describe
	}
	info, err := describe(g.opts.SourcesDir)
	if err != nil {
		g.logger.Debug("vendor tree revision unavailable", zap.Error(err))
		return
	}
	g.logger.Info("vendor tree", zap.String("revision", info.String()))
}

// RunTwice generates the tree twice and fails unless both runs produce the
// same bytes. It returns the digest of the output tree.
func (g *Generator) RunTwice(ctx context.Context) (string, error) {
	var sums [2]string
	for i := range sums {
		if err := g.Run(ctx); err != nil {
			return "", err
		}
		sum, err := digest.Tree(g.opts.OutDir)
		if err != nil {
			return "", err
		}
		sums[i] = sum
	}
	if sums[0] != sums[1] {
		return "", fmt.Errorf("%w: %s != %s", ErrNotIdempotent, sums[0], sums[1])
	}
	return sums[0], nil
}

// Registry returns the registry the generator runs
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Backend returns the name of the active backend
func (g *Generator) Backend() string {
	return g.backend.Name()
}

// NewRegistry builds a registry from specs in the given order
func NewRegistry(specs ...BindingSpec) (*Registry, error) {
	return registry.New(specs...)
}

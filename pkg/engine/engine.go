// Package engine runs the binding generation pipeline: reset the output
// tree, generate and normalize one module per spec, copy its artifacts,
// then write the module index.
package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arc-language/stm32bind/pkg/artifact"
	"github.com/arc-language/stm32bind/pkg/backend"
	"github.com/arc-language/stm32bind/pkg/core"
	"github.com/arc-language/stm32bind/pkg/layout"
	"github.com/arc-language/stm32bind/pkg/modindex"
	"github.com/arc-language/stm32bind/pkg/normalize"
	"github.com/arc-language/stm32bind/pkg/registry"
	"go.uber.org/zap"
)

// Engine generates bindings for every spec of a registry
type Engine struct {
	opts     core.Options
	registry *registry.Registry
	backend  backend.Backend
	hosts    backend.HostIncludes
	copier   *artifact.Copier
	logger   *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHostIncludes sets the host include source. The default adds nothing.
func WithHostIncludes(h backend.HostIncludes) Option {
	return func(e *Engine) {
		if h != nil {
			e.hosts = h
		}
	}
}

// New creates an Engine
func New(opts core.Options, reg *registry.Registry, be backend.Backend, options ...Option) *Engine {
	e := &Engine{
		opts:     opts,
		registry: reg,
		backend:  be,
		hosts:    backend.NoHostIncludes{},
		logger:   zap.NewNop(),
	}
	for _, o := range options {
		o(e)
	}
	e.copier = artifact.NewCopier(opts, e.logger)
	return e
}

// Run executes the whole pipeline. The first error aborts the run and the
// output tree is left as it was at that point.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("generating bindings",
		zap.String("out", e.opts.OutDir),
		zap.String("target", e.opts.TargetTriple),
		zap.String("backend", e.backend.Name()),
	)

	if err := layout.Reset(e.opts); err != nil {
		return err
	}
	if err := layout.WriteTemplates(e.opts); err != nil {
		return err
	}

	hostArgs := e.hosts.Args(ctx)
	specs := e.registry.Specs()
	for i := range specs {
		spec := &specs[i]
		e.logger.Info("generating module", zap.String("module", spec.Module))

		if err := e.generate(ctx, spec, hostArgs); err != nil {
			return err
		}
		if err := e.copier.Copy(spec); err != nil {
			return err
		}
	}

	if err := modindex.Write(e.opts, specs); err != nil {
		return err
	}

	e.logger.Info("bindings generated", zap.Int("modules", len(specs)))
	return nil
}

func (e *Engine) generate(ctx context.Context, spec *registry.BindingSpec, hostArgs []string) error {
	inv := e.Invocation(spec, hostArgs)

	src, err := e.backend.Generate(ctx, inv)
	if err != nil {
		return &core.Error{
			Op:     "generate bindings",
			Module: spec.Module,
			Err:    fmt.Errorf("%w: %w", core.ErrBackend, err),
		}
	}

	return layout.WriteFile(layout.BindingPath(e.opts, spec.Module), normalize.Bindings(src))
}

// Invocation builds the backend request for spec. Flag order: target,
// host includes, quote include, thumb mode, include dirs, extra args.
func (e *Engine) Invocation(spec *registry.BindingSpec, hostArgs []string) *backend.Invocation {
	args := make([]string, 0, len(hostArgs)+len(spec.IncludeDirs)+len(spec.ExtraArgs)+3)
	args = append(args, "--target="+e.opts.TargetTriple)
	args = append(args, hostArgs...)
	if e.opts.LocalIncludeDir != "" {
		args = append(args, "-iquote"+e.opts.LocalIncludeDir)
	}
	if backend.IsThumbTarget(e.opts.TargetTriple) {
		args = append(args, "-mthumb")
	}
	for _, dir := range spec.IncludeDirs {
		args = append(args, "-I"+e.opts.SourcePath(filepath.FromSlash(dir)))
	}
	args = append(args, spec.ExtraArgs...)

	var allow []string
	if len(spec.Allowlist) > 0 {
		allow = append(allow, spec.Allowlist...)
	}

	return &backend.Invocation{
		Module:    spec.Module,
		Header:    e.opts.SourcePath(filepath.FromSlash(spec.Header)),
		ClangArgs: args,
		Allowlist: allow,
	}
}

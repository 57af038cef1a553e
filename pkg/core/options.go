// pkg/core/options.go
package core

import (
	"fmt"
	"path/filepath"
)

// Options is the per-run configuration. It is built once at entry and
// never modified afterwards.
type Options struct {
	OutDir          string // Root of the generated crate
	SourcesDir      string // Root of the vendor source tree
	TargetTriple    string // e.g. thumbv8m.main-none-eabihf
	LocalIncludeDir string // Passed to the backend as -iquote
}

// NewOptions resolves every directory to an absolute path.
func NewOptions(outDir, sourcesDir, targetTriple, localIncludeDir string) (Options, error) {
	if outDir == "" {
		return Options{}, fmt.Errorf("output directory is required")
	}
	if sourcesDir == "" {
		return Options{}, fmt.Errorf("sources directory is required")
	}
	if targetTriple == "" {
		return Options{}, fmt.Errorf("target triple is required")
	}

	out, err := filepath.Abs(outDir)
	if err != nil {
		return Options{}, fmt.Errorf("resolving output directory: %w", err)
	}
	src, err := filepath.Abs(sourcesDir)
	if err != nil {
		return Options{}, fmt.Errorf("resolving sources directory: %w", err)
	}

	opts := Options{
		OutDir:       out,
		SourcesDir:   src,
		TargetTriple: targetTriple,
	}
	if localIncludeDir != "" {
		inc, err := filepath.Abs(localIncludeDir)
		if err != nil {
			return Options{}, fmt.Errorf("resolving local include directory: %w", err)
		}
		opts.LocalIncludeDir = inc
	}

	return opts, nil
}

// SourcePath resolves p under the vendor source tree unless it is absolute.
func (o Options) SourcePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(o.SourcesDir, p)
}

// OutPath resolves p under the output directory.
func (o Options) OutPath(p string) string {
	return filepath.Join(o.OutDir, p)
}

// Package layout owns the shape of the generated crate: it resets the
// output tree and writes the files that are not generated.
package layout

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arc-language/stm32bind/pkg/core"
	"github.com/arc-language/stm32bind/pkg/normalize"
)

//go:embed res
var templates embed.FS

const (
	// BindingsDir holds one generated file per module plus the index
	BindingsDir = "src/bindings"

	// LibDir holds prebuilt archives
	LibDir = "src/lib"

	// IndexFile is the aggregated module declaration file
	IndexFile = "mod.rs"
)

// templateFiles maps embedded resources to their place in the output tree
var templateFiles = []struct {
	res string
	out string
}{
	{"res/README.md", "README.md"},
	{"res/Cargo.toml", "Cargo.toml"},
	{"res/build.rs", "build.rs"},
	{"res/src/lib.rs", "src/lib.rs"},
}

// Reset removes the output directory and recreates its skeleton
func Reset(opts core.Options) error {
	if err := os.RemoveAll(opts.OutDir); err != nil {
		return &core.Error{Op: "remove output directory", Path: opts.OutDir, Err: err}
	}
	for _, dir := range []string{BindingsDir, LibDir} {
		path := opts.OutPath(dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return &core.Error{Op: "create directory", Path: path, Err: err}
		}
	}
	return nil
}

// WriteTemplates copies the embedded crate files into the output tree
func WriteTemplates(opts core.Options) error {
	for _, t := range templateFiles {
		data, err := fs.ReadFile(templates, t.res)
		if err != nil {
			return fmt.Errorf("reading embedded %s: %w", t.res, err)
		}
		if err := WriteFile(opts.OutPath(t.out), string(data)); err != nil {
			return err
		}
	}
	return nil
}

// Template returns the embedded content for an output-relative path
func Template(out string) ([]byte, error) {
	for _, t := range templateFiles {
		if t.out == out {
			return fs.ReadFile(templates, t.res)
		}
	}
	return nil, fmt.Errorf("no template for %s", out)
}

// BindingPath returns the path of the generated file for module
func BindingPath(opts core.Options, module string) string {
	return opts.OutPath(filepath.Join(BindingsDir, module+".rs"))
}

// IndexPath returns the path of the module index
func IndexPath(opts core.Options) string {
	return opts.OutPath(filepath.Join(BindingsDir, IndexFile))
}

// WriteFile writes contents with a single trailing newline, creating parent
// directories as needed
func WriteFile(path, contents string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &core.Error{Op: "create directory", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, []byte(normalize.TrailingNewline(contents)), 0644); err != nil {
		return &core.Error{Op: "write file", Path: path, Err: err}
	}
	return nil
}

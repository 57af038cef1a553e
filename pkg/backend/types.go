// pkg/backend/types.go
package backend

import (
	"context"

	"go.uber.org/zap"
)

// Backend turns one header plus compiler flags into binding source.
// It is a black box to the rest of the pipeline.
type Backend interface {
	// Generate runs the backend for a single invocation and returns the
	// generated source text
	Generate(ctx context.Context, inv *Invocation) (string, error)

	// Name returns the name of the backend
	Name() string
}

// Invocation is everything the backend needs for one module
type Invocation struct {
	Module    string   // Owning spec, used for diagnostics only
	Header    string   // Absolute path of the input header
	ClangArgs []string // Flags forwarded to the compiler frontend, in order
	Allowlist []string // Patterns applied to types, vars and functions alike
}

// Config holds configuration for the bindgen backend
type Config struct {
	// Path of the bindgen executable, looked up in PATH if not absolute
	Path string

	// Logger for debug output. Nil means no logging.
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Path:   "bindgen",
		Logger: zap.NewNop(),
	}
}

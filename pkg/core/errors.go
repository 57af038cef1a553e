// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBackend indicates the header-parsing backend failed
	ErrBackend = errors.New("backend failed")

	// ErrArtifactMissing indicates an artifact source is neither a file nor a directory
	ErrArtifactMissing = errors.New("artifact source is neither file nor directory")

	// ErrInvalidSpec indicates a registry entry violates an invariant
	ErrInvalidSpec = errors.New("invalid binding spec")
)

// Error wraps an error with the module and path it concerns
type Error struct {
	Op     string // Operation that failed
	Module string // Binding spec module, if applicable
	Path   string // File system path, if applicable
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Module != "" {
		fmt.Fprintf(&b, " for module %s", e.Module)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

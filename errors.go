// errors.go
package stm32bind

import (
	"errors"

	"github.com/arc-language/stm32bind/pkg/core"
)

var (
	// ErrBackend indicates the header-parsing backend failed
	ErrBackend = core.ErrBackend

	// ErrArtifactMissing indicates an artifact source is neither file nor directory
	ErrArtifactMissing = core.ErrArtifactMissing

	// ErrInvalidSpec indicates the registry violates an invariant
	ErrInvalidSpec = core.ErrInvalidSpec

	// ErrNotIdempotent indicates two runs produced different trees
	ErrNotIdempotent = errors.New("output differs between runs")
)

// Error wraps an error with the module and path it concerns
type Error = core.Error

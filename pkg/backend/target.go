// pkg/backend/target.go
package backend

import "strings"

// IsThumbTarget reports whether triple selects the Thumb instruction set
func IsThumbTarget(triple string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(triple)), "thumb")
}

// pkg/platform/utils.go
package platform

import (
	"os/exec"
	"slices"
)

// commandExists reports whether tool resolves in PATH
func commandExists(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}

func contains(tools []string, tool string) bool {
	return slices.Contains(tools, tool)
}

// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
)

// Tools looked up on the host
var Tools = []string{"bindgen", "clang", "xcrun", "git"}

// Platform represents the detected host platform
type Platform struct {
	OS        string   // linux, darwin, windows
	Arch      string   // amd64, arm64
	Available []string // Tools found in PATH
}

// Detect detects the current platform and available tools
func Detect() (*Platform, error) {
	p := &Platform{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Available: []string{},
	}

	switch p.OS {
	case "darwin", "linux", "windows", "freebsd":
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", p.OS)
	}

	for _, tool := range Tools {
		if commandExists(tool) {
			p.Available = append(p.Available, tool)
		}
	}

	return p, nil
}

// Has reports whether tool was found in PATH
func (p *Platform) Has(tool string) bool {
	return contains(p.Available, tool)
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (available: %v)", p.OS, p.Arch, p.Available)
}

// pkg/backend/hostinc.go
package backend

import (
	"context"
	"os/exec"
	"strings"
)

// HostIncludes supplies extra system include flags for the host toolchain.
// Implementations never fail: a lookup that goes wrong yields no flags.
type HostIncludes interface {
	Args(ctx context.Context) []string
}

// NoHostIncludes adds nothing
type NoHostIncludes struct{}

// Args returns nil
func (NoHostIncludes) Args(context.Context) []string { return nil }

// XcrunSDK asks xcrun for the active macOS SDK and adds its usr/include
type XcrunSDK struct {
	// Run returns the SDK path on stdout. Defaults to xcrun --show-sdk-path.
	Run func(ctx context.Context) ([]byte, error)
}

// Args returns -isystem<sdk>/usr/include, or nil if the SDK can't be found
func (x XcrunSDK) Args(ctx context.Context) []string {
	run := x.Run
	if run == nil {
		run = showSDKPath
	}

	out, err := run(ctx)
	if err != nil {
		return nil
	}
	sdk := strings.TrimSpace(string(out))
	if sdk == "" {
		return nil
	}
	return []string{"-isystem" + sdk + "/usr/include"}
}

func showSDKPath(ctx context.Context) ([]byte, error) {
	// Output fails on a missing binary and on a non-zero exit alike
	return exec.CommandContext(ctx, "xcrun", "--show-sdk-path").Output()
}

// HostIncludesFor picks the include source for the given GOOS
func HostIncludesFor(goos string) HostIncludes {
	if goos == "darwin" {
		return XcrunSDK{}
	}
	return NoHostIncludes{}
}

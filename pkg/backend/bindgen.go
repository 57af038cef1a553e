// pkg/backend/bindgen.go
package backend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Bindgen drives the bindgen command line tool
type Bindgen struct {
	path   string
	config *Config
	logger *zap.Logger
}

// NewBindgen creates a backend running the bindgen executable from config
func NewBindgen(config *Config) (*Bindgen, error) {
	if config == nil {
		config = DefaultConfig()
	}

	path, err := exec.LookPath(config.Path)
	if err != nil {
		return nil, fmt.Errorf("bindgen not found (%s): %w", config.Path, err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Bindgen{
		path:   path,
		config: config,
		logger: logger.Named("bindgen"),
	}, nil
}

// Name returns the backend name
func (b *Bindgen) Name() string {
	return "bindgen"
}

// Generate runs bindgen and returns its stdout
func (b *Bindgen) Generate(ctx context.Context, inv *Invocation) (string, error) {
	args := Args(inv)
	b.logger.Debug("running bindgen",
		zap.String("module", inv.Module),
		zap.Strings("args", args),
	)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, b.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return "", fmt.Errorf("running %s: %w", b.path, err)
		}
		return "", fmt.Errorf("running %s: %w: %s", b.path, err, detail)
	}

	if stderr.Len() > 0 {
		b.logger.Debug("bindgen diagnostics",
			zap.String("module", inv.Module),
			zap.String("stderr", stderr.String()),
		)
	}

	return stdout.String(), nil
}

// Args renders an invocation as bindgen command line arguments. Filters come
// first, then the header, then the compiler flags after "--".
func Args(inv *Invocation) []string {
	args := make([]string, 0, 6*len(inv.Allowlist)+len(inv.ClangArgs)+2)
	for _, pattern := range inv.Allowlist {
		args = append(args,
			"--allowlist-type", pattern,
			"--allowlist-var", pattern,
			"--allowlist-function", pattern,
		)
	}
	args = append(args, inv.Header, "--")
	args = append(args, inv.ClangArgs...)
	return args
}

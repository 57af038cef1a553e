// pkg/artifact/copy.go
package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/stm32bind/pkg/core"
	"github.com/arc-language/stm32bind/pkg/registry"
	"github.com/ulikunitz/xz"
	"go.uber.org/zap"
)

// Copier copies the prebuilt artifacts named by a binding spec from the
// vendor tree into the output tree
type Copier struct {
	opts   core.Options
	logger *zap.Logger
}

// NewCopier creates a Copier. A nil logger disables logging.
func NewCopier(opts core.Options, logger *zap.Logger) *Copier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Copier{opts: opts, logger: logger.Named("artifact")}
}

// Copy copies every artifact of spec, in order
func (c *Copier) Copy(spec *registry.BindingSpec) error {
	for _, a := range spec.Artifacts {
		src := c.opts.SourcePath(a.Source)
		dst := c.opts.OutPath(a.Destination)

		info, err := os.Stat(src)
		switch {
		case err == nil && info.Mode().IsRegular():
			c.logger.Debug("copying file", zap.String("module", spec.Module), zap.String("src", src), zap.String("dst", dst))
			if err := copyArtifactFile(src, dst); err != nil {
				return &core.Error{Op: "copy file", Module: spec.Module, Path: src, Err: err}
			}
		case err == nil && info.IsDir():
			c.logger.Debug("copying directory", zap.String("module", spec.Module), zap.String("src", src), zap.String("dst", dst))
			if err := copyDir(src, dst); err != nil {
				return &core.Error{Op: "copy dir", Module: spec.Module, Path: src, Err: err}
			}
		default:
			return &core.Error{Op: "copy artifact", Module: spec.Module, Path: src, Err: core.ErrArtifactMissing}
		}
	}
	return nil
}

// copyArtifactFile copies a single artifact, decompressing it when only the
// source carries the .xz suffix
func copyArtifactFile(src, dst string) error {
	if strings.HasSuffix(src, ".xz") && !strings.HasSuffix(dst, ".xz") {
		return decompressXZ(src, dst)
	}
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	// OpenFile leaves the mode of an existing file alone
	return os.Chmod(dst, info.Mode().Perm())
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dst, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch mode := entry.Type(); {
		case mode.IsDir():
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		case mode.IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		case mode&os.ModeSymlink != 0:
			// Only links to regular files are followed
			info, err := os.Stat(srcPath)
			if err != nil || !info.Mode().IsRegular() {
				return fmt.Errorf("%s: symlink to non-regular file: %w", srcPath, core.ErrArtifactMissing)
			}
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: unsupported file type %s: %w", srcPath, mode.Type(), core.ErrArtifactMissing)
		}
	}

	return nil
}

func decompressXZ(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	xzReader, err := xz.NewReader(in)
	if err != nil {
		return fmt.Errorf("creating xz reader: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, xzReader); err != nil {
		out.Close()
		return fmt.Errorf("decompressing %s: %w", src, err)
	}
	return out.Close()
}

// Package digest fingerprints a generated tree. The tree is serialized as a
// Nix archive, which fixes entry order and ignores timestamps, so two
// byte-identical trees always hash the same. The result matches
// `nix-hash --type sha256 --base32` for the same path.
package digest

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"zombiezen.com/go/nix/nar"
	"zombiezen.com/go/nix/nixbase32"
)

const prefix = "sha256:"

var encodedLen = nixbase32.EncodedLen(sha256.Size)

// ErrMismatch is returned by Verify when the tree hashes differently
var ErrMismatch = errors.New("digest mismatch")

// Tree returns the sha256 of the NAR serialization of path, as
// "sha256:<nix base32>"
func Tree(path string) (string, error) {
	h := sha256.New()
	if err := nar.DumpPath(h, path); err != nil {
		return "", fmt.Errorf("serializing %s: %w", path, err)
	}
	return prefix + nixbase32.EncodeToString(h.Sum(nil)), nil
}

// Verify checks path against a digest produced by Tree
func Verify(path, want string) error {
	raw, ok := strings.CutPrefix(want, prefix)
	if !ok {
		return fmt.Errorf("unsupported digest %q: want %s prefix", want, prefix)
	}
	if len(raw) != encodedLen {
		return fmt.Errorf("parsing digest: got %d characters, want %d", len(raw), encodedLen)
	}
	if err := nixbase32.ValidateString(raw); err != nil {
		return fmt.Errorf("parsing digest: %w", err)
	}

	got, err := Tree(path)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: %s is %s, want %s", ErrMismatch, path, got, want)
	}
	return nil
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args. Commands share package-level
// flag state, so these tests do not run in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "stm32bind version "+Version)
}

func TestSpecs_Text(t *testing.T) {
	out, err := execute(t, "specs")
	require.NoError(t, err)
	require.Contains(t, out, "mac_802_15_4\n")
	require.Contains(t, out, "  alias:     mac\n")
	require.Less(t, strings.Index(out, "ble\n"), strings.Index(out, "link_layer\n"))
}

func TestSpecs_TOMLAndYAML(t *testing.T) {
	out, err := execute(t, "specs", "--format", "toml")
	require.NoError(t, err)
	require.Contains(t, out, "[[spec]]")

	out, err = execute(t, "specs", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "module: link_layer")

	_, err = execute(t, "specs", "--format", "json")
	require.ErrorContains(t, err, "unknown format")

	specsFormat = "text"
}

func TestDigest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.rs"), []byte("pub mod a;\n"), 0644))

	out, err := execute(t, "digest", dir)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "sha256:"))
	require.Contains(t, out, dir)
}

func TestGenerate_LocalIncludeHelpNamesBaseDirectory(t *testing.T) {
	// Arrange
	flag := generateCmd.Flags().Lookup("local-include")
	require.NotNil(t, flag)

	// Assert
	require.Contains(t, flag.Usage, "current directory")
	require.Contains(t, flag.Usage, "./inc")
}

func TestGenerate_RequiresFlags(t *testing.T) {
	_, err := execute(t, "generate", "--out", t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "sources")
}

func TestGenerate_EndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("needs a POSIX shell and no host SDK lookup")
	}

	// --- Arrange ---
	root := t.TempDir()
	vendor := filepath.Join(root, "cube")
	for _, rel := range []string{
		"Middlewares/ST/STM32_WPAN/ble/stack/lib/stm32wba_ble_stack_basic.a",
		"Middlewares/ST/STM32_WPAN/link_layer/ll_cmd_lib/lib/LinkLayer_BLE_Basic_lib.a",
		"Middlewares/ST/STM32_WPAN/mac_802_15_4/lib/wba_mac_lib.a",
	} {
		path := filepath.Join(vendor, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("!<arch>\n"), 0644))
	}

	bindgen := filepath.Join(root, "bindgen")
	require.NoError(t, os.WriteFile(bindgen, []byte("#!/bin/sh\necho 'pub const version: u32 = 1;'\n"), 0755))
	out := filepath.Join(root, "crate")

	// --- Act ---
	stdout, err := execute(t, "generate",
		"--out", out,
		"--sources", vendor,
		"--bindgen", bindgen,
		"--local-include", filepath.Join(root, "inc"),
		"--verify-idempotent",
	)

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, stdout, "Generated 3 modules")

	ble, err := os.ReadFile(filepath.Join(out, "src", "bindings", "ble.rs"))
	require.NoError(t, err)
	require.Equal(t, "pub const VERSION:u32 = 1;\n", string(ble))

	_, err = os.Stat(filepath.Join(out, "src", "lib", "LinkLayer_BLE_Basic_lib.a"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "src", "lib", "libwba_mac_lib.a"))
	require.NoError(t, err)
}

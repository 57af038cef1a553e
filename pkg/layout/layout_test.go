package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arc-language/stm32bind/pkg/core"
	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T) core.Options {
	t.Helper()
	root := t.TempDir()
	opts, err := core.NewOptions(filepath.Join(root, "out"), filepath.Join(root, "vendor"), "thumbv8m.main-none-eabihf", "")
	require.NoError(t, err)
	return opts
}

func TestReset_RemovesStaleContentAndCreatesSkeleton(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	opts := testOptions(t)
	stale := filepath.Join(opts.OutDir, "src", "bindings", "old.rs")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	// --- Act ---
	err := Reset(opts)

	// --- Assert ---
	require.NoError(t, err)
	_, err = os.Stat(stale)
	require.True(t, os.IsNotExist(err), "stale file should be removed")
	for _, dir := range []string{BindingsDir, LibDir} {
		info, err := os.Stat(opts.OutPath(dir))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestReset_MissingOutputIsFine(t *testing.T) {
	t.Parallel()

	opts := testOptions(t)
	require.NoError(t, Reset(opts))
	require.NoError(t, Reset(opts))
}

func TestWriteTemplates_ByteIdentical(t *testing.T) {
	t.Parallel()

	opts := testOptions(t)
	require.NoError(t, Reset(opts))
	require.NoError(t, WriteTemplates(opts))

	for _, out := range []string{"README.md", "Cargo.toml", "build.rs", "src/lib.rs"} {
		want, err := Template(out)
		require.NoError(t, err)

		got, err := os.ReadFile(opts.OutPath(out))
		require.NoError(t, err, out)
		require.Equal(t, string(want), string(got), out)
		require.Equal(t, byte('\n'), got[len(got)-1], out)
	}
}

func TestTemplate_Unknown(t *testing.T) {
	t.Parallel()

	_, err := Template("Makefile")
	require.Error(t, err)
}

func TestWriteFile_AddsSingleTrailingNewline(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "x.rs")
	require.NoError(t, WriteFile(path, "pub mod a;"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "pub mod a;\n", string(got))

	require.NoError(t, WriteFile(path, "pub mod b;\n\n"))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "pub mod b;\n", string(got))
}

func TestPaths(t *testing.T) {
	t.Parallel()

	opts := testOptions(t)
	require.Equal(t, filepath.Join(opts.OutDir, "src", "bindings", "ble.rs"), BindingPath(opts, "ble"))
	require.Equal(t, filepath.Join(opts.OutDir, "src", "bindings", "mod.rs"), IndexPath(opts))
}

package stm32bind

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arc-language/stm32bind/pkg/backend"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type echoBackend struct{}

func (echoBackend) Name() string { return "echo" }

func (echoBackend) Generate(_ context.Context, inv *backend.Invocation) (string, error) {
	return "pub const " + inv.Module + "_id: u8 = 1;\n", nil
}

type failingBackend struct{}

func (failingBackend) Name() string { return "failing" }

func (failingBackend) Generate(context.Context, *backend.Invocation) (string, error) {
	return "", errors.New("clang exited with 1")
}

func newTestOptions(t *testing.T) Options {
	t.Helper()
	root := t.TempDir()
	opts, err := NewOptions(filepath.Join(root, "out"), filepath.Join(root, "vendor"), "thumbv8m.main-none-eabihf", "")
	require.NoError(t, err)
	return opts
}

func TestGenerator_RunTwice(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	opts := newTestOptions(t)
	reg, err := NewRegistry(BindingSpec{Module: "radio", Header: "radio.h", Feature: "radio", Alias: "rf"})
	require.NoError(t, err)

	g, err := NewGenerator(opts, nil,
		WithRegistry(reg),
		WithBackend(echoBackend{}),
		WithHostIncludes(backend.NoHostIncludes{}),
	)
	require.NoError(t, err)

	// --- Act ---
	sum, err := g.RunTwice(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, sum, "sha256:")
	require.Equal(t, "echo", g.Backend())

	got, err := os.ReadFile(filepath.Join(opts.OutDir, "src", "bindings", "radio.rs"))
	require.NoError(t, err)
	require.Equal(t, "pub const RADIO_ID:u8 = 1;\n", string(got))
}

func TestGenerator_BackendErrorIsTyped(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t)
	reg, err := NewRegistry(BindingSpec{Module: "radio", Header: "radio.h"})
	require.NoError(t, err)

	g, err := NewGenerator(opts, nil,
		WithRegistry(reg),
		WithBackend(failingBackend{}),
		WithHostIncludes(backend.NoHostIncludes{}),
	)
	require.NoError(t, err)

	err = g.Run(context.Background())
	require.ErrorIs(t, err, ErrBackend)

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	require.Equal(t, "radio", gerr.Module)
	require.Contains(t, err.Error(), "clang exited with 1")
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg, err := DefaultRegistry()
	require.NoError(t, err)
	require.Positive(t, reg.Len())
}

// dirtyVendorTree commits one header under SourcesDir, then modifies it
func dirtyVendorTree(t *testing.T, dir string) {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "radio.h"), []byte("#pragma once\n"), 0644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("radio.h")
	require.NoError(t, err)
	_, err = wt.Commit("import", &git.CommitOptions{
		Author: &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Unix(0, 0)},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "radio.h"), []byte("changed\n"), 0644))
}

func TestGenerator_RunScansWorkTreeOnlyAtDebug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     zapcore.Level
		wantDirty bool
	}{
		{"info skips status", zapcore.InfoLevel, false},
		{"debug reports dirty", zapcore.DebugLevel, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			opts := newTestOptions(t)
			require.NoError(t, os.MkdirAll(opts.SourcesDir, 0755))
			dirtyVendorTree(t, opts.SourcesDir)
			reg, err := NewRegistry(BindingSpec{Module: "radio", Header: "radio.h"})
			require.NoError(t, err)

			obs, logs := observer.New(tt.level)
			g, err := NewGenerator(opts, nil,
				WithRegistry(reg),
				WithBackend(echoBackend{}),
				WithHostIncludes(backend.NoHostIncludes{}),
				WithLogger(zap.New(obs)),
			)
			require.NoError(t, err)

			// --- Act ---
			require.NoError(t, g.Run(context.Background()))

			// --- Assert ---
			entries := logs.FilterMessage("vendor tree").All()
			require.Len(t, entries, 1)
			rev, ok := entries[0].ContextMap()["revision"].(string)
			require.True(t, ok)
			require.Equal(t, tt.wantDirty, strings.Contains(rev, "-dirty"))
		})
	}
}

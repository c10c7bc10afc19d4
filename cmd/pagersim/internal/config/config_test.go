package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/go-drift/infinitepager/pkg/pager"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/Photo_Gallery/v2\n\ngo 1.24\n")

	cfg, err := Resolve(dir)
	require.NoError(t, err)

	require.Equal(t, "example.com/acme/Photo_Gallery/v2", cfg.ModulePath)
	require.Equal(t, "photo-gallery", cfg.ContainerID)
	require.Equal(t, pager.StrategyStateful, cfg.Strategy)
	require.Equal(t, DefaultOffscreen, cfg.Offscreen)
	require.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	require.False(t, cfg.Plain)
}

func TestResolveWithoutModuleUsesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Pages")
	require.NoError(t, os.Mkdir(dir, 0o755))

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	require.Empty(t, cfg.ModulePath)
	require.Equal(t, "mypages", cfg.ContainerID)
}

func TestResolveReadsConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
pager:
  strategy: retain
  offscreen: 2
  plain: true
  container_id: main
log:
  level: debug
  verbose: true
`)

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	require.Equal(t, pager.StrategyRetain, cfg.Strategy)
	require.Equal(t, 2, cfg.Offscreen)
	require.True(t, cfg.Plain)
	require.Equal(t, "main", cfg.ContainerID)
	require.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	require.True(t, cfg.Verbose)
}

func TestResolveRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"strategy", "pager:\n  strategy: cached\n", "pager.strategy"},
		{"offscreen", "pager:\n  offscreen: -1\n", "pager.offscreen"},
		{"level", "log:\n  level: loud\n", "log.level"},
		{"container", "pager:\n  container_id: a:b\n", "pager.container_id"},
		{"yaml", "pager: [", FileName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.content)

			_, err := Resolve(dir)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

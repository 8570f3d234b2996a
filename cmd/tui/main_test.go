package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o644))
	return dir
}

func TestRun_StartupErrorsAreReturned(t *testing.T) {
	t.Run("InvalidConfig", func(t *testing.T) {
		err := run(writeConfig(t, "logger: [level"))
		assert.ErrorContains(t, err, "could not load config")
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		dir := writeConfig(t, "logger:\n  level: \"loud\"\n  file: \""+filepath.ToSlash(filepath.Join(t.TempDir(), "tui.log"))+"\"\n")
		err := run(dir)
		assert.ErrorContains(t, err, "could not initialize logger")
	})
}

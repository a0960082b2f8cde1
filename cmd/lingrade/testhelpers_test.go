package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestConfigFile writes a minimal config with one valid bank and
// returns the config file path.
func setupTestConfigFile(t *testing.T, tmpDir string) string {
	t.Helper()

	banksDir := filepath.Join(tmpDir, "banks")
	require.NoError(t, os.MkdirAll(banksDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(banksDir, "unit-1.yaml"), []byte(`id: unit-1
title: Present simple
questions:
  - id: q1
    type: verb_form
    text: "She ___ (go) to school every day."
    correct_answer: goes
    points: 5
  - id: q2
    type: translate
    text: "Translate: Me gusta aprender."
    correct_answer: I like learning
    points: 10
`), 0o644))

	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`banks:
  directories:
    - `+banksDir+`
attempts:
  log_directory: `+filepath.Join(tmpDir, "attempts")+`
`), 0o644))
	return cfgPath
}

func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("engine:\n  fuzzy_threshold: 2.5\n"), 0o644))
	return cfgPath
}

func withConfigFile(t *testing.T, path string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = path
	t.Cleanup(func() { configFile = oldConfigFile })
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandStructure(t *testing.T) {
	assert.NotNil(t, validateCmd)
	assert.Equal(t, "validate", validateCmd.Use)
	assert.NotEmpty(t, validateCmd.Short)
	assert.NotEmpty(t, validateCmd.Long)
	assert.NotNil(t, validateCmd.RunE)
}

func TestValidateIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "validate" {
			found = true
			break
		}
	}
	assert.True(t, found, "validate command should be added to root command")
}

func TestRunValidate_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "godedupe.yaml")
	content := `
scan:
  recursive: true
matching:
  basename_match: true
  hash_buffer_kb: 64
processing:
  workers: 4
logging:
  level: info
  format: text
  output: stderr
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	originalCfgFile := cfgFile
	defer func() { cfgFile = originalCfgFile }()
	cfgFile = configPath

	var buf bytes.Buffer
	validateCmd.SetOut(&buf)
	defer validateCmd.SetOut(nil)

	err := runValidate(validateCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "is valid")
}

func TestRunValidate_MissingConfig(t *testing.T) {
	originalCfgFile := cfgFile
	defer func() { cfgFile = originalCfgFile }()
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

	err := runValidate(validateCmd, nil)
	assert.Error(t, err)
}

func TestRunValidate_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "godedupe.yaml")
	content := `
processing:
  workers: -1
logging:
  level: loud
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	originalCfgFile := cfgFile
	defer func() { cfgFile = originalCfgFile }()
	cfgFile = configPath

	err := runValidate(validateCmd, nil)
	assert.Error(t, err)
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCommandStructure(t *testing.T) {
	assert.NotNil(t, planCmd)
	assert.Equal(t, "plan <directory>", planCmd.Use)
	assert.NotEmpty(t, planCmd.Short)
	assert.NotEmpty(t, planCmd.Long)
	assert.NotNil(t, planCmd.RunE)
}

func TestPlanCommandFlags(t *testing.T) {
	flags := planCmd.Flags()

	recursiveFlag := flags.Lookup("recursive")
	assert.NotNil(t, recursiveFlag)
	assert.Equal(t, "r", recursiveFlag.Shorthand)

	protectFlag := flags.Lookup("protect")
	assert.NotNil(t, protectFlag)
}

func TestPlanIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "plan" {
			found = true
			break
		}
	}
	assert.True(t, found, "plan command should be added to root command")
}

func TestRunPlan_EndToEnd(t *testing.T) {
	// Plan over a tree with one duplicate pair prints verdicts and moves
	// nothing.
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.bin"), []byte("AAAA"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "x.bin"), []byte("AAAA"), 0644))

	originalRecursive := planRecursive
	defer func() { planRecursive = originalRecursive }()
	planRecursive = true

	var buf bytes.Buffer
	planCmd.SetOut(&buf)
	defer planCmd.SetOut(nil)

	err := runPlan(planCmd, []string{root})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "=== Deduplication Plan ===")
	assert.Contains(t, out, "No files were modified")

	// Both copies still on disk.
	_, err = os.Stat(filepath.Join(root, "x.bin"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "sub", "x.bin"))
	assert.NoError(t, err)
}

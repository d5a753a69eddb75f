package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanCommandStructure(t *testing.T) {
	assert.NotNil(t, scanCmd)
	assert.Equal(t, "scan <directory>", scanCmd.Use)
	assert.NotEmpty(t, scanCmd.Short)
	assert.NotEmpty(t, scanCmd.Long)
	assert.NotNil(t, scanCmd.RunE)
	assert.NotNil(t, scanCmd.Args)
}

func TestScanCommandFlags(t *testing.T) {
	flags := scanCmd.Flags()

	recursiveFlag := flags.Lookup("recursive")
	assert.NotNil(t, recursiveFlag)
	assert.Equal(t, "r", recursiveFlag.Shorthand)
	assert.Equal(t, "false", recursiveFlag.DefValue)

	protectFlag := flags.Lookup("protect")
	assert.NotNil(t, protectFlag)
	assert.Equal(t, "", protectFlag.DefValue)

	forceFlag := flags.Lookup("force")
	assert.NotNil(t, forceFlag)
	assert.Equal(t, "false", forceFlag.DefValue)

	noJournalFlag := flags.Lookup("no-journal")
	assert.NotNil(t, noJournalFlag)
	assert.Equal(t, "false", noJournalFlag.DefValue)
}

func TestScanIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "scan" {
			found = true
			break
		}
	}
	assert.True(t, found, "scan command should be added to root command")
}

func TestScanCommandExample(t *testing.T) {
	assert.Contains(t, scanCmd.Long, "Example:")
	assert.Contains(t, scanCmd.Long, "godedupe scan")
}

func TestScanRequiresDirectoryArg(t *testing.T) {
	err := scanCmd.Args(scanCmd, []string{})
	assert.Error(t, err)

	err = scanCmd.Args(scanCmd, []string{"/srv/media"})
	assert.NoError(t, err)

	err = scanCmd.Args(scanCmd, []string{"/a", "/b"})
	assert.Error(t, err)
}

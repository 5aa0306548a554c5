package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_Registered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered on root")
}

func TestTUICmd_Help(t *testing.T) {
	out, _, err := executeCommand("tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "interactive terminal user interface")
	assert.Contains(t, out, "Controls:")
	assert.Contains(t, out, "Ctrl+R")
}

func TestTUICmd_MissingServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chatService = nil

	_, _, err := executeCommand("tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}

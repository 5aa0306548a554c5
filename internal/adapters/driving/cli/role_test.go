package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

func TestRoleCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range roleCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"add", "list", "delete"}, names)
}

func TestRoleCmd_Lifecycle(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCommand("role", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No roles defined.")

	out, _, err = executeCommand("role", "add", "--description", "Builds the backend", "Engineer")
	require.NoError(t, err)
	assert.Contains(t, out, "Role Engineer created.")

	_, _, err = executeCommand("role", "add", "engineer")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	out, _, err = executeCommand("role", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Engineer")
	assert.Contains(t, out, "Builds the backend")

	roles, err := documentService.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 1)

	out, _, err = executeCommand("role", "delete", roles[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Role "+roles[0].ID+" deleted.")

	_, _, err = executeCommand("role", "delete", roles[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoleAddCmd_BlankName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCommand("role", "add", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

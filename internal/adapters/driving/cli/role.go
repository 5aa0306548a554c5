package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var roleDescription string

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage job roles",
	Long:  `Roles tag documents so admins can see what each new hire should read.`,
}

var roleAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a role",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoleAdd,
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles",
	Args:  cobra.NoArgs,
	RunE:  runRoleList,
}

var roleDeleteCmd = &cobra.Command{
	Use:   "delete [role-id]",
	Short: "Delete a role and remove its tags",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoleDelete,
}

func init() {
	roleAddCmd.Flags().StringVarP(&roleDescription, "description", "d", "", "what the role does")

	roleCmd.AddCommand(roleAddCmd)
	roleCmd.AddCommand(roleListCmd)
	roleCmd.AddCommand(roleDeleteCmd)
	rootCmd.AddCommand(roleCmd)
}

func runRoleAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	role, err := documentService.AddRole(cmd.Context(), args[0], roleDescription)
	if err != nil {
		return fmt.Errorf("failed to add role: %w", err)
	}

	cmd.Printf("Role %s created.\n", role.Name)
	cmd.Printf("  ID: %s\n", role.ID)
	return nil
}

func runRoleList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	roles, err := documentService.ListRoles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}

	if len(roles) == 0 {
		cmd.Println("No roles defined.")
		return nil
	}

	for _, r := range roles {
		cmd.Printf("  %s  %s\n", r.ID, r.Name)
		if r.Description != "" {
			cmd.Printf("    %s\n", r.Description)
		}
	}
	return nil
}

func runRoleDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.DeleteRole(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	cmd.Printf("Role %s deleted.\n", args[0])
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ddg-console/internal/api"
)

func newRolesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Manage assignable roles",
	}
	cmd.AddCommand(
		newRolesListCommand(a),
		newRolesAddCommand(a),
		newRolesUpdateCommand(a),
		newRolesRemoveCommand(a),
	)
	return cmd
}

func newRolesListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			roles, err := a.roles.List(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS")
			for _, r := range roles {
				fmt.Fprintf(w, "%d\t%s\t%s\n", r.RoleID, r.RoleNm, activeFlag(r.IsActive))
			}
			return w.Flush()
		},
	}
}

func newRolesAddCommand(a *app) *cobra.Command {
	var role api.NewRole
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.roles.Create(cmd.Context(), role); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Role created.")
			return nil
		},
	}
	cmd.Flags().StringVar(&role.RoleNm, "name", "", "role name")
	cmd.Flags().BoolVar(&role.IsActive, "active", true, "role is active")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newRolesUpdateCommand(a *app) *cobra.Command {
	var (
		roleID int64
		role   api.NewRole
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace a role record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.roles.Update(cmd.Context(), roleID, role); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Role updated.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&roleID, "id", 0, "role id")
	cmd.Flags().StringVar(&role.RoleNm, "name", "", "role name")
	cmd.Flags().BoolVar(&role.IsActive, "active", true, "role is active")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newRolesRemoveCommand(a *app) *cobra.Command {
	var roleID int64
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.roles.Delete(cmd.Context(), roleID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Role deleted.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&roleID, "id", 0, "role id")
	cmd.MarkFlagRequired("id")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ddg-console/internal/api"
)

func newUsersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage console users",
	}
	cmd.AddCommand(
		newUsersListCommand(a),
		newUsersAddCommand(a),
		newUsersUpdateCommand(a),
		newUsersPasswdCommand(a),
		newUsersRemoveCommand(a),
	)
	return cmd
}

func newUsersListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			users, err := a.auth.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS\tMANAGER")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%v\n",
					u.UserID, u.UserNm, u.UserLt, u.Email, activeFlag(u.IsActive), u.IsManager)
			}
			return w.Flush()
		},
	}
}

func userFlags(cmd *cobra.Command, u *api.NewUser) {
	cmd.Flags().StringVar(&u.UserNm, "first-name", "", "first name")
	cmd.Flags().StringVar(&u.UserLt, "last-name", "", "last name")
	cmd.Flags().StringVar(&u.Email, "email", "", "email address")
	cmd.Flags().BoolVar(&u.IsActive, "active", true, "account is active")
	cmd.Flags().BoolVar(&u.IsManager, "manager", false, "account is a manager")
}

func newUsersAddCommand(a *app) *cobra.Command {
	var u api.NewUser
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.auth.Register(cmd.Context(), u); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User registered.")
			return nil
		},
	}
	userFlags(cmd, &u)
	cmd.Flags().StringVar(&u.Password, "password", "", "initial password")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersUpdateCommand(a *app) *cobra.Command {
	var (
		userID int64
		u      api.NewUser
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace a user record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.auth.UpdateUser(cmd.Context(), userID, u); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User updated.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "id", 0, "user id")
	userFlags(cmd, &u)
	cmd.MarkFlagRequired("id")
	return cmd
}

func newUsersPasswdCommand(a *app) *cobra.Command {
	var (
		userID   int64
		password string
	)
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change a user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.auth.ChangePassword(cmd.Context(), userID, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "id", 0, "user id")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersRemoveCommand(a *app) *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.auth.DeleteUser(cmd.Context(), userID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User deleted.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "id", 0, "user id")
	cmd.MarkFlagRequired("id")
	return cmd
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ddg-console/internal/api"
)

func newAssignmentsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "Manage role and department assignments",
	}
	cmd.AddCommand(
		newAssignmentsListCommand(a),
		newAssignmentsGrantCommand(a),
		newAssignmentsRevokeCommand(a),
		newAssignmentsPlaceCommand(a),
		newAssignmentsDepartmentsCommand(a),
		newAssignmentsUpdateCommand(a),
	)
	return cmd
}

func newAssignmentsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List role assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			assignments, err := a.assignments.ListRoleAssignments(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "USER\tROLE")
			for _, as := range assignments {
				fmt.Fprintf(w, "%d\t%d\n", as.UserID, as.RoleID)
			}
			return w.Flush()
		},
	}
}

func newAssignmentsGrantCommand(a *app) *cobra.Command {
	var userID, roleID int64
	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Assign a role to a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			err := a.assignments.AssignRole(cmd.Context(), userID, roleID)
			if errors.Is(err, api.ErrDuplicateAssignment) {
				fmt.Fprintln(cmd.OutOrStdout(), "Already assigned, nothing to do.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Role assigned.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().Int64Var(&roleID, "role", 0, "role id")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("role")
	return cmd
}

func newAssignmentsRevokeCommand(a *app) *cobra.Command {
	var userID, roleID int64
	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke a role from a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.assignments.RemoveRole(cmd.Context(), userID, roleID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Role revoked.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().Int64Var(&roleID, "role", 0, "role id")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("role")
	return cmd
}

func newAssignmentsPlaceCommand(a *app) *cobra.Command {
	var d api.DepartmentAssignment
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place a user in a department",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.assignments.Assign(cmd.Context(), d); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User placed in department.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&d.UserID, "user", 0, "user id")
	cmd.Flags().Int64Var(&d.DepartmentID, "department", 0, "department id")
	cmd.Flags().Int64Var(&d.ReportsTo, "reports-to", 0, "manager user id")
	cmd.Flags().BoolVar(&d.IsLeader, "leader", false, "place as department leader")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("department")
	return cmd
}

func newAssignmentsDepartmentsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "placements",
		Short: "List department placements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			placements, err := a.assignments.ListDepartmentAssignments(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "USER\tNAME\tDEPARTMENT\tREPORTS TO\tLEADER")
			for _, p := range placements {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%v\n",
					p.UserID, p.UserNm, p.DepartmentNm, p.ReportsTo, p.IsLeader)
			}
			return w.Flush()
		},
	}
}

func newAssignmentsUpdateCommand(a *app) *cobra.Command {
	var (
		id int64
		d  api.DepartmentAssignment
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace a department placement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.assignments.UpdateAssignment(cmd.Context(), id, d); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Placement updated.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "assignment id")
	cmd.Flags().Int64Var(&d.UserID, "user", 0, "user id")
	cmd.Flags().Int64Var(&d.DepartmentID, "department", 0, "department id")
	cmd.Flags().Int64Var(&d.ReportsTo, "reports-to", 0, "manager user id")
	cmd.Flags().BoolVar(&d.IsLeader, "leader", false, "department leader")
	cmd.MarkFlagRequired("id")
	return cmd
}

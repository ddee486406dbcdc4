package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDepartmentsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "departments",
		Short: "Browse ministry departments",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			departments, err := a.departments.List(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS")
			for _, d := range departments {
				fmt.Fprintf(w, "%d\t%s\t%s\n", d.DepartmentID, d.DepartmentNm, activeFlag(d.IsActive))
			}
			return w.Flush()
		},
	})
	return cmd
}

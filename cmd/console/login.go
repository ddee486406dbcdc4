package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ddg-console/internal/guard"
	"ddg-console/internal/nav"
)

func newLoginCommand(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The sign-in screen sits behind the anonymous gate: a live
			// session redirects to the landing route instead of
			// re-authenticating. An expired session is cleared by the gate
			// and the login proceeds.
			if d := guard.Anonymous(a.store); d.Outcome == guard.Redirect {
				fmt.Fprintln(cmd.OutOrStdout(), "Already signed in, run `console logout` first.")
				if a.nav != nil {
					a.nav.NavigateTo(d.Target)
				}
				return nil
			}
			if err := a.gateway.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
			if u, ok := a.store.User(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Role: %s\n", u.RoleCd)
			} else {
				// Role hydration is best-effort; the session is live either
				// way and the menu resolves on the next fetch.
				fmt.Fprintln(cmd.OutOrStdout(), "Role: pending")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.gateway.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			u, ok := a.store.User()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Signed in, role not yet resolved.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User ID: %d\nRole: %s\n", u.UserID, u.RoleCd)
			return nil
		},
	}
}

func newMenuCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Show the navigation tree your role allows",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}

			menu := nav.Loading()
			if u, ok := a.store.User(); ok {
				menu = nav.Build(u.RoleCd)
			} else if role, err := a.gateway.HydrateRole(cmd.Context(), a.store.Token()); err == nil {
				menu = nav.Build(role)
			}

			switch menu.State {
			case nav.StateLoading:
				fmt.Fprintln(cmd.OutOrStdout(), "Loading... role not yet resolved, try again.")
			case nav.StateNoAccess:
				fmt.Fprintln(cmd.OutOrStdout(), "No access. Contact an administrator.")
			default:
				for _, item := range menu.Items {
					printItem(cmd, item, 0)
				}
			}
			return nil
		},
	}
}

func printItem(cmd *cobra.Command, item nav.Item, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(cmd.OutOrStdout(), "  ")
	}
	if item.Target != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", item.Label, item.Target)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), item.Label)
	}
	for _, child := range item.Children {
		printItem(cmd, child, depth+1)
	}
}

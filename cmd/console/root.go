package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ddg-console/internal/api"
	"ddg-console/internal/auth"
	"ddg-console/internal/guard"
	"ddg-console/internal/session"
)

// app bundles the session store, the auth gateway, and the feature clients a
// command needs. Commands receive it via closures instead of globals so tests
// can build one against an httptest backend.
type app struct {
	store       *session.Store
	nav         api.Navigator
	gateway     *auth.Gateway
	auth        *api.AuthClient
	roles       *api.RolesClient
	events      *api.EventsClient
	departments *api.DepartmentsClient
	assignments *api.AssignmentsClient
}

// printNavigator satisfies api.Navigator for a terminal: a redirect is a hint
// about where the browser console would land, so it is printed, not followed.
type printNavigator struct{}

func (printNavigator) NavigateTo(path string) {
	fmt.Fprintf(os.Stderr, "session redirect -> %s\n", path)
}

// errNotSignedIn is what every guarded command returns when the session gate
// denies access.
var errNotSignedIn = errors.New("not signed in, run `console login` first")

// requireAuth evaluates the authenticated-route gate before a command body
// runs. A redirect decision means no live session; the command never executes.
func requireAuth(a *app) error {
	if d := guard.Authenticated(a.store); d.Outcome == guard.Redirect {
		return errNotSignedIn
	}
	return nil
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "console",
		Short: "Admin console for the ddg backend",
		Long: `console signs you in against the ddg backend and drives the user, role,
event, department, and assignment screens from the terminal. The session
is persisted on disk and expires with its token; expired sessions are
cleared and every command falls back to the sign-in prompt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newMenuCommand(a),
		newUsersCommand(a),
		newRolesCommand(a),
		newEventsCommand(a),
		newDepartmentsCommand(a),
		newAssignmentsCommand(a),
	)
	return root
}

// newTable returns a tabwriter for aligned list output on stdout.
func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

func activeFlag(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ddg-console/internal/api"
)

func newEventsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage service events, rosters, and attendance",
	}
	cmd.AddCommand(
		newEventsListCommand(a),
		newEventsShowCommand(a),
		newEventsAddCommand(a),
		newEventsUpdateCommand(a),
		newEventsRemoveCommand(a),
		newEventsRemindCommand(a),
		newEventsAssignCommand(a),
		newEventsUnassignCommand(a),
		newEventsRosterCommand(a),
		newEventsMineCommand(a),
		newEventsAttendCommand(a),
	)
	return cmd
}

func newEventsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			events, err := a.events.List(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tDATE\tTIME\tDEPARTMENT\tSTATUS")
			for _, ev := range events {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s-%s\t%s\t%s\n",
					ev.ServiceEventID, ev.ServiceNm, ev.ServiceDate,
					ev.StartTime, ev.EndTime, ev.DepartmentNm, activeFlag(ev.IsActive))
			}
			return w.Flush()
		},
	}
}

func newEventsShowCommand(a *app) *cobra.Command {
	var eventID int64
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			ev, err := a.events.Get(cmd.Context(), eventID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ID: %d\nName: %s\nDate: %s\nTime: %s-%s\nDepartment: %d\nStatus: %s\n",
				ev.ServiceEventID, ev.ServiceNm, ev.ServiceDate, ev.StartTime, ev.EndTime,
				ev.DepartmentID, activeFlag(ev.IsActive))
			return nil
		},
	}
	cmd.Flags().Int64Var(&eventID, "id", 0, "event id")
	cmd.MarkFlagRequired("id")
	return cmd
}

func eventFlags(cmd *cobra.Command, ev *api.NewEvent) {
	cmd.Flags().StringVar(&ev.ServiceNm, "name", "", "event name")
	cmd.Flags().StringVar(&ev.ServiceDate, "date", "", "event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ev.StartTime, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&ev.EndTime, "end", "", "end time (HH:MM)")
	cmd.Flags().BoolVar(&ev.IsActive, "active", true, "event is active")
	cmd.Flags().Int64Var(&ev.DepartmentID, "department", 0, "department id")
}

func newEventsAddCommand(a *app) *cobra.Command {
	var ev api.NewEvent
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.events.Create(cmd.Context(), ev); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Event scheduled.")
			return nil
		},
	}
	eventFlags(cmd, &ev)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("date")
	return cmd
}

func newEventsUpdateCommand(a *app) *cobra.Command {
	var (
		eventID int64
		ev      api.NewEvent
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace an event record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.events.Update(cmd.Context(), eventID, ev); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Event updated.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&eventID, "id", 0, "event id")
	eventFlags(cmd, &ev)
	cmd.MarkFlagRequired("id")
	return cmd
}

func newEventsRemoveCommand(a *app) *cobra.Command {
	var eventID int64
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.events.Delete(cmd.Context(), eventID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Event deleted.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&eventID, "id", 0, "event id")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newEventsRemindCommand(a *app) *cobra.Command {
	var eventID int64
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send reminders to the event roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.events.SendReminder(cmd.Context(), eventID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reminders sent.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&eventID, "id", 0, "event id")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newEventsAssignCommand(a *app) *cobra.Command {
	var eventID, userID int64
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Add a user to the event roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.events.AssignUser(cmd.Context(), eventID, userID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User assigned to event.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&eventID, "event", 0, "event id")
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.MarkFlagRequired("event")
	cmd.MarkFlagRequired("user")
	return cmd
}

func newEventsUnassignCommand(a *app) *cobra.Command {
	var eventID, userID int64
	cmd := &cobra.Command{
		Use:   "unassign",
		Short: "Remove a user from the event roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.events.RemoveUser(cmd.Context(), eventID, userID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User removed from event.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&eventID, "event", 0, "event id")
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.MarkFlagRequired("event")
	cmd.MarkFlagRequired("user")
	return cmd
}

func newEventsRosterCommand(a *app) *cobra.Command {
	var eventID int64
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List the users assigned to an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			users, err := a.events.UsersByEvent(cmd.Context(), eventID)
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s %s\t%s\n", u.UserID, u.UserNm, u.UserLt, u.Email)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&eventID, "id", 0, "event id")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newEventsMineCommand(a *app) *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List the events a user is assigned to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if userID == 0 {
				u, ok := a.store.User()
				if !ok {
					return fmt.Errorf("role not yet resolved, pass --user explicitly")
				}
				userID = u.UserID
			}
			events, err := a.events.EventsByUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tDATE\tTIME")
			for _, ev := range events {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s-%s\n",
					ev.ServiceEventID, ev.ServiceNm, ev.ServiceDate, ev.StartTime, ev.EndTime)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id (defaults to the signed-in user)")
	return cmd
}

func newEventsAttendCommand(a *app) *cobra.Command {
	var eventID, userID int64
	cmd := &cobra.Command{
		Use:   "attend",
		Short: "Record attendance for a user at an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(a); err != nil {
				return err
			}
			if err := a.events.RecordAttendance(cmd.Context(), eventID, userID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Attendance recorded.")
			return nil
		},
	}
	cmd.Flags().Int64Var(&eventID, "event", 0, "event id")
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.MarkFlagRequired("event")
	cmd.MarkFlagRequired("user")
	return cmd
}

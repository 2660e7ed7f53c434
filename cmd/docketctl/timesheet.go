package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

func timesheetCommand() *Command {
	return &Command{
		Name:    "timesheet",
		Summary: "Review, submit and approve weekly timesheets",
		Subcommands: []*Command{
			timesheetShowCommand(),
			timesheetSubmitCommand(),
			timesheetApproveCommand(),
			timesheetTeamCommand(),
		},
	}
}

// resolveEmployee defaults to the logged-in user, resolved with a /v1/me call.
func resolveEmployee(conn *connection, employee string) (string, error) {
	if employee != "" {
		return employee, nil
	}
	session, err := conn.session()
	if err != nil {
		return "", err
	}
	ctx, cancel := conn.context()
	defer cancel()
	me, err := session.Me(ctx)
	if err != nil {
		return "", err
	}
	return me.ID, nil
}

func timesheetShowCommand() *Command {
	var (
		conn     connection
		employee string
		week     string
	)
	return &Command{
		Name:    "show",
		Summary: "Show one employee's week",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("timesheet show", &conn)
			fs.StringVar(&employee, "employee", "", "employee user id (default: you)")
			fs.StringVar(&week, "week", "", "any day of the week, YYYY-MM-DD (required)")
			return fs
		},
		Run: func(args []string) error {
			if week == "" {
				return errors.New("--week is required")
			}
			emp, err := resolveEmployee(&conn, employee)
			if err != nil {
				return err
			}
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			ts, err := session.GetTimesheet(ctx, emp, week)
			if err != nil {
				return err
			}

			fmt.Fprintf(stdout, "%s, week %s to %s\n\n", ts.Employee.FullName, ts.WeekStart, ts.WeekEnd)
			if err := printTasks(ts.Tasks); err != nil {
				return err
			}
			s := ts.Summary
			fmt.Fprintf(stdout, "\ntotal %s h (tasks %s + lunch %s), required %s, shortfall %s\n",
				hours(s.TotalHours), hours(s.TotalActual), hours(s.LunchHours),
				hours(s.RequiredHours), hours(s.Shortfall))
			_, err = fmt.Fprintf(stdout, "status: %s\n", s.Status)
			return err
		},
	}
}

func timesheetSubmitCommand() *Command {
	var (
		conn     connection
		employee string
		week     string
		lunch    float64
	)
	return &Command{
		Name:    "submit",
		Summary: "Submit or update a week's timesheet",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("timesheet submit", &conn)
			fs.StringVar(&employee, "employee", "", "employee user id (default: you)")
			fs.StringVar(&week, "week", "", "any day of the week, YYYY-MM-DD (required)")
			fs.Float64Var(&lunch, "lunch", 0, "lunch hours for the week")
			return fs
		},
		Run: func(args []string) error {
			if week == "" {
				return errors.New("--week is required")
			}
			if lunch < 0 {
				return errors.New("--lunch must not be negative")
			}
			emp, err := resolveEmployee(&conn, employee)
			if err != nil {
				return err
			}
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			rec, err := session.SubmitTimesheet(ctx, emp, week, lunch)
			if err != nil {
				return err
			}
			return printJSON(rec)
		},
	}
}

func timesheetApproveCommand() *Command {
	var (
		conn     connection
		comments string
	)
	return &Command{
		Name:    "approve",
		Summary: "Approve a submitted timesheet",
		Usage:   "docketctl timesheet approve <timesheet-id> [--comments TEXT] [flags]",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("timesheet approve", &conn)
			fs.StringVar(&comments, "comments", "", "approval comments")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("usage: docketctl timesheet approve <timesheet-id>")
			}
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			rec, err := session.ApproveTimesheet(ctx, args[0], comments)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "approved %s (week %s)\n", rec.ID, rec.WeekStart)
			return err
		},
	}
}

func timesheetTeamCommand() *Command {
	var (
		conn connection
		week string
	)
	return &Command{
		Name:    "team",
		Summary: "Show every employee's hours for a week",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("timesheet team", &conn)
			fs.StringVar(&week, "week", "", "any day of the week, YYYY-MM-DD (default: this week)")
			return fs
		},
		Run: func(args []string) error {
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			team, err := session.TeamOverview(ctx, week)
			if err != nil {
				return err
			}

			fmt.Fprintf(stdout, "week %s to %s, %s h required\n\n", team.WeekStart, team.WeekEnd, hours(team.RequiredHours))
			rows := make([][]string, 0, len(team.Rows))
			for _, row := range team.Rows {
				rows = append(rows, []string{
					row.User.FullName, strconv.Itoa(row.TaskCount),
					hours(row.ActualHours), hours(row.LunchHours), hours(row.TotalHours), row.Status,
				})
			}
			return printTable([]string{"EMPLOYEE", "TASKS", "ACTUAL", "LUNCH", "TOTAL", "STATUS"}, rows)
		},
	}
}

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/aussiebroadwan/docket/pkg/docketsdk"
)

func tasksCommand() *Command {
	return &Command{
		Name:    "tasks",
		Summary: "List, create and board tasks",
		Subcommands: []*Command{
			tasksListCommand(),
			tasksCreateCommand(),
			tasksBoardCommand(),
		},
	}
}

func printTasks(tasks []docketsdk.Task) error {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.ID, t.DueDate, t.Status, strconv.Itoa(t.Priority),
			hours(t.EstimateHours), hours(t.ActualHours), t.Title,
		})
	}
	return printTable([]string{"ID", "DUE", "STATUS", "PRI", "EST", "ACT", "TITLE"}, rows)
}

func tasksListCommand() *Command {
	var (
		conn   connection
		filter docketsdk.TaskFilter
	)
	return &Command{
		Name:    "list",
		Summary: "List tasks visible to you",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("tasks list", &conn)
			fs.StringVar(&filter.AssigneeID, "assignee", "", "only tasks assigned to this user id")
			fs.StringSliceVar(&filter.Statuses, "status", nil, "status filter, repeatable (pending, in-progress, completed, approved)")
			fs.IntSliceVar(&filter.Priorities, "priority", nil, "priority filter, repeatable (1-5)")
			fs.StringVar(&filter.DueFrom, "due-from", "", "earliest due date, YYYY-MM-DD")
			fs.StringVar(&filter.DueTo, "due-to", "", "latest due date, YYYY-MM-DD")
			return fs
		},
		Run: func(args []string) error {
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			tasks, err := session.ListTasks(ctx, filter)
			if err != nil {
				return err
			}
			return printTasks(tasks)
		},
	}
}

func tasksCreateCommand() *Command {
	var (
		conn connection
		req  docketsdk.CreateTaskRequest
	)
	return &Command{
		Name:    "create",
		Summary: "Create a task",
		Usage:   "docketctl tasks create <title> --due YYYY-MM-DD [flags]",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("tasks create", &conn)
			fs.StringVar(&req.DueDate, "due", "", "due date, YYYY-MM-DD")
			fs.StringVar(&req.Description, "description", "", "longer description")
			fs.StringVar(&req.Status, "status", "", "initial status (default pending)")
			fs.StringVar(&req.AssigneeID, "assignee", "", "assignee user id (default: you)")
			fs.StringVar(&req.ReviewerID, "reviewer", "", "reviewer user id")
			fs.IntVar(&req.Priority, "priority", 0, "priority 1-5 (default 3)")
			fs.Float64Var(&req.EstimateHours, "estimate", 0, "estimated hours")
			fs.Float64Var(&req.ActualHours, "actual", 0, "hours already spent")
			fs.StringVar(&req.Notes, "notes", "", "notes")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("usage: docketctl tasks create <title> --due YYYY-MM-DD")
			}
			req.Title = args[0]
			if errs := req.Validate(); errs != nil {
				return fmt.Errorf("invalid input: %v", errs)
			}

			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			task, err := session.CreateTask(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(task)
		},
	}
}

func tasksBoardCommand() *Command {
	var (
		conn     connection
		assignee string
	)
	return &Command{
		Name:    "board",
		Summary: "Show outstanding, completed and backlog tasks",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("tasks board", &conn)
			fs.StringVar(&assignee, "assignee", "", "whose board (default: yours)")
			return fs
		},
		Run: func(args []string) error {
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			board, err := session.TaskBoard(ctx, assignee)
			if err != nil {
				return err
			}

			for _, column := range []struct {
				name  string
				tasks []docketsdk.Task
			}{
				{"Outstanding", board.Outstanding},
				{"Completed", board.Completed},
				{"Backlog", board.Backlog},
			} {
				fmt.Fprintf(stdout, "== %s (%d)\n", column.name, len(column.tasks))
				if err := printTasks(column.tasks); err != nil {
					return err
				}
				fmt.Fprintln(stdout)
			}
			return nil
		},
	}
}

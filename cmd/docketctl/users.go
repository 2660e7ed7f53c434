package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

func usersCommand() *Command {
	return &Command{
		Name:    "users",
		Summary: "List users and change their roles",
		Subcommands: []*Command{
			usersListCommand(),
			usersSetRoleCommand(),
		},
	}
}

func usersListCommand() *Command {
	var conn connection
	return &Command{
		Name:    "list",
		Summary: "List every user",
		Flags:   func() *pflag.FlagSet { return flagSet("users list", &conn) },
		Run: func(args []string) error {
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			users, err := session.ListUsers(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{u.ID, u.Email, u.FullName, u.RoleLabel})
			}
			return printTable([]string{"ID", "EMAIL", "NAME", "ROLE"}, rows)
		},
	}
}

func usersSetRoleCommand() *Command {
	var conn connection
	return &Command{
		Name:    "set-role",
		Summary: "Change a user's role (signs them out everywhere)",
		Usage:   "docketctl users set-role <user-id> <role> [flags]",
		Flags:   func() *pflag.FlagSet { return flagSet("users set-role", &conn) },
		Run: func(args []string) error {
			if len(args) != 2 {
				return errors.New("usage: docketctl users set-role <user-id> <role>")
			}
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			user, err := session.SetUserRole(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "%s is now %s\n", user.Email, user.RoleLabel)
			return err
		},
	}
}

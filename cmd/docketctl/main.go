// docketctl is the command line client for a docket server.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: load .env: %v\n", err)
		os.Exit(1)
	}

	if err := rootCommand().Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCommand() *Command {
	return &Command{
		Name:    "docketctl",
		Summary: "Manage tasks, timesheets and invitations on a docket server",
		Subcommands: []*Command{
			bootstrapCommand(),
			loginCommand(),
			logoutCommand(),
			meCommand(),
			inviteCommand(),
			usersCommand(),
			tasksCommand(),
			timesheetCommand(),
		},
	}
}

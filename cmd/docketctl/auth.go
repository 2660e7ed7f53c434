package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/aussiebroadwan/docket/pkg/docketsdk"
)

// passwordFlag reads the password from the flag, falling back to
// DOCKET_PASSWORD so it stays out of shell history.
func passwordFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVar(target, "password", "", "account password (env DOCKET_PASSWORD)")
}

func password(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("DOCKET_PASSWORD"); env != "" {
		return env, nil
	}
	return "", errors.New("password required: pass --password or set DOCKET_PASSWORD")
}

func bootstrapCommand() *Command {
	var (
		conn   connection
		token  string
		req    docketsdk.BootstrapRequest
		pwFlag string
	)
	return &Command{
		Name:    "bootstrap",
		Summary: "Create the first organisation admin on an empty server",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("bootstrap", &conn)
			fs.StringVar(&token, "bootstrap-token", os.Getenv("DOCKET_BOOTSTRAP_TOKEN"), "server bootstrap token (env DOCKET_BOOTSTRAP_TOKEN)")
			fs.StringVar(&req.Email, "email", "", "admin email")
			fs.StringVar(&req.FullName, "name", "", "admin full name")
			passwordFlag(fs, &pwFlag)
			return fs
		},
		Run: func(args []string) error {
			pw, err := password(pwFlag)
			if err != nil {
				return err
			}
			req.Password = pw
			if errs := req.Validate(); errs != nil {
				return fmt.Errorf("invalid input: %v", errs)
			}

			ctx, cancel := conn.context()
			defer cancel()
			user, err := conn.client().Bootstrap(ctx, token, req)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
}

func loginCommand() *Command {
	var (
		conn   connection
		email  string
		pwFlag string
		quiet  bool
	)
	return &Command{
		Name:    "login",
		Summary: "Log in and print an access token to export as DOCKET_TOKEN",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("login", &conn)
			fs.StringVar(&email, "email", os.Getenv("DOCKET_EMAIL"), "account email (env DOCKET_EMAIL)")
			passwordFlag(fs, &pwFlag)
			fs.BoolVarP(&quiet, "quiet", "q", false, "print only the token")
			return fs
		},
		Run: func(args []string) error {
			pw, err := password(pwFlag)
			if err != nil {
				return err
			}

			ctx, cancel := conn.context()
			defer cancel()
			session, err := conn.client().Login(ctx, email, pw)
			if err != nil {
				return err
			}

			if quiet {
				_, err = fmt.Fprintln(stdout, session.AccessToken())
				return err
			}
			user := session.User()
			fmt.Fprintf(stdout, "# logged in as %s (%s), token expires %s\n",
				user.Email, user.RoleLabel, session.ExpiresAt().Local().Format("2006-01-02 15:04"))
			_, err = fmt.Fprintf(stdout, "export DOCKET_TOKEN=%s\n", session.AccessToken())
			return err
		},
	}
}

func logoutCommand() *Command {
	var conn connection
	return &Command{
		Name:    "logout",
		Summary: "Revoke the session behind DOCKET_TOKEN",
		Flags:   func() *pflag.FlagSet { return flagSet("logout", &conn) },
		Run: func(args []string) error {
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			if err := session.Logout(ctx); err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, "logged out")
			return err
		},
	}
}

func meCommand() *Command {
	var conn connection
	return &Command{
		Name:    "me",
		Summary: "Show the logged-in user",
		Flags:   func() *pflag.FlagSet { return flagSet("me", &conn) },
		Run: func(args []string) error {
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			user, err := session.Me(ctx)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
}

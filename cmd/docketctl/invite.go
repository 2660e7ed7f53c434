package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aussiebroadwan/docket/pkg/docketsdk"
)

func inviteCommand() *Command {
	return &Command{
		Name:    "invite",
		Summary: "Invite people and manage pending invitations",
		Subcommands: []*Command{
			inviteCreateCommand(),
			inviteListCommand(),
			inviteResendCommand(),
			inviteRevokeCommand(),
			inviteValidateCommand(),
			inviteCleanupCommand(),
		},
	}
}

func printInvitationToken(res *docketsdk.InvitationTokenResponse) error {
	fmt.Fprintf(stdout, "invitation %s for %s (%s), expires %s\n",
		res.Invitation.ID, res.Invitation.Email, res.Invitation.Role,
		res.Invitation.ExpiresAt.Local().Format("2006-01-02 15:04"))
	_, err := fmt.Fprintf(stdout, "link: %s\n", res.Link)
	return err
}

func inviteCreateCommand() *Command {
	var (
		conn connection
		req  docketsdk.CreateInvitationRequest
	)
	return &Command{
		Name:    "create",
		Summary: "Invite an email address",
		Usage:   "docketctl invite create <email> [--role ROLE] [flags]",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("invite create", &conn)
			fs.StringVar(&req.Role, "role", "", "role to grant (default: the server's default role)")
			fs.StringVar(&req.OrganizationID, "org", "", "organisation id")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("usage: docketctl invite create <email>")
			}
			req.Email = args[0]
			if errs := req.Validate(); errs != nil {
				return fmt.Errorf("invalid input: %v", errs)
			}

			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			res, err := session.CreateInvitation(ctx, req)
			if err != nil {
				return err
			}
			return printInvitationToken(res)
		},
	}
}

func inviteListCommand() *Command {
	var (
		conn connection
		org  string
	)
	return &Command{
		Name:    "list",
		Summary: "List pending invitations",
		Flags: func() *pflag.FlagSet {
			fs := flagSet("invite list", &conn)
			fs.StringVar(&org, "org", "", "only this organisation")
			return fs
		},
		Run: func(args []string) error {
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			invitations, err := session.ListInvitations(ctx, org)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(invitations))
			for _, inv := range invitations {
				rows = append(rows, []string{
					inv.ID, inv.Email, inv.Role, inv.Status,
					inv.ExpiresAt.Local().Format("2006-01-02"),
				})
			}
			return printTable([]string{"ID", "EMAIL", "ROLE", "STATUS", "EXPIRES"}, rows)
		},
	}
}

func inviteResendCommand() *Command {
	var conn connection
	return &Command{
		Name:    "resend",
		Summary: "Reissue an invitation with a fresh token and expiry",
		Usage:   "docketctl invite resend <id> [flags]",
		Flags:   func() *pflag.FlagSet { return flagSet("invite resend", &conn) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("usage: docketctl invite resend <id>")
			}
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			res, err := session.ResendInvitation(ctx, args[0])
			if err != nil {
				return err
			}
			return printInvitationToken(res)
		},
	}
}

func inviteRevokeCommand() *Command {
	var conn connection
	return &Command{
		Name:    "revoke",
		Summary: "Revoke a pending invitation",
		Usage:   "docketctl invite revoke <id> [flags]",
		Flags:   func() *pflag.FlagSet { return flagSet("invite revoke", &conn) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("usage: docketctl invite revoke <id>")
			}
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			if err := session.RevokeInvitation(ctx, args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "revoked %s\n", args[0])
			return err
		},
	}
}

func inviteValidateCommand() *Command {
	var conn connection
	return &Command{
		Name:    "validate",
		Summary: "Check an invitation token or link without logging in",
		Usage:   "docketctl invite validate <token|link> [flags]",
		Flags:   func() *pflag.FlagSet { return flagSet("invite validate", &conn) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("usage: docketctl invite validate <token|link>")
			}
			token := args[0]
			// Accept the full registration link as mailed.
			if i := strings.LastIndex(token, "token="); i >= 0 {
				token = token[i+len("token="):]
			}

			ctx, cancel := conn.context()
			defer cancel()
			inv, err := conn.client().ValidateInvitation(ctx, token)
			if err != nil {
				return err
			}
			return printJSON(inv)
		},
	}
}

func inviteCleanupCommand() *Command {
	var conn connection
	return &Command{
		Name:    "cleanup",
		Summary: "Mark every overdue pending invitation as expired",
		Flags:   func() *pflag.FlagSet { return flagSet("invite cleanup", &conn) },
		Run: func(args []string) error {
			session, err := conn.session()
			if err != nil {
				return err
			}
			ctx, cancel := conn.context()
			defer cancel()
			n, err := session.CleanupInvitations(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "expired %d invitation(s)\n", n)
			return err
		},
	}
}

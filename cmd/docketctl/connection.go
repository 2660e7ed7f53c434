package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/aussiebroadwan/docket/pkg/docketsdk"
)

const defaultURL = "http://localhost:8080"

// connection holds the server flags every command shares.
type connection struct {
	URL     string
	Token   string
	Timeout time.Duration
}

func (c *connection) AddFlags(fs *pflag.FlagSet) {
	url := os.Getenv("DOCKET_URL")
	if url == "" {
		url = defaultURL
	}
	fs.StringVar(&c.URL, "url", url, "docket server URL (env DOCKET_URL)")
	fs.StringVar(&c.Token, "token", os.Getenv("DOCKET_TOKEN"), "access token from 'docketctl login' (env DOCKET_TOKEN)")
	fs.DurationVar(&c.Timeout, "timeout", 10*time.Second, "request timeout")
}

func (c *connection) client() *docketsdk.Client {
	return docketsdk.NewClient(c.URL)
}

// session wraps the configured token. Commands that need one fail early
// rather than sending an anonymous request.
func (c *connection) session() (*docketsdk.Session, error) {
	if c.Token == "" {
		return nil, errors.New("not logged in: run 'docketctl login' and export DOCKET_TOKEN")
	}
	return c.client().NewSession(c.Token), nil
}

func (c *connection) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.Timeout)
}

// flagSet builds a flag set that already carries the connection flags.
func flagSet(name string, conn *connection) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	conn.AddFlags(fs)
	return fs
}

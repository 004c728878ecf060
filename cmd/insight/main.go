package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/app"
	"github.com/ytinsight/insight-client/internal/config"
	"github.com/ytinsight/insight-client/internal/forms"
	"github.com/ytinsight/insight-client/internal/router"
)

var (
	errLoginRequired = errors.New("not signed in, run 'insight login' first")
	errAdminRequired = errors.New("this command requires the ADMIN role")
)

// command is one CLI subcommand; route is the screen it stands in for
type command struct {
	name  string
	route string
	usage string
	run   func(ctx context.Context, c *cli, args []string) error
}

var commands = []command{
	{name: "login", route: router.LoginPath, usage: "login [-email addr] [-password pw] [-remember]", run: loginCmd},
	{name: "register", route: "/register", usage: "register -username name -email addr -password pw -confirm pw", run: registerCmd},
	{name: "google-login", route: router.LoginPath, usage: "google-login <id-token>", run: googleLoginCmd},
	{name: "logout", usage: "logout", run: logoutCmd},
	{name: "whoami", route: "/settings", usage: "whoami", run: whoamiCmd},
	{name: "analyze", route: router.DashboardPath, usage: "analyze <url>", run: analyzeCmd},
	{name: "dashboard", route: router.DashboardPath, usage: "dashboard [-svg file] [channelId]", run: dashboardCmd},
	{name: "comments", route: "/sentiment", usage: "comments <channelId> [sentiment] [page]", run: commentsCmd},
	{name: "community", route: "/community", usage: "community <channelId>", run: communityCmd},
	{name: "suggest", route: "/ai-suggestion", usage: "suggest [-channel id] <keywords...>", run: suggestCmd},
	{name: "admin", route: "/admin/users", usage: "admin users [page] [search]", run: adminCmd},
}

type cli struct {
	app *app.App
	out io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		usage(errOut)
		return 2
	}
	cmd, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(errOut, "unknown command %q\n", args[0])
		usage(errOut)
		return 2
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(errOut, "Failed to load configuration: %v\n", err)
		return 1
	}

	logrus.SetOutput(errOut)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	store, err := app.NewStorage(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "Failed to open state storage: %v\n", err)
		return 1
	}

	insight := app.New(cfg, store, nil)
	defer insight.Close()
	_ = insight.Start(ctx)

	select {
	case <-insight.Session.Ready():
	case <-time.After(cfg.RequestTimeout):
		fmt.Fprintln(errOut, "Timed out restoring session")
		return 1
	case <-ctx.Done():
		return 130
	}

	c := &cli{app: insight, out: out}
	if err := c.authorize(cmd.route); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	if err := cmd.run(ctx, c, args[1:]); err != nil {
		fmt.Fprintln(errOut, describe(err))
		return 1
	}
	return 0
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

// authorize applies the route gate to a command
func (c *cli) authorize(route string) error {
	if route == "" {
		return nil
	}
	d := c.app.Gate.Resolve(route)
	if d.Outcome != router.Redirect {
		return nil
	}
	if d.Target == router.LoginPath {
		return errLoginRequired
	}
	return errAdminRequired
}

// describe turns an error into the line shown to the user
func describe(err error) string {
	var fe forms.FieldErrors
	var rf *apiclient.RequestFailedError
	switch {
	case errors.As(err, &fe):
		fields := make([]string, 0, len(fe))
		for field := range fe {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		msg := "Invalid input:"
		for _, field := range fields {
			msg += fmt.Sprintf("\n  %s: %s", field, fe[field])
		}
		return msg
	case errors.Is(err, apiclient.ErrSessionExpired):
		return "Session expired, run 'insight login' again"
	case errors.Is(err, apiclient.ErrAuthenticationRequired):
		return errLoginRequired.Error()
	case errors.As(err, &rf):
		return fmt.Sprintf("Error: %s", rf.Message)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: insight <command> [arguments]")
	fmt.Fprintln(w, "\nCommands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %s\n", cmd.usage)
	}
}

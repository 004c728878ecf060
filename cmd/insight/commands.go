package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ytinsight/insight-client/internal/dashboard"
	"github.com/ytinsight/insight-client/internal/forms"
	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/services"
	"github.com/ytinsight/insight-client/internal/viewstate"
)

func newFlags(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func loginCmd(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("login", c.out)
	email := fs.String("email", c.app.Config.Email, "account e-mail")
	password := fs.String("password", c.app.Config.Password, "account password")
	remember := fs.Bool("remember", false, "keep the session after the token's lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := models.LoginRequest{Email: strings.TrimSpace(*email), Password: *password}
	if err := forms.Login(req); err != nil {
		return err
	}

	user, err := c.app.Session.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	if err := c.app.Session.SetRememberMe(ctx, *remember); err != nil {
		return fmt.Errorf("failed to save remember-me flag: %w", err)
	}

	fmt.Fprintf(c.out, "Signed in as %s (%s)\n", user.Username, user.Role)
	return nil
}

func registerCmd(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("register", c.out)
	username := fs.String("username", "", "display name")
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "password, at least 6 characters")
	confirm := fs.String("confirm", "", "repeat the password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := models.RegisterRequest{
		Username: strings.TrimSpace(*username),
		Email:    strings.TrimSpace(*email),
		Password: *password,
	}
	if err := forms.Register(req, *confirm); err != nil {
		return err
	}

	user, err := c.app.Session.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Account created, signed in as %s\n", user.Username)
	return nil
}

func googleLoginCmd(ctx context.Context, c *cli, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("usage: insight google-login <id-token>")
	}
	user, err := c.app.Session.FederatedLogin(ctx, strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Signed in as %s (%s)\n", user.Username, user.Role)
	return nil
}

func logoutCmd(ctx context.Context, c *cli, args []string) error {
	if err := c.app.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Signed out")
	return nil
}

func whoamiCmd(ctx context.Context, c *cli, args []string) error {
	user, err := c.app.Session.RefreshUser(ctx)
	if err != nil {
		return err
	}
	printUser(c.out, user)
	return nil
}

func analyzeCmd(ctx context.Context, c *cli, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: insight analyze <url>")
	}

	lastProgress := -1
	screen := c.app.NewScreen(dashboard.OnChange(func(st dashboard.State) {
		if st.Phase != dashboard.Polling || st.Progress == nil || *st.Progress == lastProgress {
			return
		}
		lastProgress = *st.Progress
		fmt.Fprintf(c.out, "Job %d %s %d%%\n", st.JobID, st.Status, *st.Progress)
	}))
	defer screen.Close()

	if err := screen.Analyze(ctx, args[0]); err != nil {
		return err
	}

	state, err := screen.Wait(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Analysis complete for channel %s\n\n", state.ChannelID)
	printDashboard(c.out, screen.Snapshot())
	return nil
}

func dashboardCmd(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("dashboard", c.out)
	svgPath := fs.String("svg", "", "write the views trend as an SVG file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	channelID := fs.Arg(0)
	screen := c.app.NewScreen()
	defer screen.Close()

	if err := screen.Load(ctx, channelID); err != nil {
		return err
	}

	snap := screen.Snapshot()
	snap.ChannelID = channelID
	printDashboard(c.out, snap)

	if *svgPath != "" && snap.Trend != nil {
		if err := os.WriteFile(*svgPath, []byte(trendSVG(snap.Trend, 600, 200)), 0o644); err != nil {
			return fmt.Errorf("failed to write trend chart: %w", err)
		}
		fmt.Fprintf(c.out, "\nTrend chart written to %s\n", *svgPath)
	}
	return nil
}

func commentsCmd(ctx context.Context, c *cli, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: insight comments <channelId> [sentiment] [page]")
	}
	channelID := args[0]
	sentiment := ""
	if len(args) > 1 {
		sentiment = args[1]
	}
	page := 0
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid page %q", args[2])
		}
		page = n - 1
	}

	pager := viewstate.NewPager(20)
	comments, err := fetchPage(pager, page, func(p int) (*models.Page[models.Comment], error) {
		return c.app.Comments.BySentiment(ctx, channelID, sentiment, services.PageRequest{Page: p, Size: pager.Size})
	})
	if err != nil {
		return err
	}

	printComments(c.out, comments.Content)
	printPager(c.out, pager, comments.TotalElements)
	return nil
}

// fetchPage requests page after clamping; when the response shows the page
// is past the end it re-requests the last page
func fetchPage[T any](pager *viewstate.Pager, page int, fetch func(page int) (*models.Page[T], error)) (*models.Page[T], error) {
	result, err := fetch(pager.Go(page))
	if err != nil {
		return nil, err
	}
	requested := pager.Page
	pager.Update(result.TotalPages)
	if pager.Page == requested {
		return result, nil
	}
	return fetch(pager.Page)
}

func communityCmd(ctx context.Context, c *cli, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: insight community <channelId>")
	}
	channelID := args[0]

	total, err := c.app.Community.TotalComments(ctx, channelID)
	if err != nil {
		return err
	}
	distribution, err := c.app.Community.SentimentDistribution(ctx, channelID)
	if err != nil {
		return err
	}
	keywords, err := c.app.Community.Keywords(ctx, channelID, 10)
	if err != nil {
		return err
	}

	printCommunity(c.out, total, distribution, keywords)
	return nil
}

func suggestCmd(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("suggest", c.out)
	channelID := fs.String("channel", "", "use this channel's videos as context")
	description := fs.String("description", "", "what the video is about")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: insight suggest [-channel id] <keywords...>")
	}

	resp, err := c.app.AI.GenerateSuggestions(ctx, models.AISuggestionRequest{
		Keywords:            fs.Args(),
		Description:         *description,
		ChannelID:           *channelID,
		UseChannelContext:   *channelID != "",
		FetchYouTubeContext: true,
	})
	if err != nil {
		return err
	}

	printSuggestions(c.out, resp)
	return nil
}

func adminCmd(ctx context.Context, c *cli, args []string) error {
	if len(args) < 1 || args[0] != "users" {
		return fmt.Errorf("usage: insight admin users [page] [search]")
	}
	page := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid page %q", args[1])
		}
		page = n - 1
	}
	search := ""
	if len(args) > 2 {
		search = strings.Join(args[2:], " ")
	}

	pager := viewstate.NewPager(20)
	users, err := fetchPage(pager, page, func(p int) (*models.Page[models.UserSummary], error) {
		return c.app.Admin.Users(ctx, services.ListQuery{Page: p, Size: pager.Size, Search: search})
	})
	if err != nil {
		return err
	}

	printUsers(c.out, users.Content)
	printPager(c.out, pager, users.TotalElements)
	return nil
}

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/viewstate"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printUser(w io.Writer, user *models.User) {
	tw := table(w)
	fmt.Fprintf(tw, "ID\t%d\n", user.ID)
	fmt.Fprintf(tw, "Username\t%s\n", user.Username)
	fmt.Fprintf(tw, "Email\t%s\n", user.Email)
	fmt.Fprintf(tw, "Role\t%s\n", user.Role)
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Member since\t%s\n", user.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

func printDashboard(w io.Writer, snap models.DashboardSnapshot) {
	if m := snap.Metrics; m != nil {
		title := m.ChannelName
		if title == "" {
			title = m.YouTubeChannelID
		}
		fmt.Fprintf(w, "Channel: %s\n", title)

		tw := table(w)
		fmt.Fprintf(tw, "Views\t%s\n", viewstate.CompactNumber(m.TotalViews))
		fmt.Fprintf(tw, "Likes\t%s\n", viewstate.CompactNumber(m.TotalLikes))
		fmt.Fprintf(tw, "Comments\t%s\n", viewstate.CompactNumber(m.TotalComments))
		fmt.Fprintf(tw, "Videos\t%s\n", viewstate.CompactNumber(m.TotalVideos))
		fmt.Fprintf(tw, "Subscribers\t%s\n", viewstate.CompactNumber(m.SubscriberCount))
		tw.Flush()
	}

	if t := snap.Trend; t != nil && len(t.Points) > 0 {
		first, last := t.Points[0], t.Points[len(t.Points)-1]
		fmt.Fprintf(w, "\nTrend %s to %s: %s views, %s likes, %s comments\n",
			first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"),
			viewstate.CompactNumber(sum(t.Points, func(p models.TrendPoint) int64 { return p.Views })),
			viewstate.CompactNumber(sum(t.Points, func(p models.TrendPoint) int64 { return p.Likes })),
			viewstate.CompactNumber(sum(t.Points, func(p models.TrendPoint) int64 { return p.Comments })))
	}

	if len(snap.TopVideos) > 0 {
		fmt.Fprintln(w, "\nTop videos:")
		tw := table(w)
		fmt.Fprintln(tw, "#\tTITLE\tVIEWS\tLIKES\tCOMMENTS")
		for i, v := range snap.TopVideos {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, truncate(v.Title, 48),
				viewstate.CompactNumber(v.ViewCount), viewstate.CompactNumber(v.LikeCount), viewstate.CompactNumber(v.CommentCount))
		}
		tw.Flush()
	}

	if s := snap.Sentiment; s != nil {
		fmt.Fprintln(w, "\nComment sentiment:")
		printShares(w, map[string]int64{
			"positive": s.PositiveCount,
			"negative": s.NegativeCount,
			"neutral":  s.NeutralCount,
		})
	}
}

func printShares(w io.Writer, counts map[string]int64) {
	tw := table(w)
	for _, share := range viewstate.Percentages(counts) {
		fmt.Fprintf(tw, "  %s\t%d%%\t(%s)\n", share.Label, share.Percent, viewstate.CompactNumber(share.Count))
	}
	tw.Flush()
}

func printComments(w io.Writer, comments []models.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "AUTHOR\tSENTIMENT\tEMOTION\tLIKES\tCOMMENT")
	for _, c := range comments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", c.AuthorName, c.Sentiment, c.Emotion, c.LikeCount, truncate(oneLine(c.Content), 60))
	}
	tw.Flush()
}

func printCommunity(w io.Writer, total int64, distribution *models.SentimentStats, keywords []models.Keyword) {
	fmt.Fprintf(w, "Total comments: %s\n", viewstate.CompactNumber(total))

	if distribution != nil && len(distribution.Sentiment) > 0 {
		fmt.Fprintln(w, "\nSentiment:")
		printShares(w, distribution.Sentiment)
	}
	if distribution != nil && len(distribution.Emotion) > 0 {
		fmt.Fprintln(w, "\nEmotion:")
		printShares(w, distribution.Emotion)
	}

	if len(keywords) > 0 {
		fmt.Fprintln(w, "\nTop keywords:")
		tw := table(w)
		for _, k := range keywords {
			fmt.Fprintf(tw, "  %s\t%d\n", k.Keyword, k.Count)
		}
		tw.Flush()
	}
}

func printSuggestions(w io.Writer, resp *models.AISuggestionResponse) {
	fmt.Fprintln(w, "Titles:")
	for i, title := range resp.Titles {
		fmt.Fprintf(w, "  %d. %s\n", i+1, title)
	}
	if resp.Description != "" {
		fmt.Fprintf(w, "\nDescription:\n  %s\n", resp.Description)
	}
	if len(resp.Hashtags) > 0 {
		fmt.Fprintf(w, "\nHashtags: %s\n", strings.Join(resp.Hashtags, " "))
	}
	if len(resp.Topics) > 0 {
		fmt.Fprintf(w, "Topics: %s\n", strings.Join(resp.Topics, ", "))
	}
}

func printUsers(w io.Writer, users []models.UserSummary) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tLOCKED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.Role, u.IsLocked)
	}
	tw.Flush()
}

func printPager(w io.Writer, pager *viewstate.Pager, total int64) {
	pages := pager.TotalPages
	if pages == 0 {
		pages = 1
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d total)", pager.Page+1, pages, total)
	if pager.HasPrev() {
		fmt.Fprintf(w, "  prev: %d", pager.Page)
	}
	if pager.HasNext() {
		fmt.Fprintf(w, "  next: %d", pager.Page+2)
	}
	fmt.Fprintln(w)
}

// trendSVG renders the views series of a trend as a standalone SVG line chart
func trendSVG(trend *models.DashboardTrend, width, height float64) string {
	views := make([]int64, len(trend.Points))
	for i, p := range trend.Points {
		views[i] = p.Views
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+
		`<polyline fill="none" stroke="#c4302b" stroke-width="2" points="%s"/></svg>`+"\n",
		width, height, width, height, viewstate.Polyline(views, width, height))
}

func sum[T any](items []T, value func(T) int64) int64 {
	var total int64
	for _, item := range items {
		total += value(item)
	}
	return total
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

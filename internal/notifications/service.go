package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/ytinsight/insight-client/internal/config"
	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/viewstate"
	"gopkg.in/gomail.v2"
)

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
	dialer Sender
}

// Sender delivers a composed e-mail
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message card
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// SendReport sends a watch report via configured notification channels
func (s *Service) SendReport(report *models.WatchReport) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(s.buildTeamsMessage(report)); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent watch report to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent watch report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SendAlert posts an alert to Teams; without a webhook it is only logged
func (s *Service) SendAlert(alert *models.Alert) error {
	logrus.Warnf("Alert: %s - %s", alert.Type, alert.Title)
	if s.config.TeamsWebhookURL == "" {
		return nil
	}

	message := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: "D13438",
		Title:      alert.Title,
		Text:       alert.Message,
		Sections: []TeamsSection{{
			Facts: []TeamsFact{
				{Name: "Type", Value: alert.Type},
				{Name: "Raised", Value: alert.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
			},
		}},
	}
	return s.postToTeams(message)
}

func (s *Service) postToTeams(message *TeamsMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func subject(report *models.WatchReport) string {
	return fmt.Sprintf("Channel Watch Report - %d succeeded, %d failed", report.Succeeded, report.Failed)
}

func (s *Service) buildTeamsMessage(report *models.WatchReport) *TeamsMessage {
	color := "107C10"
	if report.Failed > 0 {
		color = "D13438"
	}

	message := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: color,
		Title:      subject(report),
		Text:       fmt.Sprintf("Re-analyzed %d watched channels", len(report.Outcomes)),
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts: []TeamsFact{
			{Name: "Succeeded", Value: fmt.Sprintf("%d", report.Succeeded)},
			{Name: "Failed", Value: fmt.Sprintf("%d", report.Failed)},
			{Name: "Generated", Value: report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
		},
		Markdown: true,
	})

	for _, outcome := range report.Outcomes {
		section := TeamsSection{
			ActivityTitle:    outcome.URL,
			ActivitySubtitle: string(outcome.Status),
			Markdown:         true,
		}
		if outcome.Succeeded() {
			section.Facts = []TeamsFact{
				{Name: "Channel", Value: outcome.ChannelID},
				{Name: "Views", Value: viewstate.CompactNumber(outcome.TotalViews)},
				{Name: "Likes", Value: viewstate.CompactNumber(outcome.TotalLikes)},
				{Name: "Snapshot", Value: outcome.SnapshotPath},
			}
		} else {
			section.ActivityText = fmt.Sprintf("**Error:** %s", outcome.Error)
		}
		message.Sections = append(message.Sections, section)
	}

	return message
}

func (s *Service) sendEmail(report *models.WatchReport) error {
	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject(report))
	m.SetBody("text/plain", s.buildEmailText(report))
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

const emailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Channel Watch Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #c4302b; color: white; padding: 20px; border-radius: 5px; }
        .outcome { border-left: 4px solid #605e5c; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .SUCCESS { border-left-color: #107c10; }
        .FAILED { border-left-color: #d13438; }
        .meta { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Channel Watch Report</h1>
        <p>Generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM MST"}}</p>
    </div>

    <p><strong>Succeeded:</strong> {{.Succeeded}} &nbsp; <strong>Failed:</strong> {{.Failed}}</p>

    {{range .Outcomes}}
    <div class="outcome {{.Status}}">
        <div><a href="{{.URL}}" target="_blank">{{.URL}}</a></div>
        <div class="meta">Job {{.JobID}} | {{.Status}} | {{.Duration}}</div>
        {{if .Succeeded}}
        <p>Channel {{.ChannelID}}: {{compact .TotalViews}} views, {{compact .TotalLikes}} likes</p>
        {{else}}
        <p>{{.Error}}</p>
        {{end}}
    </div>
    {{end}}
</body>
</html>
`

func (s *Service) buildEmailHTML(report *models.WatchReport) (string, error) {
	t, err := template.New("email").Funcs(template.FuncMap{
		"compact": viewstate.CompactNumber,
	}).Parse(emailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(report *models.WatchReport) string {
	var text strings.Builder

	text.WriteString("Channel Watch Report\n")
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Succeeded: %d\n", report.Succeeded))
	text.WriteString(fmt.Sprintf("Failed: %d\n", report.Failed))

	if len(report.Outcomes) > 0 {
		text.WriteString("\nCHANNELS\n")
		text.WriteString("========\n")
		for i, outcome := range report.Outcomes {
			text.WriteString(fmt.Sprintf("\n%d. %s [%s]\n", i+1, outcome.URL, outcome.Status))
			if outcome.Succeeded() {
				text.WriteString(fmt.Sprintf("   Channel: %s | Views: %s | Likes: %s\n",
					outcome.ChannelID, viewstate.CompactNumber(outcome.TotalViews), viewstate.CompactNumber(outcome.TotalLikes)))
				text.WriteString(fmt.Sprintf("   Snapshot: %s\n", outcome.SnapshotPath))
			} else {
				text.WriteString(fmt.Sprintf("   Error: %s\n", outcome.Error))
			}
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by the channel watcher.\n")

	return text.String()
}

package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"volunteerhub/internal/config"
	"volunteerhub/internal/port"
)

// API is the subset of the SES v2 client used here.
type API interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesNotifier struct {
	client      API
	fromAddress string
	fromName    string
	to          []string
}

// NewSESNotifier creates an SES-backed Notifier that mails batch summaries.
func NewSESNotifier(cfg *config.EmailConfig) (port.Notifier, error) {
	if cfg.SummaryTo == "" {
		return nil, fmt.Errorf("ses notifier: summary recipient is not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return NewSESNotifierWithClient(sesv2.NewFromConfig(awsCfg), cfg), nil
}

// NewSESNotifierWithClient wraps an existing client (for testing).
func NewSESNotifierWithClient(client API, cfg *config.EmailConfig) port.Notifier {
	var to []string
	for _, addr := range strings.Split(cfg.SummaryTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	return &sesNotifier{
		client:      client,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		to:          to,
	}
}

func (s *sesNotifier) NotifyBatchSummary(ctx context.Context, summary port.BatchSummary) error {
	subject := fmt.Sprintf("%s: %d of %d rows sent", summary.EventName, summary.Succeeded, summary.Total)
	textBody := buildSummaryText(summary)
	htmlBody := buildSummaryHTML(summary)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: s.to,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildSummaryText(summary port.BatchSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event: %s\n", summary.EventName)
	fmt.Fprintf(&b, "Sent: %d of %d\n", summary.Succeeded, summary.Total)
	fmt.Fprintf(&b, "Failed: %d\n", summary.Failed)
	if len(summary.Failures) > 0 {
		b.WriteString("\nFailures:\n")
		for _, f := range summary.Failures {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	b.WriteString("\nVolunteerHub")
	return b.String()
}

func buildSummaryHTML(summary port.BatchSummary) string {
	var failures strings.Builder
	if len(summary.Failures) > 0 {
		failures.WriteString(`<h3 style="color: #B91C1C;">Failures</h3><ul>`)
		for _, f := range summary.Failures {
			fmt.Fprintf(&failures, "<li>%s</li>", html.EscapeString(f))
		}
		failures.WriteString("</ul>")
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s</h2>
  <p>Sent <strong>%d</strong> of %d rows. Failed: %d.</p>
  %s
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">VolunteerHub</p>
</body>
</html>`, html.EscapeString(summary.EventName), summary.Succeeded, summary.Total, summary.Failed, failures.String())
}

package notify

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailClient is the part of the SendGrid client the notifier uses.
type MailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// EmailNotifier sends the daily digest through SendGrid.
type EmailNotifier struct {
	client     MailClient
	fromEmail  string
	fromName   string
	recipients []string
}

func NewEmailNotifier(apiKey, fromEmail, fromName string, recipients []string) *EmailNotifier {
	return NewEmailNotifierWithClient(sendgrid.NewSendClient(apiKey), fromEmail, fromName, recipients)
}

func NewEmailNotifierWithClient(client MailClient, fromEmail, fromName string, recipients []string) *EmailNotifier {
	return &EmailNotifier{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		recipients: recipients,
	}
}

func (n *EmailNotifier) Name() string { return "email" }

// SendDigest mails body to every recipient. body is Telegram-style HTML.
func (n *EmailNotifier) SendDigest(ctx context.Context, subject, body string) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	plainContent := PlainText(body)
	htmlContent := fmt.Sprintf("<div style=\"font-family: sans-serif\">%s</div>", strings.ReplaceAll(body, "\n", "<br>\n"))

	for _, addr := range n.recipients {
		if err := ctx.Err(); err != nil {
			return err
		}
		to := mail.NewEmail("", addr)
		message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
		resp, err := n.client.Send(message)
		if err != nil {
			return fmt.Errorf("send to %s: %w", addr, err)
		}
		if resp != nil && resp.StatusCode >= 400 {
			return fmt.Errorf("send to %s: sendgrid status %d: %s", addr, resp.StatusCode, resp.Body)
		}
	}
	return nil
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// PlainText strips markup from a digest.
func PlainText(body string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(body, ""))
}

package notify

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridSender delivers notifications over the SendGrid mail API. The
// API key is injected at construction, never read from package state.
type SendgridSender struct {
	key  string
	from *sgmail.Email
}

var _ Sender = (*SendgridSender)(nil)

func NewSendgridSender(key, appName, fromEmail string) *SendgridSender {
	return &SendgridSender{
		key:  key,
		from: sgmail.NewEmail(appName, fromEmail),
	}
}

func (s *SendgridSender) Send(msg Message) error {
	subject := fmt.Sprintf("Course update: %s", msg.Title)
	body := fmt.Sprintf(
		"Dear user,\n\nThe course %q has been updated. Please check the new materials.",
		msg.Title,
	)

	to := sgmail.NewEmail("", msg.RecipientEmail)
	content := sgmail.NewContent("text/plain", body)
	m := sgmail.NewV3MailInit(s.from, subject, to, content)

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	resp, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

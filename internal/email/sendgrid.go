package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendgridService struct {
	client   *sendgrid.Client
	from     *sgmail.Email
	subjPref string
}

func NewSendgridService(apiKey, fromName, fromEmail string) *SendgridService {
	return &SendgridService{
		client:   sendgrid.NewSendClient(apiKey),
		from:     sgmail.NewEmail(fromName, fromEmail),
		subjPref: "[" + fromName + "] ",
	}
}

func (s *SendgridService) Send(ctx context.Context, msg Message) error {
	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)

	html := msg.HTMLBody
	if html == "" {
		html = "<pre>" + msg.TextBody + "</pre>"
	}

	m := sgmail.NewSingleEmail(s.from, s.subjPref+msg.Subject, to, msg.TextBody, html)

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: unexpected status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

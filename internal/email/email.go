// Package email sends transactional mail: account verification,
// password resets and the daily due-task digest.
package email

import (
	"context"
	"log"
)

type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

type Service interface {
	Send(ctx context.Context, msg Message) error
}

// ConsoleService logs outbound mail instead of sending it; used in
// development and tests when no SendGrid key is configured.
type ConsoleService struct{}

func NewConsoleService() *ConsoleService { return &ConsoleService{} }

func (s *ConsoleService) Send(_ context.Context, msg Message) error {
	log.Printf("email (console): to=%s subject=%q\n%s", msg.ToEmail, msg.Subject, msg.TextBody)
	return nil
}

// Package email sends lead notifications to the sales team.
package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"
)

var ErrNoRecipients = errors.New("no email recipients configured")

type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// MailgunSender is a thin wrapper around the Mailgun SDK.
type MailgunSender struct {
	client *mailgun.MailgunImpl
	from   string
	log    logrus.FieldLogger
}

func NewMailgunSender(domain, apiKey, from string, log logrus.FieldLogger) *MailgunSender {
	return &MailgunSender{
		client: mailgun.NewMailgun(domain, apiKey),
		from:   from,
		log:    log.WithField("scope", "email.mailgun"),
	}
}

func (s *MailgunSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	m := s.client.NewMessage(s.from, msg.Subject, msg.Text, msg.To...)
	if msg.HTML != "" {
		m.SetHtml(msg.HTML)
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, id, err := s.client.Send(sendCtx, m)
	if err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}

	s.log.WithFields(logrus.Fields{"subject": msg.Subject, "message_id": id}).Info("email sent")
	return nil
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	Log logrus.FieldLogger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Log.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("email delivery disabled, message dropped")
	return nil
}

package mailer

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/avast/retry-go"
	gomail "gopkg.in/gomail.v2"
)

type Attachment struct {
	Name string
	Data []byte
}

type Mail struct {
	To          string
	Subject     string
	Body        string // text/html
	Attachments []Attachment
}

// Mailer is an interface so delivery can be swapped (SMTP/console/fake).
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

type SMTP struct {
	dialer   *gomail.Dialer
	from     string
	attempts uint
	delay    time.Duration
}

func NewSMTP(host string, port int, user, password, from string, attempts uint, delay time.Duration) *SMTP {
	if attempts == 0 {
		attempts = 1
	}
	return &SMTP{
		dialer:   gomail.NewDialer(host, port, user, password),
		from:     from,
		attempts: attempts,
		delay:    delay,
	}
}

func (s *SMTP) Send(ctx context.Context, m Mail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.Body)
	for _, a := range m.Attachments {
		data := a.Data
		msg.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	return retry.Do(
		func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.dialer.DialAndSend(msg)
		},
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
	)
}

// Console logs instead of delivering. Used for local dev without SMTP.
type Console struct{}

func (Console) Send(_ context.Context, m Mail) error {
	log.Printf("[mail] to=%s subject=%q attachments=%d", m.To, m.Subject, len(m.Attachments))
	return nil
}

package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

var (
	// ErrInvalidMessage возвращается при некорректных параметрах письма
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrSendFailed возвращается при ошибке отправки письма
	ErrSendFailed = errors.New("mailer: failed to send message")
)

// Config параметры подключения к SMTP серверу
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer SMTP отправитель писем
type Mailer struct {
	client *mail.Client
	from   string
}

// New создает новый SMTP mailer
func New(cfg Config) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: failed to create client: %w", err)
	}

	return &Mailer{
		client: client,
		from:   cfg.From,
	}, nil
}

// Send отправляет текстовое письмо одному получателю
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("%w: invalid from address %q: %v", ErrInvalidMessage, m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("%w: invalid recipient address %q: %v", ErrInvalidMessage, to, err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}

package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

const implicitTLSPort = 465

type SMTPConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	Timeout time.Duration
}

type SMTPTransport struct {
	client *mail.Client
}

func NewSMTP(cfg SMTPConfig) (*SMTPTransport, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Port == implicitTLSPort {
		opts = append(opts, mail.WithSSL())
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}

	return &SMTPTransport{client: client}, nil
}

// Send opens a fresh authenticated session for msg. The client holds no
// per-send state, so concurrent sends do not share a connection.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return err
	}
	return t.client.DialAndSendWithContext(ctx, m)
}

func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	if msg.ID != "" {
		m.SetGenHeader(mail.HeaderMessageID, messageID(msg.ID, msg.From))
	}
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	return m, nil
}

func messageID(id, from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return "<" + id + "@" + domain + ">"
}

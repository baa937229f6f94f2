package mailer

import (
	"context"
	"log/slog"

	registryports "ballotbox/contexts/election-operations/voter-registry/ports"

	"github.com/wneessen/go-mail"
)

// SMTPSender delivers outbound voter emails over SMTP.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	Logger   *slog.Logger
}

func (s SMTPSender) Send(ctx context.Context, email registryports.OutboundEmail) error {
	msg := mail.NewMsg()
	msg.Subject(email.Subject)
	if err := msg.From(email.From); err != nil {
		return err
	}
	if err := msg.To(email.To); err != nil {
		return err
	}
	msg.SetBodyString(mail.TypeTextHTML, email.HTMLBody)
	if email.TextBody != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, email.TextBody)
	}
	msg.SetCharset(mail.CharsetUTF8)

	client, err := mail.NewClient(s.Host,
		mail.WithPort(s.Port),
		mail.WithUsername(s.Username),
		mail.WithPassword(s.Password),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
	)
	if err != nil {
		return err
	}

	if s.Logger != nil {
		s.Logger.Info("delivering mail over smtp",
			"event", "mailer_smtp_send",
			"module", "internal/platform/mailer",
			"layer", "platform",
			"mail_id", email.MailID,
			"to", email.To,
		)
	}
	if err := client.DialWithContext(ctx); err != nil {
		return err
	}
	defer client.Close()
	return client.Send(msg)
}

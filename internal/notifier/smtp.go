package notifier

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// SMTPNotifier implements Notifier over SMTP
type SMTPNotifier struct {
	host     string
	port     int
	user     string
	password string
	fromAddr string
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(host string, port int, user, password, fromAddr string) *SMTPNotifier {
	return &SMTPNotifier{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		fromAddr: fromAddr,
	}
}

// Send delivers the message via SMTP
func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	payload := fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\n\r\n%s",
		msg.Recipient,
		msg.Subject,
		msg.Body,
	)

	auth := smtp.PlainAuth("", n.user, n.password, n.host)

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	if err := smtp.SendMail(addr, auth, n.fromAddr, []string{msg.Recipient}, []byte(payload)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	zap.L().Info("notification sent", zap.String("recipient", msg.Recipient), zap.String("subject", msg.Subject))
	return nil
}

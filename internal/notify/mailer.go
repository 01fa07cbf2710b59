package notify

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/oceancatch/fishhub/config"
)

// Mailer delivers order summaries to the shop mailbox over SMTP. When no
// SMTP host is configured it degrades to logging the order and still
// reports success, so an order is never lost to a missing credential.
type Mailer struct {
	cfg config.SmtpConfig
}

func NewMailer(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Configured reports whether a real SMTP delivery target exists.
func (m *Mailer) Configured() bool {
	return m.cfg.Host != ""
}

// DeliverOrder sends the order summary email, or logs it when SMTP is
// not configured.
func (m *Mailer) DeliverOrder(p OrderPayload) error {
	body := p.EmailBody(time.Now())
	if !m.Configured() {
		zap.L().Info("order received (no email service configured)",
			zap.String("customer", p.FullName),
			zap.Float64("total", p.Total),
			zap.String("summary", body))
		return nil
	}
	return m.send(p.EmailSubject(), body)
}

// DeliverContact forwards a contact-page message to the shop mailbox.
func (m *Mailer) DeliverContact(name, email, message string) error {
	subject := "FishHub contact message from " + name
	body := "From: " + name + " <" + email + ">\n\n" + message
	if !m.Configured() {
		zap.L().Info("contact message received (no email service configured)",
			zap.String("name", name), zap.String("email", email))
		return nil
	}
	return m.send(subject, body)
}

func (m *Mailer) send(subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "smtp delivery failed")
	}
	return nil
}

package mailer

import (
	"gopkg.in/gomail.v2"

	"go.uber.org/zap"
)

// Mailer sends HTML notification emails over SMTP. With no username
// configured it is a no-op, so local setups run without an SMTP account.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	log      *zap.Logger
}

func New(host string, port int, username, password string, log *zap.Logger) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, log: log}
}

// Send sends an email using the configured SMTP account.
func (m *Mailer) Send(to, subject, body string) error {
	if m.username == "" {
		m.log.Debug("mailer disabled, dropping email", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.username)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Warn("failed to send email", zap.String("to", to), zap.Error(err))
		return err
	}
	m.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

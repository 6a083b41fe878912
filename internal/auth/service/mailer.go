package service

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/config"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
)

// Mailer delivers the password reset token to the account owner.
type Mailer interface {
	SendPasswordReset(to, token string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendPasswordReset(to, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.BaseURL, token)

	message := gomail.NewMessage()
	message.SetHeader("From", m.cfg.From)
	message.SetHeader("To", to)
	message.SetHeader("Subject", "Recupera tu contraseña")
	message.SetBody("text/html", fmt.Sprintf(
		`<p>Recibimos una solicitud para restablecer tu contraseña.</p>
<p><a href="%s">Restablecer contraseña</a></p>
<p>El enlace expira en 30 minutos. Si no fuiste tú, ignora este correo.</p>`,
		resetLink,
	))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	return dialer.DialAndSend(message)
}

// logMailer is used when SMTP is not configured, so local setups still work.
type logMailer struct{}

func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) SendPasswordReset(to, token string) error {
	logger.Info("Password reset requested for " + to + " (SMTP not configured, token logged)")
	logger.Info("Reset token: " + token)
	return nil
}

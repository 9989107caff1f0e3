package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	from string
	log  logger.Logger
	d    dialer
}

func NewSMTPSender(cfg config.SMTPConfig, log logger.Logger) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.SenderEmail == "" {
		return nil, errors.New("SMTP host, port and sender email must be configured")
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	serverName := cfg.ServerName
	if serverName == "" {
		serverName = cfg.Host
	}
	switch strings.ToLower(cfg.Encryption) {
	case "ssl":
		d.SSL = true
		d.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
	case "tls", "starttls":
		d.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
	}

	return &SMTPSender{
		from: cfg.SenderEmail,
		log:  log.Named("SMTPSender"),
		d:    d,
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error {
	if len(to) == 0 {
		return errors.New("no recipients provided for email")
	}
	if bodyHTML == "" && bodyText == "" {
		return errors.New("email body (HTML or text) must be provided")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	if bodyHTML != "" {
		m.SetBody("text/html", bodyHTML)
		if bodyText != "" {
			m.AddAlternative("text/plain", bodyText)
		}
	} else {
		m.SetBody("text/plain", bodyText)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.d.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.log.Warnf("email to %v (subject %q) abandoned: %v", to, subject, ctx.Err())
		return fmt.Errorf("email sending cancelled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
	}
	s.log.Infof("email sent to %v, subject %q", to, subject)
	return nil
}

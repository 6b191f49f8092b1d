// Package mail delivers rendered invoices over SMTP.
package mail

import (
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	appbilling "github.com/mjansen/praktijk-billing/internal/application/billing"
	"github.com/mjansen/praktijk-billing/pkg/config"
)

var _ appbilling.MailSender = (*GomailSender)(nil)

// GomailSender implements billing.MailSender on top of gomail. A fresh SMTP
// connection per message keeps things simple; batch runs send at most a few
// dozen mails.
type GomailSender struct {
	cfg config.MailConfig
}

// NewGomailSender builds the sender from the SMTP configuration.
func NewGomailSender(cfg config.MailConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// Send delivers one message with the rendered document attached.
func (s *GomailSender) Send(to, subject, body, attachmentName string, attachment []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachment)
		return err
	}))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}

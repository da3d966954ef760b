package services

import (
	"crypto/tls"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"ultimedia/internal/config"
	"ultimedia/internal/models"
)

// MailerService delivers invoice emails with the rendered PDF attached.
type MailerService interface {
	SendInvoice(to, name string, invoice *models.Invoice, pdf []byte) error
}

type smtpMailer struct {
	cfg    config.SMTP
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTP) MailerService {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	return &smtpMailer{cfg: cfg, dialer: dialer}
}

func (m *smtpMailer) SendInvoice(to, name string, invoice *models.Invoice, pdf []byte) error {
	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)

	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, m.cfg.FromName))

	greeting := name
	if greeting == "" {
		greeting = "Customer"
	}
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Please find attached invoice <strong>%s</strong> for KES %s, due on %s.</p>
<p>Quote the invoice number as the payment reference.</p>
<p>Thank you for your business.</p>`,
		greeting, invoice.InvoiceNumber, invoice.AmountDue.StringFixed(2),
		invoice.DueDate.Format("02 January 2006"))
	msg.SetBody("text/html", body)

	filename := pdfFilename(invoice.InvoiceNumber)
	msg.Attach(filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

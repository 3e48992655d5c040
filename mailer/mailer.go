// Package mailer delivers bills to customers by e-mail.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"wms-finance/models"
)

// Mailer sends one bill with its CSV attached.
type Mailer interface {
	SendBill(to string, bill models.Bill, attachmentName string, attachment []byte) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SMTPMailer sends through a gomail sender; the default one dials SMTP
// for every message.
type SMTPMailer struct {
	from   string
	sender gomail.Sender
	logger *zap.Logger
}

func NewSMTPMailer(cfg SMTPConfig, logger *zap.Logger) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return NewSMTPMailerWithSender(cfg.From, gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		sc, err := dialer.Dial()
		if err != nil {
			return err
		}
		defer sc.Close()
		return sc.Send(from, to, msg)
	}), logger)
}

func NewSMTPMailerWithSender(from string, sender gomail.Sender, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{from: from, sender: sender, logger: logger}
}

var billBody = template.Must(template.New("bill").Parse(`<p>Dear {{.CustomerName}},</p>
<p>Please find bill <b>{{.BillNumber}}</b> for {{.WarehouseName}} attached.</p>
<table>
<tr><td>Period</td><td>{{.PeriodStart}} to {{.PeriodEnd}}</td></tr>
<tr><td>Storage fees</td><td>{{.StorageFees}}</td></tr>
<tr><td>Operation fees</td><td>{{.OperationFees}}</td></tr>
<tr><td>Extra fees</td><td>{{.ExtraFees}}</td></tr>
<tr><td><b>Total</b></td><td><b>{{.TotalAmount}}</b></td></tr>
</table>
`))

func (m *SMTPMailer) SendBill(to string, bill models.Bill, attachmentName string, attachment []byte) error {
	var body bytes.Buffer
	if err := billBody.Execute(&body, bill); err != nil {
		return fmt.Errorf("render bill mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Bill %s", bill.BillNumber))
	msg.SetBody("text/html", body.String())
	if len(attachment) > 0 {
		msg.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	if err := gomail.Send(m.sender, msg); err != nil {
		return fmt.Errorf("send bill %s to %s: %w", bill.BillNumber, to, err)
	}
	m.logger.Info("bill mailed", zap.String("bill", bill.BillNumber), zap.String("to", to))
	return nil
}

// LogMailer is used when no SMTP host is configured; it only logs.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendBill(to string, bill models.Bill, attachmentName string, _ []byte) error {
	m.logger.Info("mail delivery disabled, bill not sent",
		zap.String("bill", bill.BillNumber), zap.String("to", to), zap.String("attachment", attachmentName))
	return nil
}

// New picks the SMTP mailer when a host is set and the log mailer otherwise.
func New(cfg SMTPConfig, logger *zap.Logger) Mailer {
	if cfg.Host == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg, logger)
}

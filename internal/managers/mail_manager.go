// Package managers handles the sending of confirmation and password reset emails, formatted with Hermes
// and delivered through Mailgun or plain SMTP.
package managers

import (
	"context"
	"fmt"
	"time"

	"contacts-api/internal/config"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const sendTimeout = 10 * time.Second

// MailMgr is an interface that outlines the contract for email management.
type MailMgr interface {
	SendConfirmationMail(email, username, link string) error
	SendResetPasswordMail(email, username, link string) error
}

// mailSender delivers an already rendered HTML mail.
type mailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// MailManager is a concrete implementation of the MailMgr interface.
type MailManager struct {
	Hermes  *hermes.Hermes
	sender  mailSender
	enabled bool
}

// SendConfirmationMail sends the link that confirms the email address of a new account.
func (mm *MailManager) SendConfirmationMail(email, username, link string) error {
	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				fmt.Sprintf("Welcome to %s! Thanks for registering.", mm.Hermes.Product.Name),
			},
			Actions: []hermes.Action{
				{
					Instructions: "To confirm your email address, please click the button below:",
					Button: hermes.Button{
						Color: "#22BC66",
						Text:  "Confirm your email",
						Link:  link,
					},
				},
			},
			Outros: []string{
				"If you did not create an account, no further action is required.",
			},
		},
	}

	return mm.deliver(email, "Confirm your email", mailBody)
}

// SendResetPasswordMail sends the link that applies a requested password change.
func (mm *MailManager) SendResetPasswordMail(email, username, link string) error {
	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				"You have received this email because a password change was requested for your account.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to apply your new password:",
					Button: hermes.Button{
						Color: "#DC4D2F",
						Text:  "Reset your password",
						Link:  link,
					},
				},
			},
			Outros: []string{
				"If you did not request a password reset, no further action is required on your part.",
			},
		},
	}

	return mm.deliver(email, "Password reset", mailBody)
}

func (mm *MailManager) deliver(email, subject string, body hermes.Email) error {
	if !mm.enabled {
		log.Infof("Skipping %q mail in development mode", subject)
		return nil
	}

	emailBody, err := mm.Hermes.GenerateHTML(body)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := mm.sender.Send(ctx, email, subject, emailBody); err != nil {
		log.Warningf("Error sending %q mail: %v", subject, err)
		return err
	}
	log.Debugf("%q mail sent", subject)

	return nil
}

type mailgunSender struct {
	from    string
	mailgun *mailgun.MailgunImpl
}

func (s *mailgunSender) Send(ctx context.Context, to, subject, html string) error {
	message := s.mailgun.NewMessage(s.from, subject, "", to)
	message.SetHtml(html)
	_, _, err := s.mailgun.Send(ctx, message)
	return err
}

type smtpSender struct {
	from   string
	dialer *gomail.Dialer
}

func (s *smtpSender) Send(ctx context.Context, to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewMailManager initializes a new MailManager with the transport selected by cfg.Provider.
// Mails are only delivered in production.
func NewMailManager(cfg config.MailConfig, productName, productLink string, production bool) *MailManager {
	log.Info("Initializing mail manager")

	if !production {
		log.Info("Running in development mode, email will not be sent to users")
	}

	from := fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)

	var sender mailSender
	switch cfg.Provider {
	case "smtp":
		dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		sender = &smtpSender{from: from, dialer: dialer}
	default:
		mailgunInstance := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
		if cfg.MailgunEU {
			mailgunInstance.SetAPIBase(mailgun.APIBaseEU)
		}
		sender = &mailgunSender{from: from, mailgun: mailgunInstance}
	}

	mm := &MailManager{
		Hermes: &hermes.Hermes{
			Theme:         new(hermes.Default),
			TextDirection: hermes.TDLeftToRight,
			Product: hermes.Product{
				Name:        productName,
				Link:        productLink,
				Copyright:   "Copyright © " + productName,
				TroubleText: "If you’re having trouble with the button '{ACTION}', copy and paste the URL below into your web browser.",
			},
		},
		sender:  sender,
		enabled: production,
	}
	log.Info("Initialized mail manager")
	return mm
}

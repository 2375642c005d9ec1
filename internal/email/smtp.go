package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface over a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendWelcomeEmail(ctx context.Context, toEmail, ownerName string) error {
	content, err := renderEmailTemplate("welcome.html", welcomeEmailData{
		baseEmailData: baseEmailData{
			Title:   "Welcome",
			Heading: "Welcome aboard",
		},
		OwnerName: ownerName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectWelcome, content)
}

func (s *SMTPSender) SendAssessmentReadyEmail(ctx context.Context, toEmail, guesthouseName string, score int, category string) error {
	content, err := renderEmailTemplate("assessment_ready.html", assessmentReadyEmailData{
		baseEmailData: baseEmailData{
			Title:   "Assessment ready",
			Heading: "Your assessment is ready",
		},
		GuesthouseName: guesthouseName,
		Score:          score,
		Category:       category,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectAssessmentReadyFmt, guesthouseName), content)
}

// Compile-time check that SMTPSender implements Sender
var _ Sender = (*SMTPSender)(nil)

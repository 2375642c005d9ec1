// Package email delivers transactional mail to guesthouse owners.
package email

import "context"

// Sender delivers the service's transactional emails.
type Sender interface {
	SendWelcomeEmail(ctx context.Context, toEmail, ownerName string) error
	SendAssessmentReadyEmail(ctx context.Context, toEmail, guesthouseName string, score int, category string) error
}

// NoopSender discards all mail. It is used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendWelcomeEmail(ctx context.Context, toEmail, ownerName string) error {
	return nil
}

func (NoopSender) SendAssessmentReadyEmail(ctx context.Context, toEmail, guesthouseName string, score int, category string) error {
	return nil
}

package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRunOutdated(toEmail, teamName, queryId, runLabel, competition, dashboardURL string) error
	SendRunDeleted(toEmail, teamName, queryId, runLabel, competition string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendRunOutdated(toEmail, teamName, queryId, runLabel, competition, dashboardURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Your run for query %s is outdated", competition, queryId))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Your run <strong>%s</strong> for query <strong>%s</strong> has not been
			refreshed for a while, or the candidate document list of the query changed.
			It is no longer served to users.</p>
			<p>Submit a new run, or reactivate the current one from your dashboard:</p>
			<p><a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open Dashboard</a></p>
			<p>If you take no action the run will eventually be removed.</p>
		</div>
	`, teamName, runLabel, queryId, dashboardURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send outdated notice to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) SendRunDeleted(toEmail, teamName, queryId, runLabel, competition string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Your run for query %s was removed", competition, queryId))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Your run <strong>%s</strong> for query <strong>%s</strong> stayed outdated
			past the grace period and has been removed.</p>
			<p>You can submit a fresh run for the query at any time.</p>
		</div>
	`, teamName, runLabel, queryId)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send deletion notice to %s: %w", toEmail, err)
	}
	return nil
}

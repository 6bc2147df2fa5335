package mailer

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridSender struct {
	client  *sendgrid.Client
	from    *sgmail.Email
	appName string
}

var _ Sender = (*sendgridSender)(nil)

func NewSendgridSender(apiKey, appName, fromEmail string) Sender {
	return &sendgridSender{
		client:  sendgrid.NewSendClient(apiKey),
		from:    sgmail.NewEmail(appName, fromEmail),
		appName: appName,
	}
}

func (s *sendgridSender) SendCredentials(to, name, loginID, password string) error {
	msg := sgmail.NewSingleEmail(
		s.from,
		credentialSubject(s.appName),
		sgmail.NewEmail(name, to),
		credentialBody(name, loginID, password),
		"",
	)

	resp, err := s.client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

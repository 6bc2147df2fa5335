package mailer

import "log/slog"

// consoleSender writes mail to the log. Development default so the flow is
// observable without a SendGrid key.
type consoleSender struct {
	appName string
	logger  *slog.Logger
}

var _ Sender = (*consoleSender)(nil)

func NewConsoleSender(appName string, logger *slog.Logger) Sender {
	return &consoleSender{appName: appName, logger: logger}
}

func (s *consoleSender) SendCredentials(to, name, loginID, password string) error {
	s.logger.Info("credential mail (console)",
		"to", to,
		"subject", credentialSubject(s.appName),
		"body", credentialBody(name, loginID, password))
	return nil
}

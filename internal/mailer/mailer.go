package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/unilearn/lms-backend/internal/core/events"
)

// Sender delivers generated login credentials to a newly created user.
// Implementations are best-effort: a failed send is logged, never
// propagated back to the account creation that triggered it.
type Sender interface {
	SendCredentials(to, name, loginID, password string) error
}

// SubscribeCredentialMail wires a Sender to the user-created event.
func SubscribeCredentialMail(bus *events.EventBus, sender Sender, logger *slog.Logger) {
	bus.Subscribe(events.UserCreatedEventType, func(ctx context.Context, event events.Event) error {
		uc, ok := event.Payload().(events.UserCreatedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", events.UserCreatedEventType)
		}
		if uc.Email == "" {
			logger.Debug("user has no email, skipping credential mail", "login_id", uc.LoginID)
			return nil
		}
		if err := sender.SendCredentials(uc.Email, uc.Name, uc.LoginID, uc.Password); err != nil {
			// best-effort: log and move on
			logger.Error("credential mail delivery failed", "error", err, "to", uc.Email)
		}
		return nil
	})
}

func credentialSubject(appName string) string {
	return fmt.Sprintf("[%s] Your Login Credentials", appName)
}

func credentialBody(name, loginID, password string) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"An account has been created for you.\n\n"+
			"Login ID: %s\n"+
			"Password: %s\n\n"+
			"Please sign in and change your password.\n",
		name, loginID, password)
}

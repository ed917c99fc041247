package email

import (
	"context"
)

// Service sends transactional mail. Notification delivery treats it as
// best-effort: a down SMTP server must never fail the triggering request.
type Service interface {
	SendWelcome(ctx context.Context, to string, name string) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

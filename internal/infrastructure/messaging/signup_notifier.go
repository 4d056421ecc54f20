package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/runnershi/runnershi/config"
	"github.com/runnershi/runnershi/internal/domain/entity"
	"github.com/runnershi/runnershi/pkg/mailer"
	mailtpl "github.com/runnershi/runnershi/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// SignupNotifier queues the welcome email for a freshly created account.
type SignupNotifier struct {
	pub Publisher
	cfg *config.Config
}

func NewSignupNotifier(pub Publisher, cfg *config.Config) *SignupNotifier {
	return &SignupNotifier{pub: pub, cfg: cfg}
}

// UserSignedUp is a no-op when mail sending is disabled or no publisher is wired.
func (n *SignupNotifier) UserSignedUp(ctx context.Context, u *entity.User) error {
	if n == nil || n.pub == nil || n.cfg == nil || !n.cfg.MailSendEnabled {
		return nil
	}

	opts := []mailtpl.Option{mailtpl.WithTime(u.CreatedAt)}
	if u.CountryCode != nil {
		opts = append(opts, mailtpl.WithCountry(*u.CountryCode))
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.cfg, u.Nickname, u.Email, opts...),
	}

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := n.pub.PublishJSON(c, job); err != nil {
		return fmt.Errorf("publish welcome job for user %d: %w", u.ID, err)
	}
	return nil
}

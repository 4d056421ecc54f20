package container

import (
	"github.com/runnershi/runnershi/internal/application"
	"github.com/runnershi/runnershi/internal/infrastructure/messaging"
	pginfra "github.com/runnershi/runnershi/internal/infrastructure/postgres"
	"github.com/runnershi/runnershi/internal/infrastructure/redislock"
	"github.com/runnershi/runnershi/pkg/helpers"
)

// AccountService builds the account service from the registered singletons.
// The signup lock is skipped without Redis or when disabled, the notifier
// without a RabbitMQ publisher.
func AccountService() *application.Service {
	c := GetConfig()

	var locker application.Locker
	if rdb := GetRedis(); rdb != nil && c.SignupLockEnabled {
		locker = redislock.New(rdb, c.SignupLockTTL, c.SignupLockWait)
	}

	var notifier application.Notifier
	if pub := GetRabbitPub(); pub != nil {
		notifier = messaging.NewSignupNotifier(pub, c)
	}

	return application.NewService(
		pginfra.NewUserRepository(GetPGPool()),
		helpers.NewBcryptHasher(c.BcryptCost),
		locker,
		notifier,
		GetLogger(),
	)
}

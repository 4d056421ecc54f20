package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/runnershi/runnershi/config"
	"github.com/runnershi/runnershi/internal/application"
	"github.com/runnershi/runnershi/internal/container"
	pginfra "github.com/runnershi/runnershi/internal/infrastructure/postgres"
	"github.com/runnershi/runnershi/pkg/helpers"
)

// seed creates a demo account through the account service so the stored
// row goes through the same hashing and uniqueness checks as a real signup.
func main() {
	email := flag.String("email", "demo@runnershi.dev", "account email")
	password := flag.String("password", "password123", "account password")
	nickname := flag.String("nickname", "demoRunner", "account nickname")
	country := flag.String("country", "KR", "country code")
	region := flag.String("region", "KR-11", "region code")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Hour)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	// No lock or notifier: the seeder never races and should not send mail.
	cfg.SignupLockEnabled = false
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)

	res, err := container.AccountService().Signup(ctx, application.SignupInput{
		Email:       *email,
		Password:    *password,
		Nickname:    *nickname,
		CountryCode: *country,
		RegionCode:  *region,
	})
	switch {
	case errors.Is(err, application.ErrDuplicateEmail), errors.Is(err, application.ErrDuplicateNickname):
		logger.WithFields(logrus.Fields{"email": *email, "nickname": *nickname}).Info("demo account already present")
	case err != nil:
		logger.WithError(err).Fatal("failed to seed user")
	default:
		logger.WithFields(logrus.Fields{
			"user_id":  res.UserID,
			"email":    res.Email,
			"nickname": res.Nickname,
		}).Info("seeded user")
	}
}

package templates

import (
	"time"

	"github.com/runnershi/runnershi/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithCountry(code string) Option { return func(d *EmailData) { d.CountryCode = code } }

// NewBaseEmailData fills the common fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ string, nickname, email string, opts ...Option) EmailData {
	d := EmailData{
		Nickname:       nickname,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		SupportURL:  cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, nickname, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, nickname, email, opts...))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_NAME", "PORT", "SIGNUP_LOCK_ENABLED", "SIGNUP_LOCK_TTL", "MAIL_SEND_ENABLED", "PUBLIC_PATHS", "SESSION_POLICY"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "runnershi", cfg.AppName)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.SignupLockEnabled)
	assert.Equal(t, 10*time.Second, cfg.SignupLockTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, []string{"/api/auth/**", "/hello"}, cfg.Security.PublicPaths)
	assert.Equal(t, SessionStateless, cfg.Security.SessionPolicy)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("SIGNUP_LOCK_WAIT", "750ms")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("PUBLIC_PATHS", " /api/auth/** , /hello, ,/healthz ")
	t.Setenv("SESSION_POLICY", "stateless")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, 750*time.Millisecond, cfg.SignupLockWait)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, []string{"/api/auth/**", "/hello", "/healthz"}, cfg.Security.PublicPaths)
	assert.Equal(t, SessionStateless, cfg.Security.SessionPolicy)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "twelve")
	t.Setenv("HTTP_LOG_ENABLED", "maybe")
	t.Setenv("SIGNUP_LOCK_TTL", "soon")
	t.Setenv("SESSION_POLICY", "IF_REQUIRED")

	cfg := Load()

	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.HTTPLogEnabled)
	assert.Equal(t, 10*time.Second, cfg.SignupLockTTL)
	assert.Equal(t, SessionStateless, cfg.Security.SessionPolicy)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "runners", DBSSLMode: "require"}
	require.Equal(t, "postgres://u:p@db:5433/runners?sslmode=require", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "http://a.test, http://b.test,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())

	cfg.CORSAllowedOrigins = ""
	assert.Empty(t, cfg.CORSOrigins())
}

package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnershi/runnershi/config"
)

func TestRenderWelcome(t *testing.T) {
	cfg := &config.Config{AppName: "runnershi", CompanyName: "Runner's Hi", SupportURL: "https://help.example.com"}
	data := NewWelcomeData(cfg, "runnerPeter", "test@example.com",
		WithTime(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)), WithCountry("KR"))

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Contains(t, subject, "runnerPeter")
	assert.Contains(t, subject, "runnershi")
	assert.Contains(t, text, "test@example.com")
	assert.Contains(t, text, "01 March 2025, 09:30")
	assert.Contains(t, text, "https://help.example.com")
	assert.Contains(t, html, `href="https://help.example.com"`)
	assert.Equal(t, "welcome", data["Type"])
}

func TestRenderWelcomeEscapesHTML(t *testing.T) {
	cfg := &config.Config{}
	data := NewWelcomeData(cfg, "<b>bold</b>", "x@example.com")

	_, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Contains(t, text, "<b>bold</b>")
	assert.NotContains(t, html, "<b>bold</b>")
	assert.Contains(t, html, "The Runner&#39;s Hi team")
	assert.NotContains(t, text, "Questions?")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("password_reset", map[string]any{})
	require.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "fb", defaultFn("fb", ""))
	assert.Equal(t, "fb", defaultFn("fb", nil))
	assert.Equal(t, "fb", defaultFn("fb", 0))
	assert.Equal(t, "v", defaultFn("fb", "v"))
	assert.Equal(t, 3, defaultFn("fb", 3))
}

package mail

import (
	"os"
	"path/filepath"
	"testing"

	gomail "github.com/wneessen/go-mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-arch1tect/taskbox/config"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestService(t *testing.T, templatesDir string) *Service {
	cfg := &config.MailConfig{
		Host:         "localhost",
		Port:         2525,
		Encryption:   "none",
		FromAddress:  "noreply@example.com",
		FromName:     "taskbox",
		TemplatesDir: templatesDir,
	}

	svc, err := NewService(cfg, nil)
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	t.Run("missing from address", func(t *testing.T) {
		_, err := NewService(&config.MailConfig{Host: "localhost"}, nil)

		assert.Error(t, err)
	})

	t.Run("empty templates dir is allowed", func(t *testing.T) {
		svc := newTestService(t, "")

		assert.Nil(t, svc.htmlTemplates)
		assert.Nil(t, svc.textTemplates)
	})

	t.Run("loads templates from disk", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "welcome.html", "<p>Hello {{.Name}}</p>")
		writeTemplate(t, dir, "welcome.txt", "Hello {{.Name}}")

		svc := newTestService(t, dir)

		assert.NotNil(t, svc.htmlTemplates.Lookup("welcome.html"))
		assert.NotNil(t, svc.textTemplates.Lookup("welcome.txt"))
	})

	t.Run("broken template fails fast", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "bad.html", "{{.Unclosed")

		cfg := &config.MailConfig{
			Host:         "localhost",
			Port:         2525,
			FromAddress:  "noreply@example.com",
			TemplatesDir: dir,
		}

		_, err := NewService(cfg, nil)
		assert.Error(t, err)
	})
}

func TestService_NewMessage(t *testing.T) {
	svc := newTestService(t, "")

	message := svc.NewMessage()

	from := message.GetFrom()
	require.Len(t, from, 1)
	assert.Equal(t, "noreply@example.com", from[0].Address)
	assert.Equal(t, "taskbox", from[0].Name)
}

func TestService_renderTemplate(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "verification.html", "<a href=\"{{.VerificationURL}}\">Verify</a>")
	writeTemplate(t, dir, "verification.txt", "Visit {{.VerificationURL}}")
	svc := newTestService(t, dir)

	t.Run("renders html body with text alternative", func(t *testing.T) {
		message := gomail.NewMsg()
		data := map[string]any{"VerificationURL": "http://localhost/verify?token=abc"}

		err := svc.renderTemplate("verification", data, message)

		require.NoError(t, err)
		parts := message.GetParts()
		assert.Len(t, parts, 2)
	})

	t.Run("unknown template", func(t *testing.T) {
		message := gomail.NewMsg()

		err := svc.renderTemplate("missing", map[string]any{}, message)

		assert.Error(t, err)
	})
}

func TestProjectTemplatesParse(t *testing.T) {
	// The templates shipped in the repo must stay loadable.
	root := "../../templates/mail"
	if _, err := os.Stat(root); err != nil {
		t.Skip("templates directory not present")
	}

	cfg := &config.MailConfig{
		Host:         "localhost",
		Port:         2525,
		FromAddress:  "noreply@example.com",
		TemplatesDir: root,
	}

	svc, err := NewService(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc.htmlTemplates.Lookup("verification.html"))
	assert.NotNil(t, svc.textTemplates.Lookup("verification.txt"))
}

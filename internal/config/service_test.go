package config

import (
	"os"
	"path/filepath"
	"testing"
)

// mockLogger provides a simple logger implementation for testing
type mockLogger struct {
	infoMessages  []string
	errorMessages []string
}

func newMockLogger() *mockLogger {
	return &mockLogger{}
}

func (m *mockLogger) LogInfo(msg string, fields map[string]interface{}) {
	m.infoMessages = append(m.infoMessages, msg)
}

func (m *mockLogger) LogError(err error, msg string) error {
	m.errorMessages = append(m.errorMessages, msg)
	return err
}

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", `
environment: development
server:
  port: 8081
database:
  host: localhost
  user: chronicle
  password: secret
  dbname: chronicle_db
  port: 5432
mail:
  enabled: true
  host: smtp.example.com
  adminEmail: admin@example.com
`)

	logger := newMockLogger()
	configService := NewConfigService(logger)

	cfg, err := configService.Load(dir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected environment development, got %s", cfg.Environment)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("Expected server port 8081, got %d", cfg.Server.Port)
	}
	if cfg.Database.Dbname != "chronicle_db" {
		t.Errorf("Expected database name chronicle_db, got %s", cfg.Database.Dbname)
	}
	if cfg.Mail.AdminEmail != "admin@example.com" {
		t.Errorf("Expected admin email admin@example.com, got %s", cfg.Mail.AdminEmail)
	}

	// Defaults should fill in everything the file omits
	if cfg.Database.Sslmode != "disable" {
		t.Errorf("Expected default sslmode disable, got %s", cfg.Database.Sslmode)
	}
	if cfg.Mail.Language != "en" {
		t.Errorf("Expected default mail language en, got %s", cfg.Mail.Language)
	}
	if cfg.Mail.Port != 587 {
		t.Errorf("Expected default mail port 587, got %d", cfg.Mail.Port)
	}

	if len(logger.infoMessages) == 0 {
		t.Error("Expected some info messages to be logged")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing database host",
			content: `
database:
  user: chronicle
  dbname: chronicle_db
`,
		},
		{
			name: "missing database user",
			content: `
database:
  host: localhost
  dbname: chronicle_db
`,
		},
		{
			name: "mail enabled without host",
			content: `
database:
  host: localhost
  user: chronicle
  dbname: chronicle_db
mail:
  enabled: true
  adminEmail: admin@example.com
`,
		},
		{
			name: "mail enabled without admin email",
			content: `
database:
  host: localhost
  user: chronicle
  dbname: chronicle_db
mail:
  enabled: true
  host: smtp.example.com
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfigFile(t, dir, "config.yaml", tt.content)

			configService := NewConfigService(newMockLogger())
			if _, err := configService.Load(dir); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestLoadConfigTestEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", `
database:
  host: localhost
  user: chronicle
  dbname: chronicle_db
`)
	writeConfigFile(t, dir, "config_test.yaml", `
environment: test
database:
  host: localhost
  user: chronicle
  dbname: chronicle_test
`)

	os.Setenv("ENV", "test")
	defer os.Unsetenv("ENV")

	configService := NewConfigService(newMockLogger())
	cfg, err := configService.Load(dir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Database.Dbname != "chronicle_test" {
		t.Errorf("Expected database name chronicle_test, got %s", cfg.Database.Dbname)
	}
}

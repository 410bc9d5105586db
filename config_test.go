package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "DB_DRIVER", "DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "DB_PORT", "DB_PATH",
	"JWT_SECRET", "JWT_EXPIRES_IN", "UPLOAD_DIR", "MAX_UPLOAD_BYTES", "CORS_ORIGIN",
	"ADMIN_EMAIL", "ADMIN_PASSWORD",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfigSQLiteDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.SQLitePath != "./data/eventhub.db" {
		t.Fatalf("unexpected db config %+v", cfg)
	}
	if cfg.Port != 8080 || cfg.JWTTTL != 7*24*time.Hour || cfg.MaxUploadBytes != 10<<20 || cfg.CORSOrigin != "*" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "events")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_NAME", "eventhub")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "24h")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 || cfg.JWTTTL != 24*time.Hour || cfg.MaxUploadBytes != 2048 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !strings.Contains(cfg.PostgresDSN, "host=db") || !strings.Contains(cfg.PostgresDSN, "dbname=eventhub") {
		t.Fatalf("unexpected dsn %q", cfg.PostgresDSN)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "postgres needs connection settings",
			env:  map[string]string{"JWT_SECRET": "x", "DB_HOST": "db"},
			want: "missing environment variables: DB_USER, DB_PASS, DB_NAME, DB_PORT",
		},
		{
			name: "secret is required",
			env:  map[string]string{"DB_DRIVER": "sqlite"},
			want: "missing environment variables: JWT_SECRET",
		},
		{
			name: "bad values",
			env:  map[string]string{"DB_DRIVER": "sqlite", "JWT_SECRET": "x", "PORT": "http", "JWT_EXPIRES_IN": "7 days"},
			want: "invalid environment variables: PORT, JWT_EXPIRES_IN",
		},
		{
			name: "unknown driver",
			env:  map[string]string{"DB_DRIVER": "oracle", "JWT_SECRET": "x"},
			want: "invalid environment variables: DB_DRIVER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			if err == nil || err.Error() != tt.want {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := LoadEnv(); err == nil {
		t.Fatalf("expected an error without a .env file")
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("EVENTHUB_TEST_VALUE=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("EVENTHUB_TEST_VALUE", "")
	os.Unsetenv("EVENTHUB_TEST_VALUE")
	if err := LoadEnv(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("EVENTHUB_TEST_VALUE"); got != "from-dotenv" {
		t.Fatalf("value = %q", got)
	}
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DBDriver       string
	PostgresDSN    string
	SQLitePath     string
	JWTSecret      string
	JWTTTL         time.Duration
	UploadDir      string
	MaxUploadBytes int64
	CORSOrigin     string
	AdminEmail     string
	AdminPassword  string
}

// LoadEnv reads .env into the process environment. The caller decides how
// to report a missing file, once logging is set up.
func LoadEnv() error {
	return godotenv.Load()
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// LoadConfig builds a Config from the environment, applying defaults for
// optional values and reporting every missing or invalid key at once.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:           8080,
		DBDriver:       "postgres",
		SQLitePath:     "./data/eventhub.db",
		JWTTTL:         7 * 24 * time.Hour,
		UploadDir:      "./uploads",
		MaxUploadBytes: 10 << 20,
		CORSOrigin:     "*",
		AdminEmail:     env("ADMIN_EMAIL"),
		AdminPassword:  env("ADMIN_PASSWORD"),
	}

	var missing, invalid []string

	if v := env("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			invalid = append(invalid, "PORT")
		} else {
			cfg.Port = port
		}
	}

	if v := env("DB_DRIVER"); v != "" {
		cfg.DBDriver = strings.ToLower(v)
	}
	switch cfg.DBDriver {
	case "postgres":
		keys := []string{"DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "DB_PORT"}
		vals := make(map[string]string, len(keys))
		for _, k := range keys {
			if vals[k] = env(k); vals[k] == "" {
				missing = append(missing, k)
			}
		}
		cfg.PostgresDSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			vals["DB_HOST"], vals["DB_USER"], vals["DB_PASS"], vals["DB_NAME"], vals["DB_PORT"],
		)
	case "sqlite":
		if v := env("DB_PATH"); v != "" {
			cfg.SQLitePath = v
		}
	default:
		invalid = append(invalid, "DB_DRIVER")
	}

	if cfg.JWTSecret = env("JWT_SECRET"); cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if v := env("JWT_EXPIRES_IN"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "JWT_EXPIRES_IN")
		} else {
			cfg.JWTTTL = ttl
		}
	}

	if v := env("UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}

	if v := env("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			invalid = append(invalid, "MAX_UPLOAD_BYTES")
		} else {
			cfg.MaxUploadBytes = n
		}
	}

	if v := env("CORS_ORIGIN"); v != "" {
		cfg.CORSOrigin = v
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

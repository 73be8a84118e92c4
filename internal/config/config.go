package config

import (
	"fmt"
	"os"
	"strconv"
)

const defaultTokenTTLHours = 24 * 7 // session tokens live for 7 days

// Config holds application-level settings loaded from the environment.
type Config struct {
	ServerPort        string
	JWTSecret         string
	TokenTTLHours     int64
	InitialAdminEmail string
	SMTPAddr          string // host:port; empty means mail is logged instead of sent
	SMTPFrom          string
}

// Load reads application configuration from environment variables.
// A missing JWT_SECRET_KEY is a hard error: the server must refuse to start
// rather than sign tokens with a guessable default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	ttlHours := int64(defaultTokenTTLHours)
	if v := os.Getenv("JWT_TTL_HOURS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid JWT_TTL_HOURS %q", v)
		}
		ttlHours = parsed
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080" // Default port
	}

	return &Config{
		ServerPort:        port,
		JWTSecret:         secret,
		TokenTTLHours:     ttlHours,
		InitialAdminEmail: os.Getenv("INITIAL_ADMIN_EMAIL"),
		SMTPAddr:          os.Getenv("SMTP_ADDR"),
		SMTPFrom:          os.Getenv("SMTP_FROM"),
	}, nil
}

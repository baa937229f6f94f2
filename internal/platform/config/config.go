package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	PublicBaseURL     string
	StudentMailDomain string
	MailFrom          string
	MailHelpAddress   string
	AdminEmails       []string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	WorkerPollInterval time.Duration
}

func Load() (Config, error) {
	// Local development convenience. A missing .env file is not an error.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "ballotbox"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	mailDomain := os.Getenv("STUDENT_MAIL_DOMAIN")
	if mailDomain == "" {
		mailDomain = "example.edu"
	}

	mailFrom := os.Getenv("MAIL_FROM")
	if mailFrom == "" {
		mailFrom = "elections@" + mailDomain
	}

	helpAddress := os.Getenv("MAIL_HELP_ADDRESS")
	if helpAddress == "" {
		helpAddress = mailFrom
	}

	var adminEmails []string
	for _, value := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			adminEmails = append(adminEmails, value)
		}
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		PublicBaseURL:     baseURL,
		StudentMailDomain: mailDomain,
		MailFrom:          mailFrom,
		MailHelpAddress:   helpAddress,
		AdminEmails:       adminEmails,

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		WorkerPollInterval: envDuration("WORKER_POLL_INTERVAL", 15*time.Second),
	}, nil
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

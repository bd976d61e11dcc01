package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores runtime configuration loaded from environment variables.
// It is built once in main and passed by reference into every component.
type Config struct {
	Port                 string
	DatabaseURL          string
	OpenAIAPIKey         string
	UploadDir            string
	StaticDir            string
	NoteListLimit        int
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	DigestRecipient      string
	DigestSchedule       string
	LocalTimezone        *time.Location
}

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	uploadDir := getenvDefault("UPLOAD_DIR", filepath.Join(".", "uploads"))
	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")

	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	return &Config{
		Port:                 getenvDefault("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		UploadDir:            uploadDir,
		StaticDir:            getenvDefault("STATIC_DIR", "static"),
		NoteListLimit:        ParseIntEnv("NOTE_LIST_LIMIT", 20),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		DigestRecipient:      os.Getenv("MEDIBOT_WHATSAPP_TO"),
		DigestSchedule:       getenvDefault("DIGEST_SCHEDULE", "0 8 * * *"),
		LocalTimezone:        location,
	}
}

// DigestEnabled reports whether the WhatsApp reminder digest is configured.
func (c *Config) DigestEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" &&
		c.TwilioWhatsAppNumber != "" && c.DigestRecipient != ""
}

// Today returns the current date in the configured timezone as YYYY-MM-DD.
func (c *Config) Today() string {
	return time.Now().In(c.LocalTimezone).Format("2006-01-02")
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

// ParseIntEnv returns the integer value for an environment variable or the provided default.
func ParseIntEnv(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("config: unable to parse %s=%q as int: %v", key, value, err)
		return def
	}
	return parsed
}

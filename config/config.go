package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Settings collects the environment-level knobs read once at startup.
type Settings struct {
	Port            string
	CORSOrigins     []string
	FeedPersist     bool     // LIVE_FEED_PERSIST, default true
	FeedTTLDays     int      // LIVE_FEED_TTL_DAYS, <=0 disables expiry
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubject     string
	TelegramToken   string
	TelegramChatID  string
}

func Load() Settings {
	s := Settings{
		Port:            os.Getenv("PORT"),
		FeedPersist:     true,
		FeedTTLDays:     30,
		VAPIDPublicKey:  sanitizeKey(os.Getenv("VAPID_PUBLIC_KEY")),
		VAPIDPrivateKey: sanitizeKey(os.Getenv("VAPID_PRIVATE_KEY")),
		PushSubject:     strings.TrimSpace(os.Getenv("PUSH_SUBJECT")),
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:  os.Getenv("TELEGRAM_CHAT_ID"),
	}

	if s.Port == "" {
		s.Port = "8080"
	}
	if s.PushSubject == "" {
		s.PushSubject = "mailto:admin@localhost"
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		s.CORSOrigins = strings.Split(origins, ",")
	}
	if v := os.Getenv("LIVE_FEED_PERSIST"); strings.EqualFold(v, "false") {
		s.FeedPersist = false
	}
	if v := os.Getenv("LIVE_FEED_TTL_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			s.FeedTTLDays = days
		}
	}

	return s
}

// VAPID keys are sometimes pasted with stray whitespace or line breaks.
func sanitizeKey(k string) string {
	return strings.Join(strings.Fields(k), "")
}

// InitDB opens the database selected by DB_DRIVER (mysql or sqlite).
// Sqlite is the dev/test default so the app runs without a server.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DSN")

	switch driver {
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("DSN is required when DB_DRIVER=mysql")
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite", "":
		if dsn == "" {
			dsn = "housekeeping.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

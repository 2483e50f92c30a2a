package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	APIBaseURL   string
	APIToken     string
	APIJWTSecret string
	APITimeout   time.Duration
	APIRPS       int
	APIRetries   int
	DBDSN        string
	LogFile      string
	TemplatesDir string
	StaticDir    string
	KafkaBrokers string
	ContactTopic string

	AdminEmail    string
	AdminPassword string

	LowStockThreshold int
	CookieSecure      bool
}

func Load() Config {
	// Real environment wins; the files only fill gaps.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := Config{
		Port:              getenv("PORT", "8081"),
		APIBaseURL:        strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8080/api"), "/"),
		APIToken:          os.Getenv("API_TOKEN"),
		APIJWTSecret:      os.Getenv("API_JWT_SECRET"),
		APITimeout:        getduration("API_TIMEOUT", 10*time.Second),
		APIRPS:            getint("API_RPS", 0),
		APIRetries:        getint("API_RETRIES", 0),
		DBDSN:             getenv("DB_DSN", "schoolbooks.db"), // sqlite file in project root
		LogFile:           os.Getenv("LOG_FILE"),
		TemplatesDir:      getenv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:         getenv("STATIC_DIR", "./web/static"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		ContactTopic:      getenv("CONTACT_TOPIC", "contact-messages"),
		AdminEmail:        getenv("ADMIN_EMAIL", "admin@schoolbooks.test"),
		AdminPassword:     getenv("ADMIN_PASSWORD", "Passw0rd!"),
		LowStockThreshold: getint("LOW_STOCK_THRESHOLD", 10),
		CookieSecure:      getbool("COOKIE_SECURE", false),
	}
	log.Printf("[config] PORT=%s API_BASE_URL=%s API_TOKEN=%s API_JWT_SECRET=%s API_TIMEOUT=%s DB_DSN=%s KAFKA_BROKERS=%q LOG_FILE=%q",
		cfg.Port, cfg.APIBaseURL, Mask(cfg.APIToken), Mask(cfg.APIJWTSecret), cfg.APITimeout, cfg.DBDSN, cfg.KafkaBrokers, cfg.LogFile)
	return cfg
}

// Mask hides a secret while still showing whether it is set.
func Mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[config] ignoring %s=%q: want a non-negative integer", key, v)
		return def
	}
	return n
}

func getduration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] ignoring %s=%q: want a positive duration", key, v)
		return def
	}
	return d
}

func getbool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}

package main

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	DatabasePath     string
	TemplateGlob     string
	FAQFile          string
	TrimPunctuation  bool
	TypingDelay      time.Duration
	SessionTTL       time.Duration
	ChatRate         float64 // messages per second
	ChatBurst        int
	AdminUsername    string
	AdminPassword    string
	LogFile          string
	VisitorRetention time.Duration
	CookieSecure     bool
}

// loadConfig reads the environment (after godotenv/autoload has merged .env)
// and fills in development defaults.
func loadConfig() Config {
	cfg := Config{
		Port:             getenv("PORT", "8080"),
		DatabasePath:     getenv("DATABASE_PATH", "portfolio.db"),
		TemplateGlob:     getenv("TEMPLATE_GLOB", "templates/*"),
		FAQFile:          os.Getenv("FAQ_FILE"),
		TrimPunctuation:  getenvBool("FAQ_TRIM_PUNCTUATION", false),
		TypingDelay:      getenvDuration("CHAT_TYPING_DELAY", time.Second),
		SessionTTL:       getenvDuration("CHAT_SESSION_TTL", 30*time.Minute),
		ChatRate:         getenvFloat("CHAT_RATE", 1),
		ChatBurst:        getenvInt("CHAT_BURST", 5),
		AdminUsername:    os.Getenv("ADMIN_USERNAME"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		LogFile:          os.Getenv("LOG_FILE"),
		VisitorRetention: getenvDuration("VISITOR_RETENTION", 365*24*time.Hour),
		CookieSecure:     getenvBool("COOKIE_SECURE", false),
	}

	// Default credentials for development (set both in production)
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, v, def)
		return def
	}
	return b
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, v, def)
		return def
	}
	return f
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

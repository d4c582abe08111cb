package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Default intent vocabularies. EDUCATIONAL_TERMS and COMMERCIAL_TERMS
// replace them when set.
var (
	DefaultEducationalTerms = []string{
		"what is", "how to", "types of", "meaning", "causes",
		"symptoms", "history", "example", "defined",
	}
	DefaultCommercialTerms = []string{
		"near me", "cost", "price", "clinic", "specialist", "treatment",
		"implant", "whitening", "best", "root canal", "braces", "dentist", "fees",
	}
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	HTTPHost    string
	HTTPPort    int
	MaxUploadMB int

	DefaultCity        string
	LeadPreviewRows    int
	KeywordPreviewRows int
	CurrencySymbol     string

	EducationalTerms []string
	CommercialTerms  []string

	LogDebug bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		HTTPHost:    getEnv("HTTP_HOST", "0.0.0.0"),
		HTTPPort:    getEnvInt("HTTP_PORT", 8501),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 32),

		DefaultCity:        getEnv("DEFAULT_CITY", "Hubli"),
		LeadPreviewRows:    getEnvInt("LEAD_PREVIEW_ROWS", 10),
		KeywordPreviewRows: getEnvInt("KEYWORD_PREVIEW_ROWS", 100),
		CurrencySymbol:     getEnv("CURRENCY_SYMBOL", "₹"),

		EducationalTerms: getEnvList("EDUCATIONAL_TERMS", DefaultEducationalTerms),
		CommercialTerms:  getEnvList("COMMERCIAL_TERMS", DefaultCommercialTerms),

		LogDebug: getEnvBool("LOG_DEBUG", false),
	}
}

// Addr returns the host:port the web server listens on.
func (c *Config) Addr() string {
	return c.HTTPHost + ":" + strconv.Itoa(c.HTTPPort)
}

// MaxUploadBytes returns the request body limit for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("[config] Invalid int for %s=%q, using default %d", key, val, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("[config] Invalid bool for %s=%q, using default %t", key, val, fallback)
		return fallback
	}
	return b
}

// getEnvList splits a comma-separated value, trimming and dropping blanks.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}

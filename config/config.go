package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListingURL = "https://rera.odisha.gov.in/projects/project-list"
	defaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ListingURL string
	Headless   bool
	ChromeBin  string
	UserAgent  string

	MaxRetries      int
	RetryDelay      time.Duration
	StaleRetryDelay time.Duration

	PageLoadTimeout time.Duration
	WaitTimeout     time.Duration

	// Unconditional pauses that give the portal time to render.
	LoadSettle   time.Duration
	ClickSettle  time.Duration
	DetailSettle time.Duration
	TabSettle    time.Duration

	NavigationInterval time.Duration

	OutputDir      string
	OutputBasename string
	LogLevel       string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ListingURL: getEnv("RERA_LISTING_URL", defaultListingURL),
		Headless:   getEnvBool("HEADLESS", false),
		ChromeBin:  getEnv("CHROME_BIN", ""),
		UserAgent:  getEnv("USER_AGENT", defaultUserAgent),

		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		RetryDelay:      getEnvMillis("RETRY_DELAY_MS", 3000),
		StaleRetryDelay: getEnvMillis("STALE_RETRY_DELAY_MS", 2000),

		PageLoadTimeout: getEnvSeconds("PAGE_LOAD_TIMEOUT_S", 60),
		WaitTimeout:     getEnvSeconds("WAIT_TIMEOUT_S", 30),

		LoadSettle:   getEnvMillis("LOAD_SETTLE_MS", 10000),
		ClickSettle:  getEnvMillis("CLICK_SETTLE_MS", 2000),
		DetailSettle: getEnvMillis("DETAIL_SETTLE_MS", 5000),
		TabSettle:    getEnvMillis("TAB_SETTLE_MS", 10000),

		NavigationInterval: getEnvMillis("NAV_INTERVAL_MS", 0),

		OutputDir:      getEnv("OUTPUT_DIR", "."),
		OutputBasename: getEnv("OUTPUT_BASENAME", "enhanced_odisha_rera_top6_projects"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rera_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// OutputPath returns the path of the output file with the given extension.
func (c *Config) OutputPath(ext string) string {
	return filepath.Join(c.OutputDir, c.OutputBasename+"."+ext)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvMillis(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Millisecond
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}

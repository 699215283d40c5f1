package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits list-valued variables

	"github.com/joho/godotenv" // optional .env autoload for local development
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for durations and
// costs, slices for the supported language set.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	Languages   []string // supported language codes in fixed fallback order
	DefaultLang string   // default language, must be a member of Languages
	LocalesDir  string   // directory holding <lang>.json phrase tables

	UploadDir     string // root directory for stored uploads, served at /static
	MaxUploadSize int64  // maximum accepted upload size in bytes

	AMQPURL string // RabbitMQ connection URL for inquiry events (optional)
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file is loaded first when present so local runs do not
// need an exported environment.  Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // absence of .env is not an error

	cfg := Config{
		Env:            getenvDefault("APP_ENV", "dev"),
		Port:           getenvDefault("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty password allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envIntDefault("ACCESS_TOKEN_TTL_MIN", 30),
		RefreshTTLDays: envIntDefault("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     envIntDefault("BCRYPT_COST", 12),
		Languages:      splitList(getenvDefault("SUPPORTED_LANGUAGES", "uz,ru,en")),
		DefaultLang:    getenvDefault("DEFAULT_LANGUAGE", "uz"),
		LocalesDir:     getenvDefault("LOCALES_DIR", "locales"),
		UploadDir:      getenvDefault("UPLOAD_DIR", "static/uploads"),
		MaxUploadSize:  int64(envIntDefault("MAX_UPLOAD_SIZE", 10*1024*1024)),
		AMQPURL:        os.Getenv("RABBITMQ_URL"),
	}

	if len(cfg.Languages) == 0 {
		log.Fatalf("SUPPORTED_LANGUAGES must list at least one language code")
	}
	if !containsStr(cfg.Languages, cfg.DefaultLang) {
		log.Fatalf("DEFAULT_LANGUAGE %q is not in SUPPORTED_LANGUAGES %v", cfg.DefaultLang, cfg.Languages)
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenvDefault returns the variable's value or a default when unset.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envIntDefault reads an integer variable, falling back to def when unset.
// An unparsable value is a configuration mistake and terminates startup.
func envIntDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// splitList parses a comma-separated list, trimming blanks and lowercasing
// each entry.  Language codes are stored lowercase throughout the app.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsStr(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

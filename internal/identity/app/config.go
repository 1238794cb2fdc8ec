package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	JWTSecret string        // Required outside dev: HS256 secret, at least 32 bytes
	JWTIssuer string        // Optional: issuer claim for tokens (default: roster-identity)
	JWTTTL    time.Duration // Optional: access token lifetime (default: 24h)

	ProvisioningToken  string // Optional: enables POST /v1/tenants when set
	SystemAccountEmail string // Optional: email of the bootstrap identity (default: system@roster.local)

	BcryptCost        int    // Optional: bcrypt work factor (default: bcrypt.DefaultCost)
	InvitationTTLDays int    // Optional: default invitation lifetime in days (default: 7)
	MFAIssuer         string // Optional: issuer shown in authenticator apps (default: Roster)

	AuditBuffer    int           // Optional: queued audit entries before dropping (default: 256)
	AuditRetention time.Duration // Optional: audit log retention, 0 keeps forever (default: 0)

	MasterKeyPath        string        // Optional: path to master encryption key file (TOTP seeds)
	DatabaseFile         string        // Optional: path to SQLite database file (default: ./identity.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the environment, after merging a .env file from the
// working directory when one exists. Variables already set win over the
// file. Rate limit overrides (RATELIMIT_*) are applied here too.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: getEnvOrDefault("JWT_ISSUER", "roster-identity"),
		JWTTTL:    getEnvDurationOrDefault("JWT_TTL", jwtx.DefaultTTL),

		ProvisioningToken:  os.Getenv("PROVISIONING_TOKEN"),
		SystemAccountEmail: getEnvOrDefault("SYSTEM_ACCOUNT_EMAIL", service.DefaultSystemEmail),

		BcryptCost:        getEnvIntOrDefault("BCRYPT_COST", bcrypt.DefaultCost),
		InvitationTTLDays: getEnvIntOrDefault("INVITATION_TTL_DAYS", domain.DefaultInvitationTTLDays),
		MFAIssuer:         getEnvOrDefault("MFA_ISSUER", service.DefaultMFAIssuer),

		AuditBuffer:    getEnvIntOrDefault("AUDIT_BUFFER", service.DefaultAuditBuffer),
		AuditRetention: getEnvDurationOrDefault("AUDIT_RETENTION", 0),

		MasterKeyPath:        os.Getenv("MASTER_KEY_PATH"),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "identity.db"),
		PepperFile:           getEnvOrDefault("PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	httpx.LoadRateLimits()

	return cfg
}

// IsDev reports whether the service runs in the development environment,
// where a missing JWT secret is generated and reset tokens are logged.
func (c Config) IsDev() bool { return c.Env == "dev" }

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

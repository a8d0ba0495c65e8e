// Package config reads runtime settings from the environment. Empty
// variables fall back to their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/footmate/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const devJWTSecret = "footmate-dev-secret"

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level
	SwaggerEnabled bool

	CORSAllowedOrigins []string

	DBURL                   string
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration

	JWTSecret         string
	JWTIssuer         string
	JWTTTL            time.Duration
	AuthCacheTTL      time.Duration
	AuthCacheMaxItems int
	BcryptCost        int

	SMTPEnabled               bool
	SMTPHost                  string
	SMTPPort                  int
	SMTPUsername              string
	SMTPPassword              string
	SMTPFrom                  string
	SMTPTimeout               time.Duration
	SMTPCircuitEnabled        bool
	SMTPCircuitFailureCount   int
	SMTPCircuitOpenTimeout    time.Duration
	SMTPCircuitHalfOpenMaxReq int
	MailPoolSize              int
	FrontendBaseURL           string

	S3Enabled         bool
	S3Region          string
	S3Endpoint        string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
	S3UsePathStyle    bool

	NATSEnabled       bool
	NATSURL           string
	NATSSubjectPrefix string
	NATSMaxReconnects int
	NATSReconnectWait time.Duration

	ContractExpiryEnabled  bool
	ContractExpiryInterval time.Duration
	ContractExpiryTimeout  time.Duration
	DefaultCountryID       string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	BetterStackEnabled  bool
	BetterStackEndpoint string
	BetterStackToken    string
	BetterStackTimeout  time.Duration
	BetterStackMinLevel logging.Level

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	PprofEnabled bool
	PprofAddr    string
}

// Load reads the environment and validates the result. Every parse and
// validation problem is reported together.
func Load() (Config, error) {
	var env envReader

	appEnv := strings.ToLower(env.str("APP_ENV", EnvDev))
	swaggerDefault := appEnv != EnvProd
	serviceName := env.str("APP_SERVICE_NAME", "footmate-api")

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    serviceName,
		ServiceVersion: env.str("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       env.str("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    env.duration("APP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:   env.duration("APP_WRITE_TIMEOUT", 15*time.Second),
		LogLevel:       logging.ParseLevel(env.str("APP_LOG_LEVEL", "info")),
		SwaggerEnabled: env.boolean("SWAGGER_ENABLED", swaggerDefault),

		CORSAllowedOrigins: env.list("CORS_ALLOWED_ORIGINS", "*"),

		DBURL:                   env.str("DB_URL", ""),
		DBDisablePreparedBinary: env.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", true),
		CacheEnabled:            env.boolean("CACHE_ENABLED", true),
		CacheTTL:                env.duration("CACHE_TTL", time.Minute),

		JWTSecret:         env.str("JWT_SECRET", ""),
		JWTIssuer:         env.str("JWT_ISSUER", "footmate"),
		JWTTTL:            env.duration("JWT_TTL", 24*time.Hour),
		AuthCacheTTL:      env.duration("AUTH_CACHE_TTL", 30*time.Second),
		AuthCacheMaxItems: env.integer("AUTH_CACHE_MAX_ITEMS", 10000),
		BcryptCost:        env.integer("BCRYPT_COST", 10),

		SMTPEnabled:               env.boolean("SMTP_ENABLED", false),
		SMTPHost:                  env.str("SMTP_HOST", ""),
		SMTPPort:                  env.integer("SMTP_PORT", 587),
		SMTPUsername:              env.str("SMTP_USERNAME", ""),
		SMTPPassword:              os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:                  env.str("SMTP_FROM", "no-reply@footmate.local"),
		SMTPTimeout:               env.duration("SMTP_TIMEOUT", 10*time.Second),
		SMTPCircuitEnabled:        env.boolean("SMTP_CIRCUIT_ENABLED", true),
		SMTPCircuitFailureCount:   env.integer("SMTP_CIRCUIT_FAILURE_COUNT", 5),
		SMTPCircuitOpenTimeout:    env.duration("SMTP_CIRCUIT_OPEN_TIMEOUT", 30*time.Second),
		SMTPCircuitHalfOpenMaxReq: env.integer("SMTP_CIRCUIT_HALF_OPEN_MAX_REQ", 1),
		MailPoolSize:              env.integer("MAIL_POOL_SIZE", 8),
		FrontendBaseURL:           strings.TrimRight(env.str("FRONTEND_BASE_URL", "http://localhost:3000"), "/"),

		S3Enabled:         env.boolean("S3_ENABLED", false),
		S3Region:          env.str("S3_REGION", "us-east-1"),
		S3Endpoint:        env.str("S3_ENDPOINT", ""),
		S3Bucket:          env.str("S3_BUCKET", ""),
		S3AccessKeyID:     env.str("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: env.str("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL:   env.str("S3_PUBLIC_BASE_URL", ""),
		S3UsePathStyle:    env.boolean("S3_USE_PATH_STYLE", false),

		NATSEnabled:       env.boolean("NATS_ENABLED", false),
		NATSURL:           env.str("NATS_URL", ""),
		NATSSubjectPrefix: env.str("NATS_SUBJECT_PREFIX", "footmate"),
		NATSMaxReconnects: env.integer("NATS_MAX_RECONNECTS", 10),
		NATSReconnectWait: env.duration("NATS_RECONNECT_WAIT", 2*time.Second),

		ContractExpiryEnabled:  env.boolean("CONTRACT_EXPIRY_ENABLED", true),
		ContractExpiryInterval: env.duration("CONTRACT_EXPIRY_INTERVAL", time.Hour),
		ContractExpiryTimeout:  env.duration("CONTRACT_EXPIRY_TIMEOUT", time.Minute),
		DefaultCountryID:       env.str("LOCATION_DEFAULT_COUNTRY_ID", ""),

		UptraceEnabled:     env.boolean("UPTRACE_ENABLED", false),
		UptraceDSN:         env.str("UPTRACE_DSN", uptraceDSNFromOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))),
		UptraceLogsEnabled: env.boolean("UPTRACE_LOGS_ENABLED", true),

		BetterStackEnabled:  env.boolean("BETTERSTACK_ENABLED", false),
		BetterStackEndpoint: env.str("BETTERSTACK_ENDPOINT", ""),
		BetterStackToken:    env.str("BETTERSTACK_TOKEN", ""),
		BetterStackTimeout:  env.duration("BETTERSTACK_TIMEOUT", 3*time.Second),
		BetterStackMinLevel: logging.ParseLevel(env.str("BETTERSTACK_MIN_LEVEL", "error")),

		PyroscopeEnabled:           env.boolean("PYROSCOPE_ENABLED", false),
		PyroscopeServerAddress:     env.str("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAppName:           env.str("PYROSCOPE_APP_NAME", serviceName),
		PyroscopeAuthToken:         env.str("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     env.str("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: env.str("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        env.duration("PYROSCOPE_UPLOAD_RATE", 15*time.Second),

		PprofEnabled: env.boolean("PPROF_ENABLED", false),
		PprofAddr:    env.str("PPROF_ADDR", ":6060"),
	}

	if cfg.JWTSecret == "" && appEnv != EnvProd {
		cfg.JWTSecret = devJWTSecret
	}
	if err := errors.Join(env.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	switch c.AppEnv {
	case EnvDev, EnvStage, EnvProd:
	default:
		check(false, "invalid APP_ENV %q: valid values are %s, %s, %s", c.AppEnv, EnvDev, EnvStage, EnvProd)
	}
	check(c.JWTSecret != "", "JWT_SECRET is required when APP_ENV=prod")
	check(c.JWTTTL > 0, "JWT_TTL must be > 0")
	check(c.BcryptCost >= 4 && c.BcryptCost <= 31, "BCRYPT_COST must be between 4 and 31")
	check(c.CacheTTL > 0, "CACHE_TTL must be > 0")
	check(len(c.CORSAllowedOrigins) > 0, "CORS_ALLOWED_ORIGINS cannot be empty")

	check(!c.SMTPEnabled || c.SMTPHost != "", "SMTP_HOST is required when SMTP_ENABLED=true")
	check(c.SMTPTimeout > 0, "SMTP_TIMEOUT must be > 0")
	check(c.SMTPCircuitFailureCount >= 1, "SMTP_CIRCUIT_FAILURE_COUNT must be >= 1")
	check(c.SMTPCircuitOpenTimeout > 0, "SMTP_CIRCUIT_OPEN_TIMEOUT must be > 0")
	check(c.SMTPCircuitHalfOpenMaxReq >= 1, "SMTP_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	check(c.MailPoolSize >= 1, "MAIL_POOL_SIZE must be >= 1")

	check(!c.S3Enabled || c.S3Bucket != "", "S3_BUCKET is required when S3_ENABLED=true")
	check(!c.NATSEnabled || c.NATSURL != "", "NATS_URL is required when NATS_ENABLED=true")
	check(c.ContractExpiryInterval > 0, "CONTRACT_EXPIRY_INTERVAL must be > 0")
	check(c.ContractExpiryTimeout > 0, "CONTRACT_EXPIRY_TIMEOUT must be > 0")

	check(!c.UptraceEnabled || c.UptraceDSN != "", "UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	check(!c.BetterStackEnabled || c.BetterStackEndpoint != "", "BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	check(c.BetterStackTimeout > 0, "BETTERSTACK_TIMEOUT must be > 0")
	check(!c.PyroscopeEnabled || c.PyroscopeServerAddress != "", "PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	check(c.PyroscopeUploadRate > 0, "PYROSCOPE_UPLOAD_RATE must be > 0")
	check(!c.PprofEnabled || c.PprofAddr != "", "PPROF_ADDR is required when PPROF_ENABLED=true")
	return errors.Join(errs...)
}

// envReader parses variables and collects parse errors instead of stopping
// at the first one.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) boolean(key string, fallback bool) bool {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

func (r *envReader) integer(key string, fallback int) int {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

// list splits a comma separated value and drops blank items.
func (r *envReader) list(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(r.str(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// uptraceDSNFromOTLPHeaders finds uptrace-dsn=... in an OTLP header list.
func uptraceDSNFromOTLPHeaders(raw string) string {
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), `"'`)
		}
	}
	return ""
}

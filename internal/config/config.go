package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/findrival/internal/platform/logging"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string
	SwaggerEnabled     bool

	StoreBackend  string
	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration
	TeamListLimit int

	FirebaseEnabled        bool
	FirebaseCredentialsB64 string
	FirebaseProjectID      string
	AuthCacheTTL           time.Duration
	AuthEnforced           bool

	PushWorkers               int
	PushQueueSize             int
	PushTimeout               time.Duration
	PushCircuitEnabled        bool
	PushCircuitFailureCount   int
	PushCircuitOpenTimeout    time.Duration
	PushCircuitHalfOpenMaxReq int

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads the environment, seeded from a .env file when one exists.
// Variables already set in the process take precedence over the file.
func Load() (Config, error) {
	if err := loadDotEnv(getEnv("APP_ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	storeBackend := strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", StoreMongo)))
	if storeBackend != StoreMongo && storeBackend != StoreMemory {
		return Config{}, fmt.Errorf("invalid STORE_BACKEND %q: valid values are %s, %s", storeBackend, StoreMongo, StoreMemory)
	}
	mongoURI := strings.TrimSpace(getEnv("MONGO_URI", "mongodb://localhost:27017"))
	mongoDatabase := strings.TrimSpace(getEnv("MONGO_DATABASE", ""))
	if mongoDatabase == "" {
		mongoDatabase = DatabaseFromMongoURI(mongoURI)
	}
	if mongoDatabase == "" {
		mongoDatabase = "findrival"
	}
	mongoTimeout, err := getEnvAsDuration("MONGO_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	if storeBackend == StoreMongo && mongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required when STORE_BACKEND=%s", StoreMongo)
	}
	teamListLimit, err := getEnvAsInt("TEAM_LIST_LIMIT", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse TEAM_LIST_LIMIT: %w", err)
	}
	if teamListLimit < 1 {
		return Config{}, fmt.Errorf("TEAM_LIST_LIMIT must be >= 1")
	}

	firebaseEnabled, err := strconv.ParseBool(getEnv("FIREBASE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREBASE_ENABLED: %w", err)
	}
	authCacheTTL, err := getEnvAsDuration("AUTH_CACHE_TTL", "1m")
	if err != nil {
		return Config{}, err
	}
	authEnforced, err := strconv.ParseBool(getEnv("AUTH_ENFORCED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_ENFORCED: %w", err)
	}
	if authEnforced && !firebaseEnabled {
		return Config{}, fmt.Errorf("FIREBASE_ENABLED=true is required when AUTH_ENFORCED=true")
	}

	pushWorkers, err := getEnvAsInt("PUSH_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_WORKERS: %w", err)
	}
	if pushWorkers < 1 {
		return Config{}, fmt.Errorf("PUSH_WORKERS must be >= 1")
	}
	pushQueueSize, err := getEnvAsInt("PUSH_QUEUE_SIZE", 1024)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_QUEUE_SIZE: %w", err)
	}
	if pushQueueSize < 0 {
		return Config{}, fmt.Errorf("PUSH_QUEUE_SIZE must be >= 0")
	}
	pushTimeout, err := getEnvAsDuration("PUSH_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	pushCircuitEnabled, err := strconv.ParseBool(getEnv("PUSH_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_ENABLED: %w", err)
	}
	pushCircuitFailureCount, err := getEnvAsInt("PUSH_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if pushCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("PUSH_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	pushCircuitOpenTimeout, err := getEnvAsDuration("PUSH_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	pushCircuitHalfOpenMaxReq, err := getEnvAsInt("PUSH_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if pushCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("PUSH_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "FindRival API"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "1.0.0"),
		HTTPAddr:                   resolveHTTPAddr(),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		ShutdownTimeout:            shutdownTimeout,
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:             swaggerEnabled,
		StoreBackend:               storeBackend,
		MongoURI:                   mongoURI,
		MongoDatabase:              mongoDatabase,
		MongoTimeout:               mongoTimeout,
		TeamListLimit:              teamListLimit,
		FirebaseEnabled:            firebaseEnabled,
		FirebaseCredentialsB64:     strings.TrimSpace(getEnv("FIREBASE_CREDENTIALS_B64", "")),
		FirebaseProjectID:          strings.TrimSpace(getEnv("FIREBASE_PROJECT_ID", "")),
		AuthCacheTTL:               authCacheTTL,
		AuthEnforced:               authEnforced,
		PushWorkers:                pushWorkers,
		PushQueueSize:              pushQueueSize,
		PushTimeout:                pushTimeout,
		PushCircuitEnabled:         pushCircuitEnabled,
		PushCircuitFailureCount:    pushCircuitFailureCount,
		PushCircuitOpenTimeout:     pushCircuitOpenTimeout,
		PushCircuitHalfOpenMaxReq:  pushCircuitHalfOpenMaxReq,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveHTTPAddr prefers APP_HTTP_ADDR, then the platform PORT variable.
func resolveHTTPAddr() string {
	if addr := strings.TrimSpace(os.Getenv("APP_HTTP_ADDR")); addr != "" {
		return addr
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		return ":" + port
	}
	return ":8000"
}

// DatabaseFromMongoURI returns the default database named in the URI path.
func DatabaseFromMongoURI(raw string) string {
	raw = strings.TrimSpace(raw)
	_, rest, found := strings.Cut(raw, "://")
	if !found {
		return ""
	}
	_, path, found := strings.Cut(rest, "/")
	if !found {
		return ""
	}
	name, _, _ := strings.Cut(path, "?")
	return strings.TrimSpace(name)
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

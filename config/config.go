package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment   string
	Name          string
	Version       string
	Log           LogConfig
	HTTP          HTTPConfig
	Postgres      PostgresConfig
	JWT           JWTConfig
	S3            S3Config
	Directory     DirectoryConfig
	Notifications NotificationsConfig
	Kafka         KafkaConfig
	Breaker       BreakerConfig
	Tracing       TracingConfig
	RateLimit     RateLimitConfig
	Clinic        ClinicConfig
}

type LogConfig struct {
	Level string
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
	MigrationsDir      string
}

type JWTConfig struct {
	SigningKey string
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

// DirectoryConfig points at the users/pets/vets/availability service.
type DirectoryConfig struct {
	BaseURL string
	Timeout time.Duration
}

type NotificationsConfig struct {
	Transport  string // "http" or "kafka"
	BaseURL    string
	Timeout    time.Duration
	JobTimeout time.Duration
	QueueSize  int
	Workers    int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type BreakerConfig struct {
	MaxFailures uint32
	OpenTimeout time.Duration
	Interval    time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRate  float64
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// ClinicConfig holds the letterhead printed on clinical record reports.
type ClinicConfig struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

func NewConfig() (*Config, error) {
	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_READ_TIMEOUT: %w", err)
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_WRITE_TIMEOUT: %w", err)
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("POSTGRES_MAX_LIFETIME: %w", err)
	}

	directoryTimeout, err := time.ParseDuration(getEnv("DIRECTORY_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("DIRECTORY_TIMEOUT: %w", err)
	}

	notificationsTimeout, err := time.ParseDuration(getEnv("NOTIFICATIONS_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFICATIONS_TIMEOUT: %w", err)
	}

	notificationsJobTimeout, err := time.ParseDuration(getEnv("NOTIFICATIONS_JOB_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFICATIONS_JOB_TIMEOUT: %w", err)
	}

	breakerOpenTimeout, err := time.ParseDuration(getEnv("BREAKER_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("BREAKER_OPEN_TIMEOUT: %w", err)
	}

	breakerInterval, err := time.ParseDuration(getEnv("BREAKER_INTERVAL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("BREAKER_INTERVAL: %w", err)
	}

	transport := strings.ToLower(getEnv("NOTIFICATIONS_TRANSPORT", "http"))
	if transport != "http" && transport != "kafka" {
		return nil, fmt.Errorf("NOTIFICATIONS_TRANSPORT: unsupported value %q", transport)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Name:        getEnv("APP_NAME", "vetclinic"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
		HTTP: HTTPConfig{
			Port:         getEnv("HTTP_PORT", "8081"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
			MaxHeaderMB:  getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "citas"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
			MigrationsDir:      getEnv("POSTGRES_MIGRATIONS_DIR", "./migrations"),
		},
		JWT: JWTConfig{
			SigningKey: getEnv("JWT_SIGNING_KEY", "your_secret_key"),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "clinical-records"),
			UseSSL:          getEnvAsBool("S3_USE_SSL", true),
		},
		Directory: DirectoryConfig{
			BaseURL: getEnv("DIRECTORY_URL", "http://localhost:8080/api"),
			Timeout: directoryTimeout,
		},
		Notifications: NotificationsConfig{
			Transport:  transport,
			BaseURL:    getEnv("NOTIFICATIONS_URL", "http://localhost:8000"),
			Timeout:    notificationsTimeout,
			JobTimeout: notificationsJobTimeout,
			QueueSize:  getEnvAsInt("NOTIFICATIONS_QUEUE_SIZE", 1000),
			Workers:    getEnvAsInt("NOTIFICATIONS_WORKERS", 2),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_NOTIFICATIONS_TOPIC", "notifications"),
		},
		Breaker: BreakerConfig{
			MaxFailures: uint32(getEnvAsInt("BREAKER_MAX_FAILURES", 5)),
			OpenTimeout: breakerOpenTimeout,
			Interval:    breakerInterval,
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("TRACING_ENABLED", false),
			Endpoint:    getEnv("TRACING_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "vetclinic-citas"),
			SampleRate:  getEnvAsFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 20),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Clinic: ClinicConfig{
			Name:    getEnv("CLINIC_NAME", "Clínica Veterinaria Vida Animal"),
			Address: getEnv("CLINIC_ADDRESS", "Calle 123 #45-67, Ciudad Mascota"),
			Phone:   getEnv("CLINIC_PHONE", "(123) 456 7890"),
			Email:   getEnv("CLINIC_EMAIL", "contacto@vidaanimal.com"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}

	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

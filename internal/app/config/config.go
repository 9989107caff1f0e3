package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env           string              `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer    HTTPServerConfig    `yaml:"http_server"`
	MongoDB       MongoDBConfig       `yaml:"mongo"`
	Redis         RedisConfig         `yaml:"redis"`
	NATS          NATSConfig          `yaml:"nats"`
	JWT           JWTConfig           `yaml:"jwt"`
	SMTP          SMTPConfig          `yaml:"smtp"`
	S3            S3Config            `yaml:"s3"`
	Logger        LoggerConfig        `yaml:"logger"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Tracing       TracingConfig       `yaml:"tracing"`
	CategoryCache CategoryCacheConfig `yaml:"category_cache"`
}

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"10s"`
	TimeoutGraceful time.Duration `yaml:"timeout_graceful_shutdown" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type MongoDBConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	User     string `yaml:"user" env:"MONGO_USER"`
	Password string `yaml:"password" env:"MONGO_PASSWORD"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"shop_db"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type NATSConfig struct {
	URL string `yaml:"url" env:"NATS_URL" env-default:"nats://localhost:4222"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"168h"`
}

// SMTPConfig is optional; an empty Host disables the password reset notice.
type SMTPConfig struct {
	Host        string        `yaml:"host" env:"SMTP_HOST"`
	Port        int           `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username    string        `yaml:"username" env:"SMTP_USERNAME"`
	Password    string        `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail string        `yaml:"sender_email" env:"SMTP_SENDER_EMAIL"`
	Encryption  string        `yaml:"encryption" env:"SMTP_ENCRYPTION" env-default:"tls"`
	ServerName  string        `yaml:"server_name" env:"SMTP_SERVER_NAME"`
	SendTimeout time.Duration `yaml:"send_timeout" env:"SMTP_SEND_TIMEOUT" env-default:"10s"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"S3_BUCKET" env-default:"product-photos"`
	UseSSL    bool   `yaml:"use_ssl" env:"S3_USE_SSL" env-default:"false"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type MetricsConfig struct {
	Port string `yaml:"port" env:"PROMETHEUS_METRICS_PORT"`
}

type TracingConfig struct {
	ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"shop-service"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type CategoryCacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"CATEGORY_CACHE_TTL" env-default:"10m"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
		log.Printf("config file %s not found, reading environment only", path)
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH_SHOP_SERVICE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}

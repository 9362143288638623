package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers.
const (
	StorageDriverMinio = "minio"
	StorageDriverS3    = "s3"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel  int      `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat string   `env:"LOG_FORMAT" envDefault:"text"`
	SecretKey string   `env:"SECRET_KEY,unset"`
	HTTP      HTTP     `envPrefix:"HTTP_"`
	GRPC      GRPC     `envPrefix:"GRPC_"`
	Database  Database `envPrefix:"DB_"`
	Storage   Storage
	Session   Session `envPrefix:"SESSION_"`
	Password  Password
	Redis     Redis `envPrefix:"REDIS_"`
}

// HTTP contains web server parameters.
type HTTP struct {
	Port               string        `env:"PORT" envDefault:"5000"`
	EnableHTTPS        bool          `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string        `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string        `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	MaxUploadBytes     int64         `env:"MAX_UPLOAD_BYTES" envDefault:"0"`
	AllowedOrigins     []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// GRPC contains parameters of the operational gRPC endpoint.
type GRPC struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Port    string `env:"PORT" envDefault:"50051"`
}

// Database contains database connection parameters.
type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Name     string `env:"NAME" envDefault:"filedrop"`
	User     string `env:"USER" envDefault:"filedrop"`
	Password string `env:"PASSWORD" envDefault:"filedrop"`
	Port     string `env:"PORT" envDefault:"5432"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
}

// DSN builds a postgres connection URL from the individual parameters.
func (d Database) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Storage contains object storage parameters. Variable names follow the
// AWS conventions so the same environment works for both drivers.
type Storage struct {
	Driver    string `env:"STORAGE_DRIVER" envDefault:"minio"`
	AccessKey string `env:"AWS_ACCESS_KEY_ID" envDefault:"filedrop-access-key"`
	SecretKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"filedrop-secret-key"`
	Region    string `env:"AWS_REGION" envDefault:"us-east-1"`
	Bucket    string `env:"S3_BUCKET" envDefault:"filedrop-uploads"`
	// Endpoint is required by minio and optional for s3.
	Endpoint string `env:"S3_ENDPOINT" envDefault:"localhost:9000"`
	UseSSL   bool   `env:"S3_USE_SSL" envDefault:"false"`
}

// Session contains session cookie parameters.
type Session struct {
	TTL          time.Duration `env:"TTL" envDefault:"12h"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"filedrop_session"`
	SecureCookie bool          `env:"SECURE_COOKIE" envDefault:"false"`
}

// Password contains password hashing parameters.
type Password struct {
	Cost int `env:"PASSWORD_COST" envDefault:"10"`
}

// Redis contains parameters of the session revocation store. An empty
// address keeps revocations in process memory.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	if c.Storage.Driver != StorageDriverMinio && c.Storage.Driver != StorageDriverS3 {
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}
	if c.Storage.Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET is required"))
	}
	if c.HTTP.MaxUploadBytes < 0 {
		errs = append(errs, errors.New("HTTP_MAX_UPLOAD_BYTES must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

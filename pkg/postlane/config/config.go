// Package config builds a configured postlane.Service from environment
// variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/postlane/postlane/pkg/postlane"
	"github.com/postlane/postlane/pkg/postlane/notify/mail"
	repomemory "github.com/postlane/postlane/pkg/postlane/repo/memory"
	repopg "github.com/postlane/postlane/pkg/postlane/repo/postgres"
	memorystorage "github.com/postlane/postlane/pkg/postlane/storage/memory"
	s3storage "github.com/postlane/postlane/pkg/postlane/storage/s3"
)

// ServerConfig represents server configuration for the postlane service
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// Database configuration
	DatabaseType string `env:"DATABASE_TYPE" env-default:"memory"` // "memory", "postgres"
	DatabaseURL  string `env:"DATABASE_URL"`

	// Storage configuration
	StorageType    string `env:"STORAGE_TYPE" env-default:"memory"` // "memory", "s3"
	S3Region       string `env:"S3_REGION" env-default:"us-east-1"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	S3CreateBucket bool   `env:"S3_CREATE_BUCKET" env-default:"false"`

	// Notification configuration
	MailEnabled   bool   `env:"MAIL_ENABLED" env-default:"false"`
	MailAPIKey    string `env:"MAIL_API_KEY"`
	MailBaseURL   string `env:"MAIL_BASE_URL"`
	MailFromEmail string `env:"MAIL_FROM_EMAIL"`
	MailFromName  string `env:"MAIL_FROM_NAME" env-default:"Postlane"`
}

// LoadServerConfig reads configuration from environment variables
func LoadServerConfig() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch c.DatabaseType {
	case "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
	switch c.StorageType {
	case "memory":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("s3 bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
	if c.MailEnabled {
		if c.MailAPIKey == "" {
			return errors.New("mail api key is required when mail is enabled")
		}
		if c.MailFromEmail == "" {
			return errors.New("mail from address is required when mail is enabled")
		}
	}
	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (postlane.Service, error) {
	store, err := c.buildContentStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build content store: %w", err)
	}

	blobs, err := c.buildBlobStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build blob store: %w", err)
	}

	notifier, err := c.buildNotifier()
	if err != nil {
		return nil, fmt.Errorf("failed to build notifier: %w", err)
	}

	return postlane.New(
		postlane.WithContentStore(store),
		postlane.WithBlobStore(blobs),
		postlane.WithNotifier(notifier),
	)
}

func (c *ServerConfig) buildContentStore() (postlane.ContentStore, error) {
	switch c.DatabaseType {
	case "memory":
		return repomemory.New(), nil
	case "postgres":
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

func (c *ServerConfig) buildBlobStore() (postlane.BlobStore, error) {
	switch c.StorageType {
	case "memory":
		return memorystorage.New(), nil
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3Region,
			Bucket:                 c.S3Bucket,
			AccessKeyID:            c.S3AccessKey,
			SecretAccessKey:        c.S3SecretKey,
			Endpoint:               c.S3Endpoint,
			UsePathStyle:           c.S3UsePathStyle,
			CreateBucketIfNotExist: c.S3CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
}

func (c *ServerConfig) buildNotifier() (postlane.NotificationSink, error) {
	if !c.MailEnabled {
		return postlane.NewNoopNotifier(), nil
	}
	return mail.New(mail.Config{
		APIKey:    c.MailAPIKey,
		BaseURL:   c.MailBaseURL,
		FromEmail: c.MailFromEmail,
		FromName:  c.MailFromName,
	})
}

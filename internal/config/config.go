// Package config loads settings from .env, an optional YAML file and the
// environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/upload"
)

const DefaultFile = "configs/config.yaml"

type Config struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`

	// Uploads
	UploadDir       string `yaml:"upload_dir"`
	UploadURLPrefix string `yaml:"upload_url_prefix"`
	UploadMaxBytes  int64  `yaml:"upload_max_bytes"`
	UploadSniff     bool   `yaml:"upload_sniff"`

	// Seeding
	SeedJobs bool   `yaml:"seed_jobs"`
	SeedFile string `yaml:"seed_file"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	NATSURL     string `yaml:"nats_url"`
	NATSSubject string `yaml:"nats_subject"`

	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Port:            "8080",
		UploadDir:       "uploads",
		UploadURLPrefix: "/uploads",
		UploadMaxBytes:  upload.DefaultMaxSize,
		UploadSniff:     true,
		SeedJobs:        true,
		GeminiModel:     "gemini-2.5-flash",
		NATSSubject:     events.DefaultSubject,
	}
}

// Load builds the configuration. An empty path means $CONFIG_FILE, then
// DefaultFile. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		path = DefaultFile
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Config file %s not found, using defaults and environment", path)
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("DATABASE_URL", &c.DatabaseURL)
	str("UPLOAD_DIR", &c.UploadDir)
	str("UPLOAD_URL_PREFIX", &c.UploadURLPrefix)
	str("SEED_FILE", &c.SeedFile)
	str("GEMINI_API_KEY", &c.GeminiAPIKey)
	str("GEMINI_MODEL", &c.GeminiModel)
	str("NATS_URL", &c.NATSURL)
	str("NATS_SUBJECT", &c.NATSSubject)

	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_MAX_BYTES: %w", err)
		}
		c.UploadMaxBytes = n
	}
	for key, dst := range map[string]*bool{"UPLOAD_SNIFF": &c.UploadSniff, "SEED_JOBS": &c.SeedJobs} {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = b
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.UploadDir == "" {
		return errors.New("upload_dir is required")
	}
	if !strings.HasPrefix(c.UploadURLPrefix, "/") {
		return fmt.Errorf("upload_url_prefix %q must start with /", c.UploadURLPrefix)
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("upload_max_bytes must be positive, got %d", c.UploadMaxBytes)
	}
	if c.NATSURL != "" && c.NATSSubject == "" {
		return errors.New("nats_subject is required when nats_url is set")
	}
	return nil
}

// UploadPolicy is the resume policy these settings describe.
func (c *Config) UploadPolicy() upload.Policy {
	p := upload.DefaultPolicy()
	p.MaxSize = c.UploadMaxBytes
	p.SniffContent = c.UploadSniff
	return p
}

package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	ProducerRender = "render"
	ProducerOpenAI = "openai"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBName      string `env:"DB_NAME"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	ImageProducer    string        `env:"IMAGE_PRODUCER" envDefault:"render"`
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIImageModel string        `env:"OPENAI_IMAGE_MODEL" envDefault:"gpt-image-1"`
	OpenAIOrg        string        `env:"OPENAI_ORG"`
	OpenAITimeout    time.Duration `env:"OPENAI_TIMEOUT" envDefault:"120s"`
	PosterFontPath   string        `env:"POSTER_FONT_PATH" envDefault:"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"`

	CORSOrigins     []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	GeoIPDBPath     string   `env:"GEOIP_DB_PATH"`
	RateLimitPerMin int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`

	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP replace the peer
	// address. Only enable behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"150s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"20s"`
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.ImageProducer = strings.ToLower(strings.TrimSpace(cfg.ImageProducer))
	cfg.CORSOrigins = normalizeOrigins(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			result = multierror.Append(result, errors.New("DATABASE_URL is required"))
		}
	case StoreDriverMemory:
	default:
		result = multierror.Append(result, fmt.Errorf("STORE_DRIVER %q is not supported", c.StoreDriver))
	}

	switch c.ImageProducer {
	case ProducerRender:
	case ProducerOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			result = multierror.Append(result, errors.New("OPENAI_API_KEY is required for the openai producer"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("IMAGE_PRODUCER %q is not supported", c.ImageProducer))
	}

	if c.RateLimitPerMin < 0 {
		result = multierror.Append(result, errors.New("RATE_LIMIT_PER_MINUTE must not be negative"))
	}

	return result.ErrorOrNil()
}

// AllowsAnyOrigin reports whether CORS is open to every origin.
func (c *Config) AllowsAnyOrigin() bool {
	return len(c.CORSOrigins) == 0 || lo.Contains(c.CORSOrigins, "*")
}

func normalizeOrigins(origins []string) []string {
	trimmed := lo.Map(origins, func(o string, _ int) string {
		return strings.TrimRight(strings.TrimSpace(o), "/")
	})
	return lo.Uniq(lo.Compact(trimmed))
}

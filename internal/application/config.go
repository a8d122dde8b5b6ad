package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is the shared validator instance for configuration structs.
var validate = validator.New()

// AppConfig is the top-level configuration for the rating hosts. Values
// omitted from the YAML file keep their defaults; secrets are referenced
// by environment variable name rather than stored in the file.
type AppConfig struct {
	// Data configures where the example corpus comes from.
	Data DataConfig `yaml:"data"`
	// Catalog optionally points at a dimension catalog file. When empty,
	// the built-in translation quality catalog is used.
	Catalog CatalogConfig `yaml:"catalog"`
	// Sink selects and configures the ratings sink submissions go to.
	Sink SinkConfig `yaml:"sink"`
	// Collector configures the HTTP ingest service.
	Collector CollectorConfig `yaml:"collector"`
}

// DataConfig configures the example source for a rating run.
type DataConfig struct {
	// Path is the JSON file holding the example corpus.
	Path string `yaml:"path"`
	// Fallback decides what happens when the file cannot be read:
	// "demo" fabricates a placeholder corpus, "fail" aborts the run.
	Fallback string `yaml:"fallback" validate:"omitempty,oneof=demo fail"`
	// DemoExamples is the size of the fabricated corpus when the demo
	// fallback engages.
	DemoExamples int `yaml:"demo_examples" validate:"omitempty,min=1,max=1000"`
}

// CatalogConfig points at an optional dimension catalog file.
type CatalogConfig struct {
	// Path is a YAML file declaring the quality dimensions. Empty means
	// the built-in catalog.
	Path string `yaml:"path"`
}

// SinkConfig selects the ratings sink and its wrapping policies.
// Timeout, retry, and rate limiting apply to whichever sink is chosen;
// they are sink-side policy, not submission logic.
type SinkConfig struct {
	// Type selects the sink adapter.
	Type string `yaml:"type" validate:"required,oneof=file postgres s3 http fanout"`
	// File configures the local JSON file sink.
	File FileSinkConfig `yaml:"file"`
	// Postgres configures the Postgres sink.
	Postgres PostgresSinkConfig `yaml:"postgres"`
	// S3 configures the object storage sink.
	S3 S3SinkConfig `yaml:"s3"`
	// HTTP configures the collector client sink.
	HTTP HTTPSinkConfig `yaml:"http"`
	// Fanout configures the multi-sink fanout.
	Fanout FanoutSinkConfig `yaml:"fanout"`
	// TimeoutSeconds bounds each store attempt. Zero disables the
	// per-store deadline.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"omitempty,min=1,max=600"`
	// Retry configures transient-failure retries around the sink.
	Retry RetryConfig `yaml:"retry"`
	// Rate configures a token-bucket limit on store calls. Zero per
	// second disables limiting.
	Rate RateConfig `yaml:"rate"`
}

// FileSinkConfig configures the local file sink.
type FileSinkConfig struct {
	// Dir is the directory submissions are written into, one JSON file
	// per submission key.
	Dir string `yaml:"dir"`
}

// PostgresSinkConfig configures the Postgres sink.
type PostgresSinkConfig struct {
	// DSNEnv names the environment variable holding the connection
	// string.
	DSNEnv string `yaml:"dsn_env"`
}

// S3SinkConfig configures the object storage sink. Credentials and
// endpoint come from the named environment variables so MinIO-style
// deployments work alongside AWS.
type S3SinkConfig struct {
	// Region is the bucket region.
	Region string `yaml:"region"`
	// Prefix is prepended to every object key.
	Prefix string `yaml:"prefix"`
	// BucketEnv names the environment variable holding the bucket name.
	BucketEnv string `yaml:"bucket_env"`
	// EndpointEnv names the environment variable holding a custom
	// endpoint URL. Empty uses the default AWS endpoint.
	EndpointEnv string `yaml:"endpoint_env"`
	// AccessKeyEnv names the environment variable holding the access key.
	AccessKeyEnv string `yaml:"access_key_env"`
	// SecretKeyEnv names the environment variable holding the secret key.
	SecretKeyEnv string `yaml:"secret_key_env"`
}

// HTTPSinkConfig configures the collector client sink.
type HTTPSinkConfig struct {
	// URL is the collector's submissions endpoint.
	URL string `yaml:"url" validate:"omitempty,url"`
	// TokenEnv names the environment variable holding the bearer token.
	TokenEnv string `yaml:"token_env"`
}

// FanoutSinkConfig configures concurrent stores to several sinks.
type FanoutSinkConfig struct {
	// Types lists the sinks to fan out to.
	Types []string `yaml:"types" validate:"omitempty,min=1,dive,oneof=file postgres s3 http"`
}

// RetryConfig specifies the sink-side recovery strategy for transient
// store failures.
type RetryConfig struct {
	// MaxAttempts is the number of retries after the initial attempt,
	// where 0 disables retries entirely.
	MaxAttempts int `yaml:"max_attempts" validate:"min=0,max=10"`
	// InitialWait is the base delay in milliseconds before the first
	// retry, the foundation for backoff calculations.
	InitialWait int `yaml:"initial_wait_ms" validate:"omitempty,min=0,max=60000"`
	// MaxWait caps the delay in milliseconds between retries.
	MaxWait int `yaml:"max_wait_ms" validate:"omitempty,min=0,max=300000"`
}

// RateConfig specifies a token-bucket limit on store calls.
type RateConfig struct {
	// PerSecond is the sustained store rate. Zero disables limiting.
	PerSecond float64 `yaml:"per_second" validate:"omitempty,min=0"`
	// Burst is the bucket size when limiting is on.
	Burst int `yaml:"burst" validate:"omitempty,min=1"`
}

// CollectorConfig configures the HTTP ingest service.
type CollectorConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
	// TokenEnv names the environment variable holding the API bearer
	// token.
	TokenEnv string `yaml:"token_env"`
	// DSNEnv names the environment variable holding the Postgres
	// connection string.
	DSNEnv string `yaml:"dsn_env"`
}

// DefaultAppConfig returns the configuration used when keys are omitted:
// a local JSON corpus with a demo fallback, the built-in catalog, and
// the file sink with conservative retry policy.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			Path:         "data.json",
			Fallback:     "demo",
			DemoExamples: 5,
		},
		Sink: SinkConfig{
			Type:     "file",
			File:     FileSinkConfig{Dir: "output"},
			Postgres: PostgresSinkConfig{DSNEnv: "DATABASE_URL"},
			S3: S3SinkConfig{
				Region:       "us-east-1",
				Prefix:       "submissions",
				BucketEnv:    "RATINGS_S3_BUCKET",
				EndpointEnv:  "RATINGS_S3_ENDPOINT",
				AccessKeyEnv: "RATINGS_S3_ACCESS_KEY",
				SecretKeyEnv: "RATINGS_S3_SECRET_KEY",
			},
			HTTP:           HTTPSinkConfig{TokenEnv: "COLLECTOR_API_TOKEN"},
			TimeoutSeconds: 10,
			Retry: RetryConfig{
				MaxAttempts: 3,
				InitialWait: 1000,
				MaxWait:     30000,
			},
			Rate: RateConfig{Burst: 1},
		},
		Collector: CollectorConfig{
			Addr:     ":8000",
			TokenEnv: "COLLECTOR_API_TOKEN",
			DSNEnv:   "DATABASE_URL",
		},
	}
}

// LoadAppConfig reads, parses, and validates the configuration file at
// path, applying defaults for omitted keys.
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return parseAppConfig(data)
}

// parseAppConfig unmarshals YAML over the defaults and validates the
// result.
func parseAppConfig(data []byte) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and the cross-field rules the tags
// cannot express.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Data.Path == "" && c.Data.Fallback != "demo" {
		return fmt.Errorf("config validation failed: data.path is required unless data.fallback is demo")
	}
	if c.Sink.Type == "http" && c.Sink.HTTP.URL == "" {
		return fmt.Errorf("config validation failed: sink.http.url is required for the http sink")
	}
	if c.Sink.Type == "fanout" && len(c.Sink.Fanout.Types) == 0 {
		return fmt.Errorf("config validation failed: sink.fanout.types is required for the fanout sink")
	}
	return nil
}

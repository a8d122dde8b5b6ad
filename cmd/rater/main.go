package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/soumenkm/TranslateApp/infrastructure/middleware"
	"github.com/soumenkm/TranslateApp/infrastructure/sink"
	"github.com/soumenkm/TranslateApp/infrastructure/sink/migrations"
	"github.com/soumenkm/TranslateApp/infrastructure/source"
	"github.com/soumenkm/TranslateApp/infrastructure/tui"
	"github.com/soumenkm/TranslateApp/internal/application"
	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses config.yaml when present)")
	flag.Parse()

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	catalog, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	ctx := context.Background()

	ratingsSink, cleanup, err := buildSink(ctx, cfg.Sink)
	if err != nil {
		log.Fatalf("failed to build sink: %v", err)
	}
	defer cleanup()

	rater, err := buildRater(ctx, cfg.Data, catalog, ratingsSink)
	if err != nil {
		log.Fatalf("failed to load examples: %v", err)
	}

	// The TUI owns the terminal, so logs go to a file instead.
	logFile, err := tea.LogToFile("rater.log", "rater")
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()

	for _, finding := range source.Inspect(rater.Examples()) {
		log.Printf("example %d: %s", finding.Index+1, finding.Message)
	}

	m := tui.New(rater, catalog.Dimensions())
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the config file at path, falls back to a local
// config.yaml, and otherwise uses the built-in defaults.
func loadConfig(path string) (*application.AppConfig, error) {
	if path != "" {
		return application.LoadAppConfig(path)
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return application.LoadAppConfig("config.yaml")
	}
	return application.DefaultAppConfig(), nil
}

// loadCatalog reads the dimension catalog at path, or returns the
// built-in translation quality catalog when no path is configured.
func loadCatalog(path string) (*domain.Catalog, error) {
	if path == "" {
		return domain.DefaultCatalog(), nil
	}
	catalog, warnings, err := application.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Printf("catalog: %s", w)
	}
	return catalog, nil
}

// buildRater loads the configured corpus. When the file source fails and
// the fallback policy is "demo", a placeholder corpus takes its place so
// the console still comes up.
func buildRater(ctx context.Context, cfg application.DataConfig, catalog *domain.Catalog, ratingsSink ports.RatingsSink) (*application.Rater, error) {
	if cfg.Path != "" {
		src, err := source.NewJSONFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		rater, err := application.NewRater(ctx, catalog, src, ratingsSink)
		if err == nil {
			return rater, nil
		}
		if cfg.Fallback != "demo" {
			return nil, err
		}
		log.Printf("falling back to demo corpus: %v", err)
	}

	demo, err := source.NewDemo(cfg.DemoExamples)
	if err != nil {
		return nil, err
	}
	return application.NewRater(ctx, catalog, demo, ratingsSink)
}

// buildSink assembles the configured sink and wraps it with the
// store policy chain. The returned cleanup releases any held
// connections.
func buildSink(ctx context.Context, cfg application.SinkConfig) (ports.RatingsSink, func(), error) {
	base, cleanup, err := buildBaseSink(ctx, cfg, cfg.Type)
	if err != nil {
		return nil, nil, err
	}
	return sink.Chain(base, sinkMiddleware(cfg)...), cleanup, nil
}

func buildBaseSink(ctx context.Context, cfg application.SinkConfig, sinkType string) (ports.RatingsSink, func(), error) {
	switch sinkType {
	case "file":
		s, err := sink.NewFile(cfg.File.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case "postgres":
		dsn, err := requireEnv(cfg.Postgres.DSNEnv)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.Run(dsn); err != nil {
			return nil, nil, err
		}
		pg, err := sink.NewPostgres(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil

	case "s3":
		bucket, err := requireEnv(cfg.S3.BucketEnv)
		if err != nil {
			return nil, nil, err
		}
		s, err := sink.NewS3(ctx, sink.S3Options{
			Region:    cfg.S3.Region,
			Bucket:    bucket,
			Prefix:    cfg.S3.Prefix,
			Endpoint:  os.Getenv(cfg.S3.EndpointEnv),
			AccessKey: os.Getenv(cfg.S3.AccessKeyEnv),
			SecretKey: os.Getenv(cfg.S3.SecretKeyEnv),
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case "http":
		s, err := sink.NewHTTP(cfg.HTTP.URL, os.Getenv(cfg.HTTP.TokenEnv), nil)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case "fanout":
		targets := make([]ports.RatingsSink, 0, len(cfg.Fanout.Types))
		cleanups := make([]func(), 0, len(cfg.Fanout.Types))
		for _, t := range cfg.Fanout.Types {
			target, cleanup, err := buildBaseSink(ctx, cfg, t)
			if err != nil {
				for _, c := range cleanups {
					c()
				}
				return nil, nil, err
			}
			targets = append(targets, target)
			cleanups = append(cleanups, cleanup)
		}
		fanout, err := sink.NewFanout(targets...)
		if err != nil {
			return nil, nil, err
		}
		return fanout, func() {
			for _, c := range cleanups {
				c()
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown sink type: %s", sinkType)
	}
}

// sinkMiddleware builds the store policy chain from configuration.
// Tracing and metrics wrap the whole operation; retries sit outside the
// rate limit and per-attempt timeout so every attempt is paced and
// bounded.
func sinkMiddleware(cfg application.SinkConfig) []sink.Middleware {
	ms := []sink.Middleware{
		sink.TracingMiddleware("rater"),
		sink.MetricsMiddleware(middleware.NewPrometheusMetrics()),
	}
	if cfg.Retry.MaxAttempts > 0 {
		ms = append(ms, sink.RetryMiddleware(
			cfg.Retry.MaxAttempts,
			time.Duration(cfg.Retry.InitialWait)*time.Millisecond,
			time.Duration(cfg.Retry.MaxWait)*time.Millisecond,
		))
	}
	if cfg.Rate.PerSecond > 0 {
		burst := cfg.Rate.Burst
		if burst < 1 {
			burst = 1
		}
		ms = append(ms, sink.RateLimitMiddleware(rate.Limit(cfg.Rate.PerSecond), burst))
	}
	if cfg.TimeoutSeconds > 0 {
		ms = append(ms, sink.TimeoutMiddleware(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	return ms
}

// requireEnv reads a required environment variable by name.
func requireEnv(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("environment variable name is not configured")
	}
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("environment variable %s is not set", name)
	}
	return value, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/soumenkm/TranslateApp/infrastructure/collector"
	"github.com/soumenkm/TranslateApp/infrastructure/middleware"
	"github.com/soumenkm/TranslateApp/infrastructure/sink"
	"github.com/soumenkm/TranslateApp/infrastructure/sink/migrations"
	"github.com/soumenkm/TranslateApp/internal/application"
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

	token, err := requireEnv(cfg.Collector.TokenEnv)
	if err != nil {
		log.Fatal(err)
	}
	dsn, err := requireEnv(cfg.Collector.DSNEnv)
	if err != nil {
		log.Fatal(err)
	}

	// Run embedded migrations (idempotent).
	if err := migrations.Run(dsn); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	store, err := sink.NewPostgres(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	srv, err := collector.NewServer(cfg.Collector.Addr, token, store, middleware.NewPrometheusMetrics())
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("collector listening on %s", cfg.Collector.Addr)
	if err := srv.ListenAndServe(); err != nil {
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

package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.MongoDB != "scorepipe" {
		t.Fatalf("unexpected MongoDB: %q", cfg.MongoDB)
	}
	if cfg.ElasticsearchIndex != "clubs" {
		t.Fatalf("unexpected ElasticsearchIndex: %q", cfg.ElasticsearchIndex)
	}
	if cfg.FeedTimeout != 15*time.Second {
		t.Fatalf("unexpected FeedTimeout: %s", cfg.FeedTimeout)
	}
	if cfg.BootstrapDaysBack != 7 || cfg.BootstrapDaysAhead != 7 {
		t.Fatalf("unexpected bootstrap window: back=%d ahead=%d", cfg.BootstrapDaysBack, cfg.BootstrapDaysAhead)
	}
	if cfg.IndexWorkers != 8 {
		t.Fatalf("unexpected IndexWorkers: %d", cfg.IndexWorkers)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_FeedConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FEED_BASE_URL", "https://feed.internal.example.com")
	t.Setenv("FEED_SIGN", "SW9D1eZo")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("FEED_MAX_RETRIES", "4")
	t.Setenv("FEED_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FeedBaseURL != "https://feed.internal.example.com" {
		t.Fatalf("unexpected FeedBaseURL: %q", cfg.FeedBaseURL)
	}
	if cfg.FeedSign != "SW9D1eZo" {
		t.Fatalf("unexpected FeedSign: %q", cfg.FeedSign)
	}
	if cfg.FeedTimeout != 5*time.Second {
		t.Fatalf("unexpected FeedTimeout: %s", cfg.FeedTimeout)
	}
	if cfg.FeedMaxRetries != 4 {
		t.Fatalf("unexpected FeedMaxRetries: %d", cfg.FeedMaxRetries)
	}
	if cfg.FeedCircuitFailureCount != 3 {
		t.Fatalf("unexpected FeedCircuitFailureCount: %d", cfg.FeedCircuitFailureCount)
	}
}

func TestLoad_InvalidDurationsRejected(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"FEED_TIMEOUT", "soon"},
		{"CACHE_TTL", "-10s"},
		{"MONGO_TIMEOUT", "0s"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	if got := parseLogLevel("debug"); got.String() != "debug" {
		t.Fatalf("unexpected level: %s", got)
	}
	if got := parseLogLevel("unknown"); got.String() != "info" {
		t.Fatalf("expected fallback to info, got %s", got)
	}
}

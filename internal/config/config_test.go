package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_CODES", "123456")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	t.Setenv("LEAGUE_CODES", "123456")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresLeagueCodes(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_CODES", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when LEAGUE_CODES is empty")
	}
}

func TestLoad_LeagueCodesParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LEAGUE_CODES", " 123456 , 789, 123456 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.LeagueCodes) != 2 {
		t.Fatalf("expected 2 unique league codes, got %v", cfg.LeagueCodes)
	}
	if cfg.LeagueCodes[0] != 123456 || cfg.LeagueCodes[1] != 789 {
		t.Fatalf("unexpected league codes %v", cfg.LeagueCodes)
	}
}

func TestLoad_RejectsBadLeagueCode(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	for _, raw := range []string{"abc", "-1", "0", "123,xyz"} {
		t.Setenv("LEAGUE_CODES", raw)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for LEAGUE_CODES=%q", raw)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr %q", cfg.HTTPAddr)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("unexpected DataDir %q", cfg.DataDir)
	}
	if cfg.RefreshInterval != 24*time.Hour {
		t.Fatalf("unexpected RefreshInterval %s", cfg.RefreshInterval)
	}
	if cfg.FPLRequestDelay != time.Second {
		t.Fatalf("unexpected FPLRequestDelay %s", cfg.FPLRequestDelay)
	}
	if cfg.FPLBaseURL != "https://fantasy.premierleague.com/api" {
		t.Fatalf("unexpected FPLBaseURL %q", cfg.FPLBaseURL)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_RefreshIntervalValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REFRESH_INTERVAL", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid REFRESH_INTERVAL")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel %s", cfg.LogLevel)
	}
}

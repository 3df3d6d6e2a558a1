package infra

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("IMAGE_PRODUCER", "render")
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HTTP_WRITE_TIMEOUT", "150s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ImageProducer != ProducerRender {
		t.Fatalf("ImageProducer = %q, want %q", cfg.ImageProducer, ProducerRender)
	}
	if !cfg.AllowsAnyOrigin() {
		t.Fatalf("expected wildcard CORS, got %#v", cfg.CORSOrigins)
	}
	if cfg.HTTPWriteTimeout != 150*time.Second {
		t.Fatalf("HTTPWriteTimeout = %s, want 150s", cfg.HTTPWriteTimeout)
	}
	if cfg.TrustProxyHeaders {
		t.Fatal("TrustProxyHeaders must default to false")
	}
}

func TestLoadConfigNormalizesOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ORIGINS", " https://app.example.com/ ,https://admin.example.com,, https://app.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := []string{"https://app.example.com", "https://admin.example.com"}
	if len(cfg.CORSOrigins) != len(expected) {
		t.Fatalf("CORSOrigins mismatch: got %#v want %#v", cfg.CORSOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.CORSOrigins[i] != origin {
			t.Fatalf("CORSOrigins[%d] = %q, want %q", i, cfg.CORSOrigins[i], origin)
		}
	}
	if cfg.AllowsAnyOrigin() {
		t.Fatal("expected explicit origins to disable wildcard")
	}
}

func TestLoadConfigMemoryStoreSkipsDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", " ")
	t.Setenv("STORE_DRIVER", "Memory")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StoreDriver != StoreDriverMemory {
		t.Fatalf("StoreDriver = %q, want %q", cfg.StoreDriver, StoreDriverMemory)
	}
}

func TestLoadConfigCollectsAllProblems(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", " ")
	t.Setenv("IMAGE_PRODUCER", "openai")
	t.Setenv("OPENAI_API_KEY", " ")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-1")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"DATABASE_URL", "OPENAI_API_KEY", "RATE_LIMIT_PER_MINUTE"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q does not mention %s", msg, want)
		}
	}
}

func TestLoadConfigRejectsUnknownProducer(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("IMAGE_PRODUCER", "dalle")

	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "IMAGE_PRODUCER") {
		t.Fatalf("expected producer error, got %v", err)
	}
}

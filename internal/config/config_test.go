package config

import (
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("LLMProvider = %q", cfg.LLMProvider)
	}
	if cfg.VectorIndexPath != "uploaded_doc_index.json" {
		t.Fatalf("VectorIndexPath = %q", cfg.VectorIndexPath)
	}
	if cfg.MaxChunkSize != 1000 || cfg.ChunkOverlap != 200 || cfg.MinChunkSize != 100 {
		t.Fatalf("chunk sizes = %d/%d/%d", cfg.MaxChunkSize, cfg.ChunkOverlap, cfg.MinChunkSize)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigMissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "openai")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing OPENAI_API_KEY")
	}
}

func TestLoadConfigGoogleProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "google")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.LLMProvider != "google" {
		t.Fatalf("LLMProvider = %q", cfg.LLMProvider)
	}
}

func TestLoadConfigUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLoadConfigChunkSizeValidation(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("MAX_CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "100")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when overlap reaches chunk size")
	}
}

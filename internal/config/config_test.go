package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DropEmptyColumns || !cfg.RemoveDuplicates || !cfg.FillMissing || !cfg.HandleOutliers || !cfg.NormalizeTypes {
		t.Fatalf("expected all stages enabled by default: %+v", cfg)
	}
	if !cfg.NarrativeEnabled {
		t.Fatal("expected narrative enabled by default")
	}
	if cfg.Model != "google/gemini-2.0-flash-001" {
		t.Fatalf("unexpected default model %q", cfg.Model)
	}
	if cfg.ListenAddr != "127.0.0.1:8080" {
		t.Fatalf("unexpected default listen addr %q", cfg.ListenAddr)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		DropEmptyColumns: true,
		FillMissing:      true,
		Model:            "test/model",
		MaxTokens:        256,
		ListenAddr:       "127.0.0.1:9999",
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Model != "test/model" || out.MaxTokens != 256 || out.ListenAddr != "127.0.0.1:9999" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if !out.DropEmptyColumns || out.RemoveDuplicates {
		t.Fatalf("stage toggles not preserved: %+v", out)
	}
}

func TestPipelineMapping(t *testing.T) {
	cfg := &Global{DropEmptyColumns: true, HandleOutliers: true}
	opt := cfg.Pipeline()
	if !opt.DropEmptyColumns || !opt.HandleOutliers {
		t.Fatalf("expected enabled stages mapped: %+v", opt)
	}
	if opt.RemoveDuplicates || opt.FillMissing || opt.NormalizeTypes {
		t.Fatalf("expected disabled stages mapped: %+v", opt)
	}
}

func TestResolveAPIKeyPrefersEnv(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "env-key")
	cfg := &Global{APIKey: "file-key"}
	if got := cfg.ResolveAPIKey(); got != "env-key" {
		t.Fatalf("expected env key, got %q", got)
	}
	t.Setenv("OPENROUTER_API_KEY", "")
	if got := cfg.ResolveAPIKey(); got != "file-key" {
		t.Fatalf("expected file key, got %q", got)
	}
}

func TestGeneratorNilWhenDisabledOrKeyless(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	cfg := &Global{NarrativeEnabled: false, APIKey: "k"}
	if cfg.Generator() != nil {
		t.Fatal("expected nil generator when narration disabled")
	}
	cfg = &Global{NarrativeEnabled: true}
	if cfg.Generator() != nil {
		t.Fatal("expected nil generator without api key")
	}
	cfg = &Global{NarrativeEnabled: true, APIKey: "k"}
	if cfg.Generator() == nil {
		t.Fatal("expected generator with key")
	}
}

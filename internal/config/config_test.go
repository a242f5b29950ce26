package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoad_MissingFileCreatesDefaultFromEmbedded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subgen.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// le fichier a bien été matérialisé sur disque
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// les valeurs de l'asset embarqué correspondent aux défauts
	if cfg.WindowSeconds != 30 {
		t.Errorf("WindowSeconds = %v; want 30", cfg.WindowSeconds)
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q; want en", cfg.Language)
	}
	if cfg.Provider.Model != "gemini-2.5-flash" {
		t.Errorf("Provider.Model = %q", cfg.Provider.Model)
	}
	if cfg.Provider.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("Provider.APIKeyEnv = %q", cfg.Provider.APIKeyEnv)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Errorf("ConfigVersion = %d; want %d", cfg.ConfigVersion, CurrentConfigVersion)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subgen.yaml")
	content := "language: \"fr\"\nwindow_seconds: 45\nconfig_version: 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != "fr" || cfg.WindowSeconds != 45 {
		t.Errorf("overrides not applied: lang=%q window=%v", cfg.Language, cfg.WindowSeconds)
	}
	// champs absents : valeurs par défaut conservées
	if cfg.Provider.Endpoint == "" || cfg.Provider.Model == "" {
		t.Error("defaults lost for absent provider fields")
	}
	if !cfg.ShowSummary {
		t.Error("ShowSummary default lost")
	}
}

func TestNormalizeConfig_RepairsInvalidValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.WindowSeconds = -5
	cfg.Language = "  "
	cfg.Provider.Endpoint = "https://example.test/v1/"

	cfg.normalizeConfig()

	if cfg.WindowSeconds != 30 {
		t.Errorf("WindowSeconds = %v; want 30", cfg.WindowSeconds)
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q; want en", cfg.Language)
	}
	if cfg.Provider.Endpoint != "https://example.test/v1" {
		t.Errorf("Endpoint = %q; trailing slash should be trimmed", cfg.Provider.Endpoint)
	}
}

func TestResolveFFmpegPaths(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chemins POSIX")
	}

	t.Run("empty path means system PATH", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.FFmpeg.Path = ""
		cfg.ResolveFFmpegPaths()
		if cfg.FFmpeg.ResolvedPath != "" || cfg.FFmpeg.ResolvedProbePath != "" {
			t.Errorf("resolved = %q / %q; want empty",
				cfg.FFmpeg.ResolvedPath, cfg.FFmpeg.ResolvedProbePath)
		}
	})

	t.Run("directory joins both executables", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.FFmpeg.Path = "/opt/ffmpeg/bin"
		cfg.ResolveFFmpegPaths()
		if cfg.FFmpeg.ResolvedPath != "/opt/ffmpeg/bin/ffmpeg" {
			t.Errorf("ResolvedPath = %q", cfg.FFmpeg.ResolvedPath)
		}
		if cfg.FFmpeg.ResolvedProbePath != "/opt/ffmpeg/bin/ffprobe" {
			t.Errorf("ResolvedProbePath = %q", cfg.FFmpeg.ResolvedProbePath)
		}
	})

	t.Run("full path puts ffprobe next to ffmpeg", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.FFmpeg.Path = "/opt/ffmpeg/bin/ffmpeg"
		cfg.ResolveFFmpegPaths()
		if cfg.FFmpeg.ResolvedPath != "/opt/ffmpeg/bin/ffmpeg" {
			t.Errorf("ResolvedPath = %q", cfg.FFmpeg.ResolvedPath)
		}
		if cfg.FFmpeg.ResolvedProbePath != "/opt/ffmpeg/bin/ffprobe" {
			t.Errorf("ResolvedProbePath = %q", cfg.FFmpeg.ResolvedProbePath)
		}
	})
}

func TestAPIKey_ReadFromEnvironment(t *testing.T) {
	cfg := defaultConfig()
	cfg.Provider.APIKeyEnv = "SUBGEN_TEST_API_KEY"

	t.Setenv("SUBGEN_TEST_API_KEY", "  secret  ")
	if got := cfg.APIKey(); got != "secret" {
		t.Errorf("APIKey = %q; want trimmed %q", got, "secret")
	}

	t.Setenv("SUBGEN_TEST_API_KEY", "")
	if got := cfg.APIKey(); got != "" {
		t.Errorf("APIKey = %q; want empty", got)
	}
}

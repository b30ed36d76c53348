package importer

import (
	"os"
	"path/filepath"
	"testing"

	"musicdott/internal/config"
	"musicdott/internal/logger"
)

func TestStageAssetsSanitizesFilenames(t *testing.T) {
	assetsDir := t.TempDir()
	outDir := t.TempDir()

	// Legacy exports reference files whose names carry characters that are
	// hostile in paths on other platforms.
	src := filepath.Join(assetsDir, "groove: demo.mp3")
	if err := os.WriteFile(src, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	im := New(config.Config{AssetsDir: assetsDir, OutputDir: outDir}, logger.New(false))
	staged := im.StageAssets([]Asset{{File: "groove: demo.mp3", Title: "Groove Demo"}})

	if staged != 1 {
		t.Fatalf("staged = %d, want 1", staged)
	}
	if _, err := os.Stat(filepath.Join(outDir, "assets", "groove- demo.mp3")); err != nil {
		t.Errorf("expected sanitized destination name: %v", err)
	}
}

func TestStageAssetsSkipsNonAudioAndMissing(t *testing.T) {
	assetsDir := t.TempDir()
	outDir := t.TempDir()

	im := New(config.Config{AssetsDir: assetsDir, OutputDir: outDir}, logger.New(false))
	staged := im.StageAssets([]Asset{
		{File: "chart.pdf", Title: "Not Audio"},
		{File: "missing.mp3", Title: "Gone"},
	})

	if staged != 0 {
		t.Errorf("staged = %d, want 0", staged)
	}
}

func TestStageAssetsNoAssetsDir(t *testing.T) {
	im := New(config.Config{OutputDir: t.TempDir()}, logger.New(false))
	if staged := im.StageAssets([]Asset{{File: "a.mp3"}}); staged != 0 {
		t.Errorf("staged = %d, want 0 without an assets dir", staged)
	}
}

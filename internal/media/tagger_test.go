package media

import (
	"os/exec"
	"path/filepath"
	"testing"

	"go.senan.xyz/taglib"
)

// createTestAudioFile generates a minimal MP3 using ffmpeg.
// Skips the test if ffmpeg is not available.
func createTestAudioFile(t *testing.T, dir string) string {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available, skipping tagger test")
	}

	path := filepath.Join(dir, "test.mp3")
	cmd := exec.Command("ffmpeg", "-f", "lavfi", "-i", "anullsrc=r=44100:cl=mono", "-t", "0.1", "-q:a", "9", path)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to create test audio file: %v", err)
	}
	return path
}

func TestWriteTrackTags(t *testing.T) {
	dir := t.TempDir()
	path := createTestAudioFile(t, dir)

	if err := WriteTrackTags(path, "Rudiments – Paradiddles – #3", "MusicDott", "Lesson"); err != nil {
		t.Fatalf("WriteTrackTags failed: %v", err)
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("failed to read tags: %v", err)
	}

	checks := map[string]string{
		taglib.Title:  "Rudiments – Paradiddles – #3",
		taglib.Artist: "MusicDott",
		taglib.Genre:  "Lesson",
	}
	for key, want := range checks {
		got := ""
		if vals, ok := tags[key]; ok && len(vals) > 0 {
			got = vals[0]
		}
		if got != want {
			t.Errorf("tag %s = %q, want %q", key, got, want)
		}
	}

	if title := TrackTitle(path); title != "Rudiments – Paradiddles – #3" {
		t.Errorf("TrackTitle = %q", title)
	}
}

func TestWriteTrackTagsNonexistentFile(t *testing.T) {
	err := WriteTrackTags("/nonexistent/file.mp3", "x", "", "")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestWriteTrackTagsAllEmpty(t *testing.T) {
	// Nothing to write: should be a no-op even on a missing file.
	if err := WriteTrackTags("/nonexistent/file.mp3", "", "", ""); err != nil {
		t.Errorf("expected nil error with no tags, got %v", err)
	}
}

func TestTrackTitleUnreadable(t *testing.T) {
	if title := TrackTitle("/nonexistent/file.mp3"); title != "" {
		t.Errorf("expected empty title, got %q", title)
	}
}

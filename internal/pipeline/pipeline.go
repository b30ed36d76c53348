// Package pipeline drives a full legacy import: reading the configured CSV
// exports, converting them, staging audio attachments and writing the 2.0
// JSON files.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"musicdott/internal/config"
	"musicdott/internal/importer"
	"musicdott/internal/logger"
)

// Hooks lets the caller observe progress: the CLI drives progress bars from
// these, the web server pushes job updates. All fields are optional.
type Hooks struct {
	OnFileStart func(name string, rows int)
	OnRow       func()
	OnWarning   func(msg string)
}

// Summary reports what a run produced.
type Summary struct {
	Songs    int `json:"songs"`
	Lessons  int `json:"lessons"`
	Students int `json:"students"`
	Schedule int `json:"schedule"`
	Assets   int `json:"assets"`
}

// Run executes the import described by cfg. Each configured CSV is converted
// and written independently; a failure on one input aborts the run. The
// context is checked between stages so a cancelled job stops promptly.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger, hooks Hooks) (Summary, error) {
	var summary Summary

	if err := cfg.Validate(); err != nil {
		return summary, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	im := importer.New(cfg, log)

	if cfg.SongsCSV != "" {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		fileStart(hooks, filepath.Base(cfg.SongsCSV), countRows(cfg.SongsCSV))

		songs, err := im.Songs(cfg.SongsCSV, hooks.OnRow)
		if err != nil {
			return summary, err
		}
		if err := writeJSON(im.OutputPath("songs"), songs); err != nil {
			return summary, err
		}
		summary.Songs = len(songs)
		log.Info("converted %d songs", len(songs))
	}

	if cfg.LessonsCSV != "" {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		fileStart(hooks, filepath.Base(cfg.LessonsCSV), countRows(cfg.LessonsCSV))

		lessons, assets, err := im.Lessons(cfg.LessonsCSV, hooks.OnRow)
		if err != nil {
			return summary, err
		}
		if err := writeJSON(im.OutputPath("lessons"), lessons); err != nil {
			return summary, err
		}
		summary.Lessons = len(lessons)
		log.Info("converted %d lessons", len(lessons))

		if len(assets) > 0 && cfg.AssetsDir == "" {
			warn(hooks, log, fmt.Sprintf("%d audio attachments referenced but no assets directory configured", len(assets)))
		} else {
			summary.Assets = im.StageAssets(assets)
		}
	}

	if cfg.StudentsCSV != "" {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		fileStart(hooks, filepath.Base(cfg.StudentsCSV), countRows(cfg.StudentsCSV))

		students, schedule, err := im.Students(cfg.StudentsCSV, time.Now(), hooks.OnRow)
		if err != nil {
			return summary, err
		}
		if err := writeJSON(im.OutputPath("students"), students); err != nil {
			return summary, err
		}
		if err := writeJSON(im.OutputPath("schedule"), schedule); err != nil {
			return summary, err
		}
		summary.Students = len(students)
		summary.Schedule = len(schedule)
		log.Info("converted %d students with %d schedule entries", len(students), len(schedule))
	}

	return summary, nil
}

func fileStart(hooks Hooks, name string, rows int) {
	if hooks.OnFileStart != nil {
		hooks.OnFileStart(name, rows)
	}
}

func warn(hooks Hooks, log *logger.Logger, msg string) {
	log.Warn("%s", msg)
	if hooks.OnWarning != nil {
		hooks.OnWarning(msg)
	}
}

// countRows gives a cheap row estimate for sizing progress bars. Errors are
// deliberately ignored; the converter reports them properly.
func countRows(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	if n > 0 {
		n-- // header
	}
	return n
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Package importer converts legacy 1.0 CSV exports (songs, notation
// patterns, students) into the 2.0 JSON shapes. Embedded notation and video
// references are normalized on the way through.
package importer

import (
	"fmt"
	"path/filepath"
	"time"

	"musicdott/internal/config"
	"musicdott/internal/logger"
	"musicdott/internal/media"
	"musicdott/pkg/utils"
)

// Importer runs the CSV conversions configured for a run.
type Importer struct {
	cfg config.Config
	log *logger.Logger
}

// New creates an Importer for the given configuration.
func New(cfg config.Config, log *logger.Logger) *Importer {
	return &Importer{cfg: cfg, log: log}
}

// Songs reads and converts a POS_Songs export.
func (im *Importer) Songs(path string, onRow func()) ([]Song, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	im.log.Debug("read %d song rows from %s", len(rows), path)
	return ConvertSongs(rows, onRow), nil
}

// Lessons reads and converts a POS_Notatie export. Locally referenced audio
// attachments are returned alongside the lessons.
func (im *Importer) Lessons(path string, onRow func()) ([]Lesson, []Asset, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, nil, err
	}
	im.log.Debug("read %d lesson rows from %s", len(rows), path)
	lessons, assets := ConvertLessons(rows, onRow)
	return lessons, assets, nil
}

// Students reads and converts a student export into student records and
// weekly schedule entries. now anchors the schedule recurrences.
func (im *Importer) Students(path string, now time.Time, onRow func()) ([]Student, []ScheduleEntry, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, nil, err
	}
	im.log.Debug("read %d student rows from %s", len(rows), path)
	students, schedule := ConvertStudents(rows, now, im.cfg.Timezone, onRow)
	return students, schedule, nil
}

// StageAssets copies lesson audio attachments from the assets directory into
// the output directory and tags them with their lesson title. Missing files
// are logged and skipped; the count of staged files is returned.
func (im *Importer) StageAssets(assets []Asset) int {
	if im.cfg.AssetsDir == "" || len(assets) == 0 {
		return 0
	}

	staged := 0
	for _, a := range assets {
		src := filepath.Join(im.cfg.AssetsDir, a.File)
		if !utils.IsAudioFile(src) {
			im.log.Warn("skipping non-audio attachment %s", a.File)
			continue
		}

		// Legacy filenames can carry path-hostile characters.
		dst := filepath.Join(im.cfg.OutputDir, "assets", utils.SanitizeFilename(filepath.Base(a.File)))
		if err := utils.CopyFile(src, dst); err != nil {
			im.log.Warn("could not stage %s: %v", a.File, err)
			continue
		}

		if err := media.WriteTrackTags(dst, a.Title, "", ""); err != nil {
			im.log.Debug("could not tag %s: %v", dst, err)
		}

		staged++
	}

	im.log.Info("staged %d of %d audio attachments", staged, len(assets))

	if files, err := utils.FindAudioFiles(im.cfg.AssetsDir); err == nil && len(files) > staged {
		im.log.Debug("%d audio files in %s are not referenced by any lesson", len(files)-staged, im.cfg.AssetsDir)
	}

	return staged
}

// OutputPath returns the path of a named JSON export inside the output
// directory.
func (im *Importer) OutputPath(name string) string {
	return filepath.Join(im.cfg.OutputDir, fmt.Sprintf("musicdott2_%s.json", name))
}

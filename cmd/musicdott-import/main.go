package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"musicdott/internal/config"
	"musicdott/internal/logger"
	"musicdott/internal/pipeline"
	"musicdott/internal/progress"
	"musicdott/internal/shutdown"
)

func main() {
	cfg, configPath, err := parseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	sh := shutdown.New()
	sh.Listen()
	defer sh.Wait()

	log := logger.New(cfg.Verbose)
	defer log.Close()

	if !cfg.Verbose {
		logDir := config.GetDefaultLogPath()
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to create log directory: %v\n", err)
		} else {
			logFile := filepath.Join(logDir, fmt.Sprintf("musicdott-import_%s.log", time.Now().Format("2006-01-02_15-04-05")))
			if err := log.SetFileLog(logFile); err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
			} else {
				log.Debug("Logging to file: %s", logFile)
			}
		}
	}

	if cfg.Verbose && configPath != "" {
		log.Debug("Loaded configuration from: %s", configPath)
	}

	if err := cfg.Validate(); err != nil {
		log.Error("Configuration error: %v", err)
		os.Exit(1)
	}

	if err := run(sh, cfg, log); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(sh *shutdown.Handler, cfg config.Config, log *logger.Logger) error {
	var bar *progress.Bar
	hooks := pipeline.Hooks{
		OnFileStart: func(name string, rows int) {
			if bar != nil {
				bar.Finish()
			}
			if !cfg.Verbose && rows > 0 {
				bar = progress.New(name, rows)
				log.SetProgressBar(true)
			}
		},
		OnRow: func() {
			if bar != nil {
				bar.Increment()
			}
		},
	}

	summary, err := pipeline.Run(sh.Context(), cfg, log, hooks)

	if bar != nil {
		bar.Finish()
		log.SetProgressBar(false)
	}

	if err != nil {
		return err
	}

	log.Info("=== Conversion completed successfully ===")
	log.Info("songs: %d, lessons: %d, students: %d, schedule entries: %d, staged assets: %d",
		summary.Songs, summary.Lessons, summary.Students, summary.Schedule, summary.Assets)
	log.Info("Output written to: %s", cfg.OutputDir)
	return nil
}

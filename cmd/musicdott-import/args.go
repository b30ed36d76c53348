package main

import (
	"fmt"
	"os"

	"musicdott/internal/config"
)

// parseArgs parses command-line arguments and loads configuration.
// Priority: CLI flags > config file > defaults
func parseArgs() (config.Config, string, error) {
	args := os.Args[1:]

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		}
		if arg == "--init-config" {
			return config.Config{}, "", initConfigFile()
		}
	}

	var configPath string
	var cfg config.Config
	var err error

	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--config requires a path argument")
			}
			configPath = args[i+1]
			break
		}
	}

	cfg, err = config.LoadConfigFile(configPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--verbose", "-v":
			cfg.Verbose = true

		case "--songs", "-s":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--songs requires a path argument")
			}
			i++
			cfg.SongsCSV = args[i]

		case "--lessons", "--notatie", "-l":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--lessons requires a path argument")
			}
			i++
			cfg.LessonsCSV = args[i]

		case "--students", "-t":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--students requires a path argument")
			}
			i++
			cfg.StudentsCSV = args[i]

		case "--assets", "-a":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--assets requires a directory argument")
			}
			i++
			cfg.AssetsDir = args[i]

		case "--out", "-o":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--out requires a directory argument")
			}
			i++
			cfg.OutputDir = args[i]

		case "--timezone", "-z":
			if i+1 >= len(args) {
				return config.Config{}, "", fmt.Errorf("--timezone requires a zone name")
			}
			i++
			cfg.Timezone = args[i]

		case "--config", "-c":
			i++

		default:
			return config.Config{}, "", fmt.Errorf("unknown argument: %s", arg)
		}
	}

	return cfg, configPath, nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  songs_csv: path to the POS_Songs export")
	fmt.Println("  lessons_csv: path to the POS_Notatie export")
	fmt.Println("  students_csv: path to the students export")
	fmt.Println("  assets_dir: directory holding lesson audio attachments")
	fmt.Println("  output_dir: where converted JSON is written (default: export)")
	fmt.Println("  timezone: IANA zone for lesson schedules (default: Europe/Amsterdam)")
	fmt.Println("  verbose: true/false (enable detailed logging)")

	os.Exit(0)
	return nil
}

// printUsage displays the help message
func printUsage() {
	fmt.Println("musicdott-import - Convert legacy 1.0 CSV exports to 2.0 JSON")
	fmt.Println()
	fmt.Println("Usage: musicdott-import [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -s, --songs <path>         POS_Songs CSV export")
	fmt.Println("  -l, --lessons <path>       POS_Notatie CSV export (alias: --notatie)")
	fmt.Println("  -t, --students <path>      Students CSV export")
	fmt.Println("  -a, --assets <dir>         Directory with lesson audio attachments")
	fmt.Println("  -o, --out <dir>            Output directory (default: export)")
	fmt.Println("  -z, --timezone <zone>      Schedule timezone (default: Europe/Amsterdam)")
	fmt.Println("  -v, --verbose              Show detailed output")
	fmt.Println("  -c, --config <path>        Path to config file")
	fmt.Println("  -h, --help                 Show this help message")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --init-config              Create a default config file")
	fmt.Println()
	fmt.Println("Config file locations (checked in order):")
	fmt.Println("  ./musicdott.yaml")
	fmt.Println("  ~/.config/musicdott/config.yaml")
	fmt.Println("  ~/.musicdott.yaml")
	fmt.Println()
	fmt.Println("Logging:")
	fmt.Println("  Normal mode: Progress bar shown, detailed logs saved to:")
	fmt.Println("    ~/.local/share/musicdott/logs/")
	fmt.Println("  Verbose mode: All output to stdout, no progress bar, no file logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Convert the song library only")
	fmt.Println("  musicdott-import --songs POS_Songs.csv")
	fmt.Println()
	fmt.Println("  # Full conversion with staged audio attachments")
	fmt.Println("  musicdott-import -s POS_Songs.csv -l POS_Notatie.csv -t students.csv -a ./mp3")
	fmt.Println()
	fmt.Println("  # Create a config file to persist settings")
	fmt.Println("  musicdott-import --init-config")
}

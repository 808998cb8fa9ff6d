package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

// args holds the command-line arguments
var args struct {
	SourceDir       string `arg:"positional,required" help:"Folder of media files to organize"`
	DestDir         string `arg:"--dest" help:"Destination root for the image, video and error folders"`
	ConfigFile      string `arg:"--config" help:"Path to config file"`
	Identifier      string `arg:"--identifier" help:"Text inserted between the date and the original name"`
	DateFormat      string `arg:"--date-format" help:"Date pattern for new names (default yyyyMMdd-HHmmss)"`
	SortBy          string `arg:"--sort-by" help:"Listing and copy order: name, destination, capture-date, created, modified, size"`
	Descending      bool   `arg:"--descending" help:"Reverse the listing order"`
	Verbose         bool   `arg:"-v,--verbose" help:"Enable verbose output"`
	DryRun          bool   `arg:"--dry-run" help:"List the plan without copying"`
	VerifyCopies    bool   `arg:"--verify" help:"Compare checksums of every copy with its source"`
	DeleteOriginals bool   `arg:"--delete-originals" help:"Delete original files after successful copy"`
	IncludeHidden   bool   `arg:"--include-hidden" help:"Include hidden files"`
	Workers         int    `arg:"--workers" help:"Number of files whose metadata is read in parallel"`
}

// config holds the application configuration
type config struct {
	SourceDir       string `yaml:"source_directory"`
	DestDir         string `yaml:"destination_directory"`
	ConfigFile      string `yaml:"-"`
	PrefsFile       string `yaml:"-"`
	Identifier      string `yaml:"identifier"`
	DateFormat      string `yaml:"date_format"`
	SortBy          string `yaml:"sort_by"`
	Descending      bool   `yaml:"descending"`
	Verbose         bool   `yaml:"verbose"`
	DryRun          bool   `yaml:"dry_run"`
	VerifyCopies    bool   `yaml:"verify_copies"`
	DeleteOriginals bool   `yaml:"delete_originals"`
	IncludeHidden   bool   `yaml:"include_hidden"`
	Workers         int    `yaml:"workers"`
}

// setDefaults initializes the config with default values
func setDefaults(cfg *config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %v", err)
	}

	cfg.DestDir = filepath.Join(homeDir, "Pictures", "Sorted")
	cfg.ConfigFile = filepath.Join(homeDir, ".gomediasortrc")
	cfg.PrefsFile = filepath.Join(homeDir, ".gomediasort_prefs.yaml")
	cfg.Identifier = ""
	cfg.DateFormat = ""
	cfg.SortBy = string(SortByName)
	cfg.Descending = false
	cfg.Verbose = false
	cfg.DryRun = false
	cfg.VerifyCopies = false
	cfg.DeleteOriginals = false
	cfg.IncludeHidden = false
	cfg.Workers = 1
	return nil
}

// parseConfigFile reads and parses the YAML configuration file
func parseConfigFile(cfg *config) error {
	data, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, just return without an error
			return nil
		}
		return fmt.Errorf("failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	return nil
}

// validateConfig checks if the configuration is valid
func validateConfig(cfg *config) error {
	if cfg.SourceDir == "" {
		return fmt.Errorf("source directory is not specified")
	}

	if cfg.DestDir == "" && !cfg.DryRun {
		return fmt.Errorf("destination directory is not specified")
	}

	// Check if source directory exists
	info, err := os.Stat(cfg.SourceDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("source directory does not exist: %s", cfg.SourceDir)
	}
	if err == nil && !info.IsDir() {
		return fmt.Errorf("source is not a directory: %s", cfg.SourceDir)
	}

	if _, err := parseSortKey(cfg.SortBy); err != nil {
		return err
	}

	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}

	return nil
}

// wasFlagProvided checks if a CLI flag was explicitly provided
func wasFlagProvided(flagName string) bool {
	for _, a := range os.Args[1:] {
		if a == flagName || strings.HasPrefix(a, flagName+"=") {
			return true
		}
	}
	return false
}

// applyArgs overrides cfg with the flags given on the command line.
func applyArgs(cfg *config) {
	if args.SourceDir != "" {
		cfg.SourceDir = args.SourceDir
	}
	if args.DestDir != "" {
		cfg.DestDir = args.DestDir
	}
	if wasFlagProvided("--identifier") {
		cfg.Identifier = args.Identifier
	}
	if args.DateFormat != "" {
		cfg.DateFormat = args.DateFormat
	}
	if args.SortBy != "" {
		cfg.SortBy = args.SortBy
	}
	if wasFlagProvided("--descending") {
		cfg.Descending = args.Descending
	}
	if wasFlagProvided("-v") || wasFlagProvided("--verbose") {
		cfg.Verbose = args.Verbose
	}
	if wasFlagProvided("--dry-run") {
		cfg.DryRun = args.DryRun
	}
	if wasFlagProvided("--verify") {
		cfg.VerifyCopies = args.VerifyCopies
	}
	if wasFlagProvided("--delete-originals") {
		cfg.DeleteOriginals = args.DeleteOriginals
	}
	if wasFlagProvided("--include-hidden") {
		cfg.IncludeHidden = args.IncludeHidden
	}
	if wasFlagProvided("--workers") {
		cfg.Workers = args.Workers
	}
}

// newLogger returns a console logger on w; debug level when verbose.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func run() error {
	// Create an instance of the config struct
	cfg := config{}

	// Set default values first
	if err := setDefaults(&cfg); err != nil {
		return fmt.Errorf("setting defaults: %w", err)
	}

	// Parse command-line arguments
	arg.MustParse(&args)

	// Apply config file path from command-line argument if provided
	if args.ConfigFile != "" {
		cfg.ConfigFile = args.ConfigFile
	}

	// Parse configuration file
	if err := parseConfigFile(&cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	logger := newLogger(os.Stderr, cfg.Verbose || args.Verbose)

	// Remembered identifier and date format fill what the config file left empty
	prefs, err := loadPreferences(cfg.PrefsFile)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring preferences")
	}
	applyPreferences(&cfg, prefs)

	// Override with command-line arguments
	applyArgs(&cfg)
	if cfg.DateFormat == "" {
		cfg.DateFormat = defaultDateFormat
	}

	// Validate the configuration
	if err := validateConfig(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := organizeMedia(cfg, logger, os.Stdout); err != nil {
		return fmt.Errorf("organizing media: %w", err)
	}

	if err := savePreferences(cfg.PrefsFile, cfg); err != nil {
		logger.Warn().Err(err).Msg("could not save preferences")
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

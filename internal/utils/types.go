package util

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// PageID represents a unique page identifier
type PageID uint64

// InvalidPageID marks a frame that holds no page. Page 0 is a valid
// on-disk page (offset 0), so the sentinel sits at the top of the range.
const InvalidPageID PageID = math.MaxUint64

// PageSize represents the standard page size (4KB)
const PageSize = 4096

// ReplacerKind selects the page replacement policy at construction time.
type ReplacerKind string

const (
	ReplacerClock ReplacerKind = "clock"
	ReplacerLRU   ReplacerKind = "lru"
)

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level sets the minimum log level (e.g., "debug", "info", "warn", "error").
	Level string `yaml:"level"`
	// Format specifies the log output format ("json" or "console").
	Format string `yaml:"format"`
	// OutputFile is the log destination; "stdout"/"stderr" log to the console.
	OutputFile string `yaml:"output_file"`
}

// Options represents database configuration options
type Options struct {
	Path           string       `yaml:"path"`
	BufferPoolSize int          `yaml:"buffer_pool_size"`
	InitialPages   int          `yaml:"initial_pages"`
	SyncWrites     bool         `yaml:"sync_writes"`
	Replacer       ReplacerKind `yaml:"replacer"`
	Log            LogConfig    `yaml:"log"`
}

// DefaultOptions returns default database options
func DefaultOptions() Options {
	return Options{
		Path:           "frame.db",
		BufferPoolSize: 1000, // 4MB default buffer pool
		InitialPages:   1,
		SyncWrites:     false,
		Replacer:       ReplacerClock,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadOptions reads options from a YAML file, filling unset fields
// with the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return opts, fmt.Errorf("parse options file %s: %w", path, err)
	}
	if opts.BufferPoolSize <= 0 {
		return opts, ErrInvalidPoolSize
	}
	if opts.InitialPages <= 0 {
		return opts, ErrInvalidInitialPages
	}
	return opts, nil
}

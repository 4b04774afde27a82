// Package config loads boot shell settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"kcore/inventory"

	"github.com/joho/godotenv"
)

// Source names accepted by the boot shell.
const (
	SourceDemo  = "demo"  // Built-in static descriptor list
	SourceHost  = "host"  // Synthesized from host memory statistics
	SourceIomem = "iomem" // Parsed from /proc/iomem (linux)
)

// Config holds all configuration for the boot shell.
type Config struct {
	// Source selects the firmware memory source.
	Source string

	// BufferSize is the working-buffer size in bytes for the raw map.
	BufferSize int

	// Capacity is the number of region slots in the inventory.
	Capacity int

	// Idle keeps the shell alive after boot instead of exiting.
	Idle bool
}

// Load reads configuration from the environment, with an optional .env
// file, falling back to defaults.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		Source:     SourceDemo,
		BufferSize: inventory.DefaultBufferSize,
		Capacity:   inventory.DefaultCapacity,
	}

	if v := os.Getenv("BOOT_SOURCE"); v != "" {
		switch v {
		case SourceDemo, SourceHost, SourceIomem:
			cfg.Source = v
		default:
			return nil, fmt.Errorf("BOOT_SOURCE must be %q, %q or %q, got %q",
				SourceDemo, SourceHost, SourceIomem, v)
		}
	}

	if v := os.Getenv("BOOT_BUFFER_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("BOOT_BUFFER_SIZE must be a positive number, got %q", v)
		}
		cfg.BufferSize = n
	}

	if v := os.Getenv("BOOT_REGION_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("BOOT_REGION_CAPACITY must be a positive number, got %q", v)
		}
		cfg.Capacity = n
	}

	if v := os.Getenv("BOOT_IDLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("BOOT_IDLE must be a boolean, got %q", v)
		}
		cfg.Idle = b
	}

	return cfg, nil
}

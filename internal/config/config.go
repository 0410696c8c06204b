// Package config holds the runtime configuration for the gorc tool.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config carries all settings resolved from flags, environment
// variables and positional arguments.
type Config struct {
	// Key material as hexadecimal byte literals or hex strings.
	Key []string

	// KeyFile points at a file holding the hex key. Mutually exclusive
	// with Key.
	KeyFile string `mapstructure:"key-file"`

	// Recursive allows directory arguments and processes every file
	// beneath them.
	Recursive bool

	// Parallel bounds the number of files transformed concurrently.
	Parallel int `validate:"min=1"`

	// ChunkSize is the read/write granularity in bytes. Files of any
	// size are processed in chunks of at most this many bytes.
	ChunkSize int `mapstructure:"chunk-size" validate:"min=1"`

	// Quiet suppresses per-file progress output.
	Quiet bool

	// Stats prints a summary block after processing.
	Stats bool

	// DryRun previews the files that would be transformed.
	DryRun bool `mapstructure:"dry-run"`

	// PreserveTimestamps restores each file's mtime after rewriting it.
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Include/Exclude glob patterns applied to walked files.
	Include []string
	Exclude []string

	// IncludeFrom/ExcludeFrom name JSONC files with additional patterns.
	IncludeFrom string `mapstructure:"include-from"`
	ExcludeFrom string `mapstructure:"exclude-from"`

	// Files are the positional arguments: files, or directories when
	// Recursive is set.
	Files []string `validate:"min=1"`
}

// Validate checks the configuration against the struct tags plus the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if len(c.Key) > 0 && c.KeyFile != "" {
		return errors.New("--key and --key-file are mutually exclusive")
	}

	return nil
}

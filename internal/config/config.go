package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource []byte

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "shelf.cue"

// Config is the decoded configuration.
type Config struct {
	Database   DatabaseConfig `json:"database"`
	Log        LogConfig      `json:"log"`
	Reorder    ReorderConfig  `json:"reorder"`
	Collection string         `json:"collection"`
}

// DatabaseConfig locates and tunes the SQLite store.
type DatabaseConfig struct {
	Path          string `json:"path"`
	BusyTimeoutMS int    `json:"busy_timeout_ms"`
}

// BusyTimeout returns BusyTimeoutMS as a duration.
func (d DatabaseConfig) BusyTimeout() time.Duration {
	return time.Duration(d.BusyTimeoutMS) * time.Millisecond
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// ReorderConfig tunes the reconciler.
type ReorderConfig struct {
	SerializeCollections bool `json:"serialize_collections"`
}

// Default returns the configuration used when no file is present.
// It matches the defaults in schema.cue.
func Default() Config {
	return Config{
		Database:   DatabaseConfig{Path: "shelf.db", BusyTimeoutMS: 5000},
		Log:        LogConfig{Level: "info", Format: "console"},
		Collection: "default",
	}
}

// Error is a configuration error, with the CUE position when known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Load reads and validates the file at path. An empty path or a missing
// file yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, filepath.Base(path))
}

// Parse validates CUE source data against the schema and decodes it.
// filename is used in error positions.
func Parse(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return Config{}, formatCUEError(err, filename)
	}

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err, filename)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err, filename)
	}
	return cfg, nil
}

// formatCUEError converts the first CUE error into an *Error, preferring a
// position inside filename over one inside the schema.
func formatCUEError(err error, filename string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}

	first := errs[0]
	cfgErr := &Error{Message: first.Error()}
	for _, pos := range cueerrors.Positions(first) {
		if !cfgErr.Pos.IsValid() {
			cfgErr.Pos = pos
		}
		if pos.Filename() == filename {
			cfgErr.Pos = pos
			break
		}
	}
	return cfgErr
}

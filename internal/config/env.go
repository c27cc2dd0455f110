// Package config provides centralized configuration management.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// TesisEnv holds all TesisAssistant environment variables.
type TesisEnv struct {
	// DataDir overrides the data directory (TESIS_DATA_DIR)
	DataDir string

	// DocsDir overrides the documents directory scanned by the picker (TESIS_DOCS_DIR)
	DocsDir string

	// Debug enables debug logging (TESIS_DEBUG)
	Debug bool

	// UploadTick is the simulated upload tick interval (TESIS_UPLOAD_TICK_MS)
	UploadTick time.Duration

	// UploadStep is the progress added per upload tick (TESIS_UPLOAD_STEP)
	UploadStep int

	// MaxUploadBytes is the per-file size limit for review submissions (TESIS_MAX_UPLOAD_BYTES)
	MaxUploadBytes int64
}

const (
	defaultUploadTick     = 200 * time.Millisecond
	defaultUploadStep     = 10
	defaultMaxUploadBytes = 10 << 20 // 10MB, the product's stated per-file limit
)

var (
	env     *TesisEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *TesisEnv {
	envOnce.Do(func() {
		env = &TesisEnv{
			DataDir:        os.Getenv("TESIS_DATA_DIR"),
			DocsDir:        os.Getenv("TESIS_DOCS_DIR"),
			Debug:          os.Getenv("TESIS_DEBUG") == "1",
			UploadTick:     getEnvDurationMS("TESIS_UPLOAD_TICK_MS", defaultUploadTick),
			UploadStep:     getEnvInt("TESIS_UPLOAD_STEP", defaultUploadStep),
			MaxUploadBytes: getEnvInt64("TESIS_MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
	pathsOnce = sync.Once{}
	paths = nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDurationMS(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return fallback
}

// Paths holds standard TesisAssistant directory paths.
type Paths struct {
	// Home is the app home directory (~/.tesis)
	Home string

	// Data is the data directory holding the local store (~/.tesis/data)
	Data string

	// Documents is the folder the document picker scans (~/.tesis/documents)
	Documents string
}

var (
	paths     *Paths
	pathsOnce sync.Once
)

// GetPaths returns the singleton paths configuration. Environment overrides
// from Env take precedence over the defaults under the home directory.
func GetPaths() *Paths {
	pathsOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		tesisHome := filepath.Join(home, ".tesis")

		paths = &Paths{
			Home:      tesisHome,
			Data:      filepath.Join(tesisHome, "data"),
			Documents: filepath.Join(tesisHome, "documents"),
		}

		e := Env()
		if e.DataDir != "" {
			paths.Data = e.DataDir
		}
		if e.DocsDir != "" {
			paths.Documents = e.DocsDir
		}
	})
	return paths
}

// Path returns a path under the app home directory.
func Path(parts ...string) string {
	p := GetPaths()
	allParts := append([]string{p.Home}, parts...)
	return filepath.Join(allParts...)
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

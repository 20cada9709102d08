// Package home resolves the squeeze home directory, where external tools are
// installed and build state is kept.
package home

import (
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvVar overrides the default home directory.
const EnvVar = "SQUEEZE_HOME"

// Locator resolves the home directory with the precedence: explicit override,
// SQUEEZE_HOME, $HOME/.squeeze, then <user config dir>/squeeze.
type Locator struct {
	mu       sync.RWMutex
	override string

	getenv        func(string) string
	userHomeDir   func() (string, error)
	userConfigDir func() (string, error)
}

// New creates a Locator reading the process environment.
func New() *Locator {
	return &Locator{
		getenv:        os.Getenv,
		userHomeDir:   os.UserHomeDir,
		userConfigDir: os.UserConfigDir,
	}
}

// SetOverride sets an explicit home directory. An empty dir clears it.
func (l *Locator) SetOverride(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.override = dir
}

// Dir returns the home directory. The directory is not created.
func (l *Locator) Dir() (string, error) {
	l.mu.RLock()
	override := l.override
	l.mu.RUnlock()

	if override != "" {
		return filepath.Abs(override)
	}
	if dir := l.getenv(EnvVar); dir != "" {
		return filepath.Abs(dir)
	}
	if dir, err := l.userHomeDir(); err == nil && dir != "" {
		return filepath.Join(dir, ".squeeze"), nil
	}
	if dir, err := l.userConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "squeeze"), nil
	}
	return "", domain.ErrHomeNotFound
}

// Path returns a path below the home directory.
func (l *Locator) Path(elem ...string) (string, error) {
	dir, err := l.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{dir}, elem...)...), nil
}

// MustExist returns the home directory, creating it when missing.
func (l *Locator) MustExist() (string, error) {
	dir, err := l.Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create home directory"), "path", dir)
	}
	return dir, nil
}

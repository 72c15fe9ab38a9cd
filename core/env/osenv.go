package env

import (
	"fmt"
	"os"
	"path/filepath"
)

// OSEnv implements Env over the real process environment. Mutations made
// here are visible to every subsequently spawned process.
type OSEnv struct{}

var _ Env = (*OSEnv)(nil)

func NewOSEnv() *OSEnv {
	return &OSEnv{}
}

// Getwd implements Env.Getwd.
func (*OSEnv) Getwd() (string, error) {
	return os.Getwd()
}

// Getenv implements Env.Getenv.
func (*OSEnv) Getenv(key string) string {
	return os.Getenv(key)
}

// LookupEnv implements Env.LookupEnv.
func (*OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Setenv implements Env.Setenv.
func (*OSEnv) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// Environ implements Env.Environ.
func (*OSEnv) Environ() []string {
	return os.Environ()
}

// Chdir implements Env.Chdir.
func (*OSEnv) Chdir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}

	if err := os.Chdir(resolved); err != nil {
		return fmt.Errorf("failed to change directory: %w", err)
	}

	// PWD reflects the directory actually entered to tolerate symlinked
	// components the kernel resolved differently.
	if wd, err := os.Getwd(); err == nil {
		return os.Setenv(EnvPWD, wd)
	}
	return nil
}

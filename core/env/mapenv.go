package env

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// NewMapEnv creates an in-memory environment rooted at / on the given
// filesystem. Directory changes are validated against fs.
func NewMapEnv(fs afero.Fs) *MapEnv {
	return &MapEnv{fs: fs, dir: "/"}
}

// NewMapEnvFromEnvList creates an in-memory environment seeded with the
// variables in environ, each of the form "key=value".
func NewMapEnvFromEnvList(fs afero.Fs, environ []string) *MapEnv {
	out := NewMapEnv(fs)

	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		// Ignore error, it will never be set for MapEnv.
		_ = out.Setenv(key, value)
	}

	return out
}

// MapEnv implements an in-memory Env for tests. Canonicalization is limited
// to path cleaning; the backing afero filesystems have no symlinks.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
	fs  afero.Fs
	dir string
}

var _ Env = (*MapEnv)(nil)

// Getwd implements Env.Getwd.
func (m *MapEnv) Getwd() (string, error) {
	m.rw.RLock()
	defer m.rw.RUnlock()
	return m.dir, nil
}

// Chdir implements Env.Chdir.
func (m *MapEnv) Chdir(dir string) error {
	m.rw.Lock()
	defer m.rw.Unlock()

	if !path.IsAbs(dir) {
		dir = path.Join(m.dir, dir)
	}
	dir = path.Clean(dir)

	stat, err := m.fs.Stat(dir)
	switch {
	case err != nil:
		return fmt.Errorf("failed to resolve path %s: %w", dir, err)
	case !stat.IsDir():
		return fmt.Errorf("%s: not a directory", dir)
	}

	m.dir = dir
	m.setenvLocked(EnvPWD, dir)
	return nil
}

// Setenv implements Env.Setenv.
func (m *MapEnv) Setenv(key, value string) error {
	m.rw.Lock()
	defer m.rw.Unlock()
	m.setenvLocked(key, value)
	return nil
}

func (m *MapEnv) setenvLocked(key, value string) {
	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
}

// LookupEnv implements Env.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv implements Env.Getenv.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ implements Env.Environ.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	var env []string
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	return env
}

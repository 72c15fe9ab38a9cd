package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads the configuration from the directory, falling back to the
// defaults when no file exists.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to the file itself, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	contents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	out := Default()
	if err := yaml.UnmarshalStrict(contents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Package config holds the shell's user-editable configuration.
package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// ConfigurationName is the file name Load looks for.
	ConfigurationName = "quashrc.yaml"

	// DefaultPrompt uses the same escapes as bash: \u user, \h host,
	// \w working directory, \$ prompt character.
	DefaultPrompt = `\u@\h:\w\$ `

	// DefaultHistoryFile is resolved relative to the user's home directory.
	DefaultHistoryFile = ".quash_history"

	// DefaultPath seeds PATH when the environment has none.
	DefaultPath = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"
)

type Configuration struct {
	// Prompt is the PS1 template used for the interactive prompt.
	Prompt string `json:"prompt" validate:"required"`

	// HistoryFile stores readline history between sessions. Empty disables
	// persistent history.
	HistoryFile string `json:"history_file"`

	// DefaultPath is exported as PATH when PATH is unset at startup.
	DefaultPath string `json:"default_path" validate:"required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	return &Configuration{
		Prompt:      DefaultPrompt,
		HistoryFile: DefaultHistoryFile,
		DefaultPath: DefaultPath,
	}
}

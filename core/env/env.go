// Package env mediates access to the process environment and working
// directory so the rest of the shell never calls the os package directly.
package env

// Well-known environment variables the shell reads and writes.
const (
	EnvHome     = "HOME"
	EnvPWD      = "PWD"
	EnvPath     = "PATH"
	EnvPrompt   = "PS1"
	EnvHostname = "HOSTNAME"
	EnvUser     = "USER"
)

// Env is the shell's view of the process environment.
type Env interface {
	// Getwd returns the current working directory.
	Getwd() (string, error)

	// Getenv retrieves the value of the environment variable named by the
	// key. It returns the value, which will be empty if the variable is not
	// present. Callers that need to tell an empty value apart from an unset
	// one must use LookupEnv.
	Getenv(key string) string

	// LookupEnv retrieves the value of the environment variable named by the
	// key. If the variable is present in the environment the value (which
	// may be empty) is returned and the boolean is true. Otherwise the
	// returned value will be empty and the boolean will be false.
	LookupEnv(key string) (string, bool)

	// Setenv sets the value of the environment variable named by the key,
	// overwriting any existing value.
	Setenv(key, value string) error

	// Environ returns a copy of strings representing the environment, in
	// the form "key=value".
	Environ() []string

	// Chdir changes the working directory to dir after canonicalizing it to
	// an absolute, symlink-resolved path. On success PWD is resynchronized
	// from the directory actually entered, not from dir.
	Chdir(dir string) error
}

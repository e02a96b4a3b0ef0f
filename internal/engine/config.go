// Completion: 100% - Utility module complete
package engine

import "github.com/xyproto/env/v2"

const (
	defaultOutputPath = "out/yummy"
	defaultTarget     = "x86_64-linux"
)

// VerboseMode enables build traces on stderr
var VerboseMode bool

// Config is read from the environment. Command line flags take precedence.
type Config struct {
	Verbose    bool   // TACET_VERBOSE
	OutputPath string // TACET_OUT
	Target     string // TACET_TARGET
}

// LoadConfig reads the TACET_* environment variables as they are now
func LoadConfig() Config {
	// env caches on first read
	env.Load()
	return Config{
		Verbose:    env.Bool("TACET_VERBOSE"),
		OutputPath: env.Str("TACET_OUT", defaultOutputPath),
		Target:     env.Str("TACET_TARGET", defaultTarget),
	}
}

// File: cmd/settings.go
package cmd

import (
	"strings"

	"copyfiles/pkg/combine"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
)

// Setting keys. Each one doubles as a flag name and, upper-cased with the
// COPYFILES_ prefix, as an environment variable.
const (
	keyRoot     = "root"
	keyOut      = "out"
	keyConfig   = "config"
	keyMaxBytes = "max-bytes"
	keyVerbose  = "verbose"
	keySettings = "settings"
)

const (
	envPrefix        = "COPYFILES"
	settingsFileName = ".copyfiles"
)

// registerFlags defines the pipeline flags on flags.
func registerFlags(flags *pflag.FlagSet) {
	flags.String(keyRoot, ".", "Project root to scan")
	flags.String(keyOut, combine.DefaultOutput, "Output document path")
	flags.String(keyConfig, "", "File with extra ignore patterns, one per line")
	flags.Int(keyMaxBytes, combine.DefaultMaxBytes, "Maximum bytes of content per file")
	flags.BoolP(keyVerbose, "v", false, "Print progress and skip notices")
	flags.String(keySettings, "", "YAML settings file (default .copyfiles.yaml if present)")
}

// loadArguments resolves the pipeline arguments. Precedence is flags, then
// COPYFILES_* environment variables, then the settings file, then defaults.
func loadArguments(settings *viper.Viper, flags *pflag.FlagSet) (combine.Arguments, error) {
	settings.SetEnvPrefix(envPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	if err := settings.BindPFlags(flags); err != nil {
		return combine.Arguments{}, errors.Errorf("bind flags: %w", err)
	}

	if err := readSettingsFile(settings); err != nil {
		return combine.Arguments{}, err
	}

	return combine.Arguments{
		Root:              settings.GetString(keyRoot),
		Output:            settings.GetString(keyOut),
		ExtraPatternsFile: settings.GetString(keyConfig),
		MaxBytes:          settings.GetInt(keyMaxBytes),
		Verbose:           settings.GetBool(keyVerbose),
	}, nil
}

// readSettingsFile loads an explicit settings file, or .copyfiles.yaml from the
// working directory when one exists.
func readSettingsFile(settings *viper.Viper) error {
	if path := settings.GetString(keySettings); path != "" {
		settings.SetConfigFile(path)
		if err := settings.ReadInConfig(); err != nil {
			return errors.Errorf("read settings %s: %w", path, err)
		}
		return nil
	}

	settings.SetConfigName(settingsFileName)
	settings.SetConfigType("yaml")
	settings.AddConfigPath(".")
	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Errorf("read settings: %w", err)
	}
	return nil
}

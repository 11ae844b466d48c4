// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultFileFlag = "file"
)

// Option is a configuration step applied to a Viper instance.
type Option func(*viper.Viper) error

func AddConfigPaths(paths ...string) Option {
	return func(v *viper.Viper) error {
		for _, p := range paths {
			v.AddConfigPath(p)
		}

		return nil
	}
}

// SetEnvPrefix sets the environment prefix and maps nested or dashed keys onto underscores, so that
// "workTime.min" is read from PREFIX_WORKTIME_MIN.
func SetEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		return nil
	}
}

func SetConfigName(name string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigName(name)
		return nil
	}
}

func AutomaticEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	return nil
}

// SetDefaults applies a set of default values.  Defaults are also what makes AutomaticEnv aware of
// keys that appear in no file or flag.
func SetDefaults(d Defaults) Option {
	return func(v *viper.Viper) error {
		ApplyDefaults(v, d)
		return nil
	}
}

// BindPFlags binds every flag in the set under its own name.
func BindPFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(fs)
	}
}

// BindPFlag binds a single flag to a configuration key that differs from the flag's name, typically
// a nested key such as "log.level" for the flag "log-level".
func BindPFlag(key string, fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("no such flag: %s", flag)
		}

		return v.BindPFlag(key, f)
	}
}

// SetChangedPFlag copies a flag's value to a configuration key, but only when the flag was given on
// the command line.  Unlike BindPFlag, an unchanged flag leaves no key behind, so a configuration
// file may still set the whole parent at once, e.g. "workTime: 200ms..800ms".
func SetChangedPFlag(key string, fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("no such flag: %s", flag)
		}

		if f.Changed {
			v.Set(key, f.Value.String())
		}

		return nil
	}
}

// BindConfigFile extracts the path of the configuration file from a flagset.  If the given flag
// is set, its value is passed to SetConfigFile, overriding the search paths.
func BindConfigFile(fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		if f := fs.Lookup(flag); f != nil {
			configFile := f.Value.String()
			if len(configFile) > 0 {
				v.SetConfigFile(configFile)
			}
		}

		return nil
	}
}

// StdOptions applies the conventional configuration for an application: a config file named after
// the application searched for in /etc/<name>, $HOME/.<name> and the working directory, an upper-cased
// environment prefix, and every flag bound under its own name.
func StdOptions(applicationName string, fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		err := AddConfigPaths(
			fmt.Sprintf("/etc/%s", applicationName),
			fmt.Sprintf("$HOME/.%s", applicationName),
			".",
		)(v)

		if err == nil {
			err = SetEnvPrefix(applicationName)(v)
		}

		if err == nil {
			err = AutomaticEnv(v)
		}

		if err == nil {
			err = SetConfigName(applicationName)(v)
		}

		if err == nil {
			err = BindConfigFile(fs, DefaultFileFlag)(v)
		}

		if err == nil {
			err = BindPFlags(fs)(v)
		}

		return err
	}
}

func New(o ...Option) (*viper.Viper, error) {
	return Configure(viper.New(), o...)
}

func Configure(v *viper.Viper, o ...Option) (*viper.Viper, error) {
	if v != nil {
		for _, f := range o {
			if err := f(v); err != nil {
				return nil, err
			}
		}
	}

	return v, nil
}

// ReadInConfig reads the configuration file, if any.  A missing file found through the search paths
// is not an error, since every setting has a default.  A file named explicitly that cannot be read is.
func ReadInConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
		return nil
	}

	return err
}

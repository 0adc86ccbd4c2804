// Package cliconfig resolves the stasm-go command's settings from flags,
// STASM_* environment variables and an optional config file.
package cliconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/mjszczep/stasm-go/pkg/stasm"
)

// EnvPrefix is prepended to every key looked up in the environment, so
// "datadir" is read from STASM_DATADIR.
const EnvPrefix = "STASM"

// Keys understood in config files and the environment.
const (
	KeyDataDir   = "datadir"
	KeyTrace     = "trace"
	KeyMultiFace = "multiface"
	KeyMinWidth  = "minwidth"
	KeyDebugPath = "debugpath"
	KeyLogFormat = "log-format"
)

// Config is the resolved command configuration.
type Config struct {
	DataDir   string
	Trace     bool
	MultiFace bool
	MinWidth  int
	DebugPath string
	LogFormat string
}

// Open returns the stasm.OpenOptions described by c.
func (c Config) Open() stasm.OpenOptions {
	return stasm.OpenOptions{DebugPath: c.DebugPath, MultiFace: c.MultiFace, MinWidth: c.MinWidth}
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyTrace, false)
	v.SetDefault(KeyMultiFace, false)
	v.SetDefault(KeyMinWidth, stasm.DefaultOpenOptions().MinWidth)
	v.SetDefault(KeyLogFormat, "console")
	return v
}

// Load reads file, when given, into v and resolves the configuration.
// Boolean keys must hold a boolean (or 0/1); "trace: 7" is rejected with
// stasm.ErrInvalidArgument before the library is touched.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	trace, err := boolKey(v, KeyTrace)
	if err != nil {
		return Config{}, err
	}
	multi, err := boolKey(v, KeyMultiFace)
	if err != nil {
		return Config{}, err
	}

	minWidth := v.GetInt(KeyMinWidth)
	if minWidth < 1 || minWidth > 100 {
		return Config{}, fmt.Errorf("%s %d: %w: must be between 1 and 100", KeyMinWidth, minWidth, stasm.ErrOutOfRange)
	}

	logFormat := v.GetString(KeyLogFormat)
	if logFormat != "console" && logFormat != "json" {
		return Config{}, fmt.Errorf("%s %q: %w: want console or json", KeyLogFormat, logFormat, stasm.ErrInvalidArgument)
	}

	return Config{
		DataDir:   v.GetString(KeyDataDir),
		Trace:     trace,
		MultiFace: multi,
		MinWidth:  minWidth,
		DebugPath: v.GetString(KeyDebugPath),
		LogFormat: logFormat,
	}, nil
}

// boolKey reads key through stasm.ParseFlag. Strings, which is what the
// environment yields, go through strconv.ParseBool first.
func boolKey(v *viper.Viper, key string) (bool, error) {
	raw := v.Get(key)
	if s, ok := raw.(string); ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("%s: %w: %q is not true or false", key, stasm.ErrInvalidArgument, s)
		}
		return b, nil
	}
	b, err := stasm.ParseFlag(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

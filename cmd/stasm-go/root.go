package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mjszczep/stasm-go/internal/cliconfig"
	"github.com/mjszczep/stasm-go/pkg/stasm"
	"github.com/mjszczep/stasm-go/pkg/stasm/logging"
)

// skipInit marks commands that never call into the native library.
const skipInit = "skip-init"

var (
	v          = cliconfig.New()
	configFile string
	verbose    bool
	outputJSON bool

	// conf, logger and session are set up in the root PersistentPreRunE.
	conf    cliconfig.Config
	logger  *zap.Logger
	session *stasm.Session
)

var rootCmd = &cobra.Command{
	Use:           "stasm-go",
	Short:         "Locate facial landmarks with the Stasm library",
	Version:       stasm.WrapperVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = cliconfig.Load(v, configFile)
		if err != nil {
			return err
		}
		logger, err = newLogger(conf.LogFormat, verbose)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		session = stasm.New(stasm.Config{
			DataDir: conf.DataDir,
			Trace:   conf.Trace,
			Logger:  logging.NewZap(logger),
		})
		if _, ok := cmd.Annotations[skipInit]; ok {
			return nil
		}
		return session.InitDefault()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if session != nil {
			_ = session.Close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newLogger builds the zap logger: JSON production output or a coloured
// development console.
func newLogger(format string, verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (YAML, TOML or JSON)")
	pf.String(cliconfig.KeyDataDir, "", "Directory holding the Haar cascade XML files (default $STASM_DATADIR or "+stasm.DefaultDataDir+")")
	pf.Bool(cliconfig.KeyTrace, false, "Trace native calls to stdout and stasm.log")
	pf.String(cliconfig.KeyDebugPath, "", "Image path reported in native trace output (default: the input path)")
	pf.String(cliconfig.KeyLogFormat, "console", "Log format: console or json")
	pf.BoolVar(&verbose, "verbose", false, "Log every native call")
	pf.BoolVar(&outputJSON, "json", false, "Print results as JSON")

	for _, key := range []string{cliconfig.KeyDataDir, cliconfig.KeyTrace, cliconfig.KeyDebugPath, cliconfig.KeyLogFormat} {
		_ = v.BindPFlag(key, pf.Lookup(key))
	}
}

// debugPath returns the configured debug path, or the image path itself.
func debugPath(imagePath string) string {
	if conf.DebugPath != "" {
		return conf.DebugPath
	}
	return imagePath
}

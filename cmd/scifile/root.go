package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jpl-au/scifile"
)

// settings is the resolved configuration shared by subcommands.
type settings struct {
	Digest   string `mapstructure:"digest"`
	Zstd     bool   `mapstructure:"zstd"`
	LogLevel string `mapstructure:"log_level"`
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "scifile",
		Short:         "Identify scientific data files",
		Long:          "scifile detects FITS, JPEG2000, ANA, ASDF, HDF5 and CDF files from their content.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfgFile == "" {
				return nil
			}
			v.SetConfigFile(cfgFile)
			return v.ReadInConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.Bool("zstd", false, "also look inside zstd compressed files")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	v.SetEnvPrefix("SCIFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("digest", "")
	v.BindPFlag("zstd", flags.Lookup("zstd"))
	v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(newDetectCmd(v))
	root.AddCommand(newExtensionsCmd())
	return root
}

// load resolves settings from flags, environment and the config file.
func load(v *viper.Viper) (settings, error) {
	var s settings
	err := v.Unmarshal(&s)
	return s, err
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "scifile"})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

func newDispatcher(s settings) *scifile.Dispatcher {
	return scifile.New(nil, scifile.Config{
		Logger: newLogger(s.LogLevel),
		Zstd:   s.Zstd,
	})
}

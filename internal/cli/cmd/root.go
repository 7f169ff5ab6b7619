// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cmd provides the cobra commands of the vaout tool.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/vaout"
	"github.com/gogpu/vaout/config"
	"github.com/gogpu/vaout/internal/cli/styles"
)

// EnvPrefix prefixes the environment variables read by the tool, e.g.
// VAOUT_DRIVER or VAOUT_STATS.
const EnvPrefix = "VAOUT"

// app is the state shared by the commands of one invocation.
type app struct {
	v        *viper.Viper
	renderer *styles.Renderer
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{
		v:        viper.New(),
		renderer: styles.NewRenderer(styles.DefaultTheme()),
	}

	root := &cobra.Command{
		Use:   "vaout",
		Short: "Video acceleration output tool",
		Long: `vaout drives the VA-API video output without a player.

It lists what a driver can decode and display, reports the formats the
video output accepts and plays synthetic streams into a headless window.

Output options are read from the --subopts string, VAOUT_* environment
variables and an optional config file, in increasing precedence:
config file, environment, --subopts.

Examples:
  vaout probe
  vaout formats --subopts dm=1
  vaout play --format h264 --frames 60 --out last.png
  VAOUT_STATS=true vaout play --input movie.mp4`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			return a.init(cmd.ErrOrStderr())
		},
	}

	f := root.PersistentFlags()
	f.String("config", "", "config file (toml, yaml or json)")
	f.String("driver", "software", "driver: "+strings.Join(driverNames(), ", "))
	f.String("device", defaultDevice, "DRM render node used by the libva driver")
	f.String("subopts", "", `output suboptions, e.g. "dm=1:stats:deint=2"`)
	f.Bool("debug", false, "log driver calls and enumeration")
	for _, name := range []string{"config", "driver", "device", "subopts", "debug"} {
		_ = a.v.BindPFlag(name, f.Lookup(name))
	}

	root.AddCommand(a.probeCommand(), a.formatsCommand(), a.playCommand())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// init reads the config file and environment and sets up logging.
func (a *app) init(logOut io.Writer) error {
	v := a.v
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.SetConfigName("vaout")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Join(dir, "vaout"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	level := slog.LevelWarn
	if a.debug() {
		level = slog.LevelDebug
	}
	vaout.SetLogger(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})))
	return nil
}

func (a *app) debug() bool {
	return a.v.GetBool("debug")
}

// outputConfig builds the output configuration. Keys set in the config
// file or environment come first; the suboption string is applied on
// top of them.
func (a *app) outputConfig() (config.Config, error) {
	return loadConfig(a.v)
}

func loadConfig(v *viper.Viper) (config.Config, error) {
	m := make(map[string]any)
	for _, key := range config.Keys() {
		if v.IsSet(key) {
			m[key] = v.Get(key)
		}
	}
	c, err := config.FromMap(m)
	if err != nil {
		return config.Config{}, err
	}
	subopts := strings.TrimSpace(v.GetString("subopts"))
	if subopts == "" {
		return c, nil
	}
	return config.Parse(c.String() + ":" + subopts)
}

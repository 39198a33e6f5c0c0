package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/praveenr-web/AutoJudge/pkg/observability"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	keyClassifierPath = "classifier_path"
	keyRegressorPath  = "regressor_path"
	keyLogLevel       = "log_level"

	defaultClassifierPath = "models/difficulty_classifier.json"
	defaultRegressorPath  = "models/difficulty_regressor.json"
)

// app carries the state shared by all subcommands.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "autojudge",
		Short: "Predict the difficulty of programming problems",
		Long: `autojudge predicts a difficulty class (easy, medium, hard) and a numeric
difficulty score for a programming problem from its description, input
description and output description.

Pipeline artifacts are read from --classifier and --regressor, the
AUTOJUDGE_CLASSIFIER_PATH and AUTOJUDGE_REGRESSOR_PATH environment variables,
or an autojudge.yaml config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(cmd); err != nil {
				return err
			}
			a.logger = observability.InitLogger(observability.LogConfig{
				Level:  a.v.GetString(keyLogLevel),
				Format: "text",
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: ./autojudge.yaml or ~/.config/autojudge/config.yaml)")
	flags.String("classifier", defaultClassifierPath, "path of the classifier artifact")
	flags.String("regressor", defaultRegressorPath, "path of the regressor artifact")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	_ = a.v.BindPFlag(keyClassifierPath, flags.Lookup("classifier"))
	_ = a.v.BindPFlag(keyRegressorPath, flags.Lookup("regressor"))
	_ = a.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))

	root.AddCommand(
		newPredictCmd(a),
		newFeaturesCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) initConfig(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.SetConfigName("autojudge")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "autojudge"))
		}
	}

	a.v.SetEnvPrefix("AUTOJUDGE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", a.v.ConfigFileUsed())
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of autojudge",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "autojudge %s\n", version)
		},
	}
}

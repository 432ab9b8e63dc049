// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the papergen CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/papergen/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// logger receives diagnostics; progress goes to stdout.
var logger = zap.NewNop()

// rootCmd is the base command for the papergen CLI.
var rootCmd = &cobra.Command{
	Use:   "papergen",
	Short: "Generate exam question papers from past papers and a syllabus",
	Long: `papergen reads historical question paper PDFs and a syllabus PDF, asks a
hosted language model to score recurring questions and write new ones, and
saves the returned question paper as JSON.

The share of curated (reused) questions is read from a threshold file; the
rest are generated from the syllabus.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./papergen.yaml or ~/.config/papergen/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostics at debug level")

	viper.SetDefault("papers_dir", "artifacts/question_papers")
	viper.SetDefault("syllabus_path", "artifacts/College_Course_Syllabus.pdf")
	viper.SetDefault("threshold_path", "artifacts/question_papers/threshold.txt")
	viper.SetDefault("output", "output_paper_api.json")
	viper.SetDefault("format", "json")
	viper.SetDefault("extractor", "pdf")
	viper.SetDefault("history_db", "artifacts/history.db")
	viper.SetDefault("llm.backend", "groq")
	viper.SetDefault("llm.temperature", 0.5)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("papergen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "papergen"))
		}
	}

	viper.SetEnvPrefix("PAPERGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the diagnostic logger: console output on stderr, warn
// level by default and debug when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/sqlschema-compare/internal/app"
	"github.com/olusolaa/sqlschema-compare/internal/config"
	apperrors "github.com/olusolaa/sqlschema-compare/internal/errors"
)

var (
	cfgFile       string
	logLevel      string
	logFormat     string
	typesOverride string
	namesOverride string
)

// Keys read from SCHEMA_COMPARE_* variables even when absent from the config file.
var envKeys = []string{
	"settings.log_level", "settings.log_format", "settings.concurrency", "settings.reporter", "settings.include_identical",
	"catalog.max_retries", "catalog.retry_delay", "catalog.connect_timeout", "catalog.query_timeout", "catalog.queries_per_second",
}

var connectionKeys = []string{"server", "port", "database", "auth_mode", "username", "password", "encrypt", "trust_server_certificate"}

var rootCmd = &cobra.Command{
	Use:   "schema-compare",
	Short: "Compares two SQL Server schemas and reports what differs.",
	Long: `schema-compare reads the catalogs of a source and a target SQL Server database,
pairs their tables, routines, triggers and constraints by schema-qualified name, and
reports every object as Identical, Different, Create (source only) or Drop (target only).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", err)
			printUserFacing(err)
			return err
		}

		if err := application.Run(cmd.Context()); err != nil {
			userMsg, suggestion, ok := apperrors.GetUserFacingMessage(err)
			if !ok {
				userMsg = err.Error()
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
			return err
		}
		return nil
	},
}

func printUserFacing(err error) {
	if appErr := (*apperrors.AppError)(nil); errors.As(err, &appErr) {
		if appErr.IsUserFacing {
			fmt.Fprintf(os.Stderr, "Error Details: %s\n", appErr.Message)
			if appErr.SuggestedAction != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.SuggestedAction)
			}
		}
	}
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .schema-compare.yaml in the working or home directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	rootCmd.Flags().StringVar(&typesOverride, "types", "", "Compare only these object types (e.g. 'table,procedure')")
	rootCmd.Flags().StringVar(&namesOverride, "names", "", "Compare only these objects, by name or schema.name (comma-separated)")
	rootCmd.Flags().String("reporter", "", "Report format (text, json)")
	rootCmd.Flags().Bool("include-identical", false, "List identical objects in the report")
	rootCmd.Flags().Bool("show-diff", false, "Print side-by-side diffs of differing definitions (text reporter)")
	rootCmd.Flags().Int("concurrency", 0, "Number of object pairs compared in parallel")

	// Unchanged flags fall back to these rather than to their own zero defaults.
	defaults := config.DefaultConfig()
	viper.SetDefault("settings.log_level", string(defaults.Settings.LogLevel))
	viper.SetDefault("settings.log_format", string(defaults.Settings.LogFormat))
	viper.SetDefault("settings.reporter", defaults.Settings.ReporterType)
	viper.SetDefault("settings.concurrency", defaults.Settings.Concurrency)

	_ = viper.BindPFlag("settings.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("settings.log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("types", rootCmd.Flags().Lookup("types"))
	_ = viper.BindPFlag("names", rootCmd.Flags().Lookup("names"))
	_ = viper.BindPFlag("settings.reporter", rootCmd.Flags().Lookup("reporter"))
	_ = viper.BindPFlag("settings.include_identical", rootCmd.Flags().Lookup("include-identical"))
	_ = viper.BindPFlag("settings.reporter_config.text.show_diff", rootCmd.Flags().Lookup("show-diff"))
	_ = viper.BindPFlag("settings.concurrency", rootCmd.Flags().Lookup("concurrency"))

	viper.SetEnvPrefix("SCHEMA_COMPARE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}
	for _, side := range []string{"source", "target"} {
		for _, key := range connectionKeys {
			_ = viper.BindEnv(side + "." + key)
		}
	}

	rootCmd.AddCommand(diffCmd, databasesCmd)
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".schema-compare")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/sqlschema-compare/internal/app"
)

var databasesSide string

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "Lists the user databases reachable through the source or target connection.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig(viper.GetViper())
		if err != nil {
			printUserFacing(err)
			return err
		}
		logger, err := app.NewLogger(cfg, os.Stderr)
		if err != nil {
			return err
		}

		names, err := app.ListDatabases(cmd.Context(), cfg, databasesSide, logger, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			printUserFacing(err)
			return err
		}
		printDatabases(cmd.OutOrStdout(), names)
		return nil
	},
}

func printDatabases(w io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, "No user databases found.")
		return
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func init() {
	databasesCmd.Flags().StringVar(&databasesSide, "side", "source", "Connection to use (source, target)")
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"rulesedit/internal/document"
	"rulesedit/internal/logger"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	encoding    string
	journalPath string

	stdout io.Writer = os.Stdout
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rulesedit",
	Short: "Remove sections and list entries from game rules INI files",
	Long: `rulesedit edits INI-style rules files whose sections hold numbered lists
(0=value, 1=value, ...). Sections can be commented out or deleted, and their
entry in an index list replaced by an EMPTYn placeholder, commented out or
deleted. Edits are always written to a new file; the source is never touched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger.Init(logger.Options{Level: level, JSON: jsonOut, Quiet: quiet})

		canonical, err := document.NormalizeEncoding(encoding)
		if err != nil {
			return err
		}
		encoding = canonical
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&encoding, "encoding", document.EncodingUTF8, "Source encoding: utf-8, windows-1252, iso-8859-1 or utf-16")
	rootCmd.PersistentFlags().
		StringVar(&journalPath, "journal", "", "Append a record of every edit to this JSON file")
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet && !jsonOut {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	reindexOutput string
	stripOutput   string
)

func init() {
	reindexCmd := &cobra.Command{
		Use:   "reindex <file> <list>",
		Short: "Renumber a list as 0, 1, 2, ...",
		Long: `The reindex command rewrites the keys of a numbered list so they run from 0
without gaps, in the order the entries appear. Lines without '=' are left alone.

Example:
  rulesedit reindex rules.ini BuildingTypes -o out.ini`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReindex(args)
		},
	}
	reindexCmd.Flags().StringVarP(&reindexOutput, "output", "o", "", "Path of the new file to write (must not exist)")
	rootCmd.AddCommand(reindexCmd)

	stripCmd := &cobra.Command{
		Use:   "strip-comments <file>",
		Short: "Delete comment lines and trailing ';' comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStripComments(args)
		},
	}
	stripCmd.Flags().StringVarP(&stripOutput, "output", "o", "", "Path of the new file to write (must not exist)")
	rootCmd.AddCommand(stripCmd)
}

func runReindex(args []string) error {
	if err := validateOutput(reindexOutput); err != nil {
		return err
	}
	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	if err := s.rec.ReindexList(args[1]); err != nil {
		return s.fail(err)
	}
	if err := s.finish(reindexOutput); err != nil {
		return err
	}
	return s.report(reindexOutput)
}

func runStripComments(args []string) error {
	if err := validateOutput(stripOutput); err != nil {
		return err
	}
	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	n := s.rec.RemoveAllComments()
	printVerbose("%d lines changed\n", n)
	if err := s.finish(stripOutput); err != nil {
		return err
	}
	return s.report(stripOutput)
}

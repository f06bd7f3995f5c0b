package cmd

import (
	"github.com/spf13/cobra"

	"rulesedit/internal/logger"
	"rulesedit/internal/plan"
)

var (
	applyOutput   string
	applyContinue bool
	applyCheckOff bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "apply <file> <plan.md>",
		Short: "Run every unchecked item of a Markdown plan",
		Long: `The apply command runs a batch of edits listed as a Markdown task list.

Plan items:
  - [ ] section <name> [list <list>] [@placeholder|@comment|@delete]
  - [ ] entry <pattern> list <list> [@level]
  - [ ] reindex <list>
  - [ ] strip-comments

Checked items are skipped. With --check-off the applied items are ticked in
the plan file afterwards.

Example:
  rulesedit apply rules.ini cleanup.md -o rules.new.ini --continue`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(args)
		},
	}
	cmd.Flags().StringVarP(&applyOutput, "output", "o", "", "Path of the new file to write (must not exist)")
	cmd.Flags().BoolVar(&applyContinue, "continue", false, "Skip items whose section or entry is missing")
	cmd.Flags().BoolVar(&applyCheckOff, "check-off", false, "Tick applied items in the plan file")
	rootCmd.AddCommand(cmd)
}

func runApply(args []string) error {
	if err := validateOutput(applyOutput); err != nil {
		return err
	}
	ops, err := plan.ParseFile(args[1])
	if err != nil {
		return err
	}
	s, err := openSession(args[0])
	if err != nil {
		return err
	}

	res, err := plan.Apply(s.rec, ops, plan.Options{ContinueOnMissing: applyContinue, Logger: logger.L})
	if err != nil {
		return s.fail(err)
	}
	if err := s.finish(applyOutput); err != nil {
		return err
	}
	if applyCheckOff {
		if err := plan.CheckOffFile(args[1], res.Applied); err != nil {
			return err
		}
	}

	printVerbose("%d applied, %d missing, %d already done\n", len(res.Applied), len(res.Missing), res.Done)
	return s.report(applyOutput)
}

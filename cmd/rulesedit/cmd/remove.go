package cmd

import (
	"github.com/spf13/cobra"

	"rulesedit/pkg/section"
)

var (
	removeSectionOutput  string
	removeSectionList    string
	removeSectionLevel   string
	removeSectionReindex bool

	removeEntryOutput  string
	removeEntryList    string
	removeEntryLevel   string
	removeEntryReindex bool
)

func init() {
	sectionCmd := newRemoveSectionCmd()
	addEditFlags(sectionCmd, &removeSectionOutput, &removeSectionLevel, &removeSectionReindex)
	sectionCmd.Flags().StringVar(&removeSectionList, "list", "", "Index list that references the section, e.g. BuildingTypes")
	rootCmd.AddCommand(sectionCmd)

	entryCmd := newRemoveEntryCmd()
	addEditFlags(entryCmd, &removeEntryOutput, &removeEntryLevel, &removeEntryReindex)
	entryCmd.Flags().StringVar(&removeEntryList, "list", "", "List section holding the entry")
	_ = entryCmd.MarkFlagRequired("list")
	rootCmd.AddCommand(entryCmd)
}

func newRemoveSectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-section <file> <name>",
		Short: "Comment out or delete a section and its list entry",
		Long: `The remove-section command removes the section [name] from a rules file.

Levels:
  placeholder  comment the section out, replace its list value with EMPTYn
  comment      comment the section and its list entry out
  delete       delete the section and its list entry

Example:
  rulesedit remove-section rules.ini GAWETH --list BuildingTypes -o rules.new.ini
  rulesedit remove-section rules.ini GAWETH --list BuildingTypes --level delete --reindex -o out.ini`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoveSection(args)
		},
	}
}

func runRemoveSection(args []string) error {
	if err := validateOutput(removeSectionOutput); err != nil {
		return err
	}
	level, err := section.ParseLevel(removeSectionLevel)
	if err != nil {
		return err
	}
	s, err := openSession(args[0])
	if err != nil {
		return err
	}

	if err := s.rec.RemoveSection(args[1], removeSectionList, level); err != nil {
		return s.fail(err)
	}
	if removeSectionReindex && removeSectionList != "" && level >= section.LevelDelete {
		if err := s.rec.ReindexList(removeSectionList); err != nil {
			return s.fail(err)
		}
	}
	if err := s.finish(removeSectionOutput); err != nil {
		return err
	}
	return s.report(removeSectionOutput)
}

func newRemoveEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-entry <file> <pattern>",
		Short: "Remove one entry from a numbered list",
		Long: `The remove-entry command removes the first entry of a list whose value
starts with a match of pattern (a regular expression).

Example:
  rulesedit remove-entry rules.ini GAWETH --list BuildingTypes -o out.ini
  rulesedit remove-entry rules.ini 'GAWETH$' --list BuildingTypes --level delete --reindex -o out.ini`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoveEntry(args)
		},
	}
}

func runRemoveEntry(args []string) error {
	if err := validateOutput(removeEntryOutput); err != nil {
		return err
	}
	level, err := section.ParseLevel(removeEntryLevel)
	if err != nil {
		return err
	}
	s, err := openSession(args[0])
	if err != nil {
		return err
	}

	if err := s.rec.RemoveFromList(args[1], removeEntryList, level); err != nil {
		return s.fail(err)
	}
	if removeEntryReindex && level >= section.LevelDelete {
		if err := s.rec.ReindexList(removeEntryList); err != nil {
			return s.fail(err)
		}
	}
	if err := s.finish(removeEntryOutput); err != nil {
		return err
	}
	return s.report(removeEntryOutput)
}

package cmd

import (
	"github.com/spf13/cobra"

	"rulesedit/internal/tui"
)

var (
	tuiOutput  string
	tuiList    string
	tuiReindex bool
)

// tuiCmd launches the interactive section browser.
var tuiCmd = &cobra.Command{
	Use:   "tui <file>",
	Short: "Browse sections and mark them for removal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutput(tuiOutput); err != nil {
			return err
		}
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		return tui.Run(tui.Config{
			Editor:     s.ed,
			Applier:    s.rec,
			Output:     tuiOutput,
			List:       tuiList,
			Reindex:    tuiReindex,
			AfterWrite: func() error {
				s.rec.Journal().Output = tuiOutput
				return s.saveJournal()
			},
		})
	},
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiOutput, "output", "o", "", "Path of the new file to write (must not exist)")
	tuiCmd.Flags().StringVar(&tuiList, "list", "", "Index list to scrub along with each removed section")
	tuiCmd.Flags().BoolVar(&tuiReindex, "reindex", false, "Renumber the list after deleting entries")
	rootCmd.AddCommand(tuiCmd)
}

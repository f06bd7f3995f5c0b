package cmd

import (
	"github.com/spf13/cobra"

	"rulesedit/internal/document"
	"rulesedit/internal/ini"
	"rulesedit/internal/logger"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "sections <file>",
		Short: "List the sections of a rules file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(args)
		},
	})
}

type sectionInfo struct {
	Name    string `json:"name"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Entries int    `json:"entries"`
	Empty   int    `json:"empty"`
}

func runSections(args []string) error {
	doc, err := document.Load(args[0], document.Options{Encoding: encoding})
	if err != nil {
		return err
	}
	ed := ini.New(doc, ini.WithLogger(logger.L))

	headers := ed.Sections()
	infos := make([]sectionInfo, 0, len(headers))
	for _, h := range headers {
		entries, err := ed.Entries(h.Range)
		if err != nil {
			return err
		}
		empty, err := ed.CountEmpty(h.Range)
		if err != nil {
			return err
		}
		infos = append(infos, sectionInfo{
			Name:    h.Name,
			Start:   h.Range.Start,
			End:     h.Range.End,
			Entries: len(entries),
			Empty:   empty,
		})
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":        args[0],
			"lines":       doc.Len(),
			"fingerprint": doc.Fingerprint(),
			"sections":    infos,
		})
	}
	for _, s := range infos {
		printInfo("%-32s lines %d-%d  entries %d", s.Name, s.Start+1, s.End, s.Entries)
		if s.Empty > 0 {
			printInfo("  (%d EMPTY)", s.Empty)
		}
		printInfo("\n")
	}
	printVerbose("%d sections, %d lines, fingerprint %s\n", len(infos), doc.Len(), doc.Fingerprint())
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rulesedit/internal/clock"
	"rulesedit/internal/document"
	"rulesedit/internal/ini"
	"rulesedit/internal/journal"
	"rulesedit/internal/logger"
)

// editSession is one source file loaded for editing, with every edit
// routed through a journal recorder.
type editSession struct {
	source string
	doc    *document.Document
	ed     *ini.Editor
	rec    *journal.Recorder
	store  journal.Store
	first  int // Index of this run's first record
}

func openSession(source string) (*editSession, error) {
	doc, err := document.Load(source, document.Options{Encoding: encoding})
	if err != nil {
		return nil, err
	}
	ed := ini.New(doc, ini.WithLogger(logger.L))

	var store journal.Store = journal.NewMemoryStore()
	if journalPath != "" {
		store = journal.NewFileStore(journalPath)
	}
	j, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load journal %s: %w", journalPath, err)
	}
	// A journal for another file or revision starts over.
	if j.Source != source || j.Fingerprint != doc.Fingerprint() {
		if j.Source != "" {
			logger.Debug("journal reset", "journal", journalPath, "source", j.Source, "fingerprint", j.Fingerprint)
		}
		j = &journal.Journal{Source: source}
	}

	return &editSession{
		source: source,
		doc:    doc,
		ed:     ed,
		rec:    journal.NewRecorder(ed, j, clock.RealClock{}),
		store:  store,
		first:  len(j.Records),
	}, nil
}

// finish writes the edited buffer to output and saves the journal. The
// journal is saved even when the write fails.
func (s *editSession) finish(output string) error {
	if err := s.doc.Write(output); err != nil {
		return s.fail(err)
	}
	logger.Info("output written", "path", output, "lines", s.doc.Len())
	s.rec.Journal().Output = output
	return s.saveJournal()
}

// fail saves the journal, so the failed record is kept, and returns err.
func (s *editSession) fail(err error) error {
	logger.Error("edit failed", "source", s.source, "error", err)
	if serr := s.saveJournal(); serr != nil {
		logger.Warn("journal not saved", "error", serr)
	}
	return err
}

func (s *editSession) saveJournal() error {
	if err := s.store.Save(s.rec.Journal()); err != nil {
		return fmt.Errorf("failed to save journal %s: %w", journalPath, err)
	}
	return nil
}

// report prints the outcome of a single command.
func (s *editSession) report(output string) error {
	run := journal.Journal{Records: s.records()}
	records, failures := run.Records, run.Failures()
	if jsonOut {
		return printJSON(map[string]interface{}{
			"source":  s.source,
			"output":  output,
			"lines":   s.doc.Len(),
			"records": records,
			"failed":  len(failures),
			"updated": s.rec.Journal().UpdatedAt(),
			"success": len(failures) == 0,
		})
	}
	for _, r := range records {
		mark := "✓"
		if r.Failed() {
			mark = "✗"
		}
		printInfo("%s %s %s\n", mark, r.Op, describe(r))
	}
	if len(failures) > 0 {
		printInfo("%d of %d operations failed\n", len(failures), len(records))
	}
	printInfo("Wrote %s (%d lines)\n", output, s.doc.Len())
	return nil
}

// records returns the records added by this run.
func (s *editSession) records() []journal.Record {
	return s.rec.Journal().Records[s.first:]
}

func describe(r journal.Record) string {
	target := r.Section
	if target == "" {
		target = r.Pattern
	}
	switch {
	case target != "" && r.List != "":
		return fmt.Sprintf("%s from %s @%s", target, r.List, r.Level)
	case target != "":
		return fmt.Sprintf("%s @%s", target, r.Level)
	default:
		return r.List
	}
}

// validateOutput rejects a missing or existing target before any work.
func validateOutput(output string) error {
	if output == "" {
		return errors.New("an output path is required (--output)")
	}
	if _, err := os.Stat(output); err == nil {
		return fmt.Errorf("%w: %s already exists", document.ErrUnavailable, output)
	}
	return nil
}

// addEditFlags registers the flags shared by the removal commands.
func addEditFlags(cmd *cobra.Command, output, level *string, reindex *bool) {
	cmd.Flags().StringVarP(output, "output", "o", "", "Path of the new file to write (must not exist)")
	cmd.Flags().StringVar(level, "level", "placeholder", "Removal level: placeholder (0), comment (1) or delete (2)")
	cmd.Flags().BoolVar(reindex, "reindex", false, "Renumber the list after deleting an entry from it")
}

package plan

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"rulesedit/internal/ini"
	"rulesedit/internal/logger"
	"rulesedit/pkg/section"
)

// Editor is the set of edits a plan can drive. Both *ini.Editor and
// *journal.Recorder satisfy it.
type Editor interface {
	RemoveSection(name, list string, level section.Level) error
	RemoveFromList(pattern, list string, level section.Level) error
	ReindexList(list string) error
	RemoveAllComments() int
}

// Options controls Apply.
type Options struct {
	// ContinueOnMissing logs and skips operations whose section or entry
	// does not exist instead of stopping the plan.
	ContinueOnMissing bool
	Logger            *slog.Logger
}

// Result counts what Apply did.
type Result struct {
	Applied []Op
	Missing []Op
	Done    int // Items already checked off in the plan
}

// Apply runs ops in order against ed. On a hard failure it returns the
// result so far together with the error; edits already made stay.
func Apply(ed Editor, ops []Op, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.L
	}

	var res Result
	for _, op := range ops {
		if op.Done {
			res.Done++
			continue
		}
		err := run(ed, op)
		switch {
		case err == nil:
			log.Info("plan item applied", "line", op.Line, "op", op.String())
			res.Applied = append(res.Applied, op)
		case opts.ContinueOnMissing && isMissing(err):
			log.Warn("plan item skipped", "line", op.Line, "op", op.String(), "error", err)
			res.Missing = append(res.Missing, op)
		default:
			return res, fmt.Errorf("plan line %d (%s): %w", op.Line, op, err)
		}
	}
	return res, nil
}

func run(ed Editor, op Op) error {
	switch op.Verb {
	case VerbSection:
		return ed.RemoveSection(op.Target, op.List, op.Level)
	case VerbEntry:
		return ed.RemoveFromList(op.Target, op.List, op.Level)
	case VerbReindex:
		return ed.ReindexList(op.Target)
	case VerbStripComments:
		ed.RemoveAllComments()
		return nil
	}
	return fmt.Errorf("%w: unknown verb %q", ErrSyntax, op.Verb)
}

func isMissing(err error) bool {
	return errors.Is(err, ini.ErrSectionNotFound) || errors.Is(err, ini.ErrEntryNotFound)
}

// CheckOff returns src with the task boxes of ops ticked.
func CheckOff(src []byte, ops []Op) []byte {
	lines := strings.Split(string(src), "\n")
	for _, op := range ops {
		if op.Line <= 0 || op.Line > len(lines) {
			continue
		}
		lines[op.Line-1] = strings.Replace(lines[op.Line-1], "[ ]", "[x]", 1)
	}
	return []byte(strings.Join(lines, "\n"))
}

// CheckOffFile ticks the items of ops in the plan file at path.
func CheckOffFile(path string, ops []Op) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read plan %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, CheckOff(src, ops), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to update plan %s: %w", path, err)
	}
	return nil
}

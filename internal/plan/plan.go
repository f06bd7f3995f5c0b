// Package plan reads batch edit plans written as Markdown task lists and
// applies them to a rules file.
//
// Each unchecked item is one operation:
//
//	- [ ] section GAWETH list BuildingTypes @delete
//	- [ ] entry GAWETH_ED list BuildingTypes @placeholder
//	- [ ] reindex BuildingTypes
//	- [ ] strip-comments
//
// Checked items are treated as already applied. The level defaults to
// @placeholder and may also be written as @0, @1 or @2.
package plan

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"rulesedit/pkg/section"
)

// ErrSyntax is returned for a task item that is not a valid operation.
var ErrSyntax = errors.New("invalid plan item")

// Verbs.
const (
	VerbSection       = "section"
	VerbEntry         = "entry"
	VerbReindex       = "reindex"
	VerbStripComments = "strip-comments"
)

// Op is one parsed plan item.
type Op struct {
	Verb   string
	Target string // Section name, value pattern or list name, by verb
	List   string
	Level  section.Level
	Line   int  // 1-based line of the item in the plan file
	Done   bool // Item was already checked off
	Raw    string
}

func (o Op) String() string {
	switch o.Verb {
	case VerbSection:
		if o.List != "" {
			return fmt.Sprintf("section %s list %s @%s", o.Target, o.List, o.Level)
		}
		return fmt.Sprintf("section %s @%s", o.Target, o.Level)
	case VerbEntry:
		return fmt.Sprintf("entry %s list %s @%s", o.Target, o.List, o.Level)
	case VerbReindex:
		return "reindex " + o.Target
	default:
		return o.Verb
	}
}

var checkboxPrefix = regexp.MustCompile(`^\[[ xX]\]\s*`)

// ParseFile reads and parses the plan at path.
func ParseFile(path string) ([]Op, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan %s: %w", path, err)
	}
	return Parse(src)
}

// Parse extracts every task list item of a Markdown document.
// Plain list items and other Markdown are ignored.
func Parse(src []byte) ([]Op, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	root := md.Parser().Parse(text.NewReader(src))
	offsets := buildLineOffsets(src)

	var ops []Op
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindListItem {
			return ast.WalkContinue, nil
		}
		block := n.FirstChild()
		if block == nil || block.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		box, ok := block.FirstChild().(*extast.TaskCheckBox)
		if !ok {
			return ast.WalkContinue, nil
		}

		lines := block.Lines()
		parts := make([]string, 0, lines.Len())
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			parts = append(parts, strings.TrimSpace(string(seg.Value(src))))
		}
		raw := checkboxPrefix.ReplaceAllString(strings.Join(parts, " "), "")

		op, err := parseItem(raw)
		if err != nil {
			return ast.WalkStop, fmt.Errorf("%w: line %d: %w", ErrSyntax, lineIndexOfByte(offsets, lines.At(0).Start)+1, err)
		}
		op.Line = lineIndexOfByte(offsets, lines.At(0).Start) + 1
		op.Done = box.IsChecked
		op.Raw = raw
		ops = append(ops, op)
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return ops, nil
}

// parseItem turns "verb args... [list NAME] [@level]" into an Op.
func parseItem(raw string) (Op, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Op{}, errors.New("empty item")
	}
	op := Op{Verb: strings.ToLower(fields[0]), Level: section.LevelPlaceholder}

	var args []string
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		switch {
		case strings.HasPrefix(f, "@"):
			level, err := section.ParseLevel(f)
			if err != nil {
				return Op{}, err
			}
			op.Level = level
		case f == "list":
			if i+1 >= len(fields) {
				return Op{}, errors.New("list needs a name")
			}
			op.List = fields[i+1]
			i++
		default:
			args = append(args, f)
		}
	}

	switch op.Verb {
	case VerbSection, VerbReindex:
		if len(args) != 1 {
			return Op{}, fmt.Errorf("%s takes exactly one name, got %d", op.Verb, len(args))
		}
		op.Target = args[0]
		if op.Verb == VerbReindex && op.List != "" {
			return Op{}, errors.New("reindex takes the list name directly")
		}
	case VerbEntry:
		if len(args) != 1 {
			return Op{}, fmt.Errorf("entry takes exactly one pattern, got %d", len(args))
		}
		if op.List == "" {
			return Op{}, errors.New("entry needs a list")
		}
		op.Target = args[0]
	case VerbStripComments:
		if len(args) != 0 || op.List != "" {
			return Op{}, errors.New("strip-comments takes no arguments")
		}
	default:
		return Op{}, fmt.Errorf("unknown verb %q", fields[0])
	}
	return op, nil
}

// buildLineOffsets returns a slice of byte offsets where each new line begins.
func buildLineOffsets(content []byte) []int {
	offsets := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// lineIndexOfByte returns the 0-based line index that contains offset.
func lineIndexOfByte(offsets []int, offset int) int {
	i := sort.Search(len(offsets), func(i int) bool {
		return offsets[i] > offset
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

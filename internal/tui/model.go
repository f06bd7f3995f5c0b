package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"rulesedit/internal/ini"
	"rulesedit/pkg/section"
)

// View identifies which screen the model renders.
type View int

const (
	ViewSectionList View = iota
	ViewWritten
	ViewQuitting
)

// SectionItem is one section header in the list.
type SectionItem struct {
	Header  section.Header
	Entries int
	Marked  bool
	Level   section.Level
}

func (s SectionItem) Title() string {
	if s.Marked {
		return fmt.Sprintf("[%s] %s", s.Level, s.Header.Name)
	}
	return s.Header.Name
}

func (s SectionItem) Description() string {
	return fmt.Sprintf("lines %d-%d, %d entries", s.Header.Range.Start+1, s.Header.Range.End, s.Entries)
}

func (s SectionItem) FilterValue() string { return s.Header.Name }

// Applier receives the browser's edits. Both *ini.Editor and
// *journal.Recorder satisfy it.
type Applier interface {
	RemoveSectionOccurrence(name string, nth int, list string, level section.Level) error
	ReindexList(list string) error
}

// Config wires the browser to a document.
type Config struct {
	Editor  *ini.Editor
	Applier Applier // Receives the edits; defaults to Editor
	Output  string  // Target path for 'w'
	List    string  // Index list to scrub along with each section
	Reindex bool    // Renumber List after deleting entries from it
	// AfterWrite runs once the output file exists, e.g. to save a journal.
	AfterWrite func() error
}

// model is the Bubbletea model for the TUI.
type model struct {
	list       list.Model
	cfg        Config
	ActiveView View
	status     string
	summary    []string
	height     int
	width      int
}

// sectionItems lists the sections of ed as list items.
func sectionItems(ed *ini.Editor) []list.Item {
	headers := ed.Sections()
	items := make([]list.Item, 0, len(headers))
	for _, h := range headers {
		entries, _ := ed.Entries(h.Range)
		items = append(items, SectionItem{Header: h, Entries: len(entries)})
	}
	return items
}

// InitialModel creates the initial TUI model.
func InitialModel(cfg Config, height int) model {
	if cfg.Applier == nil {
		cfg.Applier = cfg.Editor
	}
	defaultWidth := 80
	listHeight := max(height-6, 5)
	l := list.New(sectionItems(cfg.Editor), list.NewDefaultDelegate(), defaultWidth, listHeight)
	l.Title = "Sections"
	l.SetShowHelp(false)
	// q and ctrl+c are handled by the model.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	return model{
		list:   l,
		cfg:    cfg,
		height: height,
		width:  defaultWidth,
		status: "0/1/2 mark placeholder/comment/delete, x unmark, w write, q quit",
	}
}

// marked returns the marked items, last section first.
func (m model) marked() []SectionItem {
	var out []SectionItem
	items := m.list.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if it, ok := items[i].(SectionItem); ok && it.Marked {
			out = append(out, it)
		}
	}
	return out
}

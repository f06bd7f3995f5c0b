package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"rulesedit/pkg/section"
)

// Update handles all Bubbletea update logic for the TUI model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	}
	if m.ActiveView == ViewSectionList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	k := msg.String()

	switch m.ActiveView {
	case ViewQuitting:
		return m, nil

	case ViewWritten:
		m.ActiveView = ViewQuitting
		return m, tea.Quit

	case ViewSectionList:
		if m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		switch k {
		case "ctrl+c", "q":
			m.ActiveView = ViewQuitting
			return m, tea.Quit
		case "0", "1", "2":
			level, _ := section.ParseLevel(k)
			return setMark(m, true, level), nil
		case "x":
			return setMark(m, false, 0), nil
		case "w":
			return writeMarked(m)
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func setMark(m model, marked bool, level section.Level) model {
	item, ok := m.list.SelectedItem().(SectionItem)
	if !ok {
		return m
	}
	item.Marked = marked
	item.Level = level
	m.list.SetItem(m.list.GlobalIndex(), item)
	if marked {
		m.status = fmt.Sprintf("%s marked for %s", item.Header.Name, level)
	} else {
		m.status = item.Header.Name + " unmarked"
	}
	return m
}

// writeMarked removes every marked section, bottom section first, and
// writes the result to the output path. Sections are located again by
// name and occurrence since list edits shift the lines below them.
func writeMarked(m model) (model, tea.Cmd) {
	marked := m.marked()
	if len(marked) == 0 {
		m.status = "nothing marked"
		return m, nil
	}

	var summary []string
	deletedFromList := false
	for _, it := range marked {
		if err := m.cfg.Applier.RemoveSectionOccurrence(it.Header.Name, it.Header.Occurrence, m.cfg.List, it.Level); err != nil {
			summary = append(summary, fmt.Sprintf("✗ %s: %v", it.Header.Name, err))
			continue
		}
		if m.cfg.List != "" && it.Level >= section.LevelDelete {
			deletedFromList = true
		}
		summary = append(summary, fmt.Sprintf("✓ %s (%s)", it.Header.Name, it.Level))
	}
	if m.cfg.Reindex && deletedFromList {
		if err := m.cfg.Applier.ReindexList(m.cfg.List); err != nil {
			summary = append(summary, fmt.Sprintf("✗ reindex %s: %v", m.cfg.List, err))
		} else {
			summary = append(summary, "✓ reindexed "+m.cfg.List)
		}
	}

	if err := m.cfg.Editor.Document().Write(m.cfg.Output); err != nil {
		summary = append(summary, fmt.Sprintf("✗ write: %v", err))
	} else if m.cfg.Output != "" {
		summary = append(summary, "✓ wrote "+m.cfg.Output)
		if m.cfg.AfterWrite != nil {
			if err := m.cfg.AfterWrite(); err != nil {
				summary = append(summary, fmt.Sprintf("✗ %v", err))
			}
		}
	}

	m.summary = summary
	m.ActiveView = ViewWritten
	return m, nil
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.list.SetSize(msg.Width-4, max(msg.Height-6, 5))
	return m, nil
}

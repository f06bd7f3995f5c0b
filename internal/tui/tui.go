package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// wrapText breaks s into lines of at most maxWidth display cells,
// splitting on spaces. Words wider than maxWidth get a line of their own.
func wrapText(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}

	var out []string
	for _, paragraph := range strings.Split(s, "\n") {
		var line strings.Builder
		width := 0
		for _, word := range strings.Fields(paragraph) {
			w := runewidth.StringWidth(word)
			if width > 0 && width+1+w > maxWidth {
				out = append(out, line.String())
				line.Reset()
				width = 0
			}
			if width > 0 {
				line.WriteByte(' ')
				width++
			}
			line.WriteString(word)
			width += w
		}
		out = append(out, line.String())
	}
	return strings.Join(out, "\n")
}

// Init initializes the TUI model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// Run launches the section browser.
func Run(cfg Config) error {
	if cfg.Editor == nil {
		return errors.New("tui: no document to browse")
	}
	m := InitialModel(cfg, 24)
	p := tea.NewProgram(&teaModelAdapter{m}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// teaModelAdapter adapts our model to the tea.Model interface using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}

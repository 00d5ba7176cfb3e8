// internal/picker/terminal.go
package picker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// TerminalChooser is the interactive directory picker: a small bubbletea
// navigator over the local filesystem.
type TerminalChooser struct {
	start string
}

func NewTerminalChooser(start string) *TerminalChooser {
	if start == "" {
		start, _ = os.UserHomeDir()
	}
	return &TerminalChooser{start: start}
}

// Supported requires an interactive terminal on both ends.
func (c *TerminalChooser) Supported() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

func (c *TerminalChooser) Pick(ctx context.Context) (string, error) {
	m := newNavModel(c.start)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	result, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}

	final, ok := result.(*navModel)
	if !ok || final.cancelled {
		return "", ErrAborted
	}
	return final.chosen, nil
}

// FixedChooser grants a predetermined directory without interaction.
// Used for the --dir flag and for headless runs.
type FixedChooser struct {
	Dir string
}

func (c FixedChooser) Supported() bool {
	return c.Dir != ""
}

func (c FixedChooser) Pick(context.Context) (string, error) {
	return c.Dir, nil
}

var (
	styleNavTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("73"))
	styleNavPath  = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	styleNavDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	styleNavSel   = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("255"))
	styleNavWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
)

type navModel struct {
	dir       string
	subdirs   []string
	cursor    int
	readErr   error
	chosen    string
	cancelled bool
}

func newNavModel(dir string) *navModel {
	m := &navModel{dir: dir}
	m.readDir()
	return m
}

func (m *navModel) readDir() {
	m.subdirs = nil
	m.cursor = 0
	m.readErr = nil

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		m.readErr = err
		return
	}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			m.subdirs = append(m.subdirs, e.Name())
		}
	}
	sort.Strings(m.subdirs)
}

func (m *navModel) Init() tea.Cmd {
	return nil
}

func (m *navModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.subdirs)-1 {
			m.cursor++
		}

	case "enter", "l", "right":
		if m.cursor < len(m.subdirs) {
			m.dir = filepath.Join(m.dir, m.subdirs[m.cursor])
			m.readDir()
		}

	case "backspace", "h", "left":
		parent := filepath.Dir(m.dir)
		if parent != m.dir {
			m.dir = parent
			m.readDir()
		}

	case " ", ".":
		m.chosen = m.dir
		return m, tea.Quit
	}

	return m, nil
}

func (m *navModel) View() string {
	var b strings.Builder

	b.WriteString(styleNavTitle.Render("Choose a directory"))
	b.WriteString("\n\n")
	b.WriteString(styleNavPath.Render(m.dir))
	b.WriteString("\n\n")

	if m.readErr != nil {
		b.WriteString(styleNavWarn.Render("  cannot read: " + m.readErr.Error()))
		b.WriteString("\n")
	} else if len(m.subdirs) == 0 {
		b.WriteString(styleNavDim.Render("  (no subdirectories)"))
		b.WriteString("\n")
	}

	for i, name := range m.subdirs {
		line := "  " + name + "/"
		if i == m.cursor {
			line = styleNavSel.Render("▸ " + name + "/")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleNavDim.Render("[enter] descend  [backspace] up  [space] choose this directory  [esc] cancel"))
	b.WriteString("\n")
	return b.String()
}

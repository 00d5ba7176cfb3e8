// tui/app.go
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/piclens/piclens/internal/config"
	"github.com/piclens/piclens/internal/imagemeta"
	"github.com/piclens/piclens/internal/listing"
	"github.com/piclens/piclens/internal/model"
	"github.com/piclens/piclens/internal/picker"
	"github.com/piclens/piclens/internal/scanner"
)

type Phase int

const (
	PhaseScanning Phase = iota
	PhaseIdle
	PhaseFailed
)

// dimInfo is the lazily probed pixel metadata for one file.
type dimInfo struct {
	width, height int
	format        string
	err           error
}

type Model struct {
	cfg     *config.Config
	session *picker.Session
	scanner scanner.Scanner
	grant   *picker.Grant

	files   []model.ImageFile // scan snapshot, discovery order preserved by listing.Sort
	rows    []model.ImageFile // files under the active sort spec
	spec    listing.Spec
	skipped int

	cursor       int
	scrollOffset int

	width, height int

	phase    Phase
	scanErr  error
	showHelp bool

	dims    map[string]dimInfo // keyed by RelPath
	probing map[string]bool

	repick bool

	keys        keyMap
	frame       int
	animRunning bool
}

func NewModel(cfg *config.Config, session *picker.Session, grant *picker.Grant) *Model {
	return &Model{
		cfg:     cfg,
		session: session,
		scanner: scanner.NewWalker(cfg.MaxDepth, nil),
		grant:   grant,
		spec:    listing.DefaultSpec(),
		keys:    newKeyMap(),
		dims:    make(map[string]dimInfo),
		probing: make(map[string]bool),
	}
}

// Run shows the browser for one granted directory. It reports whether the
// user asked to pick another directory instead of quitting.
func Run(cfg *config.Config, session *picker.Session, grant *picker.Grant) (repick bool, err error) {
	m := NewModel(cfg, session, grant)
	p := tea.NewProgram(m, tea.WithAltScreen())

	result, err := p.Run()
	if err != nil {
		return false, err
	}
	if final, ok := result.(*Model); ok {
		return final.repick, nil
	}
	return false, nil
}

func (m *Model) Init() tea.Cmd {
	m.phase = PhaseScanning
	m.animRunning = true
	return tea.Batch(
		m.scan(),
		func() tea.Msg { return animTickMsg{} },
	)
}

type scanDoneMsg struct{ res *scanner.Result }
type scanErrMsg struct{ err error }
type dimsProbedMsg struct {
	relPath string
	info    dimInfo
}
type animTickMsg struct{}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case animTickMsg:
		m.frame++
		if m.phase == PhaseScanning {
			return m, m.animTick()
		}
		m.animRunning = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case scanDoneMsg:
		m.phase = PhaseIdle
		m.scanErr = nil
		m.files = msg.res.Files
		m.skipped = len(msg.res.Skipped)
		m.spec = listing.DefaultSpec()
		m.dims = make(map[string]dimInfo)
		m.probing = make(map[string]bool)
		m.buildRows()
		return m, nil

	case scanErrMsg:
		m.phase = PhaseFailed
		m.scanErr = msg.err
		return m, nil

	case dimsProbedMsg:
		delete(m.probing, msg.relPath)
		m.dims[msg.relPath] = msg.info
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Pick):
		m.repick = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Rescan):
		if m.phase == PhaseScanning {
			return m, nil
		}
		m.phase = PhaseScanning
		return m, tea.Batch(m.scan(), m.ensureAnimTick())

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.SortName):
		m.spec = m.spec.Select(listing.KeyName)
		m.buildRows()
		return m, nil

	case key.Matches(msg, m.keys.SortModified):
		m.spec = m.spec.Select(listing.KeyModifiedAt)
		m.buildRows()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m, m.probeDims()
	}

	return m, nil
}

// buildRows re-sorts the snapshot under the active spec. The snapshot itself
// is never reordered, so toggling direction stays cheap and side-effect-free.
func (m *Model) buildRows() {
	m.rows = listing.Sort(m.files, m.spec)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() *model.ImageFile {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m *Model) scan() tea.Cmd {
	handle := m.grant.Handle
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		res, err := m.scanner.Scan(ctx, handle)
		if err != nil {
			return scanErrMsg{err}
		}
		return scanDoneMsg{res}
	}
}

func (m *Model) probeDims() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	if _, done := m.dims[f.RelPath]; done || m.probing[f.RelPath] {
		return nil
	}
	m.probing[f.RelPath] = true

	rec := *f
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rc, err := rec.Open(ctx)
		if err != nil {
			return dimsProbedMsg{relPath: rec.RelPath, info: dimInfo{err: err}}
		}
		defer rc.Close()

		w, h, format, err := imagemeta.Dimensions(rc)
		return dimsProbedMsg{relPath: rec.RelPath, info: dimInfo{width: w, height: h, format: format, err: err}}
	}
}

func (m *Model) animTick() tea.Cmd {
	m.animRunning = true
	return tea.Tick(100*time.Millisecond, func(_ time.Time) tea.Msg {
		return animTickMsg{}
	})
}

func (m *Model) ensureAnimTick() tea.Cmd {
	if m.animRunning {
		return nil
	}
	return m.animTick()
}

// tui/view.go
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/piclens/piclens/internal/access"
	"github.com/piclens/piclens/internal/imagemeta"
	"github.com/piclens/piclens/internal/listing"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
			strings.Join(sections, "\n"))
	}

	switch m.phase {
	case PhaseFailed:
		sections = append(sections, m.renderError())
	default:
		sections = append(sections, m.renderTable())
		sections = append(sections, m.renderDetail())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		strings.Join(sections, "\n"))
}

func (m *Model) renderHeader() string {
	title := styleTitle.Render("piclens")
	dir := styleDim.Render("  " + m.grant.Name)

	var spinner string
	if m.phase == PhaseScanning {
		spinner = "  " + renderSpinner(m.frame) + " Scanning..."
	}

	count := ""
	if m.phase == PhaseIdle {
		count = "  " + styleDim.Render(fmt.Sprintf("%d images", len(m.rows)))
		if m.skipped > 0 {
			count += "  " + styleWarn.Render(fmt.Sprintf("%d skipped", m.skipped))
		}
	}

	return title + dir + spinner + count + "\n"
}

func (m *Model) renderTable() string {
	if m.phase == PhaseScanning {
		return styleDim.Render("  walking directory tree...")
	}
	if len(m.rows) == 0 {
		return styleDim.Render("  no images found here") + "\n" +
			styleDim.Render("  press ") + styleKey.Render("o") + styleDim.Render(" to choose another directory")
	}

	visible := m.visibleRows()
	nameW := m.width * 2 / 5
	if nameW < 16 {
		nameW = 16
	}

	var b strings.Builder
	b.WriteString(styleTableHdr.Render(fmt.Sprintf("  %-*s %10s  %-16s %s", nameW, m.columnTitle("NAME", listing.KeyName), "SIZE", m.columnTitle("MODIFIED", listing.KeyModifiedAt), "PATH")))
	b.WriteString("\n")

	for i := m.scrollOffset; i < m.scrollOffset+visible && i < len(m.rows); i++ {
		f := m.rows[i]
		name := ansi.Truncate(f.Name, nameW, "…")
		line := fmt.Sprintf("  %-*s %10s  %-16s %s",
			nameW, name,
			f.HumanSize(),
			f.ModifiedAt.Format("2006-01-02 15:04"),
			styleDim.Render(f.Dir()),
		)
		if i == m.cursor {
			line = styleSelected.Render(ansi.Truncate("▸"+line[1:], m.width, "…"))
		} else {
			line = styleFileName.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// columnTitle marks the active sort column with its direction.
func (m *Model) columnTitle(label string, key listing.Key) string {
	if m.spec.Key != key {
		return label
	}
	arrow := "↑"
	if m.spec.Direction == listing.Desc {
		arrow = "↓"
	}
	return styleSortTag.Render(label + arrow)
}

func (m *Model) visibleRows() int {
	// header + table header + detail box + footer
	v := m.height - 10
	if v < 3 {
		v = 3
	}
	// Keep the cursor in the window
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+v {
		m.scrollOffset = m.cursor - v + 1
	}
	return v
}

func (m *Model) renderDetail() string {
	f := m.selected()
	if f == nil || m.phase != PhaseIdle {
		return ""
	}

	var lines []string
	lines = append(lines, styleTitle.Render(f.Name))
	lines = append(lines, styleDim.Render("path  ")+f.RelPath)
	lines = append(lines, styleDim.Render("size  ")+fmt.Sprintf("%s (%d bytes)", f.HumanSize(), f.Size))
	lines = append(lines, styleDim.Render("type  ")+imagemeta.MIME(f.Name))
	lines = append(lines, styleDim.Render("mod   ")+f.ModifiedAt.Format("2006-01-02 15:04:05"))

	if d, ok := m.dims[f.RelPath]; ok {
		if d.err != nil {
			lines = append(lines, styleWarn.Render("dims  unreadable: "+d.err.Error()))
		} else {
			lines = append(lines, styleDim.Render("dims  ")+fmt.Sprintf("%d×%d %s", d.width, d.height, d.format))
		}
	} else if m.probing[f.RelPath] {
		lines = append(lines, styleDim.Render("dims  probing..."))
	} else {
		lines = append(lines, styleDim.Render("dims  press ")+styleKey.Render("enter")+styleDim.Render(" to probe"))
	}

	return styleDetailBox.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderError() string {
	var b strings.Builder
	b.WriteString(styleError.Render("  Scan failed"))
	b.WriteString("\n\n")

	var ae *access.Error
	if errors.As(m.scanErr, &ae) {
		b.WriteString("  " + ae.Message)
		b.WriteString("\n\n")
		if ae.Retryable() {
			b.WriteString(styleDim.Render("  press ") + styleKey.Render("r") + styleDim.Render(" to retry or ") +
				styleKey.Render("o") + styleDim.Render(" to choose another directory"))
		} else {
			b.WriteString(styleDim.Render("  press ") + styleKey.Render("o") + styleDim.Render(" to choose another directory"))
		}
	} else if m.scanErr != nil {
		// Opaque error with no structured identity: fall back to bucketing
		// its message text to pick the right affordance.
		b.WriteString("  " + m.scanErr.Error())
		b.WriteString("\n\n")
		switch access.ClassifyMessage(m.scanErr.Error()) {
		case access.KindPermissionDenied, access.KindUnsupported:
			b.WriteString(styleDim.Render("  press ") + styleKey.Render("o") + styleDim.Render(" to choose another directory"))
		default:
			b.WriteString(styleDim.Render("  press ") + styleKey.Render("r") + styleDim.Render(" to retry"))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderHelp() string {
	rows := [][2]string{
		{"↑/k ↓/j", "move"},
		{"g / G", "top / bottom"},
		{"n", "sort by name (again to flip)"},
		{"m", "sort by modified (again to flip)"},
		{"enter", "probe pixel dimensions"},
		{"r", "rescan this directory"},
		{"o", "choose another directory"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("  Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n", styleKey.Render(fmt.Sprintf("%-8s", r[0])), r[1]))
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	parts := []string{
		styleKey.Render("n") + styleDim.Render(" name"),
		styleKey.Render("m") + styleDim.Render(" modified"),
		styleKey.Render("r") + styleDim.Render(" rescan"),
		styleKey.Render("o") + styleDim.Render(" directory"),
		styleKey.Render("?") + styleDim.Render(" help"),
		styleKey.Render("q") + styleDim.Render(" quit"),
	}
	return "\n" + "  " + strings.Join(parts, "  ")
}

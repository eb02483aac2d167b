package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/lectorhq/lector/speech"
)

const (
	ellipsis   = "…"
	helpHeight = 5
)

var (
	statusBarNoteFg = lipgloss.AdaptiveColor{Light: "#656565", Dark: "#7D7D7D"}
	statusBarBg     = lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#242424"}

	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ECFD65")).
			Background(lipgloss.Color("#5A56E0")).
			Bold(true).
			Padding(0, 1)

	statusBarNoteStyle = lipgloss.NewStyle().
				Foreground(statusBarNoteFg).
				Background(statusBarBg)

	statusBarErrStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF5F87")).
				Background(statusBarBg)

	statusBarScrollPosStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#949494", Dark: "#5A5A5A"}).
				Background(statusBarBg)

	stateSpeakingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#04B575")).
				Background(statusBarBg).
				Padding(0, 1)

	statePausedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ECFD65")).
				Background(statusBarBg).
				Padding(0, 1)

	stateIdleStyle = lipgloss.NewStyle().
			Foreground(statusBarNoteFg).
			Background(statusBarBg).
			Padding(0, 1)

	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5A56E0")).
				Bold(true)

	readingLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ECFD65")).
				Bold(true)

	cursorLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#DDDDDD"}).
			Underline(true)

	cursorMarkerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5A56E0")).
				Bold(true)

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#3C3C3C", Dark: "#AAAAAA"})

	emptyStyle = lipgloss.NewStyle().
			Foreground(statusBarNoteFg).
			Italic(true)

	helpViewStyle = lipgloss.NewStyle().
			Foreground(statusBarNoteFg).
			Padding(1, 2)
)

func (m readerModel) statusBarView(b *strings.Builder) {
	logo := logoStyle.Render("Lector")
	state := stateIndicator(m.state)

	// Position indicator, 1-based like the status lines.
	position := ""
	if !m.doc.IsEmpty() {
		position = statusBarScrollPosStyle.Render(
			fmt.Sprintf(" %d/%d ", m.cursor.Section+1, m.doc.SectionCount()))
	}

	percent := math.Max(0, math.Min(1, m.viewport.ScrollPercent()))
	scroll := statusBarScrollPosStyle.Render(fmt.Sprintf(" %3.f%% ", percent*100))

	noteStyle := statusBarNoteStyle
	if m.statusIsErr {
		noteStyle = statusBarErrStyle
	}
	noteWidth := m.width -
		lipgloss.Width(logo) -
		lipgloss.Width(state) -
		lipgloss.Width(position) -
		lipgloss.Width(scroll)
	note := " " + m.statusText
	if noteWidth > 0 {
		note = truncate.StringWithTail(note, uint(noteWidth), ellipsis) //nolint:gosec
		note += strings.Repeat(" ", max(0, noteWidth-runewidth.StringWidth(note)))
	}
	note = noteStyle.Render(note)

	fmt.Fprint(b, logo+state+note+position+scroll)
}

func stateIndicator(s speech.State) string {
	switch s {
	case speech.StateSpeaking:
		return stateSpeakingStyle.Render("▶")
	case speech.StatePaused:
		return statePausedStyle.Render("⏸")
	default:
		return stateIdleStyle.Render("■")
	}
}

func (m readerModel) helpView() string {
	col1 := []string{
		"space    play/pause",
		"enter    read from cursor",
		"s        stop",
		"r        reload file",
	}
	col2 := []string{
		"j/k      move cursor",
		"n/p      next/previous section",
		"g/G      top/bottom",
		"q        quit",
	}

	var rows []string
	for i := range col1 {
		rows = append(rows, fmt.Sprintf("%-28s%s", col1[i], col2[i]))
	}
	return helpViewStyle.Render(strings.Join(rows, "\n")) + "\n"
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lectorhq/lector/document"
	"github.com/lectorhq/lector/speech"
)

const statusBarHeight = 1

// readerModel is the top-level Bubble Tea model. It renders the segmented
// document in a viewport, tracks two positions (the read head driven by the
// controller and a cursor driven by the keyboard), and forwards playback
// keys to the controller.
type readerModel struct {
	cfg  Config
	ctrl *speech.Controller

	doc     document.Document
	cursor  document.Position
	reading document.Position
	state   speech.State

	statusText  string
	statusIsErr bool

	viewport viewport.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	fatalErr error
}

func newReaderModel(cfg Config, ctrl *speech.Controller) readerModel {
	return readerModel{
		cfg:        cfg,
		ctrl:       ctrl,
		doc:        ctrl.Document(),
		state:      ctrl.State(),
		statusText: speech.StatusUpdate{Status: speech.StatusReady}.String(),
	}
}

func (m readerModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.cfg.Watch && m.cfg.Path != "" {
		cmds = append(cmds, watchFileCmd(m.cfg.Path))
	}
	if m.cfg.Autoplay {
		ctrl := m.ctrl
		cmds = append(cmds, func() tea.Msg {
			if err := ctrl.Start(); err != nil {
				log.Error("autoplay failed", "error", err)
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}

func (m readerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusBarHeight
		}
		m.viewport.SetContent(m.renderDocument())

	case tea.KeyMsg:
		model, cmd := m.handleKey(msg)
		return model, cmd

	case speech.PositionMsg:
		m.reading = msg.Position
		m.cursor = msg.Position
		m.viewport.SetContent(m.renderDocument())
		m.scrollTo(m.reading)

	case speech.StateMsg:
		m.state = msg.State

	case speech.StatusMsg:
		m.statusText = msg.Update.String()
		m.statusIsErr = msg.Update.Status == speech.StatusError

	case speech.DocumentLoadedMsg:
		if msg.Err != nil {
			m.statusText = "Reload failed: " + msg.Err.Error()
			m.statusIsErr = true
			break
		}
		m.doc = msg.Document
		m.cursor = m.doc.Clamp(m.cursor)
		m.reading = document.Position{}
		m.viewport.SetContent(m.renderDocument())

	case fileChangedMsg:
		log.Debug("document changed on disk", "path", msg.path)
		cmds = append(cmds, reloadCmd(m.ctrl, msg.path), watchFileCmd(msg.path))

	case watchErrMsg:
		log.Warn("file watch stopped", "error", msg.err)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m readerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.ctrl.Stop() //nolint:errcheck
		return m, tea.Quit

	case " ":
		// Space starts from idle and toggles pause otherwise.
		var err error
		if m.state == speech.StateIdle {
			err = m.ctrl.Start()
		} else {
			err = m.ctrl.Pause()
		}
		if err != nil {
			log.Error("playback key failed", "error", err)
		}
		return m, nil

	case "enter":
		if err := m.ctrl.Seek(m.cursor.Section, m.cursor.Line, true); err != nil {
			log.Error("seek failed", "error", err)
		}
		return m, nil

	case "s":
		if err := m.ctrl.Stop(); err != nil {
			log.Error("stop failed", "error", err)
		}
		return m, nil

	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "n", "]":
		m.moveSection(1)
	case "p", "[":
		m.moveSection(-1)
	case "g", "home":
		m.cursor = document.Position{}
	case "G", "end":
		if n := m.doc.SectionCount(); n > 0 {
			m.cursor = document.Position{
				Section: n - 1,
				Line:    m.doc.LineCount(n-1) - 1,
			}
		}

	case "r":
		if m.cfg.Path != "" {
			return m, reloadCmd(m.ctrl, m.cfg.Path)
		}
		return m, nil

	case "?":
		m.showHelp = !m.showHelp
		m.viewport.Height = m.height - statusBarHeight
		if m.showHelp {
			m.viewport.Height -= helpHeight
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.viewport.SetContent(m.renderDocument())
	m.scrollTo(m.cursor)
	return m, nil
}

// moveCursor steps the cursor delta lines, crossing section boundaries.
func (m *readerModel) moveCursor(delta int) {
	if m.doc.IsEmpty() {
		return
	}
	pos := m.cursor
	pos.Line += delta
	for pos.Line < 0 && pos.Section > 0 {
		pos.Section--
		pos.Line += m.doc.LineCount(pos.Section)
	}
	for pos.Section < m.doc.SectionCount() && pos.Line >= m.doc.LineCount(pos.Section) {
		pos.Line -= m.doc.LineCount(pos.Section)
		pos.Section++
	}
	m.cursor = m.doc.Clamp(pos)
}

// moveSection jumps the cursor to the start of an adjacent section.
func (m *readerModel) moveSection(delta int) {
	if m.doc.IsEmpty() {
		return
	}
	m.cursor = m.doc.Clamp(document.Position{Section: m.cursor.Section + delta})
	m.cursor.Line = 0
}

func (m readerModel) View() string {
	if m.fatalErr != nil {
		return "Error: " + m.fatalErr.Error() + "\n"
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	fmt.Fprint(&b, m.viewport.View()+"\n")
	if m.showHelp {
		fmt.Fprint(&b, m.helpView())
	}
	m.statusBarView(&b)
	return b.String()
}

// renderDocument produces the viewport content with section headers and
// one row per line, highlighting the read head and the cursor.
func (m readerModel) renderDocument() string {
	if m.doc.IsEmpty() {
		return emptyStyle.Render("Nothing to read.")
	}

	reading := m.state != speech.StateIdle

	var b strings.Builder
	for si, sec := range m.doc.Sections {
		if si > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sectionTitleStyle.Render(sec.Title))
		b.WriteByte('\n')

		for li, line := range sec.Lines {
			pos := document.Position{Section: si, Line: li}
			marker := "  "
			if pos == m.cursor {
				marker = cursorMarkerStyle.Render("> ")
			}

			text := line.Text
			switch {
			case reading && pos == m.reading:
				text = readingLineStyle.Render(text)
			case pos == m.cursor:
				text = cursorLineStyle.Render(text)
			default:
				text = lineStyle.Render(text)
			}
			b.WriteString(marker + text + "\n")
		}
	}
	return b.String()
}

// rowFor maps a document position to its rendered row.
func (m readerModel) rowFor(pos document.Position) int {
	row := 0
	for si := 0; si < pos.Section && si < m.doc.SectionCount(); si++ {
		// Title plus lines plus the blank spacer before the next section.
		row += 1 + m.doc.LineCount(si) + 1
	}
	return row + 1 + pos.Line
}

// scrollTo keeps a position inside the visible window.
func (m *readerModel) scrollTo(pos document.Position) {
	row := m.rowFor(pos)
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	if row >= top && row <= bottom {
		return
	}
	offset := row - m.viewport.Height/3
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}

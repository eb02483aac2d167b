package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lectorhq/lector/document"
	"github.com/lectorhq/lector/speech"
	"github.com/lectorhq/lector/speech/engines/mock"
)

func testModel(t *testing.T, text string) readerModel {
	t.Helper()
	ctrl := speech.NewController(mock.New())
	if _, err := ctrl.LoadText(text); err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	m := newReaderModel(Config{}, ctrl)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(readerModel)
}

func TestCursorMovesAcrossSections(t *testing.T) {
	m := testModel(t, "First line here.\n\nSecond paragraph text.")

	if n := m.doc.SectionCount(); n != 2 {
		t.Fatalf("sections = %d, want 2", n)
	}

	m.moveCursor(1)
	if m.cursor != (document.Position{Section: 1, Line: 0}) {
		t.Errorf("cursor after down = %+v", m.cursor)
	}

	m.moveCursor(-1)
	if m.cursor != (document.Position{Section: 0, Line: 0}) {
		t.Errorf("cursor after up = %+v", m.cursor)
	}

	// Stepping past the end clamps.
	m.moveCursor(10)
	if !m.doc.Contains(m.cursor) {
		t.Errorf("cursor out of range: %+v", m.cursor)
	}
}

func TestSectionJumps(t *testing.T) {
	m := testModel(t, "One.\n\nTwo.\n\nThree.")

	m.moveSection(1)
	if m.cursor.Section != 1 || m.cursor.Line != 0 {
		t.Errorf("cursor = %+v, want section 1 line 0", m.cursor)
	}
	m.moveSection(5)
	if m.cursor.Section != 2 {
		t.Errorf("cursor = %+v, want clamped to last section", m.cursor)
	}
	m.moveSection(-5)
	if m.cursor.Section != 0 {
		t.Errorf("cursor = %+v, want clamped to first section", m.cursor)
	}
}

func TestRowForAccountsForTitles(t *testing.T) {
	m := testModel(t, "One.\n\nTwo.")

	// Row 0 is the first title, row 1 its line.
	if got := m.rowFor(document.Position{}); got != 1 {
		t.Errorf("rowFor(0,0) = %d, want 1", got)
	}
	// Section 1 starts after title, line, and spacer.
	if got := m.rowFor(document.Position{Section: 1}); got != 4 {
		t.Errorf("rowFor(1,0) = %d, want 4", got)
	}
}

func TestRenderShowsTitlesAndText(t *testing.T) {
	m := testModel(t, "Hello world sentence.")

	out := m.renderDocument()
	if !strings.Contains(out, "Section 1") {
		t.Errorf("missing section title:\n%s", out)
	}
	if !strings.Contains(out, "Hello world sentence.") {
		t.Errorf("missing line text:\n%s", out)
	}
}

func TestStatusMessageUpdates(t *testing.T) {
	m := testModel(t, "Hello.")

	updated, _ := m.Update(speech.StatusMsg{
		Update: speech.StatusUpdate{Status: speech.StatusReading, Section: 0, TotalSections: 1},
	})
	m = updated.(readerModel)
	if m.statusText != "Reading section 1 of 1." {
		t.Errorf("statusText = %q", m.statusText)
	}
	if m.statusIsErr {
		t.Error("reading status flagged as error")
	}
}

func TestPositionMessageMovesHighlight(t *testing.T) {
	m := testModel(t, "One.\n\nTwo.")

	updated, _ := m.Update(speech.PositionMsg{Position: document.Position{Section: 1}})
	m = updated.(readerModel)
	if m.reading != (document.Position{Section: 1}) {
		t.Errorf("reading = %+v", m.reading)
	}
	if m.cursor != m.reading {
		t.Errorf("cursor should follow the read head, got %+v", m.cursor)
	}
}

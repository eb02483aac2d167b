// Package document models a loaded file as an addressable structure of
// sections and lines and converts raw extracted text into that structure.
package document

import "strings"

// Line is the smallest independently addressable unit of text.
type Line struct {
	Text         string // Plain text content
	SectionIndex int    // Index of the owning section
	LineIndex    int    // Index within the owning section
}

// Section is a titled group of consecutive lines read as one unit.
type Section struct {
	Title string // Display title
	Lines []Line // Ordered lines, never empty after segmentation
}

// Document is the whole addressable text of one loaded file.
// It is created once per load and replaced wholesale, never mutated.
type Document struct {
	Sections []Section
}

// Position addresses a single line within a Document.
type Position struct {
	Section int // Section index (0-based)
	Line    int // Line index within the section (0-based)
}

// IsEmpty reports whether the document has no sections.
func (d Document) IsEmpty() bool {
	return len(d.Sections) == 0
}

// SectionCount returns the number of sections.
func (d Document) SectionCount() int {
	return len(d.Sections)
}

// LineCount returns the number of lines in section i, or 0 when i is out
// of range.
func (d Document) LineCount(i int) int {
	if i < 0 || i >= len(d.Sections) {
		return 0
	}
	return len(d.Sections[i].Lines)
}

// Clamp forces a position into the valid address range of the document.
// On an empty document it returns the zero position.
func (d Document) Clamp(pos Position) Position {
	if d.IsEmpty() {
		return Position{}
	}
	if pos.Section < 0 {
		pos.Section = 0
	}
	if pos.Section >= len(d.Sections) {
		pos.Section = len(d.Sections) - 1
	}
	lines := d.Sections[pos.Section].Lines
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(lines) {
		pos.Line = len(lines) - 1
	}
	return pos
}

// Contains reports whether pos is a valid address into the document.
func (d Document) Contains(pos Position) bool {
	if pos.Section < 0 || pos.Section >= len(d.Sections) {
		return false
	}
	return pos.Line >= 0 && pos.Line < len(d.Sections[pos.Section].Lines)
}

// LineAt returns the line at pos, or false if pos is out of range.
func (d Document) LineAt(pos Position) (Line, bool) {
	if !d.Contains(pos) {
		return Line{}, false
	}
	return d.Sections[pos.Section].Lines[pos.Line], true
}

// SectionText returns the newline-joined text of all lines in section i.
func (d Document) SectionText(i int) string {
	if i < 0 || i >= len(d.Sections) {
		return ""
	}
	return joinLines(d.Sections[i].Lines)
}

// TailText returns the newline-joined text of section pos.Section starting
// at pos.Line and running to the end of the section.
func (d Document) TailText(pos Position) string {
	if !d.Contains(pos) {
		return ""
	}
	return joinLines(d.Sections[pos.Section].Lines[pos.Line:])
}

func joinLines(lines []Line) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = line.Text
	}
	return strings.Join(parts, "\n")
}

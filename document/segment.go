package document

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// mergeTarget is the accumulator size below which adjacent sentence
	// fragments keep merging into one spoken line.
	mergeTarget = 80

	// shortFragment is the length below which a fragment is always merged
	// into the preceding line, to avoid very short utterances.
	shortFragment = 40

	// placeholderText fills sections that end up with no content so that
	// every section stays addressable.
	placeholderText = "(empty)"

	qaSectionTitle = "Q and A"
)

var (
	questionMarker = regexp.MustCompile(`(?i)^(?:question|q)[:.)\-]\s+`)
	answerMarker   = regexp.MustCompile(`(?i)^(?:answer|a)[:.)\-]\s+`)
)

// Segment converts raw text into a Document. The input is normalized first,
// so callers may pass extractor output directly. Segmentation is a pure
// function of its input: identical text always yields an identical Document.
func Segment(text string) Document {
	text = Normalize(text)
	if text == "" {
		return Document{}
	}

	lines := physicalLines(text)
	if isQuestionAnswer(lines) {
		return segmentQA(lines)
	}
	return segmentParagraphs(text)
}

// physicalLines returns the non-empty trimmed lines of normalized text.
func physicalLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// isQuestionAnswer reports whether the text follows a question/answer
// layout: at least one line with a question marker and one with an answer
// marker.
func isQuestionAnswer(lines []string) bool {
	question, answer := false, false
	for _, line := range lines {
		if questionMarker.MatchString(line) {
			question = true
		}
		if answerMarker.MatchString(line) {
			answer = true
		}
		if question && answer {
			return true
		}
	}
	return false
}

// segmentQA groups lines into sections, starting a new section on every
// question-marker line. The first line always opens a section so that
// leading content before the first question is preserved.
func segmentQA(lines []string) Document {
	var doc Document
	for _, text := range lines {
		if len(doc.Sections) == 0 || questionMarker.MatchString(text) {
			doc.Sections = append(doc.Sections, Section{Title: qaSectionTitle})
		}
		appendLine(&doc, text)
	}
	fillEmptySections(&doc)
	return doc
}

// segmentParagraphs splits normalized text into paragraphs on blank-line
// boundaries. Each paragraph becomes a section whose lines are produced by
// sentence splitting and merging.
func segmentParagraphs(text string) Document {
	var doc Document
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.Join(strings.Fields(para), " ")
		if para == "" {
			continue
		}
		doc.Sections = append(doc.Sections, Section{
			Title: fmt.Sprintf("Section %d", len(doc.Sections)+1),
		})
		for _, sentence := range splitSentences(para) {
			appendLine(&doc, sentence)
		}
	}
	fillEmptySections(&doc)
	return doc
}

// splitSentences cuts a whitespace-collapsed paragraph after '.', '!' or '?'
// followed by a space, keeping the punctuation with the preceding fragment,
// then greedily merges adjacent fragments into reading-sized lines.
func splitSentences(para string) []string {
	var fragments []string
	start := 0
	for i := 0; i+1 < len(para); i++ {
		if (para[i] == '.' || para[i] == '!' || para[i] == '?') && para[i+1] == ' ' {
			frag := strings.TrimSpace(para[start : i+1])
			if frag != "" {
				fragments = append(fragments, frag)
			}
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(para[start:]); rest != "" {
		fragments = append(fragments, rest)
	}

	var lines []string
	acc := ""
	for _, frag := range fragments {
		switch {
		case acc == "":
			acc = frag
		case len(acc) < mergeTarget || len(frag) < shortFragment:
			acc += " " + frag
		default:
			lines = append(lines, acc)
			acc = frag
		}
	}
	if acc != "" {
		lines = append(lines, acc)
	}
	return lines
}

// appendLine adds text as the next line of the document's last section,
// stamping it with its stable address.
func appendLine(doc *Document, text string) {
	idx := len(doc.Sections) - 1
	sec := &doc.Sections[idx]
	sec.Lines = append(sec.Lines, Line{
		Text:         text,
		SectionIndex: idx,
		LineIndex:    len(sec.Lines),
	})
}

// fillEmptySections gives every empty section a single placeholder line so
// that section addresses always resolve.
func fillEmptySections(doc *Document) {
	for i := range doc.Sections {
		if len(doc.Sections[i].Lines) == 0 {
			doc.Sections[i].Lines = []Line{{
				Text:         placeholderText,
				SectionIndex: i,
			}}
		}
	}
}

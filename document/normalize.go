package document

import "strings"

// Normalize prepares raw extracted text for segmentation: line endings are
// unified to "\n", runs of spaces and tabs collapse to a single space, each
// line is trimmed, runs of blank lines cap at one blank line, and leading
// and trailing blank lines are dropped.
//
// Normalize is idempotent: applying it twice yields the same result as once.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	blanks := 0
	for _, line := range raw {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blanks++
			// One blank line marks a paragraph boundary; more add nothing.
			if blanks > 1 || len(out) == 0 {
				continue
			}
			out = append(out, "")
			continue
		}
		blanks = 0
		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

package extract

import "io"

// TextExtractor handles plain text files. The bytes pass through as is;
// normalization happens downstream.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tt := []struct {
		filename string
		want     string
	}{
		{"notes.txt", "*extract.TextExtractor"},
		{"README.md", "*extract.MarkdownExtractor"},
		{"guide.markdown", "*extract.MarkdownExtractor"},
		{"page.html", "*extract.HTMLExtractor"},
		{"page.HTM", "*extract.HTMLExtractor"},
		{"paper.pdf", "*extract.PDFExtractor"},
		{"report.docx", "*extract.DOCXExtractor"},
	}
	for _, tc := range tt {
		ex, err := ForFile(tc.filename)
		if err != nil {
			t.Errorf("ForFile(%q): %v", tc.filename, err)
			continue
		}
		// The concrete type is the contract here.
		if got := typeName(ex); got != tc.want {
			t.Errorf("ForFile(%q) = %s, want %s", tc.filename, got, tc.want)
		}
	}

	if _, err := ForFile("archive.zip"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ForFile(archive.zip) = %v, want ErrUnsupportedFormat", err)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextExtractor:
		return "*extract.TextExtractor"
	case *MarkdownExtractor:
		return "*extract.MarkdownExtractor"
	case *HTMLExtractor:
		return "*extract.HTMLExtractor"
	case *PDFExtractor:
		return "*extract.PDFExtractor"
	case *DOCXExtractor:
		return "*extract.DOCXExtractor"
	}
	return "unknown"
}

func TestTextExtractor(t *testing.T) {
	ex := &TextExtractor{}
	got, err := ex.Extract(strings.NewReader("hello\nworld"), "a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello\nworld" {
		t.Errorf("got %q", got)
	}
}

func TestMarkdownExtractor(t *testing.T) {
	src := "# Intro\n\nFirst paragraph with *emphasis*.\n\n```go\nfmt.Println(1)\n```\n\n- one\n- two\n"
	ex := &MarkdownExtractor{}
	got, err := ex.Extract(strings.NewReader(src), "a.md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Intro") {
		t.Errorf("heading text missing: %q", got)
	}
	if !strings.Contains(got, "First paragraph") {
		t.Errorf("paragraph missing: %q", got)
	}
	if strings.Contains(got, "Println") {
		t.Errorf("code block should be dropped: %q", got)
	}
	if !strings.Contains(got, "one") || !strings.Contains(got, "two") {
		t.Errorf("list items missing: %q", got)
	}
}

func TestHTMLExtractor(t *testing.T) {
	src := `<html><head><title>T</title><script>junk()</script></head>
<body><h1>Title</h1><p>Body   text.</p><nav>skip me</nav></body></html>`
	ex := &HTMLExtractor{}
	got, err := ex.Extract(strings.NewReader(src), "a.html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Title") || !strings.Contains(got, "Body text.") {
		t.Errorf("content missing: %q", got)
	}
	if strings.Contains(got, "junk") || strings.Contains(got, "skip me") {
		t.Errorf("non-content leaked: %q", got)
	}
}

func TestFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("  \n\n "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := File(path); !errors.Is(err, ErrNoReadableText) {
		t.Errorf("File(empty) = %v, want ErrNoReadableText", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# Hi\n\nSome text."), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := File(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Some text.") {
		t.Errorf("got %q", got)
	}
}

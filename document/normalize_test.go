package document

import "testing"

// TestNormalize verifies whitespace and line-ending cleanup.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unifies line endings",
			input: "one\r\ntwo\rthree",
			want:  "one\ntwo\nthree",
		},
		{
			name:  "collapses runs of spaces and tabs",
			input: "a  b\t\tc",
			want:  "a b c",
		},
		{
			name:  "trims each line",
			input: "  hello  \n  world  ",
			want:  "hello\nworld",
		},
		{
			name:  "caps blank line runs at one",
			input: "one\n\n\n\ntwo",
			want:  "one\n\ntwo",
		},
		{
			name:  "drops leading and trailing blank lines",
			input: "\n\n\nbody\n\n\n",
			want:  "body",
		},
		{
			name:  "empty input stays empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace-only input becomes empty",
			input: "   \n\t\n  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalizeIdempotent verifies that normalizing twice yields the same
// result as normalizing once.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"  messy\r\n\r\n\r\n   text\twith\ttabs  ",
		"a\n\n\nb\n\n\nc",
		"\n\n only body \n\n",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

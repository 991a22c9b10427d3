package article_test

import (
	"stocksnip/internal/article"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims", "  hello world \n", "hello world"},
		{"collapses long newline runs", "a\n\n\n\n\nb", "a \nb"},
		{"joins double newline", "a\n\nb", "a b"},
		{"collapses long space runs", "a     b", "a  b"},
		{"keeps two spaces", "a  b", "a  b"},
		{"removes tabs", "a\tb\t\tc", "abc"},
		{"collapses whitespace-only lines", "a\n \n b", "a\n b"},
		{"collapses NBSP-only lines", "a\n\u00a0\nb", "a\nb"},
		{"collapses Unicode space lines", "a\n\u2028\ufeff\u3000\nb", "a\nb"},
		{"keeps single newline", "line one\nline two", "line one\nline two"},
		{"empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := article.Normalize(test.in); got != test.want {
				t.Fatalf("normalize mismatch: got %q want %q", got, test.want)
			}
		})
	}
}

func TestNormalizeTruncates(t *testing.T) {
	got := article.Normalize(strings.Repeat("x", article.MaxNormalizedChars+5000))

	if n := utf8.RuneCountInString(got); n != article.MaxNormalizedChars {
		t.Fatalf("expected %d characters, got %d", article.MaxNormalizedChars, n)
	}
}

func TestNormalizeTruncatesByCharacter(t *testing.T) {
	got := article.Normalize(strings.Repeat("é", article.MaxNormalizedChars+1))

	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8 after truncation")
	}
	if n := utf8.RuneCountInString(got); n != article.MaxNormalizedChars {
		t.Fatalf("expected %d characters, got %d", article.MaxNormalizedChars, n)
	}
}

func TestNormalizeLengthBound(t *testing.T) {
	inputs := []string{
		strings.Repeat("word \n\n\n\n\t", 10000),
		strings.Repeat("a     ", 9000),
		strings.Repeat("日本語のテキスト。", 5000),
	}

	for i, in := range inputs {
		if n := utf8.RuneCountInString(article.Normalize(in)); n > article.MaxNormalizedChars {
			t.Fatalf("input %d: expected at most %d characters, got %d", i, article.MaxNormalizedChars, n)
		}
	}
}

func TestNormalizeIdempotentOnNormalizedText(t *testing.T) {
	inputs := []string{
		"Apple shares rose  after earnings.\nAnalysts expect growth.",
		"single line",
		"a\nb\nc",
		strings.Repeat("y", article.MaxNormalizedChars),
	}

	for i, in := range inputs {
		if got := article.Normalize(in); got != in {
			t.Fatalf("input %d: expected normalized text to be unchanged, got %q", i, got)
		}
	}
}

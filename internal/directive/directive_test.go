package directive

import (
	"strings"
	"testing"
)

func TestFindLineComment(t *testing.T) {
	m, ok := Find(" eslint-disable", true)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Kind != KindDisable {
		t.Fatalf("kind mismatch: got %s want disable", m.Kind)
	}
}

func TestFindBlockComment(t *testing.T) {
	m, ok := Find(" eslint-disable-next-line ", false)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Kind != KindDisableNextLine {
		t.Fatalf("kind mismatch: got %s want disable-next-line", m.Kind)
	}
}

func TestFindReportsLongerKeyword(t *testing.T) {
	// "disable" textually prefixes "disable-next-line"; the scanner must
	// not stop at the shorter keyword.
	m, ok := Find(" eslint-disable-next-line no-console", true)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Kind != KindDisableNextLine {
		t.Fatalf("kind mismatch: got %s want disable-next-line", m.Kind)
	}
}

func TestFindMatchOffsetsPointAtKeyword(t *testing.T) {
	cases := []struct {
		text       string
		singleLine bool
		want       string
	}{
		{" eslint-disable", true, "disable"},
		{" eslint-disable no-use-before-define", true, "disable"},
		{" eslint-disable-next-line */", false, "disable-next-line"},
		{"*\n * eslint-disable-next-line no-console\n", false, "disable-next-line"},
	}
	for _, tc := range cases {
		m, ok := Find(tc.text, tc.singleLine)
		if !ok {
			t.Fatalf("expected a match for %q", tc.text)
		}
		if got := tc.text[m.Start:m.End]; got != tc.want {
			t.Fatalf("offsets for %q point at %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestFindOnlyInspectsLastLine(t *testing.T) {
	// A directive on an earlier line of a block comment is ignored.
	if _, ok := Find(" eslint-disable\n final line without it ", false); ok {
		t.Fatal("directive on a non-final line should not match")
	}
}

func TestFindBlockCommentClosingOnOwnLine(t *testing.T) {
	// "/*\n * eslint-disable\n*/" leaves content ending in '\n'; that
	// trailing newline must not hide the directive.
	m, ok := Find("\n * eslint-disable\n", false)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Kind != KindDisable {
		t.Fatalf("kind mismatch: got %s want disable", m.Kind)
	}
}

func TestFindTrailingNewlineAnchorsOverWholeText(t *testing.T) {
	// With a trailing newline the whole text is scanned, so words on an
	// earlier line break the anchoring.
	if _, ok := Find("*\n * notes\n * eslint-disable\n", false); ok {
		t.Fatal("non-delimiter characters before the prefix should not match")
	}
}

func TestFindNoPrefix(t *testing.T) {
	inputs := []string{
		"",
		" plain comment",
		" oxlint-disable\nf();",
		" oxlint-disable-next-line ",
		" eslint configuration notes", // prefix token requires the dash
	}
	for _, text := range inputs {
		for _, singleLine := range []bool{true, false} {
			if _, ok := Find(text, singleLine); ok {
				t.Fatalf("unexpected match in %q (singleLine=%v)", text, singleLine)
			}
		}
	}
}

func TestFindAnchoring(t *testing.T) {
	cases := []struct {
		text       string
		singleLine bool
	}{
		{" see eslint-disable docs", true},
		{" x = 1; eslint-disable", true},
		{" * see eslint-disable docs ", false},
		// '*' is only a continuation marker inside block comments
		{" * eslint-disable", true},
	}
	for _, tc := range cases {
		if _, ok := Find(tc.text, tc.singleLine); ok {
			t.Fatalf("prefix preceded by disallowed character should not match: %q", tc.text)
		}
	}
}

func TestFindAllowsLeadingDelimiters(t *testing.T) {
	if _, ok := Find("/ eslint-disable", true); !ok {
		t.Fatal("extra leading slash should be allowed in line comments")
	}
	if _, ok := Find("*\n * eslint-disable no-console\n", false); !ok {
		t.Fatal("leading '*' continuation marker should be allowed in block comments")
	}
}

func TestFindUnmatchedKeyword(t *testing.T) {
	if _, ok := Find(" eslint-enable no-console", true); ok {
		t.Fatal("unknown keyword after the prefix should not match")
	}
}

func TestKindHelp(t *testing.T) {
	if got := KindDisable.Help(); got != "Prefer oxlint-disable instead of eslint-disable" {
		t.Fatalf("unexpected help text: %q", got)
	}
	if got := KindDisableNextLine.Help(); got != "Prefer oxlint-disable-next-line instead of eslint-disable-next-line" {
		t.Fatalf("unexpected help text: %q", got)
	}
}

func TestRewriteDisable(t *testing.T) {
	got := Rewrite(" eslint-disable\nf();", KindDisable)
	if got != " oxlint-disable\nf();" {
		t.Fatalf("unexpected rewrite: %q", got)
	}
}

func TestRewriteDisableNextLine(t *testing.T) {
	got := Rewrite(" eslint-disable-next-line ", KindDisableNextLine)
	if got != " oxlint-disable-next-line " {
		t.Fatalf("unexpected rewrite: %q", got)
	}
}

func TestRewriteKeepsTrailingRuleList(t *testing.T) {
	got := Rewrite(" eslint-disable no-use-before-define", KindDisable)
	if got != " oxlint-disable no-use-before-define" {
		t.Fatalf("trailing rule list must stay untouched: %q", got)
	}
}

func TestRewritePreservesSurroundingBytes(t *testing.T) {
	text := "*\n * eslint-disable-next-line no-console\n"
	m, ok := Find(text, false)
	if !ok {
		t.Fatal("expected a match")
	}
	got := Rewrite(text, m.Kind)
	if len(got) != len(text) {
		t.Fatalf("length changed: %d -> %d", len(text), len(got))
	}
	diff := 0
	for i := range got {
		if got[i] != text[i] {
			diff++
		}
	}
	// "eslint-" -> "oxlint-" touches exactly the namespace prefix.
	if diff == 0 || diff > len(SourcePrefix) {
		t.Fatalf("expected only the namespace prefix to change, %d bytes differ", diff)
	}
	if !strings.Contains(got, "oxlint-disable-next-line no-console") {
		t.Fatalf("rewritten text missing target directive: %q", got)
	}
}

func TestRewriteIsIdempotentUnderRescan(t *testing.T) {
	text := " eslint-disable no-console"
	m, ok := Find(text, true)
	if !ok {
		t.Fatal("expected a match")
	}
	rewritten := Rewrite(text, m.Kind)
	if _, ok := Find(rewritten, true); ok {
		t.Fatalf("rewritten text must no longer match: %q", rewritten)
	}
	if again := Rewrite(rewritten, m.Kind); again != rewritten {
		t.Fatalf("rewrite of rewritten text changed it: %q", again)
	}
}

func TestRewriteKindsAgree(t *testing.T) {
	// Substring-based replacement produces identical output whichever kind
	// the scanner reported for a next-line directive.
	text := " eslint-disable-next-line no-console"
	if Rewrite(text, KindDisable) != Rewrite(text, KindDisableNextLine) {
		t.Fatal("rewrite must be robust to the scanner's kind classification")
	}
}

func TestRewriteWithoutOccurrence(t *testing.T) {
	if got := Rewrite("no directive here", KindDisable); got != "no directive here" {
		t.Fatalf("text without the token must pass through unchanged: %q", got)
	}
}

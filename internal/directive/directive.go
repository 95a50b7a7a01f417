// Package directive locates ESLint suppression directives inside a single
// comment's text and computes the oxlint-namespace replacement for them.
package directive

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind identifies which suppression directive was found.
type Kind int

const (
	KindDisable Kind = iota
	KindDisableNextLine
)

// String returns the directive keyword without its namespace prefix.
func (k Kind) String() string {
	switch k {
	case KindDisableNextLine:
		return "disable-next-line"
	default:
		return "disable"
	}
}

const (
	// SourcePrefix is the namespace being migrated away from.
	SourcePrefix = "eslint-"
	// TargetPrefix is the namespace the rewrite produces.
	TargetPrefix = "oxlint-"
)

// Help returns the remediation advice shown alongside a diagnostic.
func (k Kind) Help() string {
	return "Prefer " + TargetPrefix + k.String() + " instead of " + SourcePrefix + k.String()
}

// keywords ordered longest-first: "disable" is a textual prefix of
// "disable-next-line", so the longer keyword must be tested first or the
// scanner would report the wrong kind for next-line directives.
var keywords = []struct {
	text string
	kind Kind
}{
	{"disable-next-line", KindDisableNextLine},
	{"disable", KindDisable},
}

// Match reports a directive keyword found inside a comment's text.
// Start and End are byte offsets into the scanned text and always satisfy
// text[Start:End] == Kind.String().
type Match struct {
	Kind  Kind
	Start int
	End   int
}

// Find scans a comment's content (delimiters excluded) for an eslint
// suppression directive. Only the last line of the text is inspected: a
// block-style directive lives on its own final content line by convention.
// A trailing newline does not open a new line to inspect; when the text
// ends with '\n' (a block comment closing "*/" on its own line) the whole
// text is scanned instead. The prefix must be anchored: every character
// before it may only be whitespace or a leading delimiter ('/' for line
// comments, '*' or '/' for block comments). Find is pure and allocation
// free.
func Find(text string, singleLine bool) (Match, bool) {
	lineStart := 0
	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 && idx != len(text)-1 {
		lineStart = idx + 1
	}
	line := text[lineStart:]

	idx := strings.Index(line, SourcePrefix)
	if idx < 0 {
		return Match{}, false
	}
	for _, c := range line[:idx] {
		if unicode.IsSpace(c) {
			continue
		}
		if c == '/' {
			continue
		}
		if !singleLine && c == '*' {
			continue
		}
		// prefix appears mid-sentence, not as a directive
		return Match{}, false
	}

	rest := line[idx+len(SourcePrefix):]
	for _, kw := range keywords {
		if !strings.HasPrefix(rest, kw.text) {
			continue
		}
		start := lineStart + idx + len(SourcePrefix)
		end := start + len(kw.text)
		if got := text[start:end]; got != kw.text {
			panic(fmt.Sprintf("directive: matched range %q does not equal keyword %q", got, kw.text))
		}
		return Match{Kind: kw.kind, Start: start, End: end}, true
	}
	return Match{}, false
}

// Rewrite renames the directive's namespace prefix, replacing the first
// occurrence of the source token in the whole text and leaving every other
// byte untouched. The replacement is substring based rather than offset
// based: the disable token textually prefixes the disable-next-line token,
// so both kinds yield the same output for the same input and the rewrite
// stays correct regardless of how the scanner classified the match.
// Trailing rule lists after the keyword are preserved verbatim.
func Rewrite(text string, kind Kind) string {
	token := kind.String()
	return strings.Replace(text, SourcePrefix+token, TargetPrefix+token, 1)
}

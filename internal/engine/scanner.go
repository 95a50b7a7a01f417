package engine

import (
	"bytes"
	"sort"

	"github.com/phyten/lintshift/internal/model"
)

// scanComments extracts every comment from JS-family source, reporting the
// content without delimiters alongside its span. The lexer tracks string
// and template literals so comment markers inside them are ignored. It is
// intentionally lexical: regular expression literals are not modelled, a
// division-vs-regex distinction would need a full parser.
func scanComments(data []byte) []model.Comment {
	if len(data) == 0 {
		return nil
	}
	lineOffsets := computeLineOffsets(data)
	var comments []model.Comment

	i := 0
	n := len(data)
	for i < n {
		c := data[i]
		switch c {
		case '/':
			if i+1 < n && data[i+1] == '/' {
				start := i + 2
				end := start
				for end < n && data[end] != '\n' {
					end++
				}
				contentEnd := end
				if contentEnd > start && data[contentEnd-1] == '\r' {
					contentEnd--
				}
				comments = append(comments, model.Comment{
					Text:       string(data[start:contentEnd]),
					SingleLine: true,
					Span:       spanFromRange(start, contentEnd, lineOffsets),
				})
				i = end
				continue
			}
			if i+1 < n && data[i+1] == '*' {
				start := i + 2
				rel := bytes.Index(data[start:], []byte("*/"))
				var contentEnd, next int
				if rel < 0 {
					// unterminated block comment runs to EOF
					contentEnd = n
					next = n
				} else {
					contentEnd = start + rel
					next = contentEnd + 2
				}
				comments = append(comments, model.Comment{
					Text:       string(data[start:contentEnd]),
					SingleLine: false,
					Span:       spanFromRange(start, contentEnd, lineOffsets),
				})
				i = next
				continue
			}
			i++
		case '\'', '"':
			i = skipString(data, i)
		case '`':
			i = skipTemplate(data, i)
		default:
			i++
		}
	}
	return comments
}

// skipString advances past a single- or double-quoted literal starting at
// data[i]. An unescaped newline ends the literal (invalid source, but the
// scanner must not swallow the rest of the file).
func skipString(data []byte, i int) int {
	quote := data[i]
	i++
	for i < len(data) {
		switch data[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		case '\n':
			return i + 1
		}
		i++
	}
	return i
}

// skipTemplate advances past a template literal, which may span lines.
// Substitution nesting is not tracked: a comment inside ${} is rare enough
// that the cheaper scan wins.
func skipTemplate(data []byte, i int) int {
	i++
	for i < len(data) {
		switch data[i] {
		case '\\':
			i += 2
			continue
		case '`':
			return i + 1
		}
		i++
	}
	return i
}

func spanFromRange(start, end int, lineOffsets []int) model.Span {
	startLine, startCol := lineColFromOffset(start, lineOffsets)
	endLine, endCol := lineColFromOffset(end, lineOffsets)
	return model.Span{
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
		ByteStart: start,
		ByteEnd:   end,
	}
}

func lineColFromOffset(offset int, lineOffsets []int) (line, col int) {
	idx := sort.Search(len(lineOffsets), func(i int) bool { return lineOffsets[i] > offset })
	if idx == 0 {
		return 1, offset + 1
	}
	lineStart := lineOffsets[idx-1]
	return idx, offset - lineStart + 1
}

func computeLineOffsets(data []byte) []int {
	offsets := make([]int, 0, bytes.Count(data, []byte{'\n'})+2)
	offsets = append(offsets, 0)
	for i, b := range data {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	if offsets[len(offsets)-1] != len(data) {
		offsets = append(offsets, len(data))
	}
	return offsets
}

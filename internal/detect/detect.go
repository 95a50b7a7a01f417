// Package detect identifies the JavaScript/TypeScript dialect of a file
// from its path and content. Only the dialects ESLint directives can appear
// in are recognised; everything else reports an empty name and is skipped
// by the engine.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

type Info struct {
	Name string
}

func FromPathAndContent(p string, data []byte) Info {
	if name := detectByPath(p); name != "" {
		return Info{Name: name}
	}
	if shebang := detectByShebang(data); shebang != "" {
		return Info{Name: shebang}
	}
	return Info{Name: ""}
}

func detectByPath(p string) string {
	base := strings.ToLower(filepath.Base(p))
	ext := filepath.Ext(base)
	if ext == "" {
		return ""
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return ""
}

func detectByShebang(data []byte) string {
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	line := strings.ToLower(string(data[:end]))
	for _, entry := range shebangLanguages {
		if strings.Contains(line, entry.key) {
			return entry.lang
		}
	}
	return ""
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

func MatchesLang(info Info, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	detected := NormalizeLangName(info.Name)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if NormalizeLangName(raw) == detected {
			return true
		}
	}
	return false
}

// CanonicalDetectLangs maps user-supplied language filters onto canonical
// names, dropping empty entries.
func CanonicalDetectLangs(langs []string) []string {
	out := make([]string, 0, len(langs))
	for _, raw := range langs {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		out = append(out, norm)
	}
	return out
}

func KnownLanguage(name string) bool {
	if name == "" {
		return false
	}
	_, ok := knownLanguages[NormalizeLangName(name)]
	return ok
}

// IsTypeScript reports whether the named dialect cannot be checked with a
// plain JavaScript parser.
func IsTypeScript(name string) bool {
	switch NormalizeLangName(name) {
	case "typescript", "typescriptreact":
		return true
	}
	return false
}

// VerifiableJavaScript reports whether rewritten output in the named
// dialect can be re-parsed with the JavaScript parser. TypeScript needs
// its own grammar and JSX embeds XML fragments, so both are skipped.
func VerifiableJavaScript(name string) bool {
	if IsTypeScript(name) {
		return false
	}
	if NormalizeLangName(name) == "javascriptreact" {
		return false
	}
	return KnownLanguage(name)
}

var extensionLanguages = map[string]string{
	".js":  "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".jsx": "javascriptreact",
	".ts":  "typescript",
	".mts": "typescript",
	".cts": "typescript",
	".tsx": "typescriptreact",
}

// Ordered: "ts-node" contains "node" and must be tested before it.
var shebangLanguages = []struct {
	key  string
	lang string
}{
	{"ts-node", "typescript"},
	{"deno", "typescript"},
	{"node", "javascript"},
	{"bun", "javascript"},
}

var langAliases = map[string]string{
	"js":         "javascript",
	"mjs":        "javascript",
	"cjs":        "javascript",
	"jsx":        "javascriptreact",
	"ts":         "typescript",
	"mts":        "typescript",
	"cts":        "typescript",
	"tsx":        "typescriptreact",
	"javascript": "javascript",
	"typescript": "typescript",
	"react":      "javascriptreact",
}

var knownLanguages = map[string]struct{}{
	"javascript":      {},
	"javascriptreact": {},
	"typescript":      {},
	"typescriptreact": {},
}

package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/lintshift/internal/engine"
)

type Field struct {
	Key    string
	Header string
}

type FieldSelection struct {
	Fields      []Field
	ShowAge     bool
	ShowMessage bool
	ShowURL     bool
	NeedMessage bool
	NeedURL     bool
}

type fieldMeta struct {
	header    string
	isAge     bool
	isMessage bool
	isURL     bool
}

var fieldRegistry = map[string]fieldMeta{
	"kind":        {header: "KIND"},
	"type":        {header: "KIND"},
	"author":      {header: "AUTHOR"},
	"email":       {header: "EMAIL"},
	"date":        {header: "DATE"},
	"age":         {header: "AGE", isAge: true},
	"commit":      {header: "COMMIT"},
	"location":    {header: "LOCATION"},
	"lang":        {header: "LANG"},
	"text":        {header: "TEXT"},
	"replacement": {header: "REPLACEMENT"},
	"help":        {header: "HELP"},
	"message":     {header: "MESSAGE", isMessage: true},
	"url":         {header: "URL", isURL: true},
	"commit_url":  {header: "COMMIT_URL", isURL: true},
	"fixed":       {header: "FIXED"},
}

// ResolveFields は --fields の指定を検証し、表示する列の集合へ解決する。
// raw が空のときは既定の列構成を返す。
func ResolveFields(raw string, withMessage, withAge, withURL, withCommitLink bool) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	sel := FieldSelection{}
	if raw == "" {
		keys := []string{"kind", "author", "email", "date"}
		if withAge {
			keys = append(keys, "age")
		}
		keys = append(keys, "commit", "location")
		if withURL {
			keys = append(keys, "url")
		}
		if withCommitLink {
			keys = append(keys, "commit_url")
		}
		keys = append(keys, "text")
		if withMessage {
			keys = append(keys, "message")
		}
		sel.Fields = make([]Field, 0, len(keys))
		for _, key := range keys {
			meta := fieldRegistry[key]
			sel.Fields = append(sel.Fields, Field{Key: key, Header: meta.header})
		}
		sel.ShowAge = withAge
		sel.ShowMessage = withMessage
		sel.ShowURL = withURL || withCommitLink
		sel.NeedMessage = withMessage
		sel.NeedURL = withURL || withCommitLink
		return sel, nil
	}

	parts := strings.Split(raw, ",")
	sel.Fields = make([]Field, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		meta, ok := fieldRegistry[key]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: meta.header})
		if meta.isAge {
			sel.ShowAge = true
		}
		if meta.isMessage {
			sel.ShowMessage = true
		}
		if meta.isURL {
			sel.ShowURL = true
		}
	}
	sel.NeedMessage = withMessage || sel.ShowMessage
	sel.NeedURL = withURL || sel.ShowURL
	return sel, nil
}

func Headers(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Header)
	}
	return out
}

func RowValues(it engine.Item, fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, FormatFieldValue(it, f.Key))
	}
	return out
}

func FormatFieldValue(it engine.Item, key string) string {
	switch key {
	case "kind", "type":
		return it.Kind
	case "author":
		return it.Author
	case "email":
		return it.Email
	case "date":
		return it.Date
	case "age":
		return strconv.Itoa(it.AgeDays)
	case "commit":
		return ShortCommit(it.Commit)
	case "location":
		return fmt.Sprintf("%s:%d", it.File, it.Line)
	case "lang":
		return it.Lang
	case "text":
		return it.Text
	case "replacement":
		return it.Replacement
	case "help":
		return it.Help
	case "message":
		return it.Message
	case "url":
		return it.URL
	case "commit_url":
		return it.CommitURL
	case "fixed":
		if it.Fixed {
			return "yes"
		}
		return ""
	default:
		return ""
	}
}

// ShortCommit は表示用に SHA を短縮する。未コミット行の "-" はそのまま返す。
func ShortCommit(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}

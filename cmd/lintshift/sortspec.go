package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phyten/lintshift/internal/engine"
)

type sortKey struct {
	name string
	desc bool
}

// parseSortSpec は "-age,author" のような指定をキー列へ展開する。
// date は「新しい順」が自然なので age の逆順として扱い、location は
// file,line の 2 キーに展開する。
func parseSortSpec(raw string) ([]sortKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var keys []sortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty sort key in %q", raw)
		}
		desc := false
		switch part[0] {
		case '-':
			desc = true
			part = part[1:]
		case '+':
			part = part[1:]
		}
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "age", "age_days":
			keys = append(keys, sortKey{name: "age", desc: desc})
		case "date":
			// 日付昇順 = 古い順 = age 降順
			keys = append(keys, sortKey{name: "age", desc: !desc})
		case "author", "email", "kind", "file", "commit":
			keys = append(keys, sortKey{name: part, desc: desc})
		case "line":
			keys = append(keys, sortKey{name: "line", desc: desc})
		case "location":
			keys = append(keys, sortKey{name: "file", desc: desc}, sortKey{name: "line", desc: desc})
		default:
			return nil, fmt.Errorf("unknown sort key %q (want age, date, author, email, kind, location, file, line or commit)", part)
		}
	}
	return keys, nil
}

func applySort(items []engine.Item, raw string) error {
	keys, err := parseSortSpec(raw)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		for _, k := range keys {
			c := compareBy(a, b, k.name)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		// 安定した既定の並び: ファイル名 → 行番号
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	return nil
}

func compareBy(a, b engine.Item, key string) int {
	switch key {
	case "age":
		return compareInt(a.AgeDays, b.AgeDays)
	case "author":
		return strings.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
	case "email":
		return strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	case "kind":
		return strings.Compare(a.Kind, b.Kind)
	case "file":
		return strings.Compare(a.File, b.File)
	case "line":
		return compareInt(a.Line, b.Line)
	case "commit":
		return strings.Compare(a.Commit, b.Commit)
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

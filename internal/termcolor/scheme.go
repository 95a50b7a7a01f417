package termcolor

import (
	"strconv"
	"strings"
)

// Scheme は端末背景が暗色か明色かを表す。年齢グラデーションの
// 端点色を背景に合わせて切り替えるために使う。
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// DetectScheme は COLORFGBG の背景色番号(7 以上で明色)を優先し、
// なければ TERM 名に "light" が含まれるかで判定する。既定は暗色。
func DetectScheme(env map[string]string) Scheme {
	if env == nil {
		return SchemeDark
	}
	if bg, ok := colorfgbgBackground(env["COLORFGBG"]); ok {
		if bg >= 7 {
			return SchemeLight
		}
		return SchemeDark
	}
	if strings.Contains(strings.ToLower(strings.TrimSpace(env["TERM"])), "light") {
		return SchemeLight
	}
	return SchemeDark
}

// colorfgbgBackground は "fg;bg" または "fg;default;bg" 形式の
// 最後の数値要素を背景色番号として取り出す。
func colorfgbgBackground(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	parts := strings.Split(raw, ";")
	bgRaw := strings.TrimSpace(parts[len(parts)-1])
	if bgRaw == "" && len(parts) >= 2 {
		bgRaw = strings.TrimSpace(parts[len(parts)-2])
	}
	bg, err := strconv.Atoi(bgRaw)
	if err != nil || bg < 0 {
		return 0, false
	}
	return bg, true
}

// Package termcolor はテーブル出力の色付けを担当する。
// --color フラグのモード解釈、端末・環境変数からの自動判定、
// 色数プロファイルと背景スキームの検出をまとめる。
package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseMode は --color フラグの値を解釈する。空文字は auto 扱い。
func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("invalid --color: %s", v)
	}
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

// EnvMap は os.Environ 形式の "KEY=VALUE" スライスをマップに変換する。
func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		if idx := strings.Index(entry, "="); idx >= 0 {
			env[entry[:idx]] = entry[idx+1:]
		} else {
			env[entry] = ""
		}
	}
	return env
}

// DetectMode は auto 指定時の実効モードを決める。優先順位は上から:
//
//  1. TERM=dumb は常に無効。
//  2. NO_COLOR が設定されていれば無効。
//  3. CLICOLOR=0 は無効。
//  4. CLICOLOR_FORCE / FORCE_COLOR が 0 以外の値なら強制有効。
//  5. それ以外は stdout が TTY のときだけ有効。
func DetectMode(stdout *os.File, env map[string]string) ColorMode {
	if stdout == nil {
		return ModeNever
	}
	if env != nil {
		if v := strings.ToLower(strings.TrimSpace(env["TERM"])); v == "dumb" {
			return ModeNever
		}
		if strings.TrimSpace(env["NO_COLOR"]) != "" {
			return ModeNever
		}
		if strings.TrimSpace(env["CLICOLOR"]) == "0" {
			return ModeNever
		}
		if forceColor(strings.TrimSpace(env["CLICOLOR_FORCE"])) {
			return ModeAlways
		}
		if forceColor(strings.TrimSpace(env["FORCE_COLOR"])) {
			return ModeAlways
		}
	}
	if isTerminal(stdout) {
		return ModeAlways
	}
	return ModeNever
}

// Enabled は指定モードで色を出すべきかを返す。ModeAuto のときは
// プロセスの環境変数と stdout の TTY 判定に委譲するため、
// NO_COLOR や FORCE_COLOR が --color auto でも効く。
func Enabled(mode ColorMode, stdout *os.File) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return DetectMode(stdout, EnvMap(os.Environ())) == ModeAlways
	}
}

// DetectProfile は COLORTERM と TERM から使える色数を推定する。
// truecolor/24bit 系は TrueColor、*256color は ANSI256、残りは基本 8 色。
func DetectProfile(env map[string]string) Profile {
	if env != nil {
		if v := strings.ToLower(strings.TrimSpace(env["COLORTERM"])); v != "" {
			if strings.Contains(v, "truecolor") || strings.Contains(v, "24bit") || strings.Contains(v, "24-bit") {
				return ProfileTrueColor
			}
		}
		if v := strings.ToLower(strings.TrimSpace(env["TERM"])); strings.Contains(v, "256color") {
			return ProfileANSI256
		}
	}
	return ProfileBasic8
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	return v != "" && v != "0"
}

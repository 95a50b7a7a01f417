package engine

import (
	"regexp"
	"time"

	"github.com/phyten/lintshift/internal/model"
)

// Item は検出した eslint 抑制ディレクティブ 1 件を表す
type Item struct {
	Kind        string     `json:"kind"`
	Lang        string     `json:"lang,omitempty"`
	Text        string     `json:"text,omitempty"`
	Replacement string     `json:"replacement,omitempty"`
	Help        string     `json:"help,omitempty"`
	Span        model.Span `json:"span"`
	Author      string     `json:"author"`
	Email       string     `json:"email"`
	Date        string     `json:"date"`
	AgeDays     int        `json:"age_days"`
	Commit      string     `json:"commit"`
	File        string     `json:"file"`
	Line        int        `json:"line"`
	Col         int        `json:"col"`
	Message     string     `json:"message,omitempty"`
	URL         string     `json:"url,omitempty"`
	CommitURL   string     `json:"commit_url,omitempty"`
	Fixed       bool       `json:"fixed,omitempty"`
}

// ItemError は 1 件の処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options は実行オプション
type Options struct {
	Kind              string // disable|disable-next-line|both
	Mode              string // last|first
	AuthorRegex       string
	WithMessage       bool
	Fix               bool
	Verify            bool
	TruncAll          int
	TruncText         int
	TruncMessage      int
	IgnoreWS          bool
	Jobs              int
	RepoDir           string
	Progress          bool
	Now               time.Time
	DetectLangs       []string
	Paths             []string
	Excludes          []string
	PathRegex         []string
	PathRegexCompiled []*regexp.Regexp
	MaxFileBytes      int
	ExcludeTypical    bool
	NoPrefilter       bool
}

// Result は出力
type Result struct {
	Items      []Item      `json:"items"`
	HasMessage bool        `json:"has_message"`
	HasAge     bool        `json:"has_age"`
	HasURL     bool        `json:"has_url"`
	Total      int         `json:"total"`
	FixedFiles int         `json:"fixed_files"`
	ElapsedMS  int64       `json:"elapsed_ms"`
	Errors     []ItemError `json:"errors,omitempty"`
	ErrorCount int         `json:"error_count"`
}

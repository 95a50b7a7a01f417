package config

import (
	"strings"

	"github.com/phyten/lintshift/internal/engine"
)

type EngineConfig struct {
	Kind           *string   `yaml:"kind" toml:"kind" json:"kind"`
	Mode           *string   `yaml:"mode" toml:"mode" json:"mode"`
	Author         *string   `yaml:"author" toml:"author" json:"author"`
	Paths          *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	PathRegex      *[]string `yaml:"path_regex" toml:"path_regex" json:"path_regex"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	WithMessage    *bool     `yaml:"with_message" toml:"with_message" json:"with_message"`
	Fix            *bool     `yaml:"fix" toml:"fix" json:"fix"`
	Verify         *bool     `yaml:"verify" toml:"verify" json:"verify"`
	Langs          *[]string `yaml:"langs" toml:"langs" json:"langs"`
	TruncAll       *int      `yaml:"truncate" toml:"truncate" json:"truncate"`
	TruncText      *int      `yaml:"truncate_text" toml:"truncate_text" json:"truncate_text"`
	TruncMessage   *int      `yaml:"truncate_message" toml:"truncate_message" json:"truncate_message"`
	IgnoreWS       *bool     `yaml:"ignore_ws" toml:"ignore_ws" json:"ignore_ws"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	Repo           *string   `yaml:"repo" toml:"repo" json:"repo"`
	Output         *string   `yaml:"output" toml:"output" json:"output"`
	Color          *string   `yaml:"color" toml:"color" json:"color"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	NoPrefilter    *bool     `yaml:"no_prefilter" toml:"no_prefilter" json:"no_prefilter"`
}

type UIConfig struct {
	WithAge        *bool   `yaml:"with_age" toml:"with_age" json:"with_age"`
	WithCommitLink *bool   `yaml:"with_commit_link" toml:"with_commit_link" json:"with_commit_link"`
	Fields         *string `yaml:"fields" toml:"fields" json:"fields"`
	Sort           *string `yaml:"sort" toml:"sort" json:"sort"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	UI     UIConfig     `yaml:"ui" toml:"ui" json:"ui"`
}

type EngineSettings struct {
	Kind           string
	Mode           string
	Author         string
	Paths          []string
	Excludes       []string
	PathRegex      []string
	ExcludeTypical bool
	WithMessage    bool
	Fix            bool
	Verify         bool
	Langs          []string
	TruncAll       int
	TruncText      int
	TruncMessage   int
	IgnoreWS       bool
	Jobs           int
	Repo           string
	Output         string
	Color          string
	MaxFileBytes   int
	NoPrefilter    bool
}

type UISettings struct {
	WithAge        bool
	WithCommitLink bool
	Fields         string
	Sort           string
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Kind:           opts.Kind,
		Mode:           opts.Mode,
		Author:         opts.AuthorRegex,
		Paths:          cloneStrings(opts.Paths),
		Excludes:       cloneStrings(opts.Excludes),
		PathRegex:      cloneStrings(opts.PathRegex),
		ExcludeTypical: opts.ExcludeTypical,
		WithMessage:    opts.WithMessage,
		Fix:            opts.Fix,
		Verify:         opts.Verify,
		Langs:          cloneStrings(opts.DetectLangs),
		TruncAll:       opts.TruncAll,
		TruncText:      opts.TruncText,
		TruncMessage:   opts.TruncMessage,
		IgnoreWS:       opts.IgnoreWS,
		Jobs:           opts.Jobs,
		Repo:           opts.RepoDir,
		Output:         "table",
		Color:          "auto",
		MaxFileBytes:   opts.MaxFileBytes,
		NoPrefilter:    opts.NoPrefilter,
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Kind = s.Kind
	opts.Mode = s.Mode
	opts.AuthorRegex = s.Author
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.PathRegex = cloneStrings(s.PathRegex)
	opts.ExcludeTypical = s.ExcludeTypical
	opts.WithMessage = s.WithMessage
	opts.Fix = s.Fix
	opts.Verify = s.Verify
	opts.DetectLangs = cloneStrings(s.Langs)
	opts.TruncAll = s.TruncAll
	opts.TruncText = s.TruncText
	opts.TruncMessage = s.TruncMessage
	opts.IgnoreWS = s.IgnoreWS
	opts.Jobs = s.Jobs
	if trimmed := strings.TrimSpace(s.Repo); trimmed != "" {
		opts.RepoDir = trimmed
	}
	opts.MaxFileBytes = s.MaxFileBytes
	opts.NoPrefilter = s.NoPrefilter
}

func DefaultUISettings() UISettings {
	return UISettings{
		WithAge:        false,
		WithCommitLink: false,
		Fields:         "",
		Sort:           "",
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/phyten/lintshift/internal/config"
	"github.com/phyten/lintshift/internal/engine"
	engineopts "github.com/phyten/lintshift/internal/engine/opts"
	"github.com/phyten/lintshift/internal/gitremote"
	"github.com/phyten/lintshift/internal/link"
	"github.com/phyten/lintshift/internal/output"
	"github.com/phyten/lintshift/internal/termcolor"
	"github.com/phyten/lintshift/internal/textutil"
	"github.com/phyten/lintshift/internal/util"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serveCmd(os.Args[2:])
		return
	}
	scanCmd(os.Args[1:])
}

// stringsFlag は繰り返し指定できるフラグ (--path a --path b,c) を集める。
type stringsFlag []string

func (s *stringsFlag) String() string { return strings.Join(*s, ",") }

func (s *stringsFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type scanConfig struct {
	opts           engine.Options
	output         string
	colorMode      termcolor.ColorMode
	fields         string
	sortKey        string
	withAge        bool
	withURL        bool
	withCommitLink bool
	progress       bool
	showHelp       bool
}

type scanFlags struct {
	fs *flag.FlagSet

	kind         string
	mode         string
	author       string
	outputFmt    string
	color        string
	fix          bool
	noVerify     bool
	withMessage  bool
	withAge      bool
	withURL      bool
	withCommit   bool
	fields       string
	sortKey      string
	truncAll     int
	truncText    int
	truncMessage int
	noIgnoreWS   bool
	jobs         int
	repo         string
	configPath   string
	noConfig     bool
	paths        stringsFlag
	excludes     stringsFlag
	pathRegex    stringsFlag
	langs        stringsFlag
	keepTypical  bool
	noPrefilter  bool
	maxFileBytes int
	noProgress   bool
	forceProg    bool
	showHelp     bool
}

func newScanFlags(args []string) (*scanFlags, error) {
	f := &scanFlags{fs: flag.NewFlagSet("lintshift", flag.ContinueOnError)}
	fs := f.fs
	fs.Usage = func() { fmt.Fprint(fs.Output(), usageText) }

	fs.StringVar(&f.kind, "kind", "", "disable|disable-next-line|both")
	fs.StringVar(&f.kind, "k", "", "shorthand for --kind")
	fs.StringVar(&f.mode, "mode", "", "last|first (which commit to attribute)")
	fs.StringVar(&f.mode, "m", "", "shorthand for --mode")
	fs.StringVar(&f.author, "author", "", "filter by author name/email (regexp)")
	fs.StringVar(&f.author, "a", "", "shorthand for --author")
	fs.StringVar(&f.outputFmt, "output", "", "table|tsv|json|csv|md|ndjson")
	fs.StringVar(&f.outputFmt, "o", "", "shorthand for --output")
	fs.StringVar(&f.color, "color", "", "auto|always|never")
	fs.BoolVar(&f.fix, "fix", false, "rewrite eslint- directives to oxlint- in place")
	fs.BoolVar(&f.noVerify, "no-verify", false, "skip JavaScript syntax verification after --fix")
	fs.BoolVar(&f.withMessage, "with-message", false, "show commit subject (1st line)")
	fs.BoolVar(&f.withAge, "with-age", false, "show AGE column (days since commit)")
	fs.BoolVar(&f.withURL, "with-url", false, "show blob URL column")
	fs.BoolVar(&f.withCommit, "with-commit-link", false, "link commits to the remote host")
	fs.StringVar(&f.fields, "fields", "", "comma separated columns (kind,author,email,date,age,commit,location,lang,text,replacement,help,message,url,commit_url,fixed)")
	fs.StringVar(&f.sortKey, "sort", "", "sort spec, e.g. -age,author")
	fs.IntVar(&f.truncAll, "truncate", 0, "truncate text/message to N runes (0=unlimited)")
	fs.IntVar(&f.truncText, "truncate-text", 0, "truncate directive text only (0=unlimited)")
	fs.IntVar(&f.truncMessage, "truncate-message", 0, "truncate message only (0=unlimited)")
	fs.BoolVar(&f.noIgnoreWS, "no-ignore-ws", false, "include whitespace-only changes in blame")
	fs.IntVar(&f.jobs, "jobs", 0, "max parallel workers")
	fs.IntVar(&f.jobs, "j", 0, "shorthand for --jobs")
	fs.StringVar(&f.repo, "repo", "", "repo root (default: current dir)")
	fs.StringVar(&f.configPath, "config", "", "config file path ("+config.EnvConfigPath+" also works)")
	fs.BoolVar(&f.noConfig, "no-config", false, "ignore config files and environment overrides")
	fs.Var(&f.paths, "path", "limit scan to pathspec (repeatable, comma separated)")
	fs.Var(&f.excludes, "exclude", "exclude pathspec (repeatable)")
	fs.Var(&f.pathRegex, "path-regex", "keep only paths matching the regexp (repeatable)")
	fs.Var(&f.langs, "langs", "limit to languages (js,jsx,ts,tsx)")
	fs.BoolVar(&f.keepTypical, "no-exclude-typical", false, "scan node_modules, dist and friends too")
	fs.BoolVar(&f.noPrefilter, "no-prefilter", false, "skip the git grep prefilter")
	fs.IntVar(&f.maxFileBytes, "max-file-bytes", 0, "skip files larger than N bytes (0=unlimited)")
	fs.BoolVar(&f.noProgress, "no-progress", false, "disable progress/ETA")
	fs.BoolVar(&f.forceProg, "progress", false, "force progress even when piped")
	fs.BoolVar(&f.showHelp, "h", false, "show help")
	fs.BoolVar(&f.showHelp, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// flagEngineConfig はコマンドラインで明示されたフラグだけを設定レイヤに写す。
func (f *scanFlags) flagEngineConfig() config.EngineConfig {
	var cfg config.EngineConfig
	seen := map[string]bool{}
	f.fs.Visit(func(fl *flag.Flag) { seen[fl.Name] = true })

	strPtr := func(v string) *string { return &v }
	boolPtr := func(v bool) *bool { return &v }
	intPtr := func(v int) *int { return &v }

	if seen["kind"] || seen["k"] {
		cfg.Kind = strPtr(f.kind)
	}
	if seen["mode"] || seen["m"] {
		cfg.Mode = strPtr(f.mode)
	}
	if seen["author"] || seen["a"] {
		cfg.Author = strPtr(f.author)
	}
	if seen["output"] || seen["o"] {
		cfg.Output = strPtr(f.outputFmt)
	}
	if seen["color"] {
		cfg.Color = strPtr(f.color)
	}
	if seen["fix"] {
		cfg.Fix = boolPtr(f.fix)
	}
	if seen["no-verify"] {
		cfg.Verify = boolPtr(!f.noVerify)
	}
	if seen["with-message"] {
		cfg.WithMessage = boolPtr(f.withMessage)
	}
	if seen["truncate"] {
		cfg.TruncAll = intPtr(f.truncAll)
	}
	if seen["truncate-text"] {
		cfg.TruncText = intPtr(f.truncText)
	}
	if seen["truncate-message"] {
		cfg.TruncMessage = intPtr(f.truncMessage)
	}
	if seen["no-ignore-ws"] {
		cfg.IgnoreWS = boolPtr(!f.noIgnoreWS)
	}
	if seen["jobs"] || seen["j"] {
		cfg.Jobs = intPtr(f.jobs)
	}
	if seen["repo"] {
		cfg.Repo = strPtr(f.repo)
	}
	if len(f.paths) > 0 {
		list := engineopts.SplitMulti(f.paths)
		cfg.Paths = &list
	}
	if len(f.excludes) > 0 {
		list := engineopts.SplitMulti(f.excludes)
		cfg.Excludes = &list
	}
	if len(f.pathRegex) > 0 {
		list := append([]string(nil), f.pathRegex...)
		cfg.PathRegex = &list
	}
	if len(f.langs) > 0 {
		list := engineopts.SplitMulti(f.langs)
		cfg.Langs = &list
	}
	if seen["no-exclude-typical"] {
		cfg.ExcludeTypical = boolPtr(!f.keepTypical)
	}
	if seen["no-prefilter"] {
		cfg.NoPrefilter = boolPtr(f.noPrefilter)
	}
	if seen["max-file-bytes"] {
		cfg.MaxFileBytes = intPtr(f.maxFileBytes)
	}
	return cfg
}

func (f *scanFlags) flagUIConfig() config.UIConfig {
	var cfg config.UIConfig
	seen := map[string]bool{}
	f.fs.Visit(func(fl *flag.Flag) { seen[fl.Name] = true })

	boolPtr := func(v bool) *bool { return &v }
	strPtr := func(v string) *string { return &v }

	if seen["with-age"] {
		cfg.WithAge = boolPtr(f.withAge)
	}
	if seen["with-commit-link"] {
		cfg.WithCommitLink = boolPtr(f.withCommit)
	}
	if seen["fields"] {
		cfg.Fields = strPtr(f.fields)
	}
	if seen["sort"] {
		cfg.Sort = strPtr(f.sortKey)
	}
	return cfg
}

func parseScanArgs(args []string) (*scanConfig, error) {
	f, err := newScanFlags(args)
	if err != nil {
		return nil, err
	}
	if f.showHelp {
		return &scanConfig{showHelp: true}, nil
	}

	base := config.EngineSettingsFromOptions(engineopts.Defaults("."))
	uiBase := config.DefaultUISettings()

	var fileCfg, envCfg config.Config
	if !f.noConfig {
		path, _, findErr := config.Find(".", firstNonEmpty(f.configPath, os.Getenv(config.EnvConfigPath)), os.Getenv("XDG_CONFIG_HOME"), homeDir())
		if findErr != nil {
			return nil, findErr
		}
		if path != "" {
			fileCfg, err = config.Load(path)
			if err != nil {
				return nil, err
			}
		}
		envCfg, err = config.FromEnv(os.Getenv)
		if err != nil {
			return nil, err
		}
	}

	merged := config.MergeEngine(base, fileCfg.Engine, envCfg.Engine, f.flagEngineConfig())
	ui := config.NormalizeUI(config.MergeUI(uiBase, fileCfg.UI, envCfg.UI, f.flagUIConfig()))

	cfg := &scanConfig{}
	cfg.opts = engineopts.Defaults(".")
	merged.ApplyToOptions(&cfg.opts)

	cfg.output, err = engineopts.NormalizeOutput(merged.Output)
	if err != nil {
		return nil, err
	}
	cfg.colorMode, err = termcolor.ParseMode(merged.Color)
	if err != nil {
		return nil, err
	}
	if err := engineopts.NormalizeAndValidate(&cfg.opts); err != nil {
		return nil, err
	}

	cfg.fields = ui.Fields
	cfg.sortKey = ui.Sort
	cfg.withAge = ui.WithAge
	cfg.withCommitLink = ui.WithCommitLink
	cfg.withURL = f.withURL
	if f.withAge {
		cfg.withAge = true
	}
	cfg.progress = util.ShouldShowProgress(f.forceProg, f.noProgress)
	return cfg, nil
}

func scanCmd(args []string) {
	cfg, err := parseScanArgs(args)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatal(err)
	}
	if cfg.showHelp {
		fmt.Print(usageText)
		return
	}

	cfg.opts.Progress = cfg.progress && cfg.output == "table"

	res, err := engine.Run(context.Background(), cfg.opts)
	if err != nil {
		log.Fatal(err)
	}

	if err := applySort(res.Items, cfg.sortKey); err != nil {
		log.Fatal(err)
	}

	sel, err := output.ResolveFields(cfg.fields, res.HasMessage, cfg.withAge, cfg.withURL, cfg.withCommitLink)
	if err != nil {
		log.Fatal(err)
	}

	if sel.NeedURL {
		if err := attachURLs(res, cfg.opts.RepoDir); err != nil {
			fmt.Fprintf(os.Stderr, "lintshift: link generation disabled: %v\n", err)
		}
	}

	switch cfg.output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(res); err != nil {
			log.Fatal(err)
		}
	case "csv":
		if err := output.WriteCSV(os.Stdout, res.Items, sel); err != nil {
			log.Fatal(err)
		}
	case "md":
		if err := output.WriteMarkdownTable(os.Stdout, res.Items, sel); err != nil {
			log.Fatal(err)
		}
	case "ndjson":
		if err := output.WriteNDJSON(os.Stdout, res.Items); err != nil {
			log.Fatal(err)
		}
	case "tsv":
		printTSV(res, sel)
	default:
		printTable(res, sel, cfg.colorMode)
	}

	if cfg.opts.Fix {
		fmt.Fprintf(os.Stderr, "lintshift: rewrote %d file(s)\n", res.FixedFiles)
	}
	reportErrors(res)
}

// attachURLs は remote.origin.url から blob/commit リンクを組み立てて各項目に付与する。
func attachURLs(res *engine.Result, repoDir string) error {
	info, err := gitremote.Detect(context.Background(), nil, repoDir)
	if err != nil {
		return err
	}
	for i := range res.Items {
		it := &res.Items[i]
		if it.Commit == "" {
			continue
		}
		it.URL = link.Blob(info, it.Commit, it.File, it.Line)
		it.CommitURL = link.Commit(info, it.Commit)
	}
	res.HasURL = true
	return nil
}

func printTSV(res *engine.Result, sel output.FieldSelection) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 0, '\t', 0) // tabs only
	fmt.Fprintln(w, strings.Join(output.Headers(sel.Fields), "\t"))
	for _, it := range res.Items {
		row := output.RowValues(it, sel.Fields)
		for i := range row {
			row[i] = textutil.SanitizeCell(row[i])
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func printTable(res *engine.Result, sel output.FieldSelection, mode termcolor.ColorMode) {
	enabled := termcolor.Enabled(mode, os.Stdout)
	env := termcolor.EnvMap(os.Environ())
	profile := termcolor.DetectProfile(env)
	scheme := termcolor.DetectScheme(env)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	headers := output.Headers(sel.Fields)
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = termcolor.Apply(termcolor.HeaderStyle(), h, enabled)
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))

	maxAge := 0
	for _, it := range res.Items {
		if it.AgeDays > maxAge {
			maxAge = it.AgeDays
		}
	}

	for _, it := range res.Items {
		row := output.RowValues(it, sel.Fields)
		for i, f := range sel.Fields {
			cell := textutil.SanitizeCell(row[i])
			switch f.Key {
			case "kind", "type":
				cell = termcolor.Apply(termcolor.KindStyle(it.Kind), cell, enabled)
			case "age":
				cell = termcolor.Apply(termcolor.AgeStyle(it.AgeDays, profile, scheme, float64(maxAge)), cell, enabled)
			}
			row[i] = cell
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func reportErrors(res *engine.Result) {
	if res.ErrorCount == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "lintshift: %d error(s) while scanning\n", res.ErrorCount)
	for _, e := range res.Errors {
		stage := e.Stage
		if stage == "" {
			stage = "git"
		}
		if e.File == "" {
			fmt.Fprintf(os.Stderr, "  (unknown location) [%s] %s\n", stage, e.Message)
			continue
		}
		fmt.Fprintf(os.Stderr, "  %s:%d [%s] %s\n", e.File, e.Line, stage, e.Message)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

const usageText = `lintshift — Find who left eslint-disable comments and migrate them to oxlint

Usage:
  lintshift [flags]            scan the repository and report directives
  lintshift serve [flags]      start the local web UI

Scan flags:
  -k, --kind        disable|disable-next-line|both (default both)
  -m, --mode        last|first — blame the latest or the introducing commit
  -a, --author      filter by author name/email (regexp)
  -o, --output      table|tsv|json|csv|md|ndjson (default table)
      --fix         rewrite eslint- directives to the oxlint- namespace
      --no-verify   skip JavaScript syntax verification after --fix
      --with-message / --with-age / --with-url / --with-commit-link
      --fields      comma separated columns
      --sort        e.g. --sort=-age,author
      --path / --exclude / --path-regex / --langs
      --jobs        max parallel workers (1..64)
      --repo        repo root (default: current dir)
      --config      config file (.lintshift.yaml|yml|toml|json)
      --color       auto|always|never

Serve flags:
  -p          port (default 8080)
  --repo      repo root
  --open      open the UI in the default browser
`

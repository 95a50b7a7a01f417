package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/phyten/lintshift/internal/detect"
	"github.com/phyten/lintshift/internal/directive"
	"github.com/phyten/lintshift/internal/model"
	"github.com/phyten/lintshift/internal/util"
)

// finding は 1 件のディレクティブ検出と、修正に必要な元コメントを保持する
type finding struct {
	file    string
	lang    string
	comment model.Comment
	match   directive.Match
}

// Run は指定されたオプションに従ってリポジトリを走査し、eslint 抑制
// ディレクティブの一覧とメタデータを返します。
//
// 成功時には発見した項目と補助情報を保持した Result を返し、
// 途中で発生したエラー情報は Result.Errors に集約されます。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	} else {
		opts.Now = opts.Now.UTC()
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}

	var authorRe *regexp.Regexp
	if opts.AuthorRegex != "" {
		re, err := regexp.Compile(opts.AuthorRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid --author regex: %w", err)
		}
		authorRe = re
	}

	var candidateFiles []string
	var err error
	if opts.NoPrefilter {
		candidateFiles, err = gitListFiles(opts.RepoDir, opts.Paths, opts.Excludes, opts.ExcludeTypical)
	} else {
		candidateFiles, err = gitGrepFiles(opts.RepoDir, prefilterPattern, opts.Paths, opts.Excludes, opts.ExcludeTypical)
	}
	if err != nil {
		return nil, err
	}
	candidateFiles = filterPathsByRegex(candidateFiles, opts.PathRegexCompiled)
	if len(candidateFiles) == 0 {
		return &Result{HasMessage: opts.WithMessage, ElapsedMS: msSince(start)}, nil
	}

	findings, errs := collectFindings(ctx, opts, candidateFiles)
	findings = filterByKind(findings, opts.Kind)
	if len(findings) == 0 {
		return &Result{HasMessage: opts.WithMessage, ElapsedMS: msSince(start), Errors: errs, ErrorCount: len(errs)}, nil
	}

	items, keep := make([]Item, len(findings)), make([]bool, len(findings))
	prog := util.NewProgress(len(findings), opts.Progress)
	var errsMu sync.Mutex

	type job struct {
		idx int
		f   finding
	}
	jobs := make(chan job)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			item, itemErrs := enrichOne(ctx, opts, j.f)
			if len(itemErrs) > 0 {
				errsMu.Lock()
				errs = append(errs, itemErrs...)
				errsMu.Unlock()
			}
			keep[j.idx] = true
			// author filter (name or email)
			if authorRe != nil {
				if !authorRe.MatchString(item.Author) && !authorRe.MatchString(item.Email) {
					keep[j.idx] = false
				}
			}
			items[j.idx] = item
			prog.Advance()
		}
	}

	nw := opts.Jobs
	if nw < 1 {
		nw = 1
	}
	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go worker()
	}
	for i, f := range findings {
		jobs <- job{idx: i, f: f}
	}
	close(jobs)
	wg.Wait()
	prog.Done()

	finalItems := make([]Item, 0, len(items))
	finalFindings := make([]finding, 0, len(findings))
	for i := range items {
		if keep[i] {
			finalItems = append(finalItems, items[i])
			finalFindings = append(finalFindings, findings[i])
		}
	}

	fixedFiles := 0
	if opts.Fix {
		var fixErrs []ItemError
		fixedFiles, fixErrs = applyFixes(opts, finalFindings, finalItems)
		errs = append(errs, fixErrs...)
	}

	sort.Slice(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			if errs[i].Line == errs[j].Line {
				return errs[i].Stage < errs[j].Stage
			}
			return errs[i].Line < errs[j].Line
		}
		return errs[i].File < errs[j].File
	})

	return &Result{
		Items:      finalItems,
		HasMessage: opts.WithMessage,
		Total:      len(finalItems),
		FixedFiles: fixedFiles,
		ElapsedMS:  msSince(start),
		Errors:     errs,
		ErrorCount: len(errs),
	}, nil
}

// collectFindings lexes every candidate file in a bounded worker pool and
// returns the findings in stable file/line/col order.
func collectFindings(ctx context.Context, opts Options, files []string) ([]finding, []ItemError) {
	type fileResult struct {
		findings []finding
		errs     []ItemError
	}

	workers := opts.Jobs
	if workers < 1 {
		workers = 1
	}
	if workers > 64 {
		workers = 64
	}

	paths := make(chan string)
	results := make(chan fileResult)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range paths {
				select {
				case <-ctx.Done():
					return
				default:
				}
				fs, errs := scanFile(path, opts)
				results <- fileResult{findings: fs, errs: errs}
			}
		}()
	}

	go func() {
		defer close(paths)
		for _, p := range files {
			select {
			case <-ctx.Done():
				return
			case paths <- p:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []finding
	var errs []ItemError
	for res := range results {
		all = append(all, res.findings...)
		errs = append(errs, res.errs...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].file == all[j].file {
			if all[i].comment.Span.StartLine == all[j].comment.Span.StartLine {
				return all[i].comment.Span.StartCol < all[j].comment.Span.StartCol
			}
			return all[i].comment.Span.StartLine < all[j].comment.Span.StartLine
		}
		return all[i].file < all[j].file
	})
	return all, errs
}

// scanFile reads one file, extracts its comments and reports every
// suppression directive found in them.
func scanFile(relPath string, opts Options) ([]finding, []ItemError) {
	full := filepath.Join(opts.RepoDir, relPath)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, []ItemError{newItemError(relPath, 0, "read", err)}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, nil
	}
	if !utf8.Valid(data) {
		return nil, nil
	}
	if opts.MaxFileBytes > 0 && len(data) > opts.MaxFileBytes {
		return nil, nil
	}
	info := detect.FromPathAndContent(relPath, data)
	lang := detect.NormalizeLangName(info.Name)
	if !detect.KnownLanguage(lang) {
		return nil, nil
	}
	if len(opts.DetectLangs) > 0 && !detect.MatchesLang(info, opts.DetectLangs) {
		return nil, nil
	}

	var out []finding
	for _, c := range scanComments(data) {
		m, ok := directive.Find(c.Text, c.SingleLine)
		if !ok {
			continue
		}
		out = append(out, finding{file: relPath, lang: lang, comment: c, match: m})
	}
	return out, nil
}

func filterByKind(findings []finding, kind string) []finding {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "both":
		return findings
	}
	out := findings[:0]
	for _, f := range findings {
		if f.match.Kind.String() == kind {
			out = append(out, f)
		}
	}
	return out
}

// enrichOne attaches git attribution to a finding and shapes it for output.
func enrichOne(ctx context.Context, opts Options, f finding) (Item, []ItemError) {
	it := Item{
		Kind:        f.match.Kind.String(),
		Lang:        f.lang,
		Text:        truncateRunes(strings.TrimSpace(f.comment.Text), effectiveTrunc(opts.TruncText, opts.TruncAll)),
		Replacement: directive.Rewrite(f.comment.Text, f.match.Kind),
		Help:        f.match.Kind.Help(),
		Span:        f.comment.Span,
		File:        f.file,
		Line:        f.comment.Span.StartLine,
		Col:         f.comment.Span.StartCol,
	}
	var sha string
	var errs []ItemError

	if strings.ToLower(opts.Mode) == "first" {
		firstSHA, err := firstCommitForLine(ctx, opts.RepoDir, f.file, it.Line)
		if err != nil {
			errs = append(errs, newItemError(f.file, it.Line, "git log -L", err))
		}
		if firstSHA != "" {
			sha = firstSHA
		} else {
			bl, err := blameSHA(ctx, opts.RepoDir, f.file, it.Line, opts.IgnoreWS)
			if err != nil {
				errs = append(errs, newItemError(f.file, it.Line, "git blame", err))
				return it, errs
			}
			sha = bl
		}
	} else {
		bl, err := blameSHA(ctx, opts.RepoDir, f.file, it.Line, opts.IgnoreWS)
		if err != nil {
			errs = append(errs, newItemError(f.file, it.Line, "git blame", err))
			return it, errs
		}
		sha = bl
	}

	if sha == "" || sha == strings.Repeat("0", 40) {
		it.Author = "(working tree)"
		it.Email = "-"
		it.Date = "(uncommitted)"
		it.Commit = ""
	} else {
		a, e, d, authorTime, s, err := commitMeta(ctx, opts.RepoDir, sha)
		if err != nil {
			errs = append(errs, newItemError(f.file, it.Line, "git show", err))
		}
		it.Author, it.Email, it.Date, it.Commit = a, e, d, sha
		it.AgeDays = ageDays(opts.Now, authorTime)
		if opts.WithMessage {
			it.Message = truncateRunes(s, effectiveTrunc(opts.TruncMessage, opts.TruncAll))
		}
	}

	return it, errs
}

func newItemError(file string, line int, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Line: line, Stage: stage, Message: msg}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	if n <= 1 {
		return "…"
	}
	return string(rs[:n-1]) + "…"
}

func effectiveTrunc(specific, all int) int {
	if specific > 0 {
		return specific
	}
	return all
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dop251/goja/parser"

	"github.com/phyten/lintshift/internal/detect"
)

type edit struct {
	start       int
	end         int
	original    string
	replacement string
}

// applyFixes rewrites the directive comments of every fixed file in place.
// Edits are grouped per file and spliced in descending offset order so
// earlier offsets stay valid. A file whose contents changed since the scan,
// or whose rewritten JavaScript no longer parses, is skipped with an
// ItemError instead of being written.
func applyFixes(opts Options, findings []finding, items []Item) (int, []ItemError) {
	type fileEdits struct {
		lang  string
		edits []edit
		idxs  []int
	}
	byFile := make(map[string]*fileEdits)
	order := make([]string, 0)
	for i, f := range findings {
		fe, ok := byFile[f.file]
		if !ok {
			fe = &fileEdits{lang: f.lang}
			byFile[f.file] = fe
			order = append(order, f.file)
		}
		fe.edits = append(fe.edits, edit{
			start:       f.comment.Span.ByteStart,
			end:         f.comment.Span.ByteEnd,
			original:    f.comment.Text,
			replacement: items[i].Replacement,
		})
		fe.idxs = append(fe.idxs, i)
	}

	fixed := 0
	var errs []ItemError
	for _, file := range order {
		fe := byFile[file]
		if err := rewriteFile(opts, file, fe.lang, fe.edits); err != nil {
			errs = append(errs, newItemError(file, 0, "fix", err))
			continue
		}
		fixed++
		for _, idx := range fe.idxs {
			items[idx].Fixed = true
		}
	}
	return fixed, errs
}

func rewriteFile(opts Options, relPath, lang string, edits []edit) error {
	full := filepath.Join(opts.RepoDir, relPath)
	data, err := os.ReadFile(full)
	if err != nil {
		return err
	}

	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start > sorted[j].start })

	out := data
	for _, e := range sorted {
		if e.start < 0 || e.end > len(out) || e.start > e.end {
			return fmt.Errorf("edit span %d-%d out of range", e.start, e.end)
		}
		if string(out[e.start:e.end]) != e.original {
			return fmt.Errorf("file changed since scan at byte %d", e.start)
		}
		buf := make([]byte, 0, len(out)-(e.end-e.start)+len(e.replacement))
		buf = append(buf, out[:e.start]...)
		buf = append(buf, e.replacement...)
		buf = append(buf, out[e.end:]...)
		out = buf
	}

	if opts.Verify && detect.VerifiableJavaScript(lang) {
		if _, err := parser.ParseFile(nil, relPath, string(out), 0); err != nil {
			return fmt.Errorf("rewritten source no longer parses: %w", err)
		}
	}

	return writeFileAtomic(full, out)
}

// writeFileAtomic writes via a temp file in the same directory plus rename,
// carrying over the original file mode.
func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".lintshift-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

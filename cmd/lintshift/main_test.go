package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/phyten/lintshift/internal/engine"
	"github.com/phyten/lintshift/internal/output"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("パイプの作成に失敗しました: %v", err)
	}
	oldStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()
	_ = w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("出力の読み込みに失敗しました: %v", err)
	}
	return string(out)
}

func TestPrintTSVは出力をフラッシュする(t *testing.T) {
	sel, err := output.ResolveFields("", true, false, false, false)
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}

	res := &engine.Result{
		HasMessage: true,
		Items:      []engine.Item{{Kind: "disable", Author: "山田", Email: "yamada@example.com", Date: "2024-01-01", File: "src/main.ts", Line: 42}},
	}

	out := captureStdout(t, func() { printTSV(res, sel) })

	if !strings.Contains(out, "KIND\tAUTHOR") {
		t.Fatalf("TSVヘッダーが出力されていません: %q", out)
	}
	if !strings.Contains(out, "src/main.ts:42") {
		t.Fatalf("LOCATION 列が出力されていません: %q", out)
	}
}

func TestPrintTSVはテキスト中の改行を空白に変換する(t *testing.T) {
	sel, err := output.ResolveFields("kind,location,text", false, false, false, false)
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}

	res := &engine.Result{
		Items: []engine.Item{{Kind: "disable", File: "util.js", Line: 10, Text: "調査中\n要確認"}},
	}

	out := captureStdout(t, func() { printTSV(res, sel) })

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("改行が期待より多いです: %q", out)
	}
	if !strings.Contains(lines[1], "調査中 要確認") {
		t.Fatalf("改行が空白に置換されていません: %q", lines[1])
	}
}

func TestAttachURLsはblobとcommitのリンクを付与する(t *testing.T) {
	repoDir := t.TempDir()
	runGit(t, repoDir, "init")
	runGit(t, repoDir, "remote", "add", "origin", "git@github.com:phyten/lintshift.git")

	sha := strings.Repeat("a", 40)
	res := &engine.Result{
		Items: []engine.Item{
			{Commit: sha, File: "src/app.js", Line: 7},
			{Commit: "", File: "src/wip.js", Line: 1}, // uncommitted
		},
	}

	if err := attachURLs(res, repoDir); err != nil {
		t.Fatalf("attachURLs failed: %v", err)
	}

	wantBlob := "https://github.com/phyten/lintshift/blob/" + sha + "/src/app.js#L7"
	if res.Items[0].URL != wantBlob {
		t.Fatalf("blob URL が期待と異なります: got=%q want=%q", res.Items[0].URL, wantBlob)
	}
	wantCommit := "https://github.com/phyten/lintshift/commit/" + sha
	if res.Items[0].CommitURL != wantCommit {
		t.Fatalf("commit URL が期待と異なります: got=%q want=%q", res.Items[0].CommitURL, wantCommit)
	}
	if res.Items[1].URL != "" || res.Items[1].CommitURL != "" {
		t.Fatalf("未コミット項目にリンクが付与されています: %+v", res.Items[1])
	}
	if !res.HasURL {
		t.Fatal("HasURL が立っていません")
	}
}

func TestReportErrorsは標準エラーに概要を出力する(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("パイプの作成に失敗しました: %v", err)
	}
	oldStderr := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = oldStderr })

	res := &engine.Result{
		ErrorCount: 3,
		Errors: []engine.ItemError{
			{File: "a.js", Line: 10, Stage: "git blame", Message: "exit status 1"},
			{File: "b.ts", Line: 20, Stage: "git show", Message: "no commit"},
			{File: "", Line: 0, Stage: "", Message: "mystery"},
		},
	}

	reportErrors(res)
	_ = w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("出力の読み込みに失敗しました: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "3 error(s)") {
		t.Fatalf("エラー件数が出力されていません: %q", text)
	}
	if !strings.Contains(text, "a.js:10 [git blame] exit status 1") {
		t.Fatalf("詳細行が出力されていません: %q", text)
	}
	if !strings.Contains(text, "(unknown location) [git] mystery") {
		t.Fatalf("不明位置の行が期待通りではありません: %q", text)
	}
}

func TestReportErrorsはエラーゼロで沈黙する(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("パイプの作成に失敗しました: %v", err)
	}
	oldStderr := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = oldStderr })

	reportErrors(&engine.Result{})
	_ = w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("出力の読み込みに失敗しました: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("エラーがないのに出力がありました: %q", string(out))
	}
}

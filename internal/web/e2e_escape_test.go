//go:build e2e

package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
)

func TestRenderはHTMLエスケープでXSSを防止する(t *testing.T) {
	t.Parallel()

	if !hasBrowser() {
		t.Skip("Chrome/Chromiumが見つからないためスキップします")
	}

	mux := http.NewServeMux()
	Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// chromedp navigation can take some time in CI environments.
	ctx, cancel = context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	fixture := fmt.Sprintf(`({
                items: [{
                        kind: 'disable',
                        author: 'Alice & Bob',
                        email: 'alice<danger>@example.com',
                        date: '2026-01-02',
                        commit: '%s',
                        commit_url: 'https://git.example.com/o/r/commit/x"><script>alert(1)</script>',
                        file: 'dir/<file>&.js',
                        line: 12,
                        text: 'eslint-disable <img src=x onerror=alert(1)> & <>',
                        replacement: 'oxlint-disable <img src=x onerror=alert(1)> & <>',
                        message: '<b>bold</b> & <>',
                }],
                errors: [{
                        file: 'err<file>&',
                        line: 0,
                        stage: 'git<stage>',
                        message: 'failed <script>alert(1)</script>',
                }]
        })`, strings.Repeat("a", 40))

	var kind, author, email, date, commit, location, text, message string
	var escapedAuthorHTML string
	var nodeCount, commitLinkCount int
	var textCellHTML string

	err := chromedp.Run(ctx,
		chromedp.Navigate(srv.URL),
		chromedp.WaitVisible(`#out`, chromedp.ByID),
		chromedp.Evaluate(`document.getElementById('out').innerHTML = '';`, nil),
		chromedp.Evaluate(fmt.Sprintf(`const data = %s; document.getElementById('out').innerHTML = render(data);`, fixture), nil),
		chromedp.Text(`#out tbody tr td:nth-child(1)`, &kind, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(2)`, &author, chromedp.ByQuery),
		chromedp.InnerHTML(`#out tbody tr td:nth-child(2)`, &escapedAuthorHTML, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(3)`, &email, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(4)`, &date, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(5) code`, &commit, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(6) code`, &location, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(7)`, &text, chromedp.ByQuery),
		chromedp.InnerHTML(`#out tbody tr td:nth-child(7)`, &textCellHTML, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(9)`, &message, chromedp.ByQuery),
		chromedp.Evaluate(`document.querySelectorAll('#out img, #out script').length`, &nodeCount),
		chromedp.Evaluate(`document.querySelectorAll('#out tbody tr td:nth-child(5) a').length`, &commitLinkCount),
	)
	if err != nil {
		t.Fatalf("chromedpの操作に失敗しました: %v", err)
	}

	if kind != "disable" {
		t.Fatalf("種別が期待値と異なります: %q", kind)
	}
	if author != "Alice & Bob" {
		t.Fatalf("著者が期待値と異なります: %q", author)
	}
	if !strings.Contains(escapedAuthorHTML, "Alice &amp; Bob") {
		t.Fatalf("著者セルのHTMLがエスケープされていません: %q", escapedAuthorHTML)
	}
	if email != "alice<danger>@example.com" {
		t.Fatalf("メールが期待値と異なります: %q", email)
	}
	if date != "2026-01-02" {
		t.Fatalf("日付が期待値と異なります: %q", date)
	}
	if commit != strings.Repeat("a", 8) {
		t.Fatalf("コミットの短縮表示が期待値と異なります: %q", commit)
	}
	if location != "dir/<file>&.js:12" {
		t.Fatalf("ロケーションが期待値と異なります: %q", location)
	}
	if !strings.Contains(text, "<img src=x onerror=alert(1)>") || !strings.Contains(text, "&") {
		t.Fatalf("ディレクティブ本文のテキストが期待値と異なります: %q", text)
	}
	if !strings.Contains(textCellHTML, "&lt;img") || !strings.Contains(textCellHTML, "&amp;") {
		t.Fatalf("本文セルがエスケープされていません: %q", textCellHTML)
	}
	if message != "<b>bold</b> & <>" {
		t.Fatalf("メッセージが期待値と異なります: %q", message)
	}
	if nodeCount != 0 {
		t.Fatalf("危険なノードが挿入されています: %d", nodeCount)
	}
	if commitLinkCount != 1 {
		t.Fatalf("commit_url がリンクとして描画されていません: %d", commitLinkCount)
	}
}

func hasBrowser() bool {
	candidates := []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"}
	for _, name := range candidates {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

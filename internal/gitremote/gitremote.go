// Package gitremote は origin リモートの URL からブラウズ用リンクの
// 材料(ホスト・オーナー・リポジトリ)を取り出す。scp 形式
// (git@host:owner/repo.git) と ssh/git/http(s) の URL 形式に対応する。
package gitremote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/phyten/lintshift/internal/execx"
)

type Info struct {
	Host   string
	Owner  string
	Repo   string
	Scheme string
}

// Detect は repoDir のリモート URL を git config から読み取り解析する。
// LINTSHIFT_LINK_REMOTE でリモート名を、LINTSHIFT_LINK_SCHEME で
// リンクのスキームを上書きできる。
func Detect(ctx context.Context, runner execx.Runner, repoDir string) (Info, error) {
	if runner == nil {
		runner = execx.DefaultRunner()
	}
	remoteName := strings.TrimSpace(os.Getenv("LINTSHIFT_LINK_REMOTE"))
	if remoteName == "" {
		remoteName = "origin"
	}
	key := fmt.Sprintf("remote.%s.url", remoteName)
	stdout, stderr, err := runner.Run(ctx, repoDir, "git", "config", "--get", key)
	if err != nil {
		if len(stderr) > 0 {
			return Info{}, fmt.Errorf("git config failed for %s: %w: %s", key, err, strings.TrimSpace(string(stderr)))
		}
		return Info{}, fmt.Errorf("git config failed for %s: %w", key, err)
	}
	remote := strings.TrimSpace(string(stdout))
	if remote == "" {
		return Info{}, fmt.Errorf("%s is empty", key)
	}
	info, err := Parse(remote)
	if err != nil {
		return Info{}, err
	}
	if override := schemeOverride(os.Getenv("LINTSHIFT_LINK_SCHEME")); override != "" {
		info.Scheme = override
	}
	return info, nil
}

// Parse はリモート URL を Info に分解する。Scheme は http/https の
// ときだけ保持し、ssh/git/scp 形式は空のまま(リンクは https 既定)。
func Parse(raw string) (Info, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Info{}, errors.New("empty remote url")
	}

	// scp 形式: git@host:owner/repo.git
	if user, rest, ok := strings.Cut(raw, "@"); ok && user == "git" {
		if host, p, ok := strings.Cut(rest, ":"); ok && !strings.Contains(host, "/") {
			owner, repo, err := ownerRepo(p)
			if err != nil {
				return Info{}, err
			}
			return Info{Host: strings.ToLower(strings.TrimSpace(host)), Owner: owner, Repo: repo}, nil
		}
		return Info{}, fmt.Errorf("invalid ssh remote: %s", raw)
	}

	scheme, _, ok := strings.Cut(raw, "://")
	if !ok {
		return Info{}, fmt.Errorf("unsupported remote url: %s", raw)
	}
	switch scheme {
	case "ssh", "git", "http", "https":
	default:
		return Info{}, fmt.Errorf("unsupported remote url: %s", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Info{}, fmt.Errorf("invalid remote url: %w", err)
	}
	cleaned, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return Info{}, fmt.Errorf("invalid remote path: %w", err)
	}
	owner, repo, err := ownerRepo(cleaned)
	if err != nil {
		return Info{}, err
	}
	info := Info{
		Host:  strings.ToLower(strings.TrimSpace(u.Host)),
		Owner: owner,
		Repo:  repo,
	}
	if scheme == "http" || scheme == "https" {
		info.Scheme = scheme
	}
	return info, nil
}

// ownerRepo はパス末尾の 2 要素をオーナーとリポジトリ名として取り出す。
func ownerRepo(p string) (string, string, error) {
	cleaned := strings.TrimSpace(p)
	cleaned = strings.TrimSuffix(cleaned, ".git")
	cleaned = strings.Trim(cleaned, "/\\")
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "" {
		return "", "", errors.New("missing owner/repo in remote url")
	}
	segments := strings.Split(cleaned, "/")
	if len(segments) < 2 {
		return "", "", errors.New("remote url must include owner and repo")
	}
	owner := segments[len(segments)-2]
	repo := segments[len(segments)-1]
	if owner == "" || repo == "" {
		return "", "", errors.New("invalid owner or repo in remote url")
	}
	return owner, repo, nil
}

// WebURL はリポジトリのブラウズ用ベース URL を返す。
func (i Info) WebURL() string {
	host := strings.TrimSuffix(i.Host, "/")
	return fmt.Sprintf("%s://%s/%s/%s", i.NormalizedScheme(), host, url.PathEscape(i.Owner), url.PathEscape(i.Repo))
}

// BlobPath はファイルパスをセグメント単位でエスケープして返す。
func BlobPath(file string) string {
	parts := strings.Split(filepath.ToSlash(file), "/")
	for idx, part := range parts {
		parts[idx] = url.PathEscape(part)
	}
	return path.Join(parts...)
}

// NormalizedScheme はリンク生成に使うスキームを返す。
// http/https 以外は https に落とす。環境変数の上書きが最優先。
func (i Info) NormalizedScheme() string {
	if override := schemeOverride(os.Getenv("LINTSHIFT_LINK_SCHEME")); override != "" {
		return override
	}
	if strings.EqualFold(strings.TrimSpace(i.Scheme), "http") {
		return "http"
	}
	return "https"
}

func schemeOverride(raw string) string {
	switch scheme := strings.ToLower(strings.TrimSpace(raw)); scheme {
	case "http", "https":
		return scheme
	default:
		return ""
	}
}

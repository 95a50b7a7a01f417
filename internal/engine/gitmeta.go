package engine

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

func buildBlameArgs(file string, line int, ignoreWS bool) []string {
	args := []string{"blame"}
	if ignoreWS {
		args = append(args, "-w")
	}
	lineSpec := fmt.Sprintf("%d,%d", line, line)
	return append(args, "--line-porcelain", "-L", lineSpec, "--", file)
}

func blameSHA(ctx context.Context, repo, file string, line int, ignoreWS bool) (string, error) {
	args := buildBlameArgs(file, line, ignoreWS)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repo
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	// first token of 1st line is SHA
	first := bytes.SplitN(out, []byte("\n"), 2)[0]
	sha := strings.Fields(string(first))
	if len(sha) > 0 {
		return sha[0], nil
	}
	return "", nil
}

func firstCommitForLine(ctx context.Context, repo, file string, line int) (string, error) {
	spec := fmt.Sprintf("%d,%d:%s", line, line, file)
	cmd := exec.CommandContext(ctx, "git", "log", "--reverse", "-L", spec, "--format=%H")
	cmd.Dir = repo
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	sc := bufio.NewScanner(bytes.NewReader(out))
	if sc.Scan() {
		return strings.TrimSpace(sc.Text()), nil
	}
	return "", nil
}

func commitMeta(ctx context.Context, repo, sha string) (author, email, date string, authorTime time.Time, subject string, err error) {
	cmd := exec.CommandContext(ctx, "git", "show", "-s", "--date=iso-strict-local", "--format=%an%x09%ae%x09%ad%x09%at%x09%s", sha)
	cmd.Dir = repo
	out, err := cmd.Output()
	if err != nil {
		return "-", "-", "-", time.Time{}, "-", fmt.Errorf("git show: %w", err)
	}
	parts := strings.SplitN(strings.TrimSpace(string(out)), "\t", 5)
	if len(parts) != 5 {
		return "-", "-", "-", time.Time{}, "-", fmt.Errorf("git show unexpected output: %q", strings.TrimSpace(string(out)))
	}
	ts, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return "-", "-", "-", time.Time{}, "-", fmt.Errorf("git show timestamp parse: %w", err)
	}
	return parts[0], parts[1], parts[2], time.Unix(ts, 0).UTC(), parts[4], nil
}

func ageDays(now, author time.Time) int {
	if author.IsZero() {
		return 0
	}
	diff := int(now.Sub(author).Hours() / 24)
	if diff < 0 {
		return 0
	}
	return diff
}

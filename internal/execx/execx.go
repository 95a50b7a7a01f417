// Package execx は git コマンド呼び出しの差し替え点を提供する。
// テストでは Runner を偽装してリモート検出などを副作用なしに検証できる。
package execx

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner は外部コマンド 1 回分の実行を抽象化する。
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

type systemRunner struct{}

func (systemRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// DefaultRunner は exec.CommandContext による実装を返す。
func DefaultRunner() Runner {
	return systemRunner{}
}

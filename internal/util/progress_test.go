package util

import "testing"

func TestPercentは100を上限とする(t *testing.T) {
	if got := percent(5, 4); got != 100 {
		t.Fatalf("5/4 は 100%% として扱うべきです: got=%d", got)
	}
	if got := percent(0, 0); got != 100 {
		t.Fatalf("0/0 は 100%% として扱うべきです: got=%d", got)
	}
	if got := percent(1, 4); got != 25 {
		t.Fatalf("1/4 は 25%% のはずです: got=%d", got)
	}
}

func TestProgress無効時は何も出力しない(t *testing.T) {
	p := NewProgress(3, false)
	p.Advance()
	p.Advance()
	p.Done()
	if got := int(p.done.Load()); got != 2 {
		t.Fatalf("完了数は 2 のはずです: got=%d", got)
	}
}

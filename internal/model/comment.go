package model

// Span は 1 件の検出範囲を行・桁・バイトオフセットで表します。
// ByteStart/ByteEnd はファイル先頭からのオフセットで、コメントの
// デリミタ（`//` や `/* */`）は含みません。
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
	ByteStart int `json:"byte_start"`
	ByteEnd   int `json:"byte_end"`
}

// Comment はソースから切り出した 1 件のコメント本文を表します。
// Text にはデリミタを除いた内容のみが入ります。
type Comment struct {
	Text       string
	SingleLine bool
	Span       Span
}

package termcolor

import (
	"fmt"
	"math"
	"strings"
)

// Style は 1 セル分の装飾指定。前景色はプロファイルに応じて
// FGTrue > FG256 > FGBasic の順に 1 つだけ使われる。
type Style struct {
	Bold      bool
	Underline bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

// Apply は enabled のときだけ SGR シーケンスで text を包む。
func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	codes := sgrCodes(s)
	if len(codes) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + text + "\x1b[0m"
}

func sgrCodes(s Style) []string {
	codes := make([]string, 0, 4)
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	switch {
	case s.FGTrue != nil:
		rgb := *s.FGTrue
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", rgb[0], rgb[1], rgb[2]))
	case s.FG256 != nil:
		codes = append(codes, fmt.Sprintf("38;5;%d", *s.FG256))
	case s.FGBasic != nil:
		codes = append(codes, fmt.Sprintf("3%d", *s.FGBasic))
	}
	return codes
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// KindStyle returns the style for a directive kind column value.
// File-wide suppressions are the more severe finding and render red,
// next-line suppressions render blue.
func KindStyle(kind string) Style {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "disable":
		color := 1
		return Style{FGBasic: &color}
	case "disable-next-line":
		color := 4
		return Style{FGBasic: &color}
	default:
		return Style{}
	}
}

// AgeStyle は directive の経過日数を緑→赤のグラデーションに写す。
// 明色背景ではフル輝度の緑や黄が沈むため、端点を暗めに落とす。
func AgeStyle(age int, profile Profile, scheme Scheme, maxAge float64) Style {
	if age < 0 {
		age = 0
	}
	switch profile {
	case ProfileTrueColor:
		rgb := gradientRGB(age, maxAge, scheme)
		return Style{FGTrue: &rgb}
	case ProfileANSI256:
		rgb := gradientRGB(age, maxAge, scheme)
		idx := rgbToANSI256(rgb[0], rgb[1], rgb[2])
		return Style{FG256: &idx}
	default:
		color := ageBucketColor(age)
		return Style{FGBasic: &color}
	}
}

func gradientRGB(age int, maxAge float64, scheme Scheme) [3]uint8 {
	if maxAge <= 0 {
		maxAge = 120
	}
	peak := uint8(255)
	if scheme == SchemeLight {
		peak = 170
	}
	t := float64(age) / maxAge
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if t <= 0 {
		return [3]uint8{0, peak, 0}
	}
	if t >= 1 {
		return [3]uint8{peak, 0, 0}
	}
	if t < 0.5 {
		r := uint8(math.Round(float64(peak) * t / 0.5))
		return [3]uint8{r, peak, 0}
	}
	g := uint8(math.Round(float64(peak) * (1 - (t-0.5)/0.5)))
	return [3]uint8{peak, g, 0}
}

func ageBucketColor(age int) int {
	switch {
	case age <= 7:
		return 2
	case age <= 30:
		return 3
	case age <= 90:
		return 5
	default:
		return 1
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}

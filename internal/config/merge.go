package config

import "strings"

// MergeEngine は設定レイヤを前から順に重ね、後勝ちで EngineSettings を確定する。
// nil のフィールドは「その層では未指定」を意味し、下の層の値を保つ。
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Kind = pick(out.Kind, layer.Kind)
		out.Mode = pick(out.Mode, layer.Mode)
		out.Author = pick(out.Author, layer.Author)
		out.Paths = pickStrings(out.Paths, layer.Paths)
		out.Excludes = pickStrings(out.Excludes, layer.Excludes)
		out.PathRegex = pickStrings(out.PathRegex, layer.PathRegex)
		out.ExcludeTypical = pick(out.ExcludeTypical, layer.ExcludeTypical)
		out.WithMessage = pick(out.WithMessage, layer.WithMessage)
		out.Fix = pick(out.Fix, layer.Fix)
		out.Verify = pick(out.Verify, layer.Verify)
		out.Langs = pickStrings(out.Langs, layer.Langs)
		out.TruncAll = pick(out.TruncAll, layer.TruncAll)
		out.TruncText = pick(out.TruncText, layer.TruncText)
		out.TruncMessage = pick(out.TruncMessage, layer.TruncMessage)
		out.IgnoreWS = pick(out.IgnoreWS, layer.IgnoreWS)
		out.Jobs = pick(out.Jobs, layer.Jobs)
		out.Repo = pickTrimmed(out.Repo, layer.Repo)
		out.Output = pickTrimmed(out.Output, layer.Output)
		out.Color = pickTrimmed(out.Color, layer.Color)
		out.MaxFileBytes = pick(out.MaxFileBytes, layer.MaxFileBytes)
		out.NoPrefilter = pick(out.NoPrefilter, layer.NoPrefilter)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

// MergeUI は表示系設定を同じ後勝ちルールで確定する。
func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.WithAge = pick(out.WithAge, layer.WithAge)
		out.WithCommitLink = pick(out.WithCommitLink, layer.WithCommitLink)
		out.Fields = pickTrimmed(out.Fields, layer.Fields)
		out.Sort = pickTrimmed(out.Sort, layer.Sort)
	}
	return out
}

func pick[T any](current T, override *T) T {
	if override != nil {
		return *override
	}
	return current
}

func pickTrimmed(current string, override *string) string {
	return strings.TrimSpace(pick(current, override))
}

// pickStrings は空スライスの明示指定をリセットとして扱う。
func pickStrings(current []string, override *[]string) []string {
	if override == nil {
		return cloneStrings(current)
	}
	if len(*override) == 0 {
		return []string{}
	}
	return cloneStrings(*override)
}

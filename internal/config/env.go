package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/lintshift/internal/engine/opts"
)

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setString(&cfg.Engine.Kind, "LINTSHIFT_KIND")
	setString(&cfg.Engine.Mode, "LINTSHIFT_MODE")
	setString(&cfg.Engine.Author, "LINTSHIFT_AUTHOR")
	setList(&cfg.Engine.Paths, "LINTSHIFT_PATH")
	setList(&cfg.Engine.Excludes, "LINTSHIFT_EXCLUDE")
	setList(&cfg.Engine.PathRegex, "LINTSHIFT_PATH_REGEX")
	setList(&cfg.Engine.Langs, "LINTSHIFT_LANGS")
	setBool(&cfg.Engine.ExcludeTypical, "LINTSHIFT_EXCLUDE_TYPICAL")
	setString(&cfg.Engine.Output, "LINTSHIFT_OUTPUT")
	setString(&cfg.Engine.Color, "LINTSHIFT_COLOR")
	setBool(&cfg.Engine.WithMessage, "LINTSHIFT_WITH_MESSAGE")
	setBool(&cfg.Engine.Fix, "LINTSHIFT_FIX")
	setBool(&cfg.Engine.Verify, "LINTSHIFT_VERIFY")
	if raw := strings.TrimSpace(getenv("LINTSHIFT_NO_VERIFY")); raw != "" {
		v, err := engineopts.ParseBool(raw, "LINTSHIFT_NO_VERIFY")
		if err != nil {
			errs = append(errs, err)
		} else {
			value := !v
			cfg.Engine.Verify = &value
		}
	}
	setInt(&cfg.Engine.TruncAll, "LINTSHIFT_TRUNCATE", 0, math.MaxInt)
	setInt(&cfg.Engine.TruncText, "LINTSHIFT_TRUNCATE_TEXT", 0, math.MaxInt)
	setInt(&cfg.Engine.TruncMessage, "LINTSHIFT_TRUNCATE_MESSAGE", 0, math.MaxInt)
	setBool(&cfg.Engine.IgnoreWS, "LINTSHIFT_IGNORE_WS")
	setInt(&cfg.Engine.MaxFileBytes, "LINTSHIFT_MAX_FILE_BYTES", 0, math.MaxInt)
	// Allow large values here and rely on NormalizeAndValidate to enforce the
	// canonical upper bound so every input path shares the same error message.
	setInt(&cfg.Engine.Jobs, "LINTSHIFT_JOBS", 0, math.MaxInt)
	setString(&cfg.Engine.Repo, "LINTSHIFT_REPO")
	setBool(&cfg.Engine.NoPrefilter, "LINTSHIFT_NO_PREFILTER")

	setBool(&cfg.UI.WithCommitLink, "LINTSHIFT_WITH_COMMIT_LINK")
	setBool(&cfg.UI.WithAge, "LINTSHIFT_WITH_AGE")
	setString(&cfg.UI.Fields, "LINTSHIFT_FIELDS")
	setString(&cfg.UI.Sort, "LINTSHIFT_SORT")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}

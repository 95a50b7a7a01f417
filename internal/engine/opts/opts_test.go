package opts

import (
	"net/url"
	"reflect"
	"testing"
)

func TestDefaults(t *testing.T) {
	def := Defaults("/repo")
	if def.Kind != "both" || def.Mode != "last" {
		t.Fatalf("unexpected defaults: %+v", def)
	}
	if !def.Verify {
		t.Fatal("verification must default to on")
	}
	if def.Fix {
		t.Fatal("fix must default to off")
	}
	if !def.ExcludeTypical {
		t.Fatal("typical excludes must default to on")
	}
	if def.RepoDir != "/repo" {
		t.Fatalf("repo dir not carried: %q", def.RepoDir)
	}
}

func TestApplyWebQueryToOptions(t *testing.T) {
	def := Defaults(".")
	q := url.Values{
		"kind":         []string{"disable"},
		"mode":         []string{"first"},
		"author":       []string{"alice"},
		"with_message": []string{"1"},
		"langs":        []string{"ts,tsx"},
		"path":         []string{"src", "lib"},
		"jobs":         []string{"8"},
	}
	out, err := ApplyWebQueryToOptions(def, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != "disable" || out.Mode != "first" || out.AuthorRegex != "alice" {
		t.Fatalf("scalar values not applied: %+v", out)
	}
	if !out.WithMessage {
		t.Fatal("with_message not applied")
	}
	if !reflect.DeepEqual(out.DetectLangs, []string{"ts", "tsx"}) {
		t.Fatalf("langs not split: %v", out.DetectLangs)
	}
	if !reflect.DeepEqual(out.Paths, []string{"src", "lib"}) {
		t.Fatalf("paths not applied: %v", out.Paths)
	}
	if out.Jobs != 8 {
		t.Fatalf("jobs not applied: %d", out.Jobs)
	}
	if out.Fix {
		t.Fatal("web query must never enable fix")
	}
}

func TestApplyWebQueryRejectsBadValues(t *testing.T) {
	def := Defaults(".")
	if _, err := ApplyWebQueryToOptions(def, url.Values{"jobs": []string{"0"}}); err == nil {
		t.Fatal("jobs below 1 must error")
	}
	if _, err := ApplyWebQueryToOptions(def, url.Values{"with_message": []string{"maybe"}}); err == nil {
		t.Fatal("non-boolean literal must error")
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	o := Defaults(".")
	o.Kind = " Disable "
	o.Mode = ""
	o.DetectLangs = []string{" ts ", ""}
	o.PathRegex = []string{`\.spec\.`}
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Kind != "disable" || o.Mode != "last" {
		t.Fatalf("normalization failed: %+v", o)
	}
	if !reflect.DeepEqual(o.DetectLangs, []string{"typescript"}) {
		t.Fatalf("langs not canonicalized: %v", o.DetectLangs)
	}
	if len(o.PathRegexCompiled) != 1 {
		t.Fatalf("path regex not compiled: %v", o.PathRegexCompiled)
	}
}

func TestNormalizeAndValidateRejects(t *testing.T) {
	o := Defaults(".")
	o.Kind = "disable-all"
	if err := NormalizeAndValidate(&o); err == nil {
		t.Fatal("invalid kind must error")
	}
	o = Defaults(".")
	o.PathRegex = []string{"("}
	if err := NormalizeAndValidate(&o); err == nil {
		t.Fatal("invalid path regex must error")
	}
}

func TestNormalizeAndValidateDefaultsTruncation(t *testing.T) {
	o := Defaults(".")
	o.WithMessage = true
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.TruncAll != 120 {
		t.Fatalf("default truncation not applied: %d", o.TruncAll)
	}
}

func TestNormalizeOutput(t *testing.T) {
	for _, v := range []string{"table", "TSV", " json ", "csv", "md", "ndjson"} {
		if _, err := NormalizeOutput(v); err != nil {
			t.Fatalf("%q should be accepted: %v", v, err)
		}
	}
	if _, err := NormalizeOutput("yaml"); err == nil {
		t.Fatal("unknown output must error")
	}
}

func TestSplitMulti(t *testing.T) {
	got := SplitMulti([]string{"a, b", "", "c"})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected split: %v", got)
	}
}

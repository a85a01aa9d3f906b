package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/hermes"
	"git.fractalqb.de/fractalqb/hermes/jq"
	"git.fractalqb.de/fractalqb/testerr"
)

func TestBuildPipeline(t *testing.T) {
	pipe := testerr.Shall1(buildPipeline(".a | .b", []string{".c"})).BeNil(t)
	if s := pipe.String(); s != ".a | .b | .c" {
		t.Errorf("pipeline is '%s'", s)
	}
	pipe = testerr.Shall1(buildPipeline("", nil)).BeNil(t)
	if s := pipe.String(); s != "." {
		t.Errorf("empty pipeline is '%s'", s)
	}
	if _, err := buildPipeline("", []string{"c"}); !errors.Is(err, jq.ErrSyntax) {
		t.Errorf("unexpected error %v", err)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	testerr.Shall(os.WriteFile(file, []byte(content), 0666)).BeNil(t)
	return file
}

func TestReadFile_json(t *testing.T) {
	file := writeTemp(t, "samples.json", `{"a": 1} {"a": "x", "b": []}`)
	samples := testerr.Shall1(readFile(file)).BeNil(t)
	if len(samples) != 2 {
		t.Fatalf("read %d samples", len(samples))
	}
	scm := inferAll(samples)
	want := hermes.NewObject(map[string]hermes.JsonType{
		"a": hermes.NewUnion(hermes.Number, hermes.String),
		"b": hermes.Array{Elem: hermes.Never},
	})
	if !scm.Equal(want) {
		t.Errorf("inferred %s", hermes.Render(scm))
	}
}

func TestReadFile_yaml(t *testing.T) {
	file := writeTemp(t, "samples.yaml", "a: 1\n---\na: x\nb: [true]\n")
	samples := testerr.Shall1(readFile(file)).BeNil(t)
	if len(samples) != 2 {
		t.Fatalf("read %d samples", len(samples))
	}
	scm := inferAll(samples)
	want := hermes.NewObject(map[string]hermes.JsonType{
		"a": hermes.NewUnion(hermes.Number, hermes.String),
		"b": hermes.Array{Elem: hermes.Bool},
	})
	if !scm.Equal(want) {
		t.Errorf("inferred %s", hermes.Render(scm))
	}
}

func TestReadFile_yamlIntKeys(t *testing.T) {
	file := writeTemp(t, "api.yaml", "responses:\n  200: ok\n  404: missing\n")
	samples := testerr.Shall1(readFile(file)).BeNil(t)
	if len(samples) != 1 {
		t.Fatalf("read %d samples", len(samples))
	}
	pipe := testerr.Shall1(jq.ParsePipeline(".responses | .200")).BeNil(t)
	res := testerr.Shall1(applyPipeline(pipe, samples[0], 0)).BeNil(t)
	if res != `"ok"` {
		t.Errorf("selected %s", res)
	}
	res = testerr.Shall1(applyPipeline(jq.Pipeline{}, samples[0], 0)).BeNil(t)
	if !strings.Contains(res, `"404": "missing"`) {
		t.Errorf("identity result: %s", res)
	}
	n := testerr.Shall1(countMatches(`$['responses']['200']`, samples)).BeNil(t)
	if n != 1 {
		t.Errorf("path selects %d values", n)
	}
}

func TestReadFile_broken(t *testing.T) {
	file := writeTemp(t, "broken.json", `{"a": 1} {"a":`)
	if _, err := readFile(file); err == nil {
		t.Error("no error for broken JSON")
	}
}

func TestReadArgs(t *testing.T) {
	f1 := writeTemp(t, "one.json", `[1]`)
	f2 := writeTemp(t, "two.json", `["x"]`)
	samples := testerr.Shall1(readArgs(strings.NewReader(f1 + "\n\n" + f2 + "\n"))).BeNil(t)
	scm := inferAll(samples)
	if !scm.Equal(hermes.Array{Elem: hermes.NewUnion(hermes.Number, hermes.String)}) {
		t.Errorf("inferred %s", hermes.Render(scm))
	}
}

func TestInferAll_empty(t *testing.T) {
	if scm := inferAll(nil); !scm.Equal(hermes.Never) {
		t.Errorf("no samples infer %s", hermes.Render(scm))
	}
}

func TestApplyPipeline(t *testing.T) {
	var sample any
	testerr.Shall(json.Unmarshal([]byte(`{"a": {"b": {"c": [1, 2]}}}`), &sample)).BeNil(t)
	pipe := testerr.Shall1(jq.ParsePipeline(".a")).BeNil(t)
	res := testerr.Shall1(applyPipeline(pipe, sample, 1)).BeNil(t)
	if res != "{\n  \"b\": \"{...}\"\n}" {
		t.Errorf("truncated result: %s", res)
	}
	pipe = testerr.Shall1(jq.ParsePipeline(".a | .x")).BeNil(t)
	if _, err := applyPipeline(pipe, sample, 0); !errors.Is(err, jq.ErrFieldNotFound) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestReport(t *testing.T) {
	fJSON, fTypes, fDepth = true, true, 0
	defer func() { fJSON, fTypes = false, false }()
	var samples []any
	for _, js := range []string{`{"p": {"x": 1}, "q": {"x": 2}}`, `{"p": 5}`} {
		var s any
		testerr.Shall(json.Unmarshal([]byte(js), &s)).BeNil(t)
		samples = append(samples, s)
	}
	pipe := testerr.Shall1(jq.ParsePipeline(".p | .x")).BeNil(t)
	var sb strings.Builder
	testerr.Shall(report(&sb, inferAll(samples), samples, pipe)).BeNil(t)
	out := sb.String()
	t.Log("\n" + out)
	for _, exp := range []string{
		"Inferred from 2 samples:",
		`"union"`,
		"Found 1 reused types",
		"Occurs 2 times:",
		"Pipeline: .p | .x",
		"#1: 1",
		"#2: Transform error:",
	} {
		if !strings.Contains(out, exp) {
			t.Errorf("missing '%s' in report", exp)
		}
	}
}

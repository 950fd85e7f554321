package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Columbina-Dev/vector-calculator/internal/container"
	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/testsupport"
	"github.com/Columbina-Dev/vector-calculator/internal/voicebank"
)

type reportView struct {
	Path     string `json:"path"`
	Source   string `json:"source"`
	Repaired bool   `json:"repaired"`
	Valid    bool   `json:"valid"`
	Errors   []struct {
		Severity string `json:"severity"`
		Message  string `json:"message"`
		Path     []any  `json:"path"`
	} `json:"errors"`
	Warnings []struct {
		Message string `json:"message"`
	} `json:"warnings"`
}

func TestValidateCleanContainer(t *testing.T) {
	env := setupCLITestEnv(t)
	target := env.writeContainer(t, "aria.nofs", testsupport.ValidConfigJSON())

	out, _, err := env.run(t, "validate", target)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, out, "(container): 0 errors, 0 warnings")
	requireNotContains(t, out, "Severity")
}

func TestValidateReportsEveryIssue(t *testing.T) {
	env := setupCLITestEnv(t)
	text := strings.Replace(testsupport.ValidConfigJSON(), `"version": "2b1"`, `"version": "2.0"`, 1)
	text = strings.Replace(text, `"name": "power"`, `"name": "soft"`, 1)
	text = strings.Replace(text, `"vendor": "Columbina",`, `"vendor": "Columbina", "mood": "calm",`, 1)
	src := testsupport.WriteFile(t, env.workDir, "broken.json", []byte(text))

	out, _, err := env.run(t, "validate", src)
	if !errors.Is(err, faults.ErrInvalid) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	requireContains(t, out, "Severity")
	requireContains(t, out, "ERROR")
	requireContains(t, out, "WARN")
	requireContains(t, out, `Duplicate style name "soft"`)
	requireContains(t, out, `unknown field "mood"`)
	requireContains(t, out, "(json): 2 errors, 1 warnings")
}

func TestValidateJSONReport(t *testing.T) {
	env := setupCLITestEnv(t)
	text := strings.Replace(testsupport.ValidConfigJSON(), `"pitch": "`+testsupport.PitchHex+`",`, ``, 1)
	src := testsupport.WriteFile(t, env.workDir, "nopitch.json", []byte(text))

	out, _, err := env.run(t, "validate", src, "--json")
	if !errors.Is(err, faults.ErrInvalid) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	var report reportView
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Valid || report.Source != "json" {
		t.Fatalf("unexpected report header %+v", report)
	}
	if len(report.Errors) != 1 || report.Errors[0].Message != voicebank.MsgPitchRequired {
		t.Fatalf("expected single pitch error, got %+v", report.Errors)
	}
	if len(report.Errors[0].Path) != 1 || report.Errors[0].Path[0] != "pitch" {
		t.Fatalf("unexpected error path %v", report.Errors[0].Path)
	}
	requireContains(t, out, `"warnings": []`)
}

func TestValidateWarningPolicy(t *testing.T) {
	text := strings.Replace(testsupport.ValidConfigJSON(), `"vendor": "Columbina",`, `"vendor": "Columbina", "mood": "calm",`, 1)

	env := setupCLITestEnv(t)
	src := testsupport.WriteFile(t, env.workDir, "warn.json", []byte(text))
	if _, _, err := env.run(t, "validate", src); err != nil {
		t.Fatalf("warnings alone should pass by default: %v", err)
	}

	strict := setupCLITestEnv(t, testsupport.WithFailOnWarnings())
	src = testsupport.WriteFile(t, strict.workDir, "warn.json", []byte(text))
	_, _, err := strict.run(t, "validate", src)
	if !errors.Is(err, faults.ErrInvalid) {
		t.Fatalf("expected fail_on_warnings to fail the run, got %v", err)
	}
	requireContains(t, err.Error(), "fail_on_warnings")
}

func TestValidateNormalizeFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	text := strings.Replace(testsupport.ValidConfigJSON(), `"phoneset": "romaji"`, `"phoneset": "arpabet"`, 1)
	src := testsupport.WriteFile(t, env.workDir, "mismatch.json", []byte(text))

	out, _, err := env.run(t, "validate", src)
	if !errors.Is(err, faults.ErrInvalid) {
		t.Fatalf("expected phoneset mismatch to be rejected, got %v", err)
	}
	requireContains(t, out, `phoneset "arpabet" does not match language "japanese"`)
	if _, _, err := env.run(t, "validate", src, "--normalize"); err != nil {
		t.Fatalf("validate --normalize: %v", err)
	}
}

func TestValidateRepairFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	text := strings.TrimSuffix(testsupport.ValidConfigJSON(), "}") + ",}"
	src := testsupport.WriteFile(t, env.workDir, "comma.json", []byte(text))

	if _, _, err := env.run(t, "validate", src); !errors.Is(err, faults.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
	out, _, err := env.run(t, "validate", src, "--repair", "--json")
	if err != nil {
		t.Fatalf("validate --repair: %v", err)
	}
	var report reportView
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.Repaired || !report.Valid {
		t.Fatalf("expected repaired valid report, got %+v", report)
	}
}

func TestNormalizeCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	text := strings.Replace(testsupport.ValidConfigJSON(), `"language": "japanese"`, `"language": "JAPANESE"`, 1)
	text = strings.Replace(text, `"phoneset": "romaji"`, `"phoneset": "xsampa"`, 1)
	text = strings.Replace(text, testsupport.StyleHex, strings.ToLower(testsupport.StyleHex), 1)
	src := testsupport.WriteFile(t, env.workDir, "raw.json", []byte(text))

	out, _, err := env.run(t, "normalize", src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	doc, err := jsondoc.ParseString(out)
	if err != nil {
		t.Fatalf("parse normalized output: %v", err)
	}
	if !jsondoc.Equal(doc, testsupport.ValidConfigDocument(t)) {
		t.Fatalf("normalized output mismatch:\n%s", out)
	}
}

func TestNormalizeKeepsContainerFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	text := strings.Replace(testsupport.ValidConfigJSON(), `"language": "japanese"`, `"language": "Japanese"`, 1)
	src := env.writeContainer(t, "raw.nofs", text)
	target := filepath.Join(env.workDir, "clean.nofs")

	if _, _, err := env.run(t, "normalize", src, "--out", target); err != nil {
		t.Fatalf("normalize --out: %v", err)
	}
	doc, err := container.DecryptDocument(testsupport.ReadFile(t, target))
	if err != nil {
		t.Fatalf("decrypt normalized container: %v", err)
	}
	if !jsondoc.Equal(doc, testsupport.ValidConfigDocument(t)) {
		t.Fatalf("normalized container mismatch: %s", doc)
	}
}

func TestQueryCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	src := env.writeBankJSON(t, "aria.json")
	target := env.writeContainer(t, "aria.nofs", testsupport.ValidConfigJSON())

	out, _, err := env.run(t, "query", target, "-r", `.support_languages | join(",")`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if out != "japanese,english\n" {
		t.Fatalf("unexpected raw output %q", out)
	}

	out, _, err = env.run(t, "query", src, ".styles[0]")
	if err != nil {
		t.Fatalf("query json: %v", err)
	}
	requireContains(t, out, `"extra": 0.5`)

	_, _, err = env.run(t, "query", src, ".styles[")
	if !errors.Is(err, faults.ErrFormat) {
		t.Fatalf("expected format error for bad expression, got %v", err)
	}
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"schema"}, "")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", out)
	}
	for _, field := range []string{voicebank.FieldPitch, voicebank.FieldTiming, voicebank.FieldStyles, voicebank.FieldLanguage} {
		if _, ok := props[field]; !ok {
			t.Fatalf("schema missing property %q", field)
		}
	}
	requireContains(t, out, "Voice bank configuration")
}

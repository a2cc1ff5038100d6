package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/glyphfit"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Cleanup(func() { glyphfit.SetLogger(nil) })
	var out, errb bytes.Buffer
	code = run(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"no args", nil, 2, ""},
		{"version", []string{"version"}, 0, "glyphfit dev"},
		{"help", []string{"help"}, 0, "Commands:"},
		{"unknown", []string{"frobnicate"}, 2, ""},
		{"flag help", []string{"run", "-h"}, 0, ""},
		{"bad targets", []string{"run", "-targets", "1,x"}, 2, ""},
		{"bad mode", []string{"gaps", "-mode", "fastest"}, 2, ""},
		{"bad metric", []string{"run", "-metrics", "darkness"}, 2, ""},
		{"missing config", []string{"run", "-config", "/nonexistent/glyphfit.yaml"}, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("run(%v) = %d, want %d", tt.args, code, tt.wantCode)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("run(%v) stdout = %q, want it to contain %q", tt.args, out, tt.wantOut)
			}
		})
	}
}

func TestRunYAML(t *testing.T) {
	code, out, stderr := runCLI(t, "run", "-glyphs", "Hn", "-size", "48", "-targets", "100,200", "-metrics", "total", "-format", "yaml")
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}

	var rep glyphfit.RunReport
	if err := yaml.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, out)
	}
	if len(rep.Glyphs) != 2 || rep.Glyphs[0].Glyph != "H" || rep.Glyphs[1].Glyph != "n" {
		t.Fatalf("report glyphs = %+v, want H and n", rep.Glyphs)
	}
	if len(rep.Glyphs[0].Scans) != 2 {
		t.Errorf("len(Scans) = %d, want 2", len(rep.Glyphs[0].Scans))
	}
	if !strings.Contains(stderr, "glyph scanned") {
		t.Errorf("stderr = %q, want info log lines", stderr)
	}
}

func TestGapsJSON(t *testing.T) {
	code, out, stderr := runCLI(t, "gaps", "-glyphs", "H", "-size", "48", "-gap-metric", "margin", "-mode", "best")
	if code != 0 {
		t.Fatalf("gaps = %d, stderr: %s", code, stderr)
	}
	var rep glyphfit.GapReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("json.Unmarshal() error = %v\n%s", err, out)
	}
	if rep.Metric != "margin" || len(rep.Glyphs) != 1 {
		t.Errorf("gap report = %+v, want one margin result", rep)
	}
}

func TestValidateSeveralFonts(t *testing.T) {
	dir := t.TempDir()
	var fonts []string
	for _, name := range []string{"a.ttf", "b.ttf"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
			t.Fatal(err)
		}
		fonts = append(fonts, path)
	}

	args := append([]string{"validate", "-glyphs", "H", "-size", "48"}, fonts...)
	code, out, stderr := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("validate = %d, stderr: %s", code, stderr)
	}
	var reps []glyphfit.ValidationReport
	if err := json.Unmarshal([]byte(out), &reps); err != nil {
		t.Fatalf("json.Unmarshal() error = %v\n%s", err, out)
	}
	if len(reps) != 2 {
		t.Errorf("len(reports) = %d, want 2", len(reps))
	}

	code, _, stderr = runCLI(t, "validate", filepath.Join(dir, "missing.ttf"))
	if code != 1 || !strings.Contains(stderr, "missing.ttf") {
		t.Errorf("validate(missing) = %d, stderr %q; want 1 naming the file", code, stderr)
	}
}

func TestArtifactsSeveralFonts(t *testing.T) {
	dir := t.TempDir()
	var fonts []string
	for name, data := range map[string][]byte{"regular.ttf": goregular.TTF, "bold.ttf": gobold.TTF} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatal(err)
		}
		fonts = append(fonts, path)
	}
	out := filepath.Join(dir, "out")

	args := append([]string{"run", "-glyphs", "H", "-size", "48", "-targets", "100,200", "-metrics", "total",
		"-out", out, "-sdf", "-traces"}, fonts...)
	code, _, stderr := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("run = %d, stderr: %s", code, stderr)
	}

	var images [][]byte
	for _, font := range []string{"regular", "bold"} {
		for _, name := range []string{"U+0048.png", "U+0048_total_100.csv", "U+0048_total_200.csv"} {
			if _, err := os.Stat(filepath.Join(out, font, name)); err != nil {
				t.Errorf("artifact %s/%s: %v", font, name, err)
			}
		}
		img, err := os.ReadFile(filepath.Join(out, font, "U+0048.png"))
		if err == nil {
			images = append(images, img)
		}
	}
	if len(images) == 2 && bytes.Equal(images[0], images[1]) {
		t.Error("regular and bold wrote identical distance-field images")
	}
	if _, err := os.Stat(filepath.Join(out, "U+0048.png")); err == nil {
		t.Error("U+0048.png written to the shared -out directory, want per-font subdirectories")
	}
}

func TestFontDirs(t *testing.T) {
	tests := []struct {
		name  string
		dir   string
		fonts []string
		want  []string
	}{
		{"single font", "out", []string{"fonts/Inter.ttf"}, []string{"out"}},
		{"no dir", "", []string{"a.ttf", "b.ttf"}, []string{"", ""}},
		{"several", "out", []string{"x/Inter Bold.otf", "", "y/a.ttf"},
			[]string{filepath.Join("out", "Inter_Bold"), filepath.Join("out", "goregular"), filepath.Join("out", "a")}},
		{"same base name", "out", []string{"x/a.ttf", "y/a.ttf", "z/a.otf"},
			[]string{filepath.Join("out", "a"), filepath.Join("out", "a-2"), filepath.Join("out", "a-3")}},
		{"dots only", "out", []string{"..ttf", "b.ttf"},
			[]string{filepath.Join("out", "font"), filepath.Join("out", "b")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, fontDirs(tt.dir, tt.fonts)); diff != "" {
				t.Errorf("fontDirs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" total, ,coverage ")
	if len(got) != 2 || got[0] != "total" || got[1] != "coverage" {
		t.Errorf("splitList() = %q, want [total coverage]", got)
	}
}

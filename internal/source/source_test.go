package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msto63/glottony/pkg/core/cache"
	glerrors "github.com/msto63/glottony/pkg/core/errors"
	"github.com/msto63/glottony/pkg/glottony/parser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.glot", "fun f(): int = 1")

	unit, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if unit.Name != path || unit.Text != "fun f(): int = 1" {
		t.Errorf("Load() = %+v", unit)
	}

	if _, err := Load(path, 4); !glerrors.HasCode(err, glerrors.CodeInvalidInput) {
		t.Errorf("Load() with small limit error = %v, want %v", err, glerrors.CodeInvalidInput)
	}
	if _, err := Load(filepath.Join(dir, "missing.glot"), 0); !glerrors.HasCode(err, glerrors.CodeIOError) {
		t.Errorf("Load() of missing file error = %v, want %v", err, glerrors.CodeIOError)
	}
}

func TestLoadReader(t *testing.T) {
	unit, err := LoadReader("<test>", strings.NewReader("1 + 2"), 5)
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if unit.Text != "1 + 2" {
		t.Errorf("LoadReader() text = %q", unit.Text)
	}
}

func TestUnit_Line(t *testing.T) {
	unit := &Unit{Text: "fun f():\r\n  int = 1\n"}

	tests := []struct {
		line     int
		expected string
	}{
		{0, ""},
		{1, "fun f():"},
		{2, "  int = 1"},
		{3, ""},
		{4, ""},
	}
	for _, tt := range tests {
		if got := unit.Line(tt.line); got != tt.expected {
			t.Errorf("Line(%d) = %q, want %q", tt.line, got, tt.expected)
		}
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.glot", "1")
	writeFile(t, dir, "sub/a.GLOT", "2")
	writeFile(t, dir, "notes.txt", "x")
	single := writeFile(t, t.TempDir(), "single.txt", "3")

	paths, err := Expand([]string{dir, single, Stdin}, []string{".glot"})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	expected := []string{
		filepath.Join(dir, "b.glot"),
		filepath.Join(dir, "sub/a.GLOT"),
		single,
		Stdin,
	}
	if strings.Join(paths, "|") != strings.Join(expected, "|") {
		t.Errorf("Expand() = %v, want %v", paths, expected)
	}

	if _, err := Expand([]string{filepath.Join(dir, "nope")}, nil); err == nil {
		t.Error("Expand() expected error for missing path")
	}
}

func TestParseUnit(t *testing.T) {
	p := parser.New(parser.DefaultOptions())

	res := ParseUnit(p, &Unit{Name: "good", Text: "2 * 3"})
	if !res.OK() || res.File == nil {
		t.Errorf("ParseUnit() = %+v, want success", res)
	}

	res = ParseUnit(p, &Unit{Name: "bad", Text: "fun f(a: int,): int = a"})
	if res.OK() || res.File != nil || len(res.Errors) != 1 || res.Err != nil {
		t.Errorf("ParseUnit() = %+v, want one syntax error", res)
	}

	small := parser.New(parser.Options{MaxInputLength: 2})
	res = ParseUnit(small, &Unit{Name: "long", Text: "1 + 2"})
	if res.Err == nil || !glerrors.HasCode(res.Err, glerrors.CodeInvalidInput) {
		t.Errorf("ParseUnit() err = %v, want %v", res.Err, glerrors.CodeInvalidInput)
	}
}

func TestCheckAll(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.glot", "fun add(a: num, b: num): num = a + b"),
		writeFile(t, dir, "b.glot", "1 +"),
		filepath.Join(dir, "missing.glot"),
		writeFile(t, dir, "c.glot", `"hello"`),
	}

	results, err := CheckAll(context.Background(), paths, Options{
		Parser:  parser.DefaultOptions(),
		Workers: 3,
	})
	if err != nil {
		t.Fatalf("CheckAll() error = %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("CheckAll() returned %d results, want %d", len(results), len(paths))
	}

	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("Result %d path = %s, want %s", i, r.Path, paths[i])
		}
	}
	if !results[0].OK() || !results[3].OK() {
		t.Error("Expected a.glot and c.glot to parse")
	}
	if len(results[1].Errors) != 1 {
		t.Errorf("Expected one syntax error for b.glot, got %v", results[1].Errors)
	}
	if results[2].Err == nil {
		t.Error("Expected a load error for missing.glot")
	}

	summary := Summarize(results)
	if summary != (Summary{Files: 4, Failed: 2, Errors: 2}) {
		t.Errorf("Summarize() = %+v", summary)
	}
}

func TestCheckAll_MoreFilesThanWorkers(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("f%d.glot", i), fmt.Sprintf("%d * 2", i)))
	}

	results, err := CheckAll(context.Background(), paths, Options{
		Parser:  parser.DefaultOptions(),
		Workers: 2,
	})
	if err != nil {
		t.Fatalf("CheckAll() error = %v", err)
	}
	for i, r := range results {
		if r.Path != paths[i] || !r.OK() {
			t.Errorf("Result %d = %+v, want %s parsed", i, r, paths[i])
		}
	}
}

func TestCheckAll_Canceled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.glot", "1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CheckAll(ctx, []string{path, path}, Options{Workers: 1})
	if !glerrors.HasCode(err, glerrors.CodeCanceled) {
		t.Errorf("CheckAll() error = %v, want %v", err, glerrors.CodeCanceled)
	}
}

func TestCheckAll_Cache(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.glot", "1 + 2")
	b := writeFile(t, dir, "b.glot", "1 + 2")
	bad := writeFile(t, dir, "bad.glot", "1 +")

	results := cache.New[Result](cache.DefaultConfig())
	defer results.Close()
	opts := Options{Parser: parser.DefaultOptions(), Cache: results}

	first, err := CheckAll(context.Background(), []string{a, bad}, opts)
	if err != nil {
		t.Fatalf("CheckAll() error = %v", err)
	}
	if results.Size() != 2 {
		t.Fatalf("Cache size = %d, want 2", results.Size())
	}

	second, err := CheckAll(context.Background(), []string{b, bad}, opts)
	if err != nil {
		t.Fatalf("CheckAll() error = %v", err)
	}
	if hits, _, _ := results.Stats(); hits != 2 {
		t.Errorf("Cache hits = %d, want 2", hits)
	}
	if second[0].Path != b || second[0].Unit.Name != b {
		t.Errorf("Cached result not rebound to %s: %+v", b, second[0])
	}
	if second[0].File != first[0].File {
		t.Error("Expected the cached tree to be reused")
	}
	if len(second[1].Errors) != 1 {
		t.Errorf("Expected the cached syntax error, got %v", second[1].Errors)
	}

	// changed content is parsed again
	writeFile(t, dir, "a.glot", "1 + 2 + 3")
	third, _ := CheckAll(context.Background(), []string{a}, opts)
	if third[0].File == first[0].File {
		t.Error("Expected a fresh parse for changed content")
	}
}

package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/circuitdraw/pkg/cache"
	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/pipeline"
)

const divider = `title "divider"
param upper=3
variant short upper=2
R1: resistor down upper label="10k"
dot
R2: resistor down label="4k7"
ground
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testCLI returns a CLI with caching disabled and output written to out.
func testCLI(t *testing.T, dir string) *CLI {
	t.Helper()
	cfg := writeFile(t, dir, "circuitdraw.toml", "[cache]\nenabled = false\n\n[output]\ndir = \""+filepath.ToSlash(filepath.Join(dir, "out"))+"\"\n")
	c := New(io.Discard, LogInfo)
	c.ConfigPath = cfg
	return c
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestCacheDir(t *testing.T) {
	dir, err := cacheDir(CacheConfig{})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}

	dir, _ = cacheDir(CacheConfig{Dir: "/tmp/cd-cache"})
	if dir != "/tmp/cd-cache" {
		t.Errorf("configured cacheDir() = %q", dir)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		dir, _ = cacheDir(CacheConfig{Dir: "~/schematics"})
		if dir != home+"/schematics" {
			t.Errorf("cacheDir(~/schematics) = %q", dir)
		}
	}
}

func TestCacheDirXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME only applies on Linux")
	}
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, err := cacheDir(CacheConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()
	off := false

	c, err := newCache(ctx, CacheConfig{}, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("--no-cache gave %T", c)
	}
	if c, _ = newCache(ctx, CacheConfig{Enabled: &off}, false); c == nil {
		t.Fatal("disabled cache is nil")
	} else if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("enabled=false gave %T", c)
	}

	dir := t.TempDir()
	c, err = newCache(ctx, CacheConfig{Dir: dir}, false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := c.(*cache.FileCache); !ok || fc.Dir() != dir {
		t.Errorf("file backend gave %T", c)
	}

	if _, err := newCache(ctx, CacheConfig{Backend: "memcached"}, false); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestParseOverrides(t *testing.T) {
	got, err := parseOverrides(map[string]string{"gap": "1.5", "rail": " 2 "})
	if err != nil {
		t.Fatal(err)
	}
	if got["gap"] != 1.5 || got["rail"] != 2 {
		t.Errorf("parseOverrides() = %v", got)
	}
	if got, _ := parseOverrides(nil); got != nil {
		t.Errorf("no overrides = %v, want nil", got)
	}
	if _, err := parseOverrides(map[string]string{"gap": "wide"}); err == nil {
		t.Error("non-numeric override should fail")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		dir    string
		opts   pipeline.Options
		format string
		want   string
	}{
		{"next to input", "", "", pipeline.Options{Path: "docs/ldo.circ"}, "svg", "docs/ldo.svg"},
		{"scene json", "", "", pipeline.Options{Path: "ldo.toml"}, "json", "ldo.scene.json"},
		{"variant suffix", "", "", pipeline.Options{Path: "ldo.circ", Variant: "compact"}, "png", "ldo-compact.png"},
		{"output dir", "", "build", pipeline.Options{Path: "docs/ldo.circ"}, "dot", "build/ldo.dot"},
		{"explicit output", "x.svg", "build", pipeline.Options{Path: "ldo.circ"}, "svg", "x.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.dir, tt.opts, tt.format)
			if filepath.ToSlash(got) != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.toml", `
[render]
formats = ["svg", "pdf"]
font = "Inter"
scale = 30

[cache]
backend = "redis"
redis_addr = "cache:6379"
prefix = "board:"
ttl = "72h"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path() != path || cfg.Cache.Backend != backendRedis || cfg.Cache.Prefix != "board:" || cfg.Cache.TTL.Duration != 72*time.Hour {
		t.Errorf("LoadConfig() = %+v", cfg)
	}

	opts := pipeline.Options{Scale: 12}
	cfg.Apply(&opts)
	if strings.Join(opts.Formats, ",") != "svg,pdf" || opts.Font != "Inter" {
		t.Errorf("Apply() = %+v", opts)
	}
	if opts.Scale != 12 {
		t.Errorf("flag scale overridden by config: %v", opts.Scale)
	}

	bad := []string{
		"[render]\nformats = [\"gif\"]\n",
		"[render]\nstyle = \"crayon\"\n",
		"[cache]\nbackend = \"s3\"\n",
		"[cache]\nttl = \"soon\"\n",
		"[output]\nfolder = \"x\"\n",
	}
	for i, content := range bad {
		if _, err := LoadConfig(writeFile(t, dir, "bad.toml", content)); err == nil {
			t.Errorf("bad config %d loaded", i)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	c := testCLI(t, dir)
	doc := writeFile(t, dir, "divider.circ", divider)

	if err := execute(t, c, "render", doc, "-f", "svg,json", "--variant", "short"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"divider-short.svg", "divider-short.scene.json"} {
		data, err := os.ReadFile(filepath.Join(dir, "out", name))
		if err != nil {
			t.Fatalf("missing output: %v", err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	single := filepath.Join(dir, "single.svg")
	if err := execute(t, c, "render", doc, "-o", single); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(single); err != nil {
		t.Errorf("--output not written: %v", err)
	}

	if err := execute(t, c, "render", doc, "-o", single, "-f", "svg,png"); err == nil {
		t.Error("--output with two formats should fail")
	}
	if err := execute(t, c, "render", doc, "--set", "upper=tall"); err == nil {
		t.Error("non-numeric --set should fail")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	c := testCLI(t, dir)
	good := writeFile(t, dir, "good.circ", divider)
	bad := writeFile(t, dir, "bad.circ", "resistor right\npop\n")
	missing := filepath.Join(dir, "missing.circ")

	reports := c.check(context.Background(), []string{good, bad, missing}, docFlags{})
	if len(reports) != 3 {
		t.Fatalf("reports = %d", len(reports))
	}
	if reports[0].Code != "" || reports[0].Items == 0 {
		t.Errorf("good report = %+v", reports[0])
	}
	if reports[1].Code != string(errors.ErrCodeEmptyStack) || !strings.Contains(reports[1].Message, "line 2") {
		t.Errorf("bad report = %+v", reports[1])
	}
	if reports[2].Code != string(errors.ErrCodeFileNotFound) {
		t.Errorf("missing report = %+v", reports[2])
	}

	if err := execute(t, c, "check", good); err != nil {
		t.Errorf("check good: %v", err)
	}
	if err := execute(t, c, "check", good, bad); err == nil {
		t.Error("check should fail when a document fails")
	}
}

func TestAnchorsTable(t *testing.T) {
	dir := t.TempDir()
	c := testCLI(t, dir)
	doc := writeFile(t, dir, "divider.circ", divider)

	res, err := c.build(context.Background(), pipeline.Options{Path: doc})
	if err != nil {
		t.Fatal(err)
	}
	r1, ok := res.Scene.Component("R1")
	if !ok {
		t.Fatal("R1 not placed")
	}
	out := anchorsTable(r1, true)
	for _, want := range []string{"Anchor", "start", "end", "-3"} {
		if !strings.Contains(out, want) {
			t.Errorf("anchors table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "center") > strings.Index(out, "start") {
		t.Error("sorted table out of order")
	}

	if err := execute(t, c, "anchors", doc, "R9"); !errors.Is(err, errors.ErrCodeUnresolvedAnchor) {
		t.Errorf("unknown id: err = %v", err)
	}
}

func TestFindEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "divider.circ", divider)
	writeFile(t, dir, "sub/broken.toml", "title = \"x\"\n[[steps]]\nop = \"flux_capacitor\"\n")
	writeFile(t, dir, "_scratch/ignored.circ", divider)
	writeFile(t, dir, "notes.txt", "not a document")

	entries, err := findEntries(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Variant != "" || entries[1].Variant != "short" || entries[0].Title != "divider" {
		t.Errorf("divider entries = %+v", entries[:2])
	}
	if entries[2].Err != string(errors.ErrCodeUnknownElement) {
		t.Errorf("broken entry = %+v", entries[2])
	}
	if got := entries[1].command(); got != "circuitdraw render "+entries[1].Path+" --variant short" {
		t.Errorf("command() = %q", got)
	}
}

func TestPickModel(t *testing.T) {
	m := newPickModel([]pickEntry{
		{Path: "a.circ", Title: "a"},
		{Path: "a.circ", Title: "a", Variant: "wide"},
		{Path: "b.circ", Err: "INVALID_DOCUMENT"},
	})

	key := func(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

	next, _ := m.Update(key(tea.KeyDown))
	m = next.(pickModel)
	next, _ = m.Update(key(tea.KeyDown))
	m = next.(pickModel)
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	next, cmd := m.Update(key(tea.KeyEnter))
	m = next.(pickModel)
	if m.selected != nil || cmd != nil {
		t.Error("broken document should not be selectable")
	}

	next, _ = m.Update(key(tea.KeyUp))
	m = next.(pickModel)
	next, cmd = m.Update(key(tea.KeyEnter))
	m = next.(pickModel)
	if m.selected == nil || m.selected.Variant != "wide" || cmd == nil {
		t.Errorf("selected = %+v", m.selected)
	}

	view := m.View()
	for _, want := range []string{"Select Document", "a.circ", "wide", "[2/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

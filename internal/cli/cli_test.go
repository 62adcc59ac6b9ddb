package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/energydiagram/pkg/cache"
	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/errors"
	docio "github.com/matzehuels/energydiagram/pkg/io"
)

const sampleYAML = `title: SN2
plot:
  xtick_labels: [R, TS, P]
levels:
  - {energy: 0, position: 0}
  - {energy: 12.5, position: 1, color: r}
  - {energy: -4, position: 2}
labels:
  - {level: 1, text: TS}
links:
  - {from: 0, to: 1}
  - {from: 1, to: 2, style: dotted}
`

// isolate keeps tests away from the user's config file and cache.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{"VERBOSE", "CACHE_BACKEND", "CACHE_DIR", "REDIS_ADDR", "STYLE", "SEED", "ADDR", "LAYOUT_LEVEL_WIDTH", "LAYOUT_SPACE", "LAYOUT_VERTICAL_OFFSET", "LAYOUT_HORIZONTAL_OFFSET"} {
		t.Setenv("ENERGYDIAGRAM_"+k, "")
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	return execute(t, New(io.Discard, LogInfo), args...)
}

// execute runs args against c's root command, leaving c inspectable.
func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

// =============================================================================
// Helpers
// =============================================================================

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", "svg, json", []string{"svg", "json"}},
		{"empty items dropped", "svg,,dot", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "next to input",
			input:   filepath.Join("docs", "sn2.yaml"),
			formats: []string{"svg"},
			want:    map[string]string{"svg": filepath.Join("docs", "sn2.svg")},
		},
		{
			name:    "explicit file for one format",
			input:   "sn2.yaml",
			output:  "figure.png",
			formats: []string{"png"},
			want:    map[string]string{"png": "figure.png"},
		},
		{
			name:    "output is a base for several formats",
			input:   "sn2.yaml",
			output:  filepath.Join("out", "fig.svg"),
			formats: []string{"svg", "json"},
			want: map[string]string{
				"svg":  filepath.Join("out", "fig.svg"),
				"json": filepath.Join("out", "fig.json"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPaths(tt.input, tt.output, tt.formats); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDescribeError(t *testing.T) {
	got := describeError(errors.New(errors.ErrCodeInvalidLink, "link 0-4: no level 4"))
	if !strings.Contains(got, "link 0-4: no level 4") || !strings.Contains(got, "INVALID_LINK") {
		t.Errorf("describeError() = %q", got)
	}
	if got := describeError(io.EOF); got != "EOF" {
		t.Errorf("describeError(io.EOF) = %q", got)
	}
}

// =============================================================================
// Configuration
// =============================================================================

func TestValidateBackend(t *testing.T) {
	for _, b := range []string{backendFile, backendRedis, backendNone} {
		if err := validateBackend(b); err != nil {
			t.Errorf("validateBackend(%q) error: %v", b, err)
		}
	}
	if err := validateBackend("memcached"); err == nil {
		t.Error("validateBackend(memcached) should fail")
	}
}

func TestReadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "custom.yaml", `
cache-backend: none
style: handdrawn
layout:
  level_width: 40
`)

	v := newConfig()
	v.Set(keyConfig, path)
	if err := readConfig(v); err != nil {
		t.Fatalf("readConfig() error: %v", err)
	}
	if got := v.GetString(keyCacheBackend); got != backendNone {
		t.Errorf("cache-backend = %q, want none", got)
	}
	if got := v.GetString(keyStyle); got != "handdrawn" {
		t.Errorf("style = %q, want handdrawn", got)
	}

	doc := &docio.Document{Config: docio.Config{Space: 5}}
	applyLayoutConfig(v, doc)
	if doc.Config.LevelWidth != 40 {
		t.Errorf("LevelWidth = %v, want 40 from config", doc.Config.LevelWidth)
	}
	if doc.Config.Space != 5 {
		t.Errorf("Space = %v, document value should win", doc.Config.Space)
	}
}

func TestReadConfigDefaults(t *testing.T) {
	isolate(t)
	v := newConfig()
	if err := readConfig(v); err != nil {
		t.Fatalf("readConfig() without a file should succeed: %v", err)
	}
	if got := v.GetString(keyCacheBackend); got != backendFile {
		t.Errorf("cache-backend = %q, want file", got)
	}
	if got := v.GetString(keyAddr); got != defaultAddr {
		t.Errorf("addr = %q, want %q", got, defaultAddr)
	}
}

func TestReadConfigMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	v := newConfig()
	v.Set(keyConfig, filepath.Join(dir, "missing.yaml"))
	if err := readConfig(v); err == nil {
		t.Error("readConfig() should fail for a missing --config file")
	}
}

func TestLayoutConfigFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ENERGYDIAGRAM_LAYOUT_SPACE", "15")

	doc := &docio.Document{}
	applyLayoutConfig(newConfig(), doc)
	if doc.Config.Space != 15 {
		t.Errorf("Space = %v, want 15 from environment", doc.Config.Space)
	}
	if doc.Config.LevelWidth != 0 {
		t.Errorf("LevelWidth = %v, want unset", doc.Config.LevelWidth)
	}
}

func TestLayoutConfigZeroOffset(t *testing.T) {
	isolate(t)
	t.Setenv("ENERGYDIAGRAM_LAYOUT_VERTICAL_OFFSET", "0")

	doc := &docio.Document{}
	applyLayoutConfig(newConfig(), doc)
	if doc.Config.VerticalOffset == nil || *doc.Config.VerticalOffset != 0 {
		t.Errorf("VerticalOffset = %v, want explicit 0", doc.Config.VerticalOffset)
	}
	if doc.Config.HorizontalOffset != nil {
		t.Errorf("HorizontalOffset = %v, want unset", *doc.Config.HorizontalOffset)
	}

	// A document's own offset wins over the environment.
	two := 2.0
	doc = &docio.Document{Config: docio.Config{VerticalOffset: &two}}
	applyLayoutConfig(newConfig(), doc)
	if *doc.Config.VerticalOffset != 2 {
		t.Errorf("VerticalOffset = %v, want the document's 2", *doc.Config.VerticalOffset)
	}
}

// =============================================================================
// Browser
// =============================================================================

func browserFixture(t *testing.T) LevelBrowserModel {
	t.Helper()
	d := diagram.New(diagram.DefaultConfig())
	d.AddLevel(0, 0)
	d.AddLevel(10, 1, diagram.LevelColor("r"))
	d.AddLevel(-2, 2)
	d.AddLink(0, 1)
	if err := d.AddLabel(10, "TS", diagram.AtPosition(1)); err != nil {
		t.Fatal(err)
	}
	l, err := d.Layout()
	if err != nil {
		t.Fatal(err)
	}
	return NewLevelBrowserModel("SN2", d.Labels(), l)
}

func TestLevelBrowserEntries(t *testing.T) {
	m := browserFixture(t)
	if len(m.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(m.Entries))
	}
	if !reflect.DeepEqual(m.Entries[1].Labels, []string{"TS"}) {
		t.Errorf("level 1 labels = %v, want [TS]", m.Entries[1].Labels)
	}
	if want := []LinkRef{{Other: 1, Delta: 10}}; !reflect.DeepEqual(m.Entries[0].Links, want) {
		t.Errorf("level 0 links = %v, want %v", m.Entries[0].Links, want)
	}
	if want := []LinkRef{{Other: 0, Delta: -10}}; !reflect.DeepEqual(m.Entries[1].Links, want) {
		t.Errorf("level 1 links = %v, want %v", m.Entries[1].Links, want)
	}
	if m.Entries[2].Links != nil {
		t.Errorf("level 2 should have no links, got %v", m.Entries[2].Links)
	}
}

func TestLevelBrowserNavigation(t *testing.T) {
	m := browserFixture(t)
	press := func(m LevelBrowserModel, msg tea.Msg) (LevelBrowserModel, tea.Cmd) {
		next, cmd := m.Update(msg)
		return next.(LevelBrowserModel), cmd
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("up at top: Cursor = %d, want 0", m.Cursor)
	}
	for range 5 {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Cursor != 2 {
		t.Errorf("down past end: Cursor = %d, want 2", m.Cursor)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Detail {
		t.Error("enter should open the detail pane")
	}
	m, _ = press(m, tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.Height != 5 {
		t.Errorf("Height = %d, want minimum 5", m.Height)
	}

	if _, cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}

func TestLevelBrowserView(t *testing.T) {
	m := browserFixture(t)
	m.Detail = true

	view := m.View()
	for _, want := range []string{"SN2", "TS", "[1/3]", "level 0", "ΔE +10"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

// =============================================================================
// Tables
// =============================================================================

func TestInspectTables(t *testing.T) {
	d := diagram.New(diagram.DefaultConfig())
	d.AddLevel(0, 0)
	d.AddLevel(12.5, 1)
	d.AddLink(0, 1, diagram.LinkAlpha(0.4))
	if err := d.AddLabel(12.5, "TS", diagram.AtPosition(1)); err != nil {
		t.Fatal(err)
	}
	l, err := d.Layout()
	if err != nil {
		t.Fatal(err)
	}

	if got := levelTable(l); !strings.Contains(got, "12.5") || !strings.Contains(got, "50.0–80.0") {
		t.Errorf("levelTable() =\n%s", got)
	}
	if got := labelTable(d.Labels(), l); !strings.Contains(got, "TS") || !strings.Contains(got, "top") {
		t.Errorf("labelTable() =\n%s", got)
	}
	if got := linkTable(l); !strings.Contains(got, "12.5") || !strings.Contains(got, "0.4") {
		t.Errorf("linkTable() =\n%s", got)
	}
}

// =============================================================================
// Commands
// =============================================================================

func TestRenderCommand(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "sn2.yaml", sampleYAML)
	base := filepath.Join(dir, "out", "sn2")

	err := runCLI(t, "render", input, "-f", "svg,json,dot", "-o", base, "--cache-backend", "none")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	prefixes := map[string]string{"svg": "<svg", "json": "{", "dot": "digraph"}
	for format, prefix := range prefixes {
		data, err := os.ReadFile(base + "." + format)
		if err != nil {
			t.Errorf("%s output missing: %v", format, err)
			continue
		}
		if !bytes.HasPrefix(bytes.TrimSpace(data), []byte(prefix)) {
			t.Errorf("%s output starts with %q", format, data[:min(len(data), 16)])
		}
	}
}

func TestRenderCommandCaches(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "sn2.yaml", sampleYAML)
	cacheDir := filepath.Join(dir, "artifacts")

	for range 2 {
		if err := runCLI(t, "render", input, "--cache-dir", cacheDir); err != nil {
			t.Fatalf("render error: %v", err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "sn2.svg")); err != nil {
		t.Errorf("default output missing: %v", err)
	}

	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if n, _, err := fc.Stats(); err != nil || n != 1 {
		t.Errorf("cache entries = %d (err %v), want 1", n, err)
	}

	if err := runCLI(t, "cache", "clear", "--cache-dir", cacheDir); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if n, _, _ := fc.Stats(); n != 0 {
		t.Errorf("cache entries after clear = %d, want 0", n)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "sn2.yaml", sampleYAML)
	bad := writeFile(t, dir, "bad.json", `{"levels": [{"energy": 0, "position": 0}], "links": [{"from": 0, "to": 9}]}`)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"render", input, "-f", "gif", "--cache-backend", "none"}},
		{"unknown style", []string{"render", input, "--style", "crayon", "--cache-backend", "none"}},
		{"missing file", []string{"render", filepath.Join(dir, "missing.yaml")}},
		{"dangling link", []string{"render", bad, "--cache-backend", "none"}},
		{"bad backend", []string{"render", input, "--cache-backend", "memcached"}},
		{"no args", []string{"render"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runCLI(t, tt.args...); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	dir := isolate(t)
	good := writeFile(t, dir, "good.yaml", sampleYAML)
	bad := writeFile(t, dir, "bad.toml", "[[levels]]\nenergy = 0\nposition = -1\n")

	empty := writeFile(t, dir, "empty.json", `{"levels": []}`)

	if err := runCLI(t, "validate", good); err != nil {
		t.Errorf("validate good: %v", err)
	}
	if err := runCLI(t, "validate", empty); err != nil {
		t.Errorf("an empty document is valid, got %v", err)
	}
	err := runCLI(t, "validate", good, bad)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("validate good bad = %v, want 1 of 2 invalid", err)
	}
}

func TestInspectCommand(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "sn2.yaml", sampleYAML)
	if err := runCLI(t, "inspect", input); err != nil {
		t.Errorf("inspect error: %v", err)
	}
}

func TestPathwayCommand(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "sn2.yaml", sampleYAML)

	if err := runCLI(t, "pathway", input, "-f", "dot", "--detailed", "--unit", "kcal/mol"); err != nil {
		t.Fatalf("pathway error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "sn2.pathway.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph") || !strings.Contains(string(data), "kcal/mol") {
		t.Errorf("pathway output =\n%s", data)
	}

	if err := runCLI(t, "pathway", input, "-f", "json"); err == nil {
		t.Error("pathway -f json should fail")
	}
}

func TestCachePathCommand(t *testing.T) {
	isolate(t)
	if err := runCLI(t, "cache", "path"); err != nil {
		t.Errorf("cache path error: %v", err)
	}
	if err := runCLI(t, "cache", "stats", "--cache-dir", t.TempDir()); err != nil {
		t.Errorf("cache stats error: %v", err)
	}
}

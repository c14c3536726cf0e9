package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/c4dgml/pkg/config"
	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/errors"
)

// isolate points every config and cache lookup at temporary directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func shopPath(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs("../../pkg/workspace/testdata/shop.json")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"convert", "inspect", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir(config.CacheConfig{})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir(config.CacheConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	dir, err := cacheDir(config.CacheConfig{Dir: "/srv/cache"})
	if err != nil || dir != "/srv/cache" {
		t.Errorf("cacheDir() = %q, %v; want configured dir", dir, err)
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"dgml", []string{"dgml"}},
		{"dgml, svg,,png ", []string{"dgml", "svg", "png"}},
	}
	for _, tt := range tests {
		if got := parseList(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "ws/shop.json", "ws/shop"},
		{"out/graph.dgml", "shop.json", "out/graph"},
		{"out/graph.SVG", "shop.json", "out/graph"},
		{"out/graph", "shop.json", "out/graph"},
		{"out/graph.xml", "shop.json", "out/graph.xml"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"dgml": []byte("<x/>"), "dot": []byte("digraph G {}")}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"dgml", "dot"},
		input:     "shop.json",
		output:    filepath.Join(dir, "nested", "shop"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "nested", "shop.dgml"), filepath.Join(dir, "nested", "shop.dot")}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	exact := filepath.Join(dir, "graph.xml")
	paths, err = writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"dgml"},
		input:     "shop.json",
		output:    exact,
	})
	if err != nil || !slices.Equal(paths, []string{exact}) {
		t.Errorf("single format paths = %v, %v", paths, err)
	}
	if data, _ := os.ReadFile(exact); string(data) != "<x/>" {
		t.Errorf("content = %q", data)
	}
}

func TestConvertCommand(t *testing.T) {
	isolate(t)
	base := filepath.Join(t.TempDir(), "shop")

	stdout, _, err := runCLI(t, "convert", shopPath(t), "-o", base, "-f", "dgml,json,dot")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	for _, ext := range []string{".dgml", ".json", ".dot"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing output %s: %v", base+ext, err)
		}
	}
	xml, _ := os.ReadFile(base + ".dgml")
	if !bytes.Contains(xml, []byte("<DirectedGraph")) {
		t.Errorf("dgml output:\n%s", xml)
	}
	if !strings.Contains(stdout, "Converted") || !strings.Contains(stdout, "6 nodes") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestConvertRefusesToOverwriteInput(t *testing.T) {
	isolate(t)
	src, err := os.ReadFile(shopPath(t))
	if err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(t.TempDir(), "workspace.json")
	if err := os.WriteFile(input, src, 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err = runCLI(t, "convert", input, "-f", "json", "--no-cache")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("convert error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if got, _ := os.ReadFile(input); !bytes.Equal(got, src) {
		t.Error("workspace file was modified")
	}

	// Formats whose extension differs from the input are still written.
	if _, _, err := runCLI(t, "convert", input, "-f", "dgml", "--no-cache"); err != nil {
		t.Fatalf("convert dgml: %v", err)
	}
	if _, err := os.Stat(strings.TrimSuffix(input, ".json") + ".dgml"); err != nil {
		t.Errorf("missing dgml output: %v", err)
	}
}

func TestWriteArtifactsSkipsAllOnConflict(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "shop.json")
	_, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"dgml": []byte("<x/>"), "json": []byte("{}")},
		formats:   []string{"dgml", "json"},
		input:     input,
	})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, err := os.Stat(filepath.Join(dir, "shop.dgml")); !os.IsNotExist(err) {
		t.Errorf("shop.dgml was written before the conflict was detected")
	}
}

func TestConvertStdoutWithViews(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "convert", shopPath(t), "-o", "-", "-f", "json", "--views", "component", "--no-cache")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	g, err := dgml.UnmarshalJSON([]byte(stdout))
	if err != nil {
		t.Fatalf("stdout is not a JSON graph: %v\n%s", err, stdout)
	}
	if len(g.Nodes) != 2 || len(g.Links) != 1 {
		t.Errorf("got %d nodes / %d links, want component view", len(g.Nodes), len(g.Links))
	}
	if g.Links[0].Label != "Sends order event..." {
		t.Errorf("link label = %q", g.Links[0].Label)
	}
}

func TestConvertUsesConfigFile(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "c4dgml.toml")
	cfg := "[projection]\ndefault_background = \"White\"\nviews = [\"context\"]\n\n[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "--config", cfgPath, "convert", shopPath(t), "-o", "-", "-f", "json")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	g, err := dgml.UnmarshalJSON([]byte(stdout))
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 2 {
		t.Errorf("nodes = %d, want context view only", len(g.Nodes))
	}
	for _, s := range g.Styles {
		if _, ok := s.Setter(dgml.PropertyBackground); !ok {
			t.Errorf("style %s has no background", s.GroupLabel)
		}
	}
}

func TestConvertErrors(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "convert", filepath.Join(t.TempDir(), "missing.json"), "--no-cache")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing workspace error = %v, want FILE_NOT_FOUND", err)
	}

	_, _, err = runCLI(t, "convert", shopPath(t), "-f", "tower")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v, want INVALID_FORMAT", err)
	}

	_, _, err = runCLI(t, "convert", shopPath(t), "-f", "dgml,json", "-o", "-")
	if !errors.IsInvalid(err) {
		t.Errorf("multi-format stdout error = %v, want invalid input", err)
	}

	_, _, err = runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "convert", shopPath(t))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestInspectCommand(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "inspect", shopPath(t), "--no-cache")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"Shop", "Orders", "Database", "Component", "Person.png"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	dir := strings.TrimSpace(stdout)
	if filepath.Base(dir) != appName {
		t.Errorf("cache path = %q", dir)
	}

	stdout, _, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Cache is empty") {
		t.Errorf("clear on empty cache = %q", stdout)
	}

	if _, _, err := runCLI(t, "convert", shopPath(t), "-o", filepath.Join(t.TempDir(), "shop")); err != nil {
		t.Fatal(err)
	}
	stdout, _, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Cleared 2 cached entries") {
		t.Errorf("clear = %q, want projection and artifact removed", stdout)
	}
}

func TestCompletionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, appName) {
		t.Error("bash completion should mention the program name")
	}
}

func TestFormatError(t *testing.T) {
	got := FormatError(errors.New(errors.ErrCodeInvalidViewKind, "invalid view %q", "deployment"))
	if !strings.Contains(got, `invalid view "deployment"`) || !strings.Contains(got, "INVALID_VIEW_KIND") {
		t.Errorf("FormatError() = %q", got)
	}
	if got := FormatError(io.ErrUnexpectedEOF); !strings.Contains(got, "unexpected EOF") {
		t.Errorf("FormatError(plain) = %q", got)
	}
}

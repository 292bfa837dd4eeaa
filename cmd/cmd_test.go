package cmd

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/mfe/internal/mf2"
	"github.com/Tiliavir/mfe/internal/storage"
)

const helloEntry = `{
  "type": "h-entry",
  "properties": {
    "title": "Hello",
    "content": ["hello world"],
    "category": ["foo", "bar"]
  }
}`

// run executes the root command with fresh flag values and an isolated
// data directory, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	if os.Getenv(storage.EnvHome) == "" {
		t.Setenv(storage.EnvHome, t.TempDir())
	}
	t.Setenv("MFE_FORMAT", "")
	t.Setenv("MFE_MICROPUB_ENDPOINT", "")
	t.Setenv("MFE_MICROPUB_TOKEN", "")

	verbose = false
	decodeFormat, decodeStandalone = "", false
	listFormat, listStandalone = "table", false
	fetchEndpoint, fetchFormat = "", ""
	hugoOut, hugoSlug, hugoFrontMatter, hugoDryRun = "", "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeStdinText(t *testing.T) {
	out, err := run(t, helloEntry, "decode")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{"h-entry", "Hello", "foo, bar", "hello world"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDecodeFileJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "entry.json", helloEntry)
	out, err := run(t, "", "decode", "--format", "json", path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, `"content": "hello world"`) {
		t.Errorf("JSON output should hold the coerced content:\n%s", out)
	}
}

func TestDecodeStandalone(t *testing.T) {
	doc := `{"type": ["h-entry"], "properties": {"content": "x", "category": []}}`

	if _, err := run(t, doc, "decode"); !errors.Is(err, mf2.ErrTypeMismatch) {
		t.Errorf("tagged decode of array type: err = %v, want ErrTypeMismatch", err)
	}

	out, err := run(t, doc, "decode", "--standalone", "--format", "yaml")
	if err != nil {
		t.Fatalf("decode --standalone: %v", err)
	}
	if !strings.Contains(out, "type: h-entry") {
		t.Errorf("output = %q", out)
	}
}

func TestDecodeUnknown(t *testing.T) {
	out, err := run(t, `{"type": "h-card", "properties": {"name": ["Jane"]}}`, "decode")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "h-card") || strings.Contains(out, "categories") {
		t.Errorf("unknown item output = %q", out)
	}
}

func TestDecodeMissingCategory(t *testing.T) {
	_, err := run(t, `{"type": "h-entry", "properties": {"content": "x"}}`, "decode")
	if !errors.Is(err, mf2.ErrMissingField) {
		t.Errorf("err = %v, want ErrMissingField", err)
	}
}

func TestListTable(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", helloEntry)
	bad := writeFile(t, dir, "bad.json", `{"type": "h-entry", "properties": {"content": []}}`)

	out, err := run(t, "", "list", good, bad)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("err = %v, want 1 of 2 failed", err)
	}
	for _, want := range []string{"good.json", "bad.json", "Hello", "foo, bar", "empty sequence"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestListCSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.json", helloEntry)
	out, err := run(t, "", "list", "--format", "csv", path)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), out)
	}
	if lines[0] != "file,type,title,categories,error" {
		t.Errorf("header = %q", lines[0])
	}
	if want := path + ",h-entry,Hello,foo;bar,"; lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestHugoWritesContentFile(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, helloEntry, "hugo", "--out", dir, "--front-matter", "yaml")
	if err != nil {
		t.Fatalf("hugo: %v", err)
	}
	path := filepath.Join(dir, "hello.md")
	if !strings.Contains(out, path) {
		t.Errorf("output = %q, want path %s", out, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("content file: %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "---\n") || !strings.Contains(s, "title: Hello") || !strings.HasSuffix(s, "\nhello world\n") {
		t.Errorf("content file =\n%s", s)
	}
}

func TestHugoDryRun(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, helloEntry, "hugo", "--out", dir, "--front-matter", "toml", "--dry-run")
	if err != nil {
		t.Fatalf("hugo: %v", err)
	}
	if !strings.HasPrefix(out, "+++\n") {
		t.Errorf("dry run output = %q", out)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d files", len(entries))
	}
}

func TestHugoRejectsUnknown(t *testing.T) {
	_, err := run(t, `{"type": "h-card"}`, "hugo", "--out", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "not an h-entry") {
		t.Errorf("err = %v, want not an h-entry", err)
	}
}

func TestLoginAndFetch(t *testing.T) {
	t.Setenv(storage.EnvHome, t.TempDir())

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"type": ["h-entry"], "properties": {"content": ["fetched"], "category": ["x"]}}`))
	}))
	defer srv.Close()

	if _, err := run(t, "", "login", "--token", "tok-1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	out, err := run(t, "", "fetch", "--endpoint", srv.URL, "--format", "json", "https://example.com/p/1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want stored token", gotAuth)
	}
	if !strings.Contains(out, `"content": "fetched"`) {
		t.Errorf("fetch output = %s", out)
	}
}

func TestFetchWithoutEndpoint(t *testing.T) {
	_, err := run(t, "", "fetch", "https://example.com/p/1")
	if err == nil || !strings.Contains(err.Error(), "no micropub endpoint") {
		t.Errorf("err = %v, want missing endpoint error", err)
	}
}

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		props mf2.EntryProps
		want  string
	}{
		{mf2.EntryProps{Title: "My First Post"}, "my-first-post"},
		{mf2.EntryProps{Content: "Just a quick note, nothing more"}, "just-a-quick-note-nothing-more"},
		{mf2.EntryProps{Content: "one two three four five six seven eight nine ten"}, "one-two-three-four-five-six-seven-eight"},
		{mf2.EntryProps{}, ""},
	}
	for _, tt := range tests {
		if got := deriveSlug(tt.props); got != tt.want {
			t.Errorf("deriveSlug(%+v) = %q, want %q", tt.props, got, tt.want)
		}
	}
}

func TestReadInput(t *testing.T) {
	data, err := readInput(strings.NewReader("from stdin"), "-")
	if err != nil || string(data) != "from stdin" {
		t.Errorf("readInput(-) = %q, %v", data, err)
	}
	if _, err := readInput(nil, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

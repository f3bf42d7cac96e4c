package main

// CLI integration tests run the command end to end with in-memory streams;
// network cases use httptest servers and never leave the process.

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testDeps(stdin string) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	deps := &Dependencies{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(string) string { return "" },
	}
	return deps, &stdout, &stderr
}

func TestRunDispatch(t *testing.T) {
	t.Run("no args prints usage and fails", func(t *testing.T) {
		deps, _, stderr := testDeps("")
		if code := run(nil, deps); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "Usage:") {
			t.Error("usage not printed")
		}
	})

	t.Run("version prints version", func(t *testing.T) {
		deps, stdout, _ := testDeps("")
		if code := run([]string{"version"}, deps); code != ExitSuccess {
			t.Errorf("exit = %d", code)
		}
		if !strings.Contains(stdout.String(), "html2md") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("help convert prints convert usage", func(t *testing.T) {
		deps, stdout, _ := testDeps("")
		if code := run([]string{"help", "convert"}, deps); code != ExitSuccess {
			t.Errorf("exit = %d", code)
		}
		if !strings.Contains(stdout.String(), "--images") {
			t.Error("convert usage not printed")
		}
	})

	t.Run("bare argument treated as convert input", func(t *testing.T) {
		deps, stdout, _ := testDeps("")
		file := filepath.Join(t.TempDir(), "page.html")
		if err := os.WriteFile(file, []byte("<h1>Bare</h1>"), 0o644); err != nil {
			t.Fatal(err)
		}
		if code := run([]string{file}, deps); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if !strings.Contains(stdout.String(), "# Bare") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})
}

func TestRunConvertStdin(t *testing.T) {
	deps, stdout, _ := testDeps("<html><body><h1>Title</h1><p>Text</p></body></html>")

	code := run([]string{"convert", "-"}, deps)
	if code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if got := stdout.String(); got != "# Title\n\nText\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "page.html")
	if err := os.WriteFile(input, []byte("<h2>From File</h2>"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("to stdout", func(t *testing.T) {
		deps, stdout, _ := testDeps("")
		if code := run([]string{"convert", input}, deps); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if !strings.Contains(stdout.String(), "## From File") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("to output file", func(t *testing.T) {
		out := filepath.Join(dir, "page.md")
		deps, stdout, _ := testDeps("")

		if code := run([]string{"convert", input, "-o", out}, deps); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout should be empty, got %q", stdout.String())
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !strings.Contains(string(data), "## From File") {
			t.Errorf("output file = %q", data)
		}
	})

	t.Run("missing input file exits IO", func(t *testing.T) {
		deps, _, stderr := testDeps("")
		code := run([]string{"convert", filepath.Join(dir, "absent.html")}, deps)
		if code != ExitIO {
			t.Errorf("exit = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(stderr.String(), "error:") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("unwritable output exits IO with hint", func(t *testing.T) {
		deps, _, stderr := testDeps("")
		out := filepath.Join(dir, "missing-dir", "page.md")

		code := run([]string{"convert", input, "-o", out}, deps)
		if code != ExitIO {
			t.Errorf("exit = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q, want a hint", stderr.String())
		}
	})
}

func TestRunConvertURL(t *testing.T) {
	t.Run("fetches and converts", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<h1>Remote</h1>"))
		}))
		defer srv.Close()

		deps, stdout, _ := testDeps("")
		if code := run([]string{"convert", srv.URL}, deps); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if !strings.Contains(stdout.String(), "# Remote") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("unreachable URL exits network with hint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		deps, _, stderr := testDeps("")
		code := run([]string{"convert", srv.URL}, deps)
		if code != ExitNetwork {
			t.Errorf("exit = %d, want %d", code, ExitNetwork)
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q, want a fetch hint", stderr.String())
		}
	})
}

func TestRunConvertValidation(t *testing.T) {
	t.Run("no positional argument exits usage", func(t *testing.T) {
		deps, _, _ := testDeps("")
		if code := run([]string{"convert"}, deps); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("invalid timeout exits usage", func(t *testing.T) {
		deps, _, stderr := testDeps("<p>x</p>")
		code := run([]string{"convert", "-", "-t", "soon"}, deps)
		if code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "timeout") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("unknown flag exits usage", func(t *testing.T) {
		deps, _, _ := testDeps("")
		if code := run([]string{"convert", "--bogus"}, deps); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("images without store config exits usage", func(t *testing.T) {
		deps, _, stderr := testDeps("<p>x</p>")
		code := run([]string{"convert", "-", "--images"}, deps)
		if code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if stderr.Len() == 0 {
			t.Error("expected configuration error on stderr")
		}
	})

	t.Run("empty stdin exits usage", func(t *testing.T) {
		deps, _, _ := testDeps("")
		if code := run([]string{"convert", "-"}, deps); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}

func TestRunConvertConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, "html2md.yaml", "fetch:\n  user_agent: cfg-agent\n")

	t.Run("explicit config applied", func(t *testing.T) {
		var gotAgent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<p>ok</p>"))
		}))
		defer srv.Close()

		deps, _, _ := testDeps("")
		code := run([]string{"convert", srv.URL, "-c", cfgPath}, deps)
		if code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		if gotAgent != "cfg-agent" {
			t.Errorf("User-Agent = %q, want cfg-agent", gotAgent)
		}
	})

	t.Run("missing explicit config exits usage", func(t *testing.T) {
		deps, _, stderr := testDeps("<p>x</p>")
		code := run([]string{"convert", "-", "-c", filepath.Join(dir, "absent.yaml")}, deps)
		if code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q, want config hint", stderr.String())
		}
	})
}

func TestVerboseSummary(t *testing.T) {
	deps, _, stderr := testDeps("<h1>V</h1>")
	code := run([]string{"convert", "-", "-v"}, deps)
	if code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr.String(), "converted in") {
		t.Errorf("stderr = %q, want timing summary", stderr.String())
	}
}

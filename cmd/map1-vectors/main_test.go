package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func copyTestdataBundle(t *testing.T) string {
	t.Helper()
	src := filepath.Join("..", "..", "conformance", "testdata")
	dst := t.TempDir()
	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dst, e.Name()), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", e.Name(), err)
		}
	}
	return dst
}

func TestRunBundlePasses(t *testing.T) {
	bundleDir := copyTestdataBundle(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"run", bundleDir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: stdout=%s stderr=%s", code, stdout.String(), stderr.String())
	}
	if _, err := os.Stat(filepath.Join(bundleDir, "report.json")); err != nil {
		t.Fatalf("expected report.json to be written: %v", err)
	}
}

func TestRunBundleCustomOutputPath(t *testing.T) {
	bundleDir := copyTestdataBundle(t)
	outPath := filepath.Join(bundleDir, "custom-report.json")
	var stdout, stderr bytes.Buffer
	code := run([]string{"run", "--out", outPath, bundleDir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: stdout=%s stderr=%s", code, stdout.String(), stderr.String())
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected report at --out path: %v", err)
	}
}

func TestRunMissingBundleDirExitsBundleLoad(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"run", "/nonexistent/bundle/dir"}, &stdout, &stderr)
	if code != exitBundleLoad {
		t.Fatalf("exit %d, want %d: stderr=%s", code, exitBundleLoad, stderr.String())
	}
}

func TestUnknownCommandExitsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"bogus"}, &stdout, &stderr)
	if code != exitUsage {
		t.Fatalf("exit %d, want %d", code, exitUsage)
	}
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"version"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if stdout.Len() == 0 {
		t.Fatal("expected version output")
	}
}

func TestRunMissingProfileFileIsUsageError(t *testing.T) {
	bundleDir := copyTestdataBundle(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"run", "--profile", "/nonexistent/profile.yaml", bundleDir}, &stdout, &stderr)
	if code != exitUsage {
		t.Fatalf("exit %d, want %d: stderr=%s", code, exitUsage, stderr.String())
	}
}

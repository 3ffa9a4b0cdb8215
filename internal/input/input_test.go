package input

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_SkipsBlanksAndComments(t *testing.T) {
	path := writeList(t, `
# production endpoints
https://one.example.com

  https://two.example.com
# comment
https://three.example.com
`)
	urls, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := []string{"https://one.example.com", "https://two.example.com", "https://three.example.com"}
	if len(urls) != len(want) {
		t.Fatalf("want %d urls, got %d: %v", len(want), len(urls), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("url %d: want %q, got %q", i, want[i], urls[i])
		}
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCollect_FileEntriesComeFirst(t *testing.T) {
	path := writeList(t, "https://from-file.example.com\n")
	urls, err := Collect(path, []string{"https://from-args.example.com"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://from-file.example.com" || urls[1] != "https://from-args.example.com" {
		t.Fatalf("merge order wrong: %v", urls)
	}
}

func TestCollect_EmptyRejected(t *testing.T) {
	if _, err := Collect("", nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

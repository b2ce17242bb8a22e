package fileutil_test

// Notes:
// - CopyFile/WriteFile permission-denied branches are not exercised: they
//   depend on the user running the tests (root ignores mode bits).

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alnah/go-tutorialsite/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestIsFilePath - Name vs path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"site", false},
		{"my-site", false},
		{"./site.yaml", true},
		{"/etc/site.yaml", true},
		{`C:\site.yaml`, true},
		{"sub/dir", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.in); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteFile - Parent directories are created
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "page.html")
	if err := fileutil.WriteFile(path, []byte("<p>x</p>")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "<p>x</p>" {
		t.Errorf("content = %q, want %q", got, "<p>x</p>")
	}
	if !fileutil.FileExists(path) {
		t.Error("FileExists() = false after WriteFile")
	}
	if !fileutil.DirExists(filepath.Dir(path)) {
		t.Error("DirExists() = false for parent")
	}
}

// ---------------------------------------------------------------------------
// TestCopyFile - Content and mode are preserved
// ---------------------------------------------------------------------------

func TestCopyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "prism.js")
	if err := os.WriteFile(src, []byte("var Prism;"), 0o640); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	dst := filepath.Join(dir, "out", "lib", "prism.js")
	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "var Prism;" {
		t.Errorf("content = %q", got)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := fileutil.CopyFile(filepath.Join(dir, "absent"), filepath.Join(dir, "dst"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CopyFile() error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestListFiles - Sorted, slash-separated, relative
// ---------------------------------------------------------------------------

func TestListFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, rel := range []string{"b.css", "a/z.png", "a/b/c.gif"} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := fileutil.WriteFile(path, []byte("x")); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", rel, err)
		}
	}

	got, err := fileutil.ListFiles(root)
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	want := []string{"a/b/c.gif", "a/z.png", "b.css"}
	if !slices.Equal(got, want) {
		t.Errorf("ListFiles() = %v, want %v", got, want)
	}
}

func TestListFiles_MissingRoot(t *testing.T) {
	t.Parallel()

	got, err := fileutil.ListFiles(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListFiles() = %v, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestRemoveAll - Idempotent removal with safety guard
// ---------------------------------------------------------------------------

func TestRemoveAll(t *testing.T) {
	t.Parallel()

	dist := filepath.Join(t.TempDir(), "dist")
	if err := fileutil.WriteFile(filepath.Join(dist, "index.html"), []byte("x")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := fileutil.RemoveAll(dist); err != nil {
			t.Fatalf("RemoveAll() run %d error = %v", i+1, err)
		}
		if _, err := os.Stat(dist); !os.IsNotExist(err) {
			t.Fatalf("run %d: dist still present (err = %v)", i+1, err)
		}
	}
}

func TestRemoveAll_RefusesUnsafeTargets(t *testing.T) {
	t.Parallel()

	unsafe := []string{"", ".", "./", "/", ".."}
	if home, err := os.UserHomeDir(); err == nil {
		unsafe = append(unsafe, home, filepath.Dir(home))
	}
	for _, dir := range unsafe {
		if err := fileutil.RemoveAll(dir); !errors.Is(err, fileutil.ErrUnsafeRemove) {
			t.Errorf("RemoveAll(%q) error = %v, want ErrUnsafeRemove", dir, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsWithin - Path containment
// ---------------------------------------------------------------------------

func TestIsWithin(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	site := filepath.Join(root, "site")

	tests := []struct {
		name   string
		parent string
		path   string
		want   bool
	}{
		{"same path", site, site, true},
		{"same path different spelling", site, site + string(filepath.Separator) + ".", true},
		{"child", site, filepath.Join(site, "src"), true},
		{"grandchild", site, filepath.Join(site, "src", "intro"), true},
		{"sibling", filepath.Join(root, "dist"), filepath.Join(root, "src"), false},
		{"shared prefix", site, site + "-src", false},
		{"child is not parent", filepath.Join(site, "src"), site, false},
		{"dotdot dir name", site, filepath.Join(site, "..foo"), true},
		{"relative parent", "..", "src", true},
		{"relative siblings", "dist", "src", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.IsWithin(tt.parent, tt.path); got != tt.want {
				t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.parent, tt.path, got, tt.want)
			}
		})
	}
}

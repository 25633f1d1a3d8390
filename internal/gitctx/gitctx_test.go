package gitctx

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a throwaway git repository with one committed file.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init")
	if err := os.WriteFile(filepath.Join(dir, "committed.md"), []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", ".")
	run("commit", "-m", "initial")
	return dir
}

func TestRoot(t *testing.T) {
	dir := initRepo(t)
	root, err := Root(dir)
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	// TempDir may sit behind a symlink (e.g. /tmp on darwin), so compare
	// resolved paths.
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(root)
	if gotResolved != wantResolved {
		t.Errorf("Root = %q, want %q", gotResolved, wantResolved)
	}
}

func TestRoot_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	if _, err := Root(t.TempDir()); err == nil {
		t.Error("expected error outside a repository")
	}
}

func TestChangedFiles(t *testing.T) {
	dir := initRepo(t)

	// Clean tree reports nothing.
	files, err := ChangedFiles(dir)
	if err != nil {
		t.Fatalf("ChangedFiles failed: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("clean tree should report no changes, got %v", files)
	}

	if err := os.WriteFile(filepath.Join(dir, "committed.md"), []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err = ChangedFiles(dir)
	if err != nil {
		t.Fatalf("ChangedFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %v", len(files), files)
	}
	for _, f := range files {
		if !filepath.IsAbs(f) {
			t.Errorf("paths should be absolute, got %q", f)
		}
	}
	if filepath.Base(files[0]) != "committed.md" || filepath.Base(files[1]) != "untracked.txt" {
		t.Errorf("unexpected file list: %v", files)
	}
}

func TestChangedFiles_SkipsDeleted(t *testing.T) {
	dir := initRepo(t)
	if err := os.Remove(filepath.Join(dir, "committed.md")); err != nil {
		t.Fatal(err)
	}
	files, err := ChangedFiles(dir)
	if err != nil {
		t.Fatalf("ChangedFiles failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("deleted files should be omitted, got %v", files)
	}
}

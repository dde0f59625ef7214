package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMissingSidecarReadsAsEmpty(t *testing.T) {
	manager := NewManager(nil)
	dir := t.TempDir()

	if meta := manager.FolderMeta(dir); len(meta) != 0 {
		t.Fatalf("FolderMeta = %v", meta)
	}
	if comment := manager.Comment(filepath.Join(dir, "TST_S_SH010_COMP.mov")); comment != "" {
		t.Fatalf("Comment = %q", comment)
	}
}

func TestCorruptSidecarReadsAsEmpty(t *testing.T) {
	manager := NewManager(nil)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SidecarName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if meta := manager.FolderMeta(dir); len(meta) != 0 {
		t.Fatalf("corrupt sidecar must read as empty, got %v", meta)
	}
}

func TestSetCommentRoundTrip(t *testing.T) {
	manager := NewManager(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "TST_S_SH010_COMP.mov")

	if err := manager.SetComment(path, "final grade applied"); err != nil {
		t.Fatal(err)
	}
	if got := manager.Comment(path); got != "final grade applied" {
		t.Fatalf("Comment = %q", got)
	}

	// Other files in the same folder keep their own entries.
	other := filepath.Join(dir, "TST_S_SH020_COMP.mov")
	if err := manager.SetComment(other, "wip"); err != nil {
		t.Fatal(err)
	}
	if got := manager.Comment(path); got != "final grade applied" {
		t.Fatalf("neighboring write clobbered comment: %q", got)
	}
}

func TestSetVersionInfo(t *testing.T) {
	manager := NewManager(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "TST_S_SH010_COMP.mov")
	snapshot := filepath.Join(dir, "_versions", "TST_S_SH010_COMP-WIP-v003.mov")

	if err := manager.SetVersionInfo(path, 3, snapshot, "WIP"); err != nil {
		t.Fatal(err)
	}

	if err := manager.SetResource(path, "Clean"); err != nil {
		t.Fatal(err)
	}

	meta := manager.FileMeta(path)
	if meta.Version != 3 || meta.VersionFilePath != snapshot || meta.State != "WIP" {
		t.Fatalf("meta = %+v", meta)
	}
	if meta.Resource != "Clean" {
		t.Fatalf("Resource = %q", meta.Resource)
	}
}

func TestAppendHistoryStampsDate(t *testing.T) {
	manager := NewManager(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "TST_S_SH010_COMP.mov")

	before := time.Now().Add(-time.Second)
	if err := manager.AppendHistory(path, Event{Comment: "published", Version: 2}); err != nil {
		t.Fatal(err)
	}
	if err := manager.AppendHistory(path, Event{Comment: "restored", Version: 1}); err != nil {
		t.Fatal(err)
	}

	history := manager.FileMeta(path).History
	if len(history) != 2 {
		t.Fatalf("history = %v", history)
	}
	if history[0].Comment != "published" || history[1].Comment != "restored" {
		t.Fatalf("history order = %v", history)
	}
	if history[0].Date.Before(before) {
		t.Fatalf("zero event date was not stamped: %v", history[0].Date)
	}
}

func TestWriteFailureSurfaces(t *testing.T) {
	manager := NewManager(nil)
	dir := t.TempDir()

	// Turn the sidecar path into a directory so the atomic rename fails.
	if err := os.MkdirAll(filepath.Join(dir, SidecarName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := manager.SetComment(filepath.Join(dir, "TST_S_SH010_COMP.mov"), "x"); err == nil {
		t.Fatal("write onto a directory must fail")
	}
}

package layout

import (
	"os"
	"path/filepath"
	"testing"

	"slate/internal/naming"
)

func shotIdentity() naming.Identity {
	id := naming.NewIdentity()
	id.Project = "TST"
	id.Kind = naming.KindShot
	id.ShortName = "SH010"
	id.Step = "COMP"
	id.Extension = "mov"
	return id
}

func TestStepFolderCreatesCanonicalSubfolder(t *testing.T) {
	itemFolder := t.TempDir()

	path, err := StepFolder(itemFolder, shotIdentity())
	if err != nil {
		t.Fatalf("StepFolder: %v", err)
	}
	want := filepath.Join(itemFolder, "TST_S_SH010_COMP")
	if path != want {
		t.Fatalf("StepFolder = %q, want %q", path, want)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Fatalf("step folder not created: %v", err)
	}

	// Second call is idempotent.
	again, err := StepFolder(itemFolder, shotIdentity())
	if err != nil || again != path {
		t.Fatalf("StepFolder not idempotent: %q %v", again, err)
	}
}

func TestStepFolderGeneralItemUsesItemFolder(t *testing.T) {
	itemFolder := t.TempDir()
	id := naming.NewIdentity()
	id.Project = "TST"
	id.ShortName = "notes"

	path, err := StepFolder(itemFolder, id)
	if err != nil {
		t.Fatalf("StepFolder: %v", err)
	}
	if path != itemFolder {
		t.Fatalf("general item step folder = %q, want item folder", path)
	}
}

func TestReservedFolders(t *testing.T) {
	stepFolder := t.TempDir()

	versions, err := VersionsFolder(stepFolder)
	if err != nil {
		t.Fatalf("VersionsFolder: %v", err)
	}
	preview, err := PreviewFolder(stepFolder)
	if err != nil {
		t.Fatalf("PreviewFolder: %v", err)
	}
	publish, err := PublishFolder(stepFolder)
	if err != nil {
		t.Fatalf("PublishFolder: %v", err)
	}

	for _, dir := range []string{versions, preview, publish} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("folder %q not created: %v", dir, err)
		}
	}

	if !InVersionsFolder(filepath.Join(versions, "f.mov")) {
		t.Error("InVersionsFolder false for a version file")
	}
	if InVersionsFolder(filepath.Join(stepFolder, "f.mov")) {
		t.Error("InVersionsFolder true for a working file")
	}
	for _, p := range []string{versions, preview, publish} {
		if !InReservedFolder(filepath.Join(p, "f.mov")) {
			t.Errorf("InReservedFolder false for %q", p)
		}
	}
	if InReservedFolder(filepath.Join(stepFolder, "f.mov")) {
		t.Error("InReservedFolder true for a working file")
	}
}

func TestFolderCreationFailureSurfaces(t *testing.T) {
	stepFolder := t.TempDir()
	// A file where the folder should go makes MkdirAll fail.
	blocker := filepath.Join(stepFolder, naming.VersionsFolderName)
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := VersionsFolder(stepFolder); err == nil {
		t.Fatal("VersionsFolder should surface the creation failure")
	}
}

func TestSaveFilePath(t *testing.T) {
	step := filepath.Join("net", "TST", "shots", "SH010", "TST_S_SH010_COMP")

	cases := []struct {
		name string
		path string
		want string
	}{
		{
			name: "working file resolves to itself",
			path: filepath.Join(step, "TST_S_SH010_COMP.mov"),
			want: filepath.Join(step, "TST_S_SH010_COMP.mov"),
		},
		{
			name: "version snapshot lifts out and strips tokens",
			path: filepath.Join(step, naming.VersionsFolderName, "TST_S_SH010_COMP-WIP-v004.mov"),
			want: filepath.Join(step, "TST_S_SH010_COMP.mov"),
		},
		{
			name: "publish snapshot folder content",
			path: filepath.Join(step, naming.PublishFolderName, "|OK|003", "TST_S_SH010_COMP.mov"),
			want: filepath.Join(step, "TST_S_SH010_COMP.mov"),
		},
		{
			name: "restored marker stripped",
			path: filepath.Join(step, "TST_S_SH010_COMP_+restored-v2+.mov"),
			want: filepath.Join(step, "TST_S_SH010_COMP.mov"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SaveFilePath(tc.path)
			if !ok {
				t.Fatalf("SaveFilePath(%q) not ok", tc.path)
			}
			if got != tc.want {
				t.Fatalf("SaveFilePath(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}

	if _, ok := SaveFilePath(filepath.Join(step, "thumbs.db")); ok {
		t.Fatal("foreign names must not resolve")
	}
}

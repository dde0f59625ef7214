package objects

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slate/internal/daemonclient"
	"slate/internal/naming"
)

// fakeDaemon answers queries by command name.
type fakeDaemon struct {
	listener net.Listener
	handlers map[string]func(query string) map[string]any
}

func newFakeDaemon(t *testing.T, handlers map[string]func(query string) map[string]any) *fakeDaemon {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	d := &fakeDaemon{listener: listener, handlers: handlers}
	go d.serve()
	t.Cleanup(func() { listener.Close() })
	return d
}

func (d *fakeDaemon) serve() {
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		go func(conn net.Conn) {
			defer conn.Close()
			raw, _ := io.ReadAll(conn)
			query := string(raw)
			command, _, _ := strings.Cut(query, "&")

			reply := map[string]any{
				"accepted": true,
				"success":  false,
				"query":    query,
			}
			if handler, ok := d.handlers[command]; ok {
				if content := handler(query); content != nil {
					reply["success"] = true
					reply["content"] = content
				}
			}
			encoded, _ := json.Marshal(reply)
			conn.Write(encoded)
		}(conn)
	}
}

func (d *fakeDaemon) pipeline(t *testing.T) *Pipeline {
	t.Helper()
	client := daemonclient.New(daemonclient.Options{
		Host: "127.0.0.1",
		Port: d.listener.Addr().(*net.TCPAddr).Port,
	})
	return NewPipeline(Options{Client: client})
}

func makeItemTree(t *testing.T) (root, itemFolder string) {
	t.Helper()
	root = t.TempDir()
	itemFolder = filepath.Join(root, "TST_S_SH010")
	if err := os.MkdirAll(itemFolder, 0o755); err != nil {
		t.Fatal(err)
	}
	return root, itemFolder
}

func TestVirtualItemFromPath(t *testing.T) {
	_, itemFolder := makeItemTree(t)
	stepFolder := filepath.Join(itemFolder, "TST_S_SH010_COMP")
	if err := os.MkdirAll(stepFolder, 0o755); err != nil {
		t.Fatal(err)
	}
	working := filepath.Join(stepFolder, "TST_S_SH010_COMP.mov")
	if err := os.WriteFile(working, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	pipeline := NewPipeline(Options{})
	item, ok := pipeline.ItemFromPath(working)
	if !ok {
		t.Fatal("ItemFromPath failed on canonical tree")
	}
	if !item.Virtual() {
		t.Fatal("offline pipeline must produce a virtual item")
	}
	if item.UUID() == "" {
		t.Fatal("virtual item must mint a uuid")
	}
	if item.Kind() != naming.KindShot || item.ShortName() != "SH010" {
		t.Fatalf("item = kind %v short %q", item.Kind(), item.ShortName())
	}
	if item.FolderPath() != itemFolder {
		t.Fatalf("folder = %q, want %q", item.FolderPath(), itemFolder)
	}
}

func TestItemFromPathRejectsForeignPath(t *testing.T) {
	pipeline := NewPipeline(Options{})
	if _, ok := pipeline.ItemFromPath(filepath.Join(t.TempDir(), "render", "final.mov")); ok {
		t.Fatal("foreign path must not resolve to an item")
	}
}

func TestItemFromPathInsideReservedFolders(t *testing.T) {
	_, itemFolder := makeItemTree(t)
	snapshot := filepath.Join(itemFolder, "TST_S_SH010_COMP", naming.VersionsFolderName,
		"TST_S_SH010_COMP-WIP-v002.mov")
	if err := os.MkdirAll(filepath.Dir(snapshot), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(snapshot, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	pipeline := NewPipeline(Options{})
	item, ok := pipeline.ItemFromPath(snapshot)
	if !ok || item.ShortName() != "SH010" {
		t.Fatalf("item from version snapshot: ok=%v", ok)
	}
	if item.FolderPath() != itemFolder {
		t.Fatalf("folder = %q", item.FolderPath())
	}
}

func TestStepFromPath(t *testing.T) {
	_, itemFolder := makeItemTree(t)
	stepFolder := filepath.Join(itemFolder, "TST_S_SH010_COMP")
	if err := os.MkdirAll(stepFolder, 0o755); err != nil {
		t.Fatal(err)
	}

	pipeline := NewPipeline(Options{})
	step, ok := pipeline.StepFromPath(filepath.Join(stepFolder, "TST_S_SH010_COMP.mov"))
	if !ok {
		t.Fatal("StepFromPath failed")
	}
	if step.ShortName() != "COMP" {
		t.Fatalf("step short name = %q", step.ShortName())
	}

	// A path with no step token resolves to no step.
	if _, ok := pipeline.StepFromPath(filepath.Join(itemFolder, "TST_S_SH010.mov")); ok {
		t.Fatal("step resolved from a stepless path")
	}
}

func TestItemStepWorkflowOnDisk(t *testing.T) {
	_, itemFolder := makeItemTree(t)
	pipeline := NewPipeline(Options{})
	item, ok := pipeline.ItemFromPath(itemFolder)
	if !ok {
		t.Fatal("ItemFromPath on the item folder")
	}

	stepFolder, err := item.StepFolder("COMP")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(stepFolder) != "TST_S_SH010_COMP" {
		t.Fatalf("step folder = %q", stepFolder)
	}

	workingPath, err := item.StepFilePath("COMP", "", "mov")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(workingPath) != "TST_S_SH010_COMP.mov" {
		t.Fatalf("working path = %q", workingPath)
	}
	if err := os.WriteFile(workingPath, []byte("take"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := item.VersionStore("COMP")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.CopyToVersion(workingPath, true, "WIP"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CopyToVersion(workingPath, true, "WIP"); err != nil {
		t.Fatal(err)
	}

	latest, found := item.LatestVersion("COMP", naming.AnyResource)
	if !found || latest.Version != 2 {
		t.Fatalf("latest = %+v found=%v", latest, found)
	}
	if paths := item.VersionFilePaths("COMP", naming.AnyResource); len(paths) != 2 {
		t.Fatalf("version paths = %v", paths)
	}

	if item.IsPublished("COMP", naming.AnyResource) {
		t.Fatal("nothing is published yet")
	}
	publishDir := filepath.Join(stepFolder, naming.PublishFolderName, "|OK|002")
	if err := os.MkdirAll(publishDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if !item.IsPublished("COMP", naming.AnyResource) {
		t.Fatal("publish folder not seen")
	}
}

func TestVirtualObjectWrites(t *testing.T) {
	pipeline := NewPipeline(Options{})
	object := newVirtual(pipeline, TypeItem, daemonclient.ObjectData{ShortName: "SH010"})

	err := object.Set("comment", "blocking pass")
	if !errors.Is(err, ErrVirtual) {
		t.Fatalf("err = %v, want ErrVirtual", err)
	}
	if object.Comment() != "blocking pass" {
		t.Fatalf("local payload not updated: %+v", object.Data())
	}
}

func TestDaemonBackedItem(t *testing.T) {
	_, itemFolder := makeItemTree(t)

	daemon := newFakeDaemon(t, map[string]func(string) map[string]any{
		"uuidFromPath": func(string) map[string]any {
			return map[string]any{"uuid": "item-1"}
		},
		"getPath": func(string) map[string]any {
			return map[string]any{"path": itemFolder}
		},
		"getData": func(string) map[string]any {
			return map[string]any{"data": map[string]any{
				"name":      "Shot 10",
				"shortName": "SH010",
			}}
		},
	})
	pipeline := daemon.pipeline(t)

	item, ok := pipeline.ItemFromPath(filepath.Join(itemFolder, "TST_S_SH010_COMP", "TST_S_SH010_COMP.mov"))
	if !ok {
		t.Fatal("ItemFromPath failed")
	}
	if item.Virtual() {
		t.Fatal("daemon knows the path, item must not be virtual")
	}
	if item.UUID() != "item-1" {
		t.Fatalf("uuid = %q", item.UUID())
	}
	if item.Name() != "Shot 10" {
		t.Fatalf("name = %q", item.Name())
	}
	if item.FolderPath() != itemFolder {
		t.Fatalf("folder = %q", item.FolderPath())
	}
}

func TestDaemonBackedStatus(t *testing.T) {
	daemon := newFakeDaemon(t, map[string]func(string) map[string]any{
		"getStatus": func(string) map[string]any {
			return map[string]any{
				"uuid": "status-1",
				"data": map[string]any{"shortName": "OK", "comment": "approved"},
			}
		},
	})
	pipeline := daemon.pipeline(t)
	item := pipeline.Item("item-1", naming.KindShot)

	status, ok := item.CurrentStatus("step-1")
	if !ok || status.UUID != "status-1" {
		t.Fatalf("status = %+v ok=%v", status, ok)
	}
	if status.Data.Comment != "approved" {
		t.Fatalf("status data = %+v", status.Data)
	}
}

func TestStatesListing(t *testing.T) {
	daemon := newFakeDaemon(t, map[string]func(string) map[string]any{
		"getObjects": func(string) map[string]any {
			return map[string]any{"objects": []any{
				map[string]any{"uuid": "state-1", "data": map[string]any{"shortName": "WIP"}},
				map[string]any{"uuid": "state-2", "data": map[string]any{"shortName": "OK"}},
			}}
		},
	})
	pipeline := daemon.pipeline(t)

	states := pipeline.States()
	if len(states) != 2 || states[1].Data.ShortName != "OK" {
		t.Fatalf("states = %+v", states)
	}

	// Offline pipelines list nothing.
	if states := NewPipeline(Options{}).States(); len(states) != 0 {
		t.Fatalf("offline states = %+v", states)
	}
}

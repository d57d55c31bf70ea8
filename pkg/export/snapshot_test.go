package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skyeng-labs/skygraph/pkg/model"
)

func snapshotFixture() (*model.Graph, map[string][3]float64) {
	g := model.NewGraph(
		[]model.Node{
			{ID: "reg_1", Kind: model.KindStandard, Label: "GDPR Art. 17"},
			{ID: "cust_1", Kind: model.KindRequirement, Label: "Retention", Status: model.StatusCompliant},
			{ID: "cust_2", Kind: model.KindRequirement, Label: "Encryption", Status: model.StatusNonCompliant},
		},
		[]model.Edge{
			{From: "cust_1", To: "reg_1", Status: model.StatusCompliant},
			{From: "cust_2", To: "reg_1", Status: model.StatusNonCompliant},
		},
	)
	positions := map[string][3]float64{
		"reg_1":  {10, 0, 0},
		"cust_1": {-4, 3, 0},
		"cust_2": {2, -6, 0},
	}
	return g, positions
}

func TestSaveSceneSnapshot_PNG(t *testing.T) {
	g, pos := snapshotFixture()
	path := filepath.Join(t.TempDir(), "out", "scene.png")

	err := SaveSceneSnapshot(SceneSnapshotOptions{Path: path, Graph: g, Positions: pos})
	if err != nil {
		t.Fatalf("SaveSceneSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestSaveSceneSnapshot_SVG(t *testing.T) {
	g, pos := snapshotFixture()
	path := filepath.Join(t.TempDir(), "scene.svg")

	err := SaveSceneSnapshot(SceneSnapshotOptions{Path: path, Graph: g, Positions: pos})
	if err != nil {
		t.Fatalf("SaveSceneSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "<svg") {
		t.Fatal("output is not SVG")
	}
	// Standards carry their label; requirement nodes render as plain marks.
	if !strings.Contains(out, "GDPR Art. 17") {
		t.Error("standard label missing from SVG")
	}
	if !strings.Contains(out, css(colorStandard)) {
		t.Error("standard fill color missing from SVG")
	}
}

func TestSaveSceneSnapshot_FormatInference(t *testing.T) {
	g, pos := snapshotFixture()

	// No extension defaults to PNG and appends it.
	base := filepath.Join(t.TempDir(), "scene")
	if err := SaveSceneSnapshot(SceneSnapshotOptions{Path: base, Graph: g, Positions: pos}); err != nil {
		t.Fatalf("SaveSceneSnapshot: %v", err)
	}
	if _, err := os.Stat(base + ".png"); err != nil {
		t.Errorf("default-format file missing: %v", err)
	}

	// Explicit format wins over extension.
	path := filepath.Join(t.TempDir(), "scene.png")
	if err := SaveSceneSnapshot(SceneSnapshotOptions{Path: path, Format: "svg", Graph: g, Positions: pos}); err != nil {
		t.Fatalf("SaveSceneSnapshot: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "<svg") {
		t.Error("explicit svg format ignored")
	}
}

func TestSaveSceneSnapshot_Errors(t *testing.T) {
	g, pos := snapshotFixture()

	if err := SaveSceneSnapshot(SceneSnapshotOptions{Path: "x.png"}); err == nil {
		t.Error("nil graph accepted")
	}
	if err := SaveSceneSnapshot(SceneSnapshotOptions{Path: "x.png", Graph: g}); err == nil {
		t.Error("missing positions accepted")
	}
	if err := SaveSceneSnapshot(SceneSnapshotOptions{Path: "x.gif", Format: "gif", Graph: g, Positions: pos}); err == nil {
		t.Error("unsupported format accepted")
	}
	if err := SaveSceneSnapshot(SceneSnapshotOptions{Format: "png", Graph: g, Positions: pos}); err == nil {
		t.Error("empty path accepted")
	}
}

func TestBuildLayout_FitsCanvasAndKeepsEdges(t *testing.T) {
	g, pos := snapshotFixture()
	layout := buildLayout(SceneSnapshotOptions{Graph: g, Positions: pos})

	if len(layout.Nodes) != 3 || len(layout.Edges) != 2 {
		t.Fatalf("layout has %d nodes, %d edges", len(layout.Nodes), len(layout.Edges))
	}
	for _, n := range layout.Nodes {
		if n.X < 0 || n.X > float64(layout.Width) || n.Y < 0 || n.Y > float64(layout.Height) {
			t.Errorf("%s at (%.1f, %.1f) outside %dx%d canvas", n.ID, n.X, n.Y, layout.Width, layout.Height)
		}
	}
	if layout.Summary.Standards != 1 || layout.Summary.Requirements != 2 {
		t.Errorf("summary = %+v", layout.Summary)
	}

	// Nodes without a position drop out, and their edges with them.
	delete(pos, "reg_1")
	layout = buildLayout(SceneSnapshotOptions{Graph: g, Positions: pos})
	if len(layout.Nodes) != 2 || len(layout.Edges) != 0 {
		t.Errorf("after dropping reg_1: %d nodes, %d edges", len(layout.Nodes), len(layout.Edges))
	}
}

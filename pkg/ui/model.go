// Package ui implements the interactive scene: the Bubble Tea event loop
// that drives frame ticks, routes terminal mouse events into the
// interaction state machine, and renders the compliance graph, the
// selection overlay, and the loading/idle placeholder modes.
package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/skyeng-labs/skygraph/internal/datasource"
	"github.com/skyeng-labs/skygraph/pkg/config"
	"github.com/skyeng-labs/skygraph/pkg/debug"
	"github.com/skyeng-labs/skygraph/pkg/export"
	"github.com/skyeng-labs/skygraph/pkg/layout"
	"github.com/skyeng-labs/skygraph/pkg/model"
	"github.com/skyeng-labs/skygraph/pkg/scene"
	"github.com/skyeng-labs/skygraph/pkg/watcher"
)

// Chrome rows around the scene canvas.
const (
	headerRows = 1
	footerRows = 1
)

// frameTickMsg advances the animation clock.
type frameTickMsg time.Time

// graphLoadedMsg delivers a freshly loaded graph. The whole snapshot swaps
// in at once; the renderer never observes a partially-updated graph.
type graphLoadedMsg struct {
	result *datasource.Result
}

// graphLoadErrMsg reports a failed load.
type graphLoadErrMsg struct {
	err error
}

// fileChangedMsg is sent when the payload file changes on disk.
type fileChangedMsg struct{}

// snapshotSavedMsg reports the outcome of a snapshot export.
type snapshotSavedMsg struct {
	path string
	err  error
}

// Model is the main Bubble Tea model for sgv.
type Model struct {
	theme Theme
	cfg   config.Config

	// Scene state. graph and store swap together; ctrl is the only writer
	// of store and of the drag flag.
	graph  *model.Graph
	store  *scene.PositionStore
	camera *scene.Camera
	ctrl   *scene.Controller
	engine layout.Engine
	pulse  scene.Pulse
	flow   scene.Flow

	hitRadius float64
	frameRate int

	// selected mirrors the controller's click events; nil means no overlay.
	selected *model.Node

	sourcePath string
	watch      *watcher.Watcher

	width  int
	height int
	ready  bool

	loading   bool
	spin      spinner.Model
	loadErr   error
	warnings  int
	statusMsg string

	start time.Time
	now   float64 // seconds since start, advanced by frame ticks
}

// New builds the model for a payload path. The watcher may be nil when
// watching is disabled.
func New(cfg config.Config, sourcePath string, w *watcher.Watcher) *Model {
	r := lipgloss.DefaultRenderer()
	switch cfg.UI.Theme {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	cam := scene.NewCamera()

	m := &Model{
		theme:      DefaultTheme(r),
		cfg:        cfg,
		camera:     cam,
		engine:     layout.New(),
		pulse:      scene.DefaultPulse(),
		flow:       scene.DefaultFlow(),
		hitRadius:  scene.DefaultHitRadius,
		frameRate:  cfg.UI.FrameRate,
		sourcePath: sourcePath,
		watch:      w,
		loading:    sourcePath != "",
		start:      time.Now(),
	}
	m.applyTuning(cfg.Tuning)

	m.spin = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(r.NewStyle().Foreground(ColorInfo)),
	)

	m.ctrl = scene.NewController(nil, scene.NewPositionStore(nil), scene.CameraPlane(cam))
	m.ctrl.OnNodeSelected = func(n *model.Node) {
		m.selected = n
		m.syncViewport()
	}
	m.ctrl.OnDragBegin = func() { m.camera.Locked = true }
	m.ctrl.OnDragEnd = func() { m.camera.Locked = false }

	return m
}

// applyTuning copies non-zero config overrides onto the scene constants.
func (m *Model) applyTuning(t config.TuningConfig) {
	if t.StandardRadius > 0 {
		m.engine.StandardRadius = t.StandardRadius
	}
	if t.ScatterHalfWidth > 0 {
		m.engine.ScatterHalfWidth = t.ScatterHalfWidth
	}
	if t.PulseAmplitude > 0 {
		m.pulse.Amplitude = t.PulseAmplitude
	}
	if t.PulseFrequency > 0 {
		m.pulse.Frequency = t.PulseFrequency
	}
	if t.FlowFrequency > 0 {
		m.flow.Frequency = t.FlowFrequency
	}
	if t.HitRadius > 0 {
		m.hitRadius = t.HitRadius
	}
}

// clickThreshold is applied after the controller exists (New runs before).
func (m *Model) clickThreshold() float64 {
	if m.cfg.Tuning.ClickThreshold > 0 {
		return m.cfg.Tuning.ClickThreshold
	}
	return scene.DefaultClickThreshold
}

// Init starts the frame clock, the spinner, the initial load, and the
// watch command.
func (m *Model) Init() tea.Cmd {
	m.ctrl.ClickThreshold = m.clickThreshold()

	cmds := []tea.Cmd{m.frameTickCmd(), m.spin.Tick}
	if m.sourcePath != "" {
		cmds = append(cmds, loadGraphCmd(m.sourcePath))
	}
	if m.watch != nil {
		cmds = append(cmds, watchFileCmd(m.watch))
	}
	return tea.Batch(cmds...)
}

func (m *Model) frameTickCmd() tea.Cmd {
	fps := m.frameRate
	if fps <= 0 {
		fps = scene.DefaultFrameRate
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// loadGraphCmd loads the payload off the event loop and delivers it whole.
func loadGraphCmd(path string) tea.Cmd {
	return func() tea.Msg {
		res, err := datasource.Load(path)
		if err != nil {
			return graphLoadErrMsg{err: err}
		}
		return graphLoadedMsg{result: res}
	}
}

// watchFileCmd blocks on the next change notification.
func watchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return fileChangedMsg{}
	}
}

func saveSnapshotCmd(g *model.Graph, positions map[string][3]float64, path string) tea.Cmd {
	return func() tea.Msg {
		err := export.SaveSceneSnapshot(export.SceneSnapshotOptions{
			Path:      path,
			Graph:     g,
			Positions: positions,
		})
		return snapshotSavedMsg{path: path, err: err}
	}
}

// Update handles one message. Bubble Tea delivers messages serially, so a
// drag's store write here is always visible to the next frame's View.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.syncViewport()
		return m, nil

	case frameTickMsg:
		m.now = time.Time(msg).Sub(m.start).Seconds()
		return m, m.frameTickCmd()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case graphLoadedMsg:
		m.installGraph(msg.result)
		return m, nil

	case graphLoadErrMsg:
		m.loading = false
		m.loadErr = msg.err
		if m.graph != nil {
			// View only surfaces loadErr when no scene is up; a failed
			// reload over a live scene reports through the status bar so
			// the user knows they are looking at stale data.
			m.statusMsg = fmt.Sprintf("reload failed: %v", msg.err)
		}
		debug.Log("graph load failed: %v", msg.err)
		return m, nil

	case fileChangedMsg:
		// Backend rewrote the payload: reload and re-arm the watch. The
		// current scene keeps rendering until the new snapshot arrives.
		m.loading = true
		m.loadErr = nil
		cmds := []tea.Cmd{loadGraphCmd(m.sourcePath), m.spin.Tick}
		if m.watch != nil {
			cmds = append(cmds, watchFileCmd(m.watch))
		}
		return m, tea.Batch(cmds...)

	case snapshotSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("snapshot failed: %v", msg.err)
		} else {
			m.statusMsg = "snapshot saved: " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	return m, nil
}

// installGraph swaps in a new graph snapshot atomically: fresh layout,
// fresh position store, selection and hover reset, in-flight drag
// cancelled. Positions are never preserved across graph swaps, even when
// node ids overlap.
func (m *Model) installGraph(res *datasource.Result) {
	m.loading = false
	m.loadErr = nil
	m.graph = res.Graph
	m.warnings = len(res.Warnings)
	for _, w := range res.Warnings {
		debug.Log("payload warning: %s", w)
	}

	positions := m.engine.Compute(res.Graph)
	m.store = scene.NewPositionStore(positions)
	m.ctrl.SetGraph(res.Graph, m.store)
	m.selected = nil
	m.statusMsg = ""
	m.syncViewport()
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const orbitStep = 0.08

	switch msg.String() {
	case "q", "ctrl+c":
		if m.watch != nil {
			m.watch.Stop()
		}
		return m, tea.Quit

	case "esc":
		m.ctrl.ClearSelection()
		return m, nil

	case "left":
		m.camera.Orbit(-orbitStep, 0)
	case "right":
		m.camera.Orbit(orbitStep, 0)
	case "up":
		m.camera.Orbit(0, orbitStep)
	case "down":
		m.camera.Orbit(0, -orbitStep)
	case "+", "=":
		m.camera.Zoom(0.9)
	case "-", "_":
		m.camera.Zoom(1.1)

	case "r":
		if m.sourcePath != "" && !m.loading {
			m.loading = true
			m.loadErr = nil
			return m, tea.Batch(loadGraphCmd(m.sourcePath), m.spin.Tick)
		}

	case "e":
		if m.graph != nil && m.store != nil {
			path := fmt.Sprintf("skygraph-%s.png", time.Now().Format("20060102-150405"))
			return m, saveSnapshotCmd(m.graph, m.positionArrays(), path)
		}

	case "y":
		if m.selected != nil {
			if err := clipboard.WriteAll(nodeDetails(m.selected)); err != nil {
				m.statusMsg = fmt.Sprintf("copy failed: %v", err)
			} else {
				m.statusMsg = "details copied"
			}
		}
	}

	return m, nil
}

// updateMouse routes pointer events. The overlay region is hit-tested
// first and swallows everything over it, so its close control can never
// double as a click on an underlying node.
func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	sx := float64(msg.X)
	sy := float64(msg.Y - headerRows)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.camera.Zoom(0.9)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.camera.Zoom(1.1)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.ctrl.DragActive() {
			m.ctrl.PointerMove(sx, sy)
			return m, nil
		}
		m.updateHover(sx, sy)
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.overlayHit(msg.X, msg.Y) {
			if m.overlayCloseHit(msg.X, msg.Y) {
				m.ctrl.ClearSelection()
			}
			return m, nil
		}
		if m.store == nil {
			return m, nil
		}
		if id := m.camera.HitTest(m.store, sx, sy, m.hitRadius); id != "" {
			m.ctrl.PointerDown(id, sx, sy)
		}
		return m, nil

	case tea.MouseActionRelease:
		// Deliver every release, matching pointer-down or not: the
		// controller force-clears the drag flag on orphaned ups.
		m.ctrl.PointerUp(sx, sy)
		return m, nil
	}

	return m, nil
}

// updateHover re-resolves the hovered node from the pointer position.
func (m *Model) updateHover(sx, sy float64) {
	if m.store == nil {
		return
	}
	id := m.camera.HitTest(m.store, sx, sy, m.hitRadius)
	prev := m.ctrl.Hovered()
	if id == prev {
		return
	}
	if prev != "" {
		m.ctrl.PointerOut(prev)
	}
	if id != "" {
		m.ctrl.PointerOver(id)
	}
}

// positionArrays snapshots the store for the export goroutine, which must
// not share the live map with the event loop.
func (m *Model) positionArrays() map[string][3]float64 {
	out := make(map[string][3]float64, m.store.Len())
	m.store.Each(func(id string, v r3.Vec) {
		out[id] = [3]float64{v.X, v.Y, v.Z}
	})
	return out
}

// syncViewport resizes the camera to the canvas area, which shrinks when
// the selection overlay is open.
func (m *Model) syncViewport() {
	w := m.width
	if m.selected != nil {
		w -= m.overlayWidth()
	}
	m.camera.SetViewport(w, m.height-headerRows-footerRows)
}

// Selected returns the currently selected node, or nil. Exposed for the
// host embedding the scene.
func (m *Model) Selected() *model.Node { return m.selected }

// DragActive reports whether a drag currently suspends orbit control.
func (m *Model) DragActive() bool { return m.ctrl.DragActive() }

package scene

import (
	"math"

	"github.com/skyeng-labs/skygraph/pkg/debug"
	"github.com/skyeng-labs/skygraph/pkg/model"
)

// Plane is the narrow unprojection surface the controller drags against.
// Camera implements it; tests substitute a fake with deterministic output.
type Plane interface {
	ScreenToWorldOnPlane(sx, sy float64) (hit [3]float64, ok bool)
}

// planeAdapter lets Camera satisfy Plane without pkg/scene exposing gonum
// types in the interaction surface.
type planeAdapter struct{ c *Camera }

func (p planeAdapter) ScreenToWorldOnPlane(sx, sy float64) ([3]float64, bool) {
	v, ok := p.c.ScreenToWorldOnPlane(sx, sy)
	return [3]float64{v.X, v.Y, v.Z}, ok
}

// CameraPlane wraps a Camera as a Plane.
func CameraPlane(c *Camera) Plane { return planeAdapter{c} }

// Controller classifies the pointer stream for one scene into hover, click,
// and drag outcomes. It is the only writer of the position store and of the
// scene-wide drag flag; callbacks tell the host when to lock orbit controls
// and what got selected.
//
// Per node the machine is Idle → Hovered → Idle on pointer-over/out, and
// orthogonally Idle/Hovered → Dragging → Idle/Hovered on pointer-down/up.
// Whether a gesture was a click or a drag is decided once, at pointer-up,
// from the screen-space displacement since pointer-down.
type Controller struct {
	// OnNodeSelected fires on a classified click; nil clears the selection.
	OnNodeSelected func(n *model.Node)
	// OnDragBegin / OnDragEnd bracket the scene-wide drag flag so the host
	// camera controller can suspend orbit/pan/zoom.
	OnDragBegin func()
	OnDragEnd   func()

	// ClickThreshold is the maximum pointer displacement, in screen cells,
	// still classified as a click.
	ClickThreshold float64

	graph *model.Graph
	store *PositionStore
	plane Plane

	hovered  string
	selected string

	dragging   bool
	dragNodeID string
	downX      float64
	downY      float64
	globalDrag bool
}

// NewController returns a controller bound to a graph snapshot, its position
// store, and an unprojection plane.
func NewController(g *model.Graph, store *PositionStore, plane Plane) *Controller {
	return &Controller{
		ClickThreshold: DefaultClickThreshold,
		graph:          g,
		store:          store,
		plane:          plane,
	}
}

// SetGraph swaps in a new graph snapshot and its freshly seeded store.
// Any in-flight drag is cancelled immediately: the drag flag clears (with
// OnDragEnd so the host re-enables orbit) and stale per-node drag state is
// discarded, so a drag started against a destroyed node can never write
// into the new store. Hover and selection reset with the graph.
func (c *Controller) SetGraph(g *model.Graph, store *PositionStore) {
	if c.globalDrag {
		c.clearGlobalDrag()
	}
	c.dragging = false
	c.dragNodeID = ""
	c.hovered = ""
	c.selected = ""
	c.graph = g
	c.store = store
}

// PointerOver marks a node hovered.
func (c *Controller) PointerOver(id string) {
	c.hovered = id
}

// PointerOut clears hover if it still points at id.
func (c *Controller) PointerOut(id string) {
	if c.hovered == id {
		c.hovered = ""
	}
}

// Hovered returns the currently hovered node id, or "".
func (c *Controller) Hovered() string { return c.hovered }

// Selected returns the currently selected node id, or "".
func (c *Controller) Selected() string { return c.selected }

// DragActive reports the scene-wide drag flag consumed by the camera lock
// and global cursor styling.
func (c *Controller) DragActive() bool { return c.globalDrag }

// PointerDown begins a potential drag on the node under the pointer. The
// pointer's screen coordinate is recorded for the click-vs-drag decision at
// pointer-up, and the scene-wide drag flag goes up right away.
func (c *Controller) PointerDown(nodeID string, sx, sy float64) {
	if c.graph == nil || c.graph.NodeByID(nodeID) == nil {
		return
	}
	c.dragging = true
	c.dragNodeID = nodeID
	c.downX = sx
	c.downY = sy
	c.setGlobalDrag()
}

// PointerMove repositions the dragged node by unprojecting the pointer onto
// the Z=0 plane. A ray parallel to the plane skips the update for this
// frame; that is a no-op, not an error.
func (c *Controller) PointerMove(sx, sy float64) {
	if !c.dragging {
		return
	}
	hit, ok := c.plane.ScreenToWorldOnPlane(sx, sy)
	if !ok {
		return
	}
	c.store.Set(c.dragNodeID, vecFromArray(hit))
}

// PointerUp finishes the gesture. Displacement below the threshold means the
// whole gesture was a click and emits exactly one selection event; anything
// longer was a drag and emits none. Either way the scene-wide drag flag
// clears — including for a pointer-up with no matching pointer-down (lost
// events). Leaving the flag stuck would permanently lock the camera, so the
// force-clear is a required invariant, not cleanup.
func (c *Controller) PointerUp(sx, sy float64) {
	if !c.dragging {
		if c.globalDrag {
			debug.Log("pointer-up without pointer-down: force-clearing drag flag")
			c.clearGlobalDrag()
		}
		return
	}
	nodeID := c.dragNodeID
	c.dragging = false
	c.dragNodeID = ""

	dist := math.Hypot(sx-c.downX, sy-c.downY)
	c.clearGlobalDrag()

	if dist < c.ClickThreshold {
		c.selected = nodeID
		if c.OnNodeSelected != nil {
			c.OnNodeSelected(c.graph.NodeByID(nodeID))
		}
	}
}

// ClearSelection emits the nil selection signal, used by the overlay's close
// control. Clearing when nothing is selected is a no-op: no event fires.
func (c *Controller) ClearSelection() {
	if c.selected == "" {
		return
	}
	c.selected = ""
	if c.OnNodeSelected != nil {
		c.OnNodeSelected(nil)
	}
}

func (c *Controller) setGlobalDrag() {
	if c.globalDrag {
		return
	}
	c.globalDrag = true
	if c.OnDragBegin != nil {
		c.OnDragBegin()
	}
}

func (c *Controller) clearGlobalDrag() {
	if !c.globalDrag {
		return
	}
	c.globalDrag = false
	if c.OnDragEnd != nil {
		c.OnDragEnd()
	}
}

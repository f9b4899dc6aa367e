package scene

// GizmoKind selects the debug shape primitive.
type GizmoKind int

const (
	GizmoRect GizmoKind = iota
	GizmoCircle
	GizmoLine
	GizmoCapsule
)

// GizmoShape is one debug overlay shape in world space.
type GizmoShape struct {
	Kind   GizmoKind
	X, Y   float32
	W, H   float32 // rect size; line end point for GizmoLine
	Radius float32
	Height float32 // capsule only
	Color  uint32
}

// GizmoProvider is the optional capability interface for components that
// contribute editor gizmos. The render pass discovers providers by type
// assertion, so gizmo logic needs no compile-time hook into the render
// system.
type GizmoProvider interface {
	Gizmos() []GizmoShape
}

// BoxCollider is a 2D AABB attached to an entity. It draws itself as a rect
// gizmo for editor visualization.
type BoxCollider struct {
	BaseComponent
	W, H float32
}

func NewBoxCollider(w, h float32) *BoxCollider {
	return &BoxCollider{W: w, H: h}
}

func (c *BoxCollider) Gizmos() []GizmoShape {
	e := c.Entity()
	w := c.W * e.Transform.ScaleX
	h := c.H * e.Transform.ScaleY
	return []GizmoShape{{
		Kind:  GizmoRect,
		X:     e.Transform.X - w/2,
		Y:     e.Transform.Y - h/2,
		W:     w,
		H:     h,
		Color: 0xff00ff00, // green outline
	}}
}

// CircleCollider is the circular counterpart of BoxCollider.
type CircleCollider struct {
	BaseComponent
	Radius float32
}

func NewCircleCollider(radius float32) *CircleCollider {
	return &CircleCollider{Radius: radius}
}

func (c *CircleCollider) Gizmos() []GizmoShape {
	e := c.Entity()
	return []GizmoShape{{
		Kind:   GizmoCircle,
		X:      e.Transform.X,
		Y:      e.Transform.Y,
		Radius: c.Radius * e.Transform.ScaleX,
		Color:  0xff00ff00,
	}}
}

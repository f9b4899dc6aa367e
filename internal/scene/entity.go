package scene

// Transform is a 2D transform. Rotation is in degrees.
type Transform struct {
	X, Y     float32
	Rotation float32
	ScaleX   float32
	ScaleY   float32
}

// Component is behaviour attached to an Entity.
type Component interface {
	Start()
	Update(deltaTime float32)
	SetEntity(e *Entity)
	Entity() *Entity
}

// BaseComponent provides the default Component implementation; concrete
// components embed it.
type BaseComponent struct {
	entity *Entity
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetEntity(e *Entity) {
	b.entity = e
}

func (b *BaseComponent) Entity() *Entity {
	return b.entity
}

var nextUID uint64 = 1

// Entity is a named object in a scene with a transform and components.
type Entity struct {
	Name       string
	UID        uint64
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	components []Component
	started    bool
}

func NewEntity(name string) *Entity {
	uid := nextUID
	nextUID++
	return &Entity{
		Name:   name,
		UID:    uid,
		Active: true,
		Transform: Transform{
			ScaleX: 1,
			ScaleY: 1,
		},
		components: make([]Component, 0),
	}
}

func (e *Entity) AddComponent(c Component) {
	c.SetEntity(e)
	e.components = append(e.components, c)
}

func (e *Entity) Components() []Component {
	return e.components
}

// Get returns the first component of type T, or the zero value.
func Get[T Component](e *Entity) T {
	var zero T
	for _, c := range e.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (e *Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (e *Entity) Start() {
	if e.started {
		return
	}
	for _, c := range e.components {
		c.Start()
	}
	e.started = true
}

func (e *Entity) Update(deltaTime float32) {
	if !e.Active {
		return
	}
	for _, c := range e.components {
		c.Update(deltaTime)
	}
}

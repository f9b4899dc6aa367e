package scene

import "testing"

func TestSceneAddEntity(t *testing.T) {
	scn := NewScene("Test")
	e := NewEntity("Player")

	scn.AddEntity(e)

	if len(scn.Entities) != 1 {
		t.Errorf("Expected 1 entity, got %d", len(scn.Entities))
	}
	if scn.Entities[0] != e {
		t.Error("Entity not added to scene")
	}
	if e.Scene != scn {
		t.Error("Entity.Scene not set")
	}
}

func TestSceneUIDLookup(t *testing.T) {
	scn := NewScene("Test")
	e := NewEntity("Player")

	scn.AddEntity(e)

	if scn.FindByUID(e.UID) != e {
		t.Error("FindByUID failed")
	}
	if scn.FindByUID(99999999) != nil {
		t.Error("FindByUID should return nil for non-existent UID")
	}
}

func TestSceneRemoveEntity(t *testing.T) {
	scn := NewScene("Test")
	e1 := NewEntity("Player")
	e2 := NewEntity("Enemy")

	scn.AddEntity(e1)
	scn.AddEntity(e2)
	scn.RemoveEntity(e1)

	if len(scn.Entities) != 1 {
		t.Errorf("Expected 1 entity after removal, got %d", len(scn.Entities))
	}
	if scn.Entities[0] != e2 {
		t.Error("Wrong entity removed")
	}
	if scn.FindByUID(e1.UID) != nil {
		t.Error("Removed entity still in UID map")
	}
}

func TestSceneFindByNameAndTag(t *testing.T) {
	scn := NewScene("Test")
	e1 := NewEntity("Enemy1")
	e2 := NewEntity("Enemy2")
	e3 := NewEntity("Player")
	e1.Tags = []string{"enemy", "ai"}
	e2.Tags = []string{"enemy"}
	e3.Tags = []string{"player"}

	scn.AddEntity(e1)
	scn.AddEntity(e2)
	scn.AddEntity(e3)

	if scn.FindByName("Player") != e3 {
		t.Error("FindByName failed")
	}
	if scn.FindByName("DoesNotExist") != nil {
		t.Error("FindByName should return nil for non-existent name")
	}
	if got := len(scn.FindByTag("enemy")); got != 2 {
		t.Errorf("Expected 2 enemies, got %d", got)
	}
	if got := len(scn.FindByTag("nonexistent")); got != 0 {
		t.Errorf("Expected 0 entities, got %d", got)
	}
}

type countingComponent struct {
	BaseComponent
	starts  int
	updates int
}

func (c *countingComponent) Start()                   { c.starts++ }
func (c *countingComponent) Update(deltaTime float32) { c.updates++ }

func TestEntityComponentLifecycle(t *testing.T) {
	e := NewEntity("Test")
	c := &countingComponent{}
	e.AddComponent(c)

	e.Start()
	e.Start() // second Start is a no-op

	if c.starts != 1 {
		t.Errorf("Expected 1 Start call, got %d", c.starts)
	}

	e.Update(0.016)
	e.Active = false
	e.Update(0.016) // inactive entities do not update

	if c.updates != 1 {
		t.Errorf("Expected 1 Update call, got %d", c.updates)
	}
	if c.Entity() != e {
		t.Error("Component entity back-reference not set")
	}
}

func TestGetComponent(t *testing.T) {
	e := NewEntity("Test")
	sr := NewSpriteRenderer(3)
	e.AddComponent(sr)
	e.AddComponent(&countingComponent{})

	if got := Get[*SpriteRenderer](e); got != sr {
		t.Error("Get[*SpriteRenderer] failed")
	}
	if got := Get[*BoxCollider](e); got != nil {
		t.Error("Get should return nil for missing component")
	}
}

func TestSpriteRendererRenderData(t *testing.T) {
	e := NewEntity("Test")
	e.Transform = Transform{X: 10, Y: 20, Rotation: 30, ScaleX: 2, ScaleY: 3}

	sr := NewSpriteRenderer(7)
	sr.MaterialID = 2
	e.AddComponent(sr)

	data := sr.RenderData()
	if data.X != 10 || data.Y != 20 || data.Rotation != 30 {
		t.Errorf("Transform not carried into render data: %+v", data)
	}
	if data.ScaleX != 2 || data.ScaleY != 3 {
		t.Errorf("Scale not carried: %+v", data)
	}
	if data.TextureID != 7 || data.MaterialID != 2 {
		t.Errorf("IDs not carried: %+v", data)
	}
	if data.OriginX != 0.5 || data.OriginY != 0.5 {
		t.Errorf("Expected centered origin, got %v,%v", data.OriginX, data.OriginY)
	}
}

func TestGizmoProviderDiscovery(t *testing.T) {
	e := NewEntity("Test")
	e.Transform = Transform{X: 100, Y: 50, ScaleX: 2, ScaleY: 1}
	e.AddComponent(NewSpriteRenderer(1))
	e.AddComponent(NewBoxCollider(10, 20))

	var shapes []GizmoShape
	for _, c := range e.Components() {
		if gp, ok := c.(GizmoProvider); ok {
			shapes = append(shapes, gp.Gizmos()...)
		}
	}

	if len(shapes) != 1 {
		t.Fatalf("Expected 1 gizmo shape, got %d", len(shapes))
	}
	g := shapes[0]
	if g.Kind != GizmoRect {
		t.Errorf("Expected rect gizmo, got %v", g.Kind)
	}
	// 10x20 box scaled by (2,1), centered on the entity.
	if g.W != 20 || g.H != 20 {
		t.Errorf("Expected 20x20 gizmo, got %vx%v", g.W, g.H)
	}
	if g.X != 90 || g.Y != 40 {
		t.Errorf("Expected gizmo at (90,40), got (%v,%v)", g.X, g.Y)
	}
}

type fakeRunner struct {
	calls []string
	err   error
}

func (r *fakeRunner) RunUpdate(e *Entity, behaviour string, dt float32) error {
	r.calls = append(r.calls, behaviour)
	return r.err
}

func TestScriptComponentRunnerSwap(t *testing.T) {
	e := NewEntity("Test")
	old := &fakeRunner{}
	sc := NewScriptComponent("rotator", old)
	e.AddComponent(sc)

	e.Update(0.016)
	if len(old.calls) != 1 || old.calls[0] != "rotator" {
		t.Errorf("Expected one rotator call, got %v", old.calls)
	}

	fresh := &fakeRunner{}
	sc.SetRunner(fresh)
	e.Update(0.016)

	if len(old.calls) != 1 {
		t.Error("Old runner still invoked after swap")
	}
	if len(fresh.calls) != 1 {
		t.Error("New runner not invoked after swap")
	}
}

package scripting

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"edit2d/internal/hotreload"
	"edit2d/internal/scene"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

const rotatorScript = `
register("rotator", {
	update = function(entity, dt)
		entity.rotation = entity.rotation + 90 * dt
	end,
})
`

const moverScript = `
register("mover", {
	update = function(entity, dt)
		entity.x = entity.x + 10 * dt
		entity.y = entity.y + 5 * dt
	end,
})
`

func TestEngineLoadAndUpdate(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rotator.lua", rotatorScript)
	writeScript(t, dir, "mover.lua", moverScript)

	eng, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer eng.Close()

	got := eng.Behaviours()
	if len(got) != 2 || got[0] != "mover" || got[1] != "rotator" {
		t.Errorf("Expected [mover rotator], got %v", got)
	}

	ent := scene.NewEntity("Test")
	ent.Transform.Rotation = 10

	if err := eng.RunUpdate(ent, "rotator", 0.5); err != nil {
		t.Fatalf("RunUpdate failed: %v", err)
	}
	if ent.Transform.Rotation != 55 { // 10 + 90*0.5
		t.Errorf("Expected rotation 55, got %v", ent.Transform.Rotation)
	}

	if err := eng.RunUpdate(ent, "mover", 1.0); err != nil {
		t.Fatalf("RunUpdate failed: %v", err)
	}
	if ent.Transform.X != 10 || ent.Transform.Y != 5 {
		t.Errorf("Expected (10,5), got (%v,%v)", ent.Transform.X, ent.Transform.Y)
	}
}

func TestEngineUnknownBehaviour(t *testing.T) {
	eng, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer eng.Close()

	if err := eng.RunUpdate(scene.NewEntity("Test"), "nope", 0.1); err == nil {
		t.Error("Expected error for unregistered behaviour")
	}
}

func TestEngineCompileError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", "this is not lua ((")

	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Error("Expected compile error")
	}
}

func TestEngineMissingDirIsEmpty(t *testing.T) {
	eng, err := NewEngine(filepath.Join(t.TempDir(), "does-not-exist"), zap.NewNop())
	if err != nil {
		t.Fatalf("Missing dir should load empty, got %v", err)
	}
	defer eng.Close()

	if len(eng.Behaviours()) != 0 {
		t.Errorf("Expected no behaviours, got %v", eng.Behaviours())
	}
}

func TestReloadTaskSwapsEngine(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rotator.lua", rotatorScript)

	log := zap.NewNop()
	coord := hotreload.New(log)
	rel := NewReloader(coord, log)
	if err := rel.Load(dir); err != nil {
		t.Fatalf("Initial load failed: %v", err)
	}
	first := rel.Engine()

	scn := scene.NewScene("Test")
	ent := scene.NewEntity("Spinner")
	ent.AddComponent(scene.NewScriptComponent("rotator", first))
	scn.AddEntity(ent)

	// Change the script on disk, then reload through the coordinator.
	writeScript(t, dir, "rotator.lua", `
register("rotator", {
	update = function(entity, dt)
		entity.rotation = entity.rotation - 90 * dt
	end,
})
`)

	res, err := coord.PerformReload(context.Background(), rel.Task(dir, scn), hotreload.Options{})
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if res.UpdatedInstances != 1 {
		t.Errorf("Expected 1 updated instance, got %d", res.UpdatedInstances)
	}
	if res.UpdatedSystems != 1 {
		t.Errorf("Expected 1 updated system, got %d", res.UpdatedSystems)
	}
	if rel.Engine() == first {
		t.Error("Engine not swapped after reload")
	}

	// The rebound component runs the new behaviour.
	ent.Transform.Rotation = 0
	ent.Update(1.0)
	if ent.Transform.Rotation != -90 {
		t.Errorf("Expected rotation -90 from new script, got %v", ent.Transform.Rotation)
	}
}

func TestReloadFailureKeepsOldEngine(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rotator.lua", rotatorScript)

	log := zap.NewNop()
	coord := hotreload.New(log)
	rel := NewReloader(coord, log)
	if err := rel.Load(dir); err != nil {
		t.Fatalf("Initial load failed: %v", err)
	}
	live := rel.Engine()

	writeScript(t, dir, "rotator.lua", "syntax error ((")

	scn := scene.NewScene("Test")
	if _, err := coord.PerformReload(context.Background(), rel.Task(dir, scn), hotreload.Options{}); err == nil {
		t.Fatal("Expected reload failure")
	}

	if rel.Engine() != live {
		t.Error("Failed reload must not replace the live engine")
	}
	// Live engine still works.
	ent := scene.NewEntity("Test")
	if err := live.RunUpdate(ent, "rotator", 0.1); err != nil {
		t.Errorf("Live engine broken after failed reload: %v", err)
	}
}

func TestReloadFailsWhenBehaviourDropped(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rotator.lua", rotatorScript)

	log := zap.NewNop()
	coord := hotreload.New(log)
	rel := NewReloader(coord, log)
	if err := rel.Load(dir); err != nil {
		t.Fatalf("Initial load failed: %v", err)
	}

	scn := scene.NewScene("Test")
	ent := scene.NewEntity("Spinner")
	ent.AddComponent(scene.NewScriptComponent("rotator", rel.Engine()))
	scn.AddEntity(ent)

	// Replace the script with one registering a different behaviour.
	if err := os.Remove(filepath.Join(dir, "rotator.lua")); err != nil {
		t.Fatal(err)
	}
	writeScript(t, dir, "mover.lua", moverScript)

	if _, err := coord.PerformReload(context.Background(), rel.Task(dir, scn), hotreload.Options{}); err == nil {
		t.Error("Expected failure when a referenced behaviour disappears")
	}
}

func TestBehaviourWithoutUpdateIsNoop(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "tag.lua", `register("tag_only", {})`)

	eng, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer eng.Close()

	ent := scene.NewEntity("Test")
	if err := eng.RunUpdate(ent, "tag_only", 0.1); err != nil {
		t.Errorf("Behaviour without update should be a no-op, got %v", err)
	}
}

func TestDuplicateRegistrationFails(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a.lua", `register("dup", {})`)
	writeScript(t, dir, "b.lua", `register("dup", {})`)

	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Error("Expected duplicate registration error")
	}
}

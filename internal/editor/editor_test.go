package editor

import (
	"testing"

	"go.uber.org/zap"

	"edit2d/internal/batch"
	"edit2d/internal/bridge"
	"edit2d/internal/render"
)

type drawCall struct {
	clear bool
	count int
}

// stagingRenderer retains the last staged batch across Render calls, the way
// the raylib backend does, and records what each Render call would draw.
type stagingRenderer struct {
	staged  int
	draws   []drawCall
	cameras map[string]render.CameraState
}

func newStagingRenderer() *stagingRenderer {
	return &stagingRenderer{
		cameras: map[string]render.CameraState{"": {Zoom: 1}},
	}
}

func (r *stagingRenderer) SubmitSpriteBatch(transforms []float32, textureIDs []uint32, uvs []float32, colors []uint32, materialIDs []uint32, count int) {
	r.staged = count
}

func (r *stagingRenderer) Render(clear bool) {
	r.draws = append(r.draws, drawCall{clear: clear, count: r.staged})
}

func (r *stagingRenderer) Camera(id string) (render.CameraState, bool) {
	cam, ok := r.cameras[id]
	return cam, ok
}
func (r *stagingRenderer) SetCamera(id string, cam render.CameraState) { r.cameras[id] = cam }

func (r *stagingRenderer) RegisterViewport(id string, w, h int32)   {}
func (r *stagingRenderer) UnregisterViewport(id string)             {}
func (r *stagingRenderer) ResizeViewport(id string, w, h int32)     {}
func (r *stagingRenderer) RenderToViewport(id string)               {}
func (r *stagingRenderer) SurfaceSize() (int32, int32)              { return 1280, 720 }
func (r *stagingRenderer) QueueGizmoRect(x, y, w, h float32, color uint32)         {}
func (r *stagingRenderer) QueueGizmoCircle(x, y, radius float32, color uint32)     {}
func (r *stagingRenderer) QueueGizmoLine(x1, y1, x2, y2 float32, color uint32)     {}
func (r *stagingRenderer) QueueGizmoCapsule(x, y, radius, height float32, color uint32) {}
func (r *stagingRenderer) Close()                                   {}

func newOverlayFixture(t *testing.T) (*bridge.Bridge, *stagingRenderer) {
	t.Helper()
	fake := newStagingRenderer()
	br := bridge.New(bridge.Config{MaxSprites: 16}, zap.NewNop())
	if err := br.Initialize(fake); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return br, fake
}

func renderWorldFrame(br *bridge.Bridge) {
	br.SubmitSprites([]batch.SpriteRenderData{
		{ScaleX: 1, ScaleY: 1}, {ScaleX: 1, ScaleY: 1}, {ScaleX: 1, ScaleY: 1},
	})
	br.Render()
}

func TestCompositeUISkippedWhileRunning(t *testing.T) {
	br, fake := newOverlayFixture(t)
	renderWorldFrame(br)

	ui := batch.NewZOrderedBatcher()
	compositeUI(br, ui, false)

	// Exactly the world draw; an empty UI pass must not issue an overlay
	// render that would re-draw the retained world batch.
	if len(fake.draws) != 1 {
		t.Fatalf("Expected 1 draw per running frame, got %d: %v", len(fake.draws), fake.draws)
	}
	if !fake.draws[0].clear || fake.draws[0].count != 3 {
		t.Errorf("Unexpected world draw: %+v", fake.draws[0])
	}
	if cam, _ := br.Camera(""); cam.Zoom != 1 {
		t.Errorf("Camera touched by skipped UI pass: %+v", cam)
	}
}

func TestCompositeUIDrawsDimWhilePaused(t *testing.T) {
	br, fake := newOverlayFixture(t)
	renderWorldFrame(br)

	ui := batch.NewZOrderedBatcher()
	compositeUI(br, ui, true)

	if len(fake.draws) != 2 {
		t.Fatalf("Expected world draw + overlay draw, got %d: %v", len(fake.draws), fake.draws)
	}
	overlay := fake.draws[1]
	if overlay.clear {
		t.Error("Overlay pass must not clear the target")
	}
	if overlay.count != 1 {
		t.Errorf("Expected 1 staged UI sprite in overlay, got %d", overlay.count)
	}

	// World camera restored and the UI batcher drained for the next frame.
	if cam, _ := br.Camera(""); cam.Zoom != 1 {
		t.Errorf("Camera not restored after overlay: %+v", cam)
	}
	if !ui.IsEmpty() {
		t.Errorf("UI batcher not cleared, %d sprites left", ui.Count())
	}
}

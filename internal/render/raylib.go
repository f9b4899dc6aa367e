package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	transformStride = 7
	uvStride        = 4
)

type gizmoKind int

const (
	gizmoRect gizmoKind = iota
	gizmoCircle
	gizmoLine
	gizmoCapsule
)

type gizmo struct {
	kind           gizmoKind
	x, y, w, h     float32 // rect: pos+size, circle/capsule: pos + radius in w, line: start + end in w/h
	radius, height float32
	color          uint32
}

type viewport struct {
	target rl.RenderTexture2D
	cam    CameraState
	width  int32
	height int32
}

// RaylibRenderer implements Renderer on top of raylib. It owns the texture
// registry, per-viewport render targets, and the gizmo queue. All calls must
// come from the main thread that owns the GL context.
type RaylibRenderer struct {
	log *zap.Logger

	textures  map[uint32]rl.Texture2D
	nextTexID uint32

	viewports map[string]*viewport
	mainCam   CameraState

	// Staged batch, valid until the next Render/RenderToViewport.
	transforms  []float32
	textureIDs  []uint32
	uvs         []float32
	colors      []uint32
	materialIDs []uint32
	count       int

	gizmos []gizmo
}

// NewRaylibRenderer creates a renderer. The raylib window must already be
// initialized.
func NewRaylibRenderer(log *zap.Logger) *RaylibRenderer {
	return &RaylibRenderer{
		log:       log,
		textures:  make(map[uint32]rl.Texture2D),
		nextTexID: 1,
		viewports: make(map[string]*viewport),
		mainCam:   CameraState{Zoom: 1},
	}
}

// LoadTexture loads an image file into the registry and returns its id.
// Id 0 is reserved and never assigned; sprites with texture id 0 are drawn
// as untextured quads.
func (r *RaylibRenderer) LoadTexture(path string) (uint32, error) {
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return 0, fmt.Errorf("load texture %s: raylib returned null texture", path)
	}
	id := r.nextTexID
	r.nextTexID++
	r.textures[id] = tex
	r.log.Debug("texture loaded", zap.String("path", path), zap.Uint32("id", id))
	return id, nil
}

func (r *RaylibRenderer) SubmitSpriteBatch(transforms []float32, textureIDs []uint32, uvs []float32, colors []uint32, materialIDs []uint32, count int) {
	r.transforms = transforms
	r.textureIDs = textureIDs
	r.uvs = uvs
	r.colors = colors
	r.materialIDs = materialIDs
	r.count = count
}

func (r *RaylibRenderer) Render(clear bool) {
	if clear {
		rl.ClearBackground(rl.NewColor(20, 20, 30, 255))
	}
	rl.BeginMode2D(r.raylibCamera(r.mainCam))
	r.drawBatch()
	r.drawGizmos()
	rl.EndMode2D()
	r.gizmos = r.gizmos[:0]
}

func (r *RaylibRenderer) RenderToViewport(id string) {
	vp, ok := r.viewports[id]
	if !ok {
		r.log.Warn("render to unknown viewport", zap.String("id", id))
		return
	}
	rl.BeginTextureMode(vp.target)
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))
	rl.BeginMode2D(r.raylibCamera(vp.cam))
	r.drawBatch()
	rl.EndMode2D()
	rl.EndTextureMode()
}

func (r *RaylibRenderer) drawBatch() {
	for i := 0; i < r.count; i++ {
		t := r.transforms[i*transformStride:]
		x, y, rot := t[0], t[1], t[2]
		scaleX, scaleY := t[3], t[4]
		originX, originY := t[5], t[6]

		uv := r.uvs[i*uvStride:]
		cr, cg, cb, ca := unpackABGR(r.colors[i])
		tint := rl.NewColor(cr, cg, cb, ca)

		tex, ok := r.textures[r.textureIDs[i]]
		if !ok {
			// Untextured quad fallback (texture id 0 or unloaded texture).
			rl.DrawRectanglePro(
				rl.Rectangle{X: x, Y: y, Width: scaleX, Height: scaleY},
				rl.Vector2{X: originX * scaleX, Y: originY * scaleY},
				rot, tint)
			continue
		}

		texW, texH := float32(tex.Width), float32(tex.Height)
		src := rl.Rectangle{
			X:      uv[0] * texW,
			Y:      uv[1] * texH,
			Width:  (uv[2] - uv[0]) * texW,
			Height: (uv[3] - uv[1]) * texH,
		}
		dstW := src.Width * scaleX
		dstH := src.Height * scaleY
		dst := rl.Rectangle{X: x, Y: y, Width: dstW, Height: dstH}

		rl.DrawTexturePro(tex, src, dst, rl.Vector2{X: originX * dstW, Y: originY * dstH}, rot, tint)
	}
}

func (r *RaylibRenderer) drawGizmos() {
	for _, g := range r.gizmos {
		cr, cg, cb, ca := unpackABGR(g.color)
		col := rl.NewColor(cr, cg, cb, ca)
		switch g.kind {
		case gizmoRect:
			rl.DrawRectangleLinesEx(rl.Rectangle{X: g.x, Y: g.y, Width: g.w, Height: g.h}, 1, col)
		case gizmoCircle:
			rl.DrawCircleLinesV(rl.Vector2{X: g.x, Y: g.y}, g.radius, col)
		case gizmoLine:
			rl.DrawLineV(rl.Vector2{X: g.x, Y: g.y}, rl.Vector2{X: g.w, Y: g.h}, col)
		case gizmoCapsule:
			// Two circles joined by side lines, axis-aligned vertically.
			half := g.height / 2
			rl.DrawCircleLinesV(rl.Vector2{X: g.x, Y: g.y - half}, g.radius, col)
			rl.DrawCircleLinesV(rl.Vector2{X: g.x, Y: g.y + half}, g.radius, col)
			rl.DrawLineV(rl.Vector2{X: g.x - g.radius, Y: g.y - half}, rl.Vector2{X: g.x - g.radius, Y: g.y + half}, col)
			rl.DrawLineV(rl.Vector2{X: g.x + g.radius, Y: g.y - half}, rl.Vector2{X: g.x + g.radius, Y: g.y + half}, col)
		}
	}
}

func (r *RaylibRenderer) Camera(viewportID string) (CameraState, bool) {
	if viewportID == "" {
		return r.mainCam, true
	}
	vp, ok := r.viewports[viewportID]
	if !ok {
		return CameraState{}, false
	}
	return vp.cam, true
}

func (r *RaylibRenderer) SetCamera(viewportID string, cam CameraState) {
	if viewportID == "" {
		r.mainCam = cam
		return
	}
	if vp, ok := r.viewports[viewportID]; ok {
		vp.cam = cam
	}
}

func (r *RaylibRenderer) RegisterViewport(id string, width, height int32) {
	if old, ok := r.viewports[id]; ok {
		rl.UnloadRenderTexture(old.target)
	}
	r.viewports[id] = &viewport{
		target: rl.LoadRenderTexture(width, height),
		cam:    CameraState{Zoom: 1},
		width:  width,
		height: height,
	}
}

func (r *RaylibRenderer) UnregisterViewport(id string) {
	if vp, ok := r.viewports[id]; ok {
		rl.UnloadRenderTexture(vp.target)
		delete(r.viewports, id)
	}
}

func (r *RaylibRenderer) ResizeViewport(id string, width, height int32) {
	vp, ok := r.viewports[id]
	if !ok {
		return
	}
	rl.UnloadRenderTexture(vp.target)
	vp.target = rl.LoadRenderTexture(width, height)
	vp.width = width
	vp.height = height
}

// ViewportTexture returns the offscreen target for drawing a viewport into
// the editor chrome. ok is false for unknown ids.
func (r *RaylibRenderer) ViewportTexture(id string) (rl.RenderTexture2D, bool) {
	vp, ok := r.viewports[id]
	if !ok {
		return rl.RenderTexture2D{}, false
	}
	return vp.target, true
}

func (r *RaylibRenderer) SurfaceSize() (int32, int32) {
	return int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
}

func (r *RaylibRenderer) QueueGizmoRect(x, y, w, h float32, color uint32) {
	r.gizmos = append(r.gizmos, gizmo{kind: gizmoRect, x: x, y: y, w: w, h: h, color: color})
}

func (r *RaylibRenderer) QueueGizmoCircle(x, y, radius float32, color uint32) {
	r.gizmos = append(r.gizmos, gizmo{kind: gizmoCircle, x: x, y: y, radius: radius, color: color})
}

func (r *RaylibRenderer) QueueGizmoLine(x1, y1, x2, y2 float32, color uint32) {
	r.gizmos = append(r.gizmos, gizmo{kind: gizmoLine, x: x1, y: y1, w: x2, h: y2, color: color})
}

func (r *RaylibRenderer) QueueGizmoCapsule(x, y, radius, height float32, color uint32) {
	r.gizmos = append(r.gizmos, gizmo{kind: gizmoCapsule, x: x, y: y, radius: radius, height: height, color: color})
}

func (r *RaylibRenderer) Close() {
	for id, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, id)
	}
	for id, vp := range r.viewports {
		rl.UnloadRenderTexture(vp.target)
		delete(r.viewports, id)
	}
}

func (r *RaylibRenderer) raylibCamera(cam CameraState) rl.Camera2D {
	w, h := r.SurfaceSize()
	return rl.Camera2D{
		Offset:   rl.Vector2{X: float32(w) / 2, Y: float32(h) / 2},
		Target:   rl.Vector2{X: cam.X, Y: cam.Y},
		Rotation: cam.Rotation,
		Zoom:     cam.Zoom,
	}
}

// unpackABGR splits a packed 0xAABBGGRR color into bytes.
func unpackABGR(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// Package editor wires the runtime together and owns the main window loop.
package editor

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"edit2d/internal/batch"
	"edit2d/internal/bridge"
	"edit2d/internal/config"
	"edit2d/internal/hotreload"
	"edit2d/internal/hud"
	"edit2d/internal/loop"
	"edit2d/internal/render"
	"edit2d/internal/scene"
	"edit2d/internal/scripting"
)

const previewViewport = "game-preview"

type Editor struct {
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Editor {
	return &Editor{cfg: cfg, log: log}
}

// Run opens the window and drives the editor until it is closed.
func (e *Editor) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(e.cfg.Window.Width, e.cfg.Window.Height, e.cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(e.cfg.Window.TargetFPS)

	renderer := render.NewRaylibRenderer(e.log)
	defer renderer.Close()

	viewports := render.NewViewportService(renderer)
	viewports.Register(previewViewport, 320, 180)
	defer viewports.Unregister(previewViewport)

	br := bridge.New(bridge.Config{
		MaxSprites: e.cfg.Render.MaxSprites,
		Debug:      e.cfg.Render.Debug,
	}, e.log)
	if err := br.Initialize(renderer); err != nil {
		return err
	}
	defer br.Dispose()

	coord := hotreload.New(e.log)
	rel := scripting.NewReloader(coord, e.log)
	if err := rel.Load(e.cfg.Scripts.Dir); err != nil {
		return err
	}

	scn := scene.NewScene("Main")
	e.buildDemoScene(scn, rel.Engine())
	scn.Start()

	l := loop.New(scn, batch.NewBatcher(), br, e.log)
	coord.Bind(l)

	uiBatcher := batch.NewZOrderedBatcher()
	overlay := hud.New(coord, br, e.cfg.Render.Debug)
	hud.InitStyle()

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()

		ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyLeftSuper)
		if ctrl && rl.IsKeyPressed(rl.KeyR) {
			e.triggerReload(coord, rel, scn)
		}
		if rl.IsKeyPressed(rl.KeyP) {
			l.SetPaused(!l.Paused())
		}

		l.Tick(dt)
		br.RenderToViewport(previewViewport)

		rl.BeginDrawing()
		br.Render()

		// Screen-space UI pass composited over the world.
		compositeUI(br, uiBatcher, l.Paused())

		e.drawPreview(renderer)
		overlay.Draw()
		rl.EndDrawing()
	}
	return nil
}

// triggerReload kicks off a coordinated script reload off the render thread.
// A reload already in flight makes this a no-op; the coordinator would queue
// the second attempt, but for a key repeat we just drop it.
func (e *Editor) triggerReload(coord *hotreload.Coordinator, rel *scripting.Reloader, scn *scene.Scene) {
	if coord.Status().Phase.InProgress() {
		return
	}
	task := rel.Task(e.cfg.Scripts.Dir, scn)
	opts := hotreload.Options{
		Timeout: e.cfg.Scripts.ReloadTimeout.Duration,
		OnPhaseChange: func(s hotreload.Status) {
			e.log.Debug("reload phase", zap.String("phase", s.Phase.String()))
		},
	}
	go func() {
		// Errors are already logged by the coordinator; the HUD surfaces
		// the failed status to the user.
		_, _ = coord.PerformReload(context.Background(), task, opts)
	}()
}

// compositeUI stages screen-space chrome sprites in design resolution
// (640x360) and draws them over the world in one overlay pass. Z-ordered
// batcher: insertion order is draw order. The pass is skipped entirely when
// nothing is staged; an overlay render without a fresh submission would
// re-draw the renderer's retained world batch under the screen-space camera.
func compositeUI(br *bridge.Bridge, ui *batch.Batcher, paused bool) {
	if paused {
		// Dim the world while paused.
		dim := batch.SpriteRenderData{
			X: 0, Y: 0, ScaleX: 640, ScaleY: 360,
			OriginX: 0.5, OriginY: 0.5,
		}
		dim.SetColorRGBA(0, 0, 0, 90)
		ui.Add(dim)
	}
	if ui.IsEmpty() {
		return
	}
	br.PushScreenSpaceMode(640, 360)
	br.SubmitSprites(ui.Sprites())
	br.RenderOverlay()
	br.PopScreenSpaceMode()
	ui.Clear()
}

// drawPreview blits the offscreen game-preview viewport into the corner.
func (e *Editor) drawPreview(renderer *render.RaylibRenderer) {
	tex, ok := renderer.ViewportTexture(previewViewport)
	if !ok {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	x := float32(screenW - tex.Texture.Width - 10)
	// Render textures are vertically flipped.
	rl.DrawTextureRec(
		tex.Texture,
		rl.Rectangle{Width: float32(tex.Texture.Width), Height: float32(-tex.Texture.Height)},
		rl.Vector2{X: x, Y: 38},
		rl.White,
	)
	rl.DrawRectangleLines(int32(x), 38, tex.Texture.Width, tex.Texture.Height, rl.Green)
}

// buildDemoScene populates the startup scene: a ring of quads plus scripted
// entities for exercising hot reload.
func (e *Editor) buildDemoScene(scn *scene.Scene, eng *scripting.Engine) {
	for i := 0; i < 8; i++ {
		ent := scene.NewEntity("Quad")
		ent.Transform.X = float32(i%4)*80 - 120
		ent.Transform.Y = float32(i/4)*80 - 40
		ent.Transform.ScaleX = 32
		ent.Transform.ScaleY = 32

		sr := scene.NewSpriteRenderer(0)
		sr.Color = batch.PackRGBA(byte(60+i*20), 99, 255, 255)
		ent.AddComponent(sr)
		ent.AddComponent(scene.NewBoxCollider(1, 1))
		scn.AddEntity(ent)
	}

	if eng != nil && eng.Has("rotator") {
		spinner := scene.NewEntity("Spinner")
		spinner.Transform.ScaleX = 48
		spinner.Transform.ScaleY = 48
		sr := scene.NewSpriteRenderer(0)
		sr.Color = batch.PackRGBA(255, 170, 60, 255)
		spinner.AddComponent(sr)
		spinner.AddComponent(scene.NewScriptComponent("rotator", eng))
		scn.AddEntity(spinner)
	} else {
		e.log.Warn("rotator behaviour not found; demo spinner skipped")
	}
}

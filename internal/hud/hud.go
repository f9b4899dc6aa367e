// Package hud draws the editor's debug overlay: frame stats and hot-reload
// progress. Screen-space raylib/raygui drawing only; no world state.
package hud

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"edit2d/internal/bridge"
	"edit2d/internal/hotreload"
)

var (
	colorBgDark    = rl.NewColor(24, 24, 32, 230)
	colorBorder    = rl.NewColor(50, 50, 65, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)
	colorTextMuted = rl.NewColor(140, 140, 155, 255)
	colorError     = rl.NewColor(255, 120, 120, 255)
	colorOK        = rl.NewColor(100, 220, 100, 255)
)

// InitStyle applies the dark raygui theme. Call once after window creation.
func InitStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// HUD renders the top bar with frame stats and, while a reload is in flight,
// a phase banner with a progress bar.
type HUD struct {
	coord *hotreload.Coordinator
	br    *bridge.Bridge
	debug bool
}

func New(coord *hotreload.Coordinator, br *bridge.Bridge, debug bool) *HUD {
	return &HUD{coord: coord, br: br, debug: debug}
}

func (h *HUD) Draw() {
	screenW := int32(rl.GetScreenWidth())

	rl.DrawRectangle(0, 0, screenW, 28, colorBgDark)
	rl.DrawRectangle(0, 28, screenW, 1, colorBorder)

	stats := h.br.Stats()
	rl.DrawText(fmt.Sprintf("%d fps  %.2f ms  %d sprites", stats.FPS, stats.FrameTimeMs, stats.SpriteCount), 10, 7, 15, colorTextMuted)
	rl.DrawText("Ctrl+R: reload scripts  |  P: pause", screenW-310, 7, 15, colorTextMuted)

	status := h.coord.Status()
	switch {
	case status.Phase.InProgress():
		h.drawReloadBanner(status, screenW)
	case status.Phase == hotreload.PhaseFailed:
		rl.DrawText("Reload failed: "+status.Err, 10, 36, 15, colorError)
	case status.Phase == hotreload.PhaseComplete && time.Since(status.StartTime) < 3*time.Second:
		msg := fmt.Sprintf("Scripts reloaded (%d instances, %d systems)", status.UpdatedInstances, status.UpdatedSystems)
		rl.DrawText(msg, 10, 36, 15, colorOK)
	}

	if h.debug {
		rl.DrawFPS(10, int32(rl.GetScreenHeight())-24)
	}
}

func (h *HUD) drawReloadBanner(status hotreload.Status, screenW int32) {
	barW := float32(260)
	barX := (float32(screenW) - barW) / 2

	rl.DrawRectangle(int32(barX)-12, 36, int32(barW)+24, 44, colorBgDark)
	rl.DrawRectangleLines(int32(barX)-12, 36, int32(barW)+24, 44, colorAccent)
	rl.DrawText("Reloading: "+status.Phase.String(), int32(barX), 42, 15, rl.RayWhite)

	gui.ProgressBar(
		rl.Rectangle{X: barX, Y: 62, Width: barW, Height: 12},
		"", "",
		phaseProgress(status.Phase), 0, 1,
	)
}

// phaseProgress maps a phase to a rough completion fraction for the bar.
func phaseProgress(p hotreload.Phase) float32 {
	switch p {
	case hotreload.PhasePreparing:
		return 0.1
	case hotreload.PhaseCompiling:
		return 0.4
	case hotreload.PhaseLoading:
		return 0.6
	case hotreload.PhaseUpdatingInstances:
		return 0.75
	case hotreload.PhaseUpdatingSystems:
		return 0.85
	case hotreload.PhaseResuming:
		return 0.95
	case hotreload.PhaseComplete:
		return 1
	}
	return 0
}

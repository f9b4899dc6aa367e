// Package loop drives the editor's per-frame cycle: scene update, sprite
// collection into the batcher, one bridge submission, gizmo collection.
package loop

import (
	"sync"

	"go.uber.org/zap"

	"edit2d/internal/batch"
	"edit2d/internal/bridge"
	"edit2d/internal/scene"
)

// UpdateLoop is the pausable host loop the hot-reload coordinator binds to.
// While paused the scene stops simulating but rendering continues, so the
// editor keeps drawing the frozen world during a reload.
type UpdateLoop struct {
	log     *zap.Logger
	scn     *scene.Scene
	batcher *batch.Batcher
	br      *bridge.Bridge

	mu     sync.Mutex
	paused bool
}

func New(scn *scene.Scene, batcher *batch.Batcher, br *bridge.Bridge, log *zap.Logger) *UpdateLoop {
	return &UpdateLoop{
		log:     log,
		scn:     scn,
		batcher: batcher,
		br:      br,
	}
}

// Paused and SetPaused satisfy hotreload.PausableLoop. The flag is owned by
// the coordinator while a reload is in flight; nothing else should toggle it
// during that window.
func (l *UpdateLoop) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

func (l *UpdateLoop) SetPaused(paused bool) {
	l.mu.Lock()
	l.paused = paused
	l.mu.Unlock()
}

// Scene returns the loop's scene.
func (l *UpdateLoop) Scene() *scene.Scene {
	return l.scn
}

// Tick runs one frame: update (unless paused), collect, submit, clear.
func (l *UpdateLoop) Tick(deltaTime float32) {
	if !l.Paused() {
		l.scn.Update(deltaTime)
	}

	for _, ent := range l.scn.Entities {
		if !ent.Active {
			continue
		}
		if sr := scene.Get[*scene.SpriteRenderer](ent); sr != nil {
			l.batcher.Add(sr.RenderData())
		}
	}

	l.br.SubmitSprites(l.batcher.Sprites())
	l.batcher.Clear()

	l.collectGizmos()
}

// collectGizmos discovers GizmoProvider components by type assertion and
// queues their shapes with the bridge.
func (l *UpdateLoop) collectGizmos() {
	for _, ent := range l.scn.Entities {
		if !ent.Active {
			continue
		}
		for _, c := range ent.Components() {
			gp, ok := c.(scene.GizmoProvider)
			if !ok {
				continue
			}
			for _, g := range gp.Gizmos() {
				switch g.Kind {
				case scene.GizmoRect:
					l.br.AddGizmoRect(g.X, g.Y, g.W, g.H, g.Color)
				case scene.GizmoCircle:
					l.br.AddGizmoCircle(g.X, g.Y, g.Radius, g.Color)
				case scene.GizmoLine:
					l.br.AddGizmoLine(g.X, g.Y, g.W, g.H, g.Color)
				case scene.GizmoCapsule:
					l.br.AddGizmoCapsule(g.X, g.Y, g.Radius, g.Height, g.Color)
				}
			}
		}
	}
}

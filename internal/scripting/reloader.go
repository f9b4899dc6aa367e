package scripting

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"edit2d/internal/hotreload"
	"edit2d/internal/scene"
)

// Reloader owns the live script engine and builds the reload tasks the
// coordinator runs. A reload compiles a fresh VM, swaps it in, and re-binds
// every script component; the old VM is only closed after the swap, so a
// failed compile leaves the live engine untouched.
type Reloader struct {
	log   *zap.Logger
	coord *hotreload.Coordinator

	mu     sync.Mutex
	engine *Engine
}

func NewReloader(coord *hotreload.Coordinator, log *zap.Logger) *Reloader {
	return &Reloader{log: log, coord: coord}
}

// Load performs the initial, non-coordinated script load at editor startup.
func (r *Reloader) Load(dir string) error {
	eng, err := NewEngine(dir, r.log)
	if err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}
	r.mu.Lock()
	r.engine = eng
	r.mu.Unlock()
	return nil
}

// Engine returns the live engine, or nil before the first Load.
func (r *Reloader) Engine() *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine
}

// Task builds the coordinator reload task for the given script directory and
// scene: compile, verify, swap, re-bind.
func (r *Reloader) Task(dir string, scn *scene.Scene) hotreload.ReloadTask {
	return func(ctx context.Context) (*hotreload.Result, error) {
		fresh, err := NewEngine(dir, r.log)
		if err != nil {
			return nil, fmt.Errorf("compile scripts: %w", err)
		}

		if err := ctx.Err(); err != nil {
			fresh.Close()
			return nil, err
		}
		r.coord.ReportLoading(ctx)

		// Behaviours the scene references must exist in the new engine;
		// losing one mid-session is a script author error worth failing on.
		for _, ent := range scn.Entities {
			for _, c := range ent.Components() {
				sc, ok := c.(*scene.ScriptComponent)
				if !ok {
					continue
				}
				if !fresh.Has(sc.Behaviour) {
					fresh.Close()
					return nil, fmt.Errorf("reload dropped behaviour %q (used by %s)", sc.Behaviour, ent.Name)
				}
			}
		}

		r.mu.Lock()
		old := r.engine
		r.engine = fresh
		r.mu.Unlock()

		instances := 0
		for _, ent := range scn.Entities {
			for _, c := range ent.Components() {
				if sc, ok := c.(*scene.ScriptComponent); ok {
					sc.SetRunner(fresh)
					instances++
				}
			}
		}
		r.coord.ReportInstanceUpdate(ctx, instances)

		systems := len(fresh.Behaviours())
		r.coord.ReportSystemUpdate(ctx, systems)

		if old != nil {
			old.Close()
		}

		return &hotreload.Result{
			UpdatedInstances: instances,
			UpdatedSystems:   systems,
		}, nil
	}
}

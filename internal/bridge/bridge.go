// Package bridge marshals per-frame sprite batches into the flat strided
// buffer layout the renderer expects and issues exactly one batched
// submission per frame, plus camera/viewport/gizmo pass-throughs.
package bridge

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"edit2d/internal/batch"
	"edit2d/internal/render"
)

// ErrNotInitialized is returned by the internal engine accessor when the
// bridge has no renderer bound. The public methods no-op instead.
var ErrNotInitialized = errors.New("bridge: engine not initialized")

const (
	// DefaultMaxSprites is the buffer capacity when Config.MaxSprites is 0.
	DefaultMaxSprites = 10000

	transformStride = 7
	uvStride        = 4
)

// Config sizes the bridge at construction. Capacity is permanent for the
// bridge's lifetime.
type Config struct {
	MaxSprites int
	Debug      bool
}

// FrameStats is a snapshot of per-frame render statistics.
type FrameStats struct {
	SpriteCount int
	FrameTimeMs float64
	FPS         int
}

// Bridge owns the five submission buffers and reuses them every frame; no
// per-frame allocation. Callers never retain references to buffer contents
// across frames.
//
// Lifecycle: New → Initialize → (submit/render...) → Dispose. Dispose is
// terminal; a disposed bridge cannot be re-initialized.
type Bridge struct {
	log        *zap.Logger
	maxSprites int
	debug      bool

	transforms  []float32
	textureIDs  []uint32
	uvs         []float32
	colors      []uint32
	materialIDs []uint32

	renderer    render.Renderer
	initialized bool
	disposed    bool

	// Single-slot saved world camera for screen-space mode. Depth one:
	// a second push overwrites the slot.
	savedCam *render.CameraState

	stats       FrameStats
	frameCount  int
	fpsAccumMs  float64
	lastRenderT time.Time

	now func() time.Time
}

// New allocates all buffers up front at MaxSprites capacity.
func New(cfg Config, log *zap.Logger) *Bridge {
	maxSprites := cfg.MaxSprites
	if maxSprites <= 0 {
		maxSprites = DefaultMaxSprites
	}
	return &Bridge{
		log:         log,
		maxSprites:  maxSprites,
		debug:       cfg.Debug,
		transforms:  make([]float32, maxSprites*transformStride),
		textureIDs:  make([]uint32, maxSprites),
		uvs:         make([]float32, maxSprites*uvStride),
		colors:      make([]uint32, maxSprites),
		materialIDs: make([]uint32, maxSprites),
		now:         time.Now,
	}
}

// Initialize binds the renderer. Returns an error on a disposed bridge;
// dispose is terminal.
func (b *Bridge) Initialize(r render.Renderer) error {
	if b.disposed {
		return errors.New("bridge: already disposed")
	}
	if r == nil {
		return errors.New("bridge: nil renderer")
	}
	b.renderer = r
	b.initialized = true
	b.log.Info("engine bridge initialized", zap.Int("maxSprites", b.maxSprites))
	return nil
}

// Initialized reports whether the bridge is bound to a renderer.
func (b *Bridge) Initialized() bool {
	return b.initialized
}

// engine is the internal accessor: unlike the forgiving public surface it
// fails loudly when the bridge is unusable.
func (b *Bridge) engine() (render.Renderer, error) {
	if !b.initialized || b.renderer == nil {
		return nil, ErrNotInitialized
	}
	return b.renderer, nil
}

// SubmitSprites writes the sprites into the strided buffers and issues one
// batched call to the renderer. Submissions beyond MaxSprites are silently
// truncated to capacity. No-op when uninitialized or empty.
func (b *Bridge) SubmitSprites(sprites []batch.SpriteRenderData) {
	if !b.initialized || len(sprites) == 0 {
		return
	}

	count := len(sprites)
	if count > b.maxSprites {
		if b.debug {
			b.log.Debug("sprite submission truncated",
				zap.Int("submitted", count),
				zap.Int("capacity", b.maxSprites))
		}
		count = b.maxSprites
	}

	for i := 0; i < count; i++ {
		s := &sprites[i]

		t := i * transformStride
		b.transforms[t] = s.X
		b.transforms[t+1] = s.Y
		b.transforms[t+2] = s.Rotation
		b.transforms[t+3] = s.ScaleX
		b.transforms[t+4] = s.ScaleY
		b.transforms[t+5] = s.OriginX
		b.transforms[t+6] = s.OriginY

		u := i * uvStride
		b.uvs[u] = s.UV[0]
		b.uvs[u+1] = s.UV[1]
		b.uvs[u+2] = s.UV[2]
		b.uvs[u+3] = s.UV[3]

		b.textureIDs[i] = s.TextureID
		b.colors[i] = s.Color
		b.materialIDs[i] = s.MaterialID
	}

	// Sub-slices only: the renderer must never see stale data from a
	// previous, larger frame.
	b.renderer.SubmitSpriteBatch(
		b.transforms[:count*transformStride],
		b.textureIDs[:count],
		b.uvs[:count*uvStride],
		b.colors[:count],
		b.materialIDs[:count],
		count,
	)

	b.stats.SpriteCount = count
}

// Render draws the frame, clearing the target first, and updates the frame
// time and FPS statistics. The FPS counter is a fixed 1-second window.
func (b *Bridge) Render() {
	if !b.initialized {
		return
	}

	start := b.now()
	b.renderer.Render(true)
	now := b.now()
	b.stats.FrameTimeMs = float64(now.Sub(start).Microseconds()) / 1000.0

	if !b.lastRenderT.IsZero() {
		b.fpsAccumMs += float64(now.Sub(b.lastRenderT).Microseconds()) / 1000.0
	}
	b.lastRenderT = now
	b.frameCount++

	if b.fpsAccumMs >= 1000 {
		b.stats.FPS = b.frameCount
		b.frameCount = 0
		b.fpsAccumMs = 0
	}
}

// RenderOverlay draws without clearing the target, for compositing UI atop
// world content. No stats are updated.
func (b *Bridge) RenderOverlay() {
	if !b.initialized {
		return
	}
	b.renderer.Render(false)
}

// Stats returns a copy of the current frame statistics.
func (b *Bridge) Stats() FrameStats {
	return b.stats
}

// Dispose drops the renderer reference and marks the bridge terminal. The
// buffers are left as-is; the initialized guard makes them unreachable.
func (b *Bridge) Dispose() {
	b.renderer = nil
	b.initialized = false
	b.disposed = true
}

package batch

import "sort"

// Batcher accumulates drawable sprites for one frame and yields them in an
// order that favors render-state coherence. The expected cycle is
// Add...→Sprites→Clear, once per frame, on a single goroutine.
type Batcher struct {
	sprites []SpriteRenderData
	zOrder  bool // keep insertion order instead of sorting by texture
}

// NewBatcher returns a batcher that sorts sprites by texture id on read,
// minimizing texture switches in the renderer.
func NewBatcher() *Batcher {
	return &Batcher{}
}

// NewZOrderedBatcher returns a batcher that preserves insertion order, for
// callers that insert in back-to-front draw order themselves.
func NewZOrderedBatcher() *Batcher {
	return &Batcher{zOrder: true}
}

// Add appends one sprite. No validation, no dedup, no size cap; capacity is
// the bridge's concern.
func (b *Batcher) Add(s SpriteRenderData) {
	b.sprites = append(b.sprites, s)
}

// AddAll appends a slice of sprites in order.
func (b *Batcher) AddAll(sprites []SpriteRenderData) {
	b.sprites = append(b.sprites, sprites...)
}

// Sprites returns the current contents. In texture-sort mode the result is
// sorted ascending by TextureID with a stable tie-break on insertion order;
// in z-order mode insertion order is returned unchanged. This is a read, not
// a consume: repeated calls before Clear return the same logical contents.
func (b *Batcher) Sprites() []SpriteRenderData {
	if !b.zOrder {
		sort.SliceStable(b.sprites, func(i, j int) bool {
			return b.sprites[i].TextureID < b.sprites[j].TextureID
		})
	}
	return b.sprites
}

// Clear truncates to empty, keeping the backing array for the next frame.
func (b *Batcher) Clear() {
	b.sprites = b.sprites[:0]
}

// Count returns the number of accumulated sprites.
func (b *Batcher) Count() int {
	return len(b.sprites)
}

// IsEmpty reports whether the batcher holds no sprites.
func (b *Batcher) IsEmpty() bool {
	return len(b.sprites) == 0
}

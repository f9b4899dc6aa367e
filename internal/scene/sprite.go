package scene

import "edit2d/internal/batch"

// SpriteRenderer makes an entity drawable. Each frame the render pass calls
// RenderData to produce the transient per-frame sprite record.
type SpriteRenderer struct {
	BaseComponent
	TextureID  uint32
	UV         [4]float32
	Color      uint32
	OriginX    float32
	OriginY    float32
	MaterialID uint32
	Z          float32 // draw order for z-ordered batchers
}

func NewSpriteRenderer(textureID uint32) *SpriteRenderer {
	return &SpriteRenderer{
		TextureID: textureID,
		UV:        [4]float32{0, 0, 1, 1},
		Color:     batch.PackRGBA(255, 255, 255, 255),
		OriginX:   0.5,
		OriginY:   0.5,
	}
}

// RenderData combines the component's sprite fields with the entity
// transform into one submission record.
func (r *SpriteRenderer) RenderData() batch.SpriteRenderData {
	e := r.Entity()
	return batch.SpriteRenderData{
		X:          e.Transform.X,
		Y:          e.Transform.Y,
		Rotation:   e.Transform.Rotation,
		ScaleX:     e.Transform.ScaleX,
		ScaleY:     e.Transform.ScaleY,
		OriginX:    r.OriginX,
		OriginY:    r.OriginY,
		TextureID:  r.TextureID,
		UV:         r.UV,
		Color:      r.Color,
		MaterialID: r.MaterialID,
	}
}

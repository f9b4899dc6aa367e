package bridge

// Gizmo helpers queue debug shapes with the renderer; the queue is drained
// by the next render. All are no-ops when uninitialized.

func (b *Bridge) AddGizmoRect(x, y, w, h float32, color uint32) {
	if !b.initialized {
		return
	}
	b.renderer.QueueGizmoRect(x, y, w, h, color)
}

func (b *Bridge) AddGizmoCircle(x, y, radius float32, color uint32) {
	if !b.initialized {
		return
	}
	b.renderer.QueueGizmoCircle(x, y, radius, color)
}

func (b *Bridge) AddGizmoLine(x1, y1, x2, y2 float32, color uint32) {
	if !b.initialized {
		return
	}
	b.renderer.QueueGizmoLine(x1, y1, x2, y2, color)
}

func (b *Bridge) AddGizmoCapsule(x, y, radius, height float32, color uint32) {
	if !b.initialized {
		return
	}
	b.renderer.QueueGizmoCapsule(x, y, radius, height, color)
}

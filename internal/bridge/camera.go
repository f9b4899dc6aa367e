package bridge

import "edit2d/internal/render"

// Camera returns a viewport's camera (empty id = main surface). Returns a
// zero camera when the bridge is uninitialized or the viewport is unknown.
func (b *Bridge) Camera(viewportID string) (render.CameraState, bool) {
	if !b.initialized {
		return render.CameraState{}, false
	}
	return b.renderer.Camera(viewportID)
}

// SetCamera is a pure delegation; the renderer is the source of truth for
// camera state.
func (b *Bridge) SetCamera(viewportID string, cam render.CameraState) {
	if !b.initialized {
		return
	}
	b.renderer.SetCamera(viewportID, cam)
}

func (b *Bridge) RegisterViewport(id string, width, height int32) {
	if !b.initialized {
		return
	}
	b.renderer.RegisterViewport(id, width, height)
}

func (b *Bridge) UnregisterViewport(id string) {
	if !b.initialized {
		return
	}
	b.renderer.UnregisterViewport(id)
}

func (b *Bridge) ResizeViewport(id string, width, height int32) {
	if !b.initialized {
		return
	}
	b.renderer.ResizeViewport(id, width, height)
}

func (b *Bridge) RenderToViewport(id string) {
	if !b.initialized {
		return
	}
	b.renderer.RenderToViewport(id)
}

// PushScreenSpaceMode snapshots the main camera and switches to a
// screen-space camera for a design resolution of w x h: origin, no rotation,
// letterbox zoom min(surfaceW/w, surfaceH/h) so the design area fits fully
// within the physical surface. Depth one: pushing again before a pop
// overwrites the snapshot.
func (b *Bridge) PushScreenSpaceMode(w, h float32) {
	if !b.initialized || w <= 0 || h <= 0 {
		return
	}

	cam, ok := b.renderer.Camera("")
	if !ok {
		return
	}
	saved := cam
	b.savedCam = &saved

	surfW, surfH := b.renderer.SurfaceSize()
	zoom := float32(surfW) / w
	if z := float32(surfH) / h; z < zoom {
		zoom = z
	}

	b.renderer.SetCamera("", render.CameraState{Zoom: zoom})
}

// PopScreenSpaceMode restores the camera saved by the matching push and
// clears the slot. No-op when nothing was pushed.
func (b *Bridge) PopScreenSpaceMode() {
	if !b.initialized || b.savedCam == nil {
		return
	}
	b.renderer.SetCamera("", *b.savedCam)
	b.savedCam = nil
}

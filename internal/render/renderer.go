package render

// CameraState is a 2D camera: world-space center, zoom factor, rotation in
// degrees.
type CameraState struct {
	X        float32
	Y        float32
	Zoom     float32
	Rotation float32
}

// Renderer is the call surface of the backing renderer. The bridge marshals
// sprite batches into flat strided buffers and hands sub-slices here; the
// renderer is the source of truth for viewports and cameras.
//
// Buffer layout per sprite: transforms 7 floats (x, y, rotation, scaleX,
// scaleY, originX, originY), uvs 4 floats (u0, v0, u1, v1), textureIDs /
// colors / materialIDs one uint32 each. Colors are packed 0xAABBGGRR.
type Renderer interface {
	// SubmitSpriteBatch stages count sprites for the next Render call. The
	// slices are sized exactly count*stride; the renderer must not retain
	// them past the frame.
	SubmitSpriteBatch(transforms []float32, textureIDs []uint32, uvs []float32, colors []uint32, materialIDs []uint32, count int)

	// Render draws the staged batch and queued gizmos to the main surface,
	// clearing it first when clear is true.
	Render(clear bool)

	// Camera returns the camera for a viewport, or the main surface camera
	// when viewportID is empty. ok is false for unknown viewports.
	Camera(viewportID string) (cam CameraState, ok bool)
	SetCamera(viewportID string, cam CameraState)

	RegisterViewport(id string, width, height int32)
	UnregisterViewport(id string)
	ResizeViewport(id string, width, height int32)

	// RenderToViewport draws the staged batch into the named viewport's
	// offscreen target using that viewport's camera.
	RenderToViewport(id string)

	// SurfaceSize returns the main surface size in pixels.
	SurfaceSize() (width, height int32)

	// Gizmo queues are drained by the next Render.
	QueueGizmoRect(x, y, w, h float32, color uint32)
	QueueGizmoCircle(x, y, radius float32, color uint32)
	QueueGizmoLine(x1, y1, x2, y2 float32, color uint32)
	QueueGizmoCapsule(x, y, radius, height float32, color uint32)

	Close()
}

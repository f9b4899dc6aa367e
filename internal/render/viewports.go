package render

import "sort"

// ViewportService is the registry of live editor viewports. Exactly one
// instance exists per editor process, constructed at startup and passed down
// explicitly so tests can build isolated instances.
type ViewportService struct {
	r     Renderer
	sizes map[string][2]int32
}

func NewViewportService(r Renderer) *ViewportService {
	return &ViewportService{
		r:     r,
		sizes: make(map[string][2]int32),
	}
}

// Register creates a viewport with the renderer and tracks it. Registering
// an existing id recreates its render target at the new size.
func (s *ViewportService) Register(id string, width, height int32) {
	s.r.RegisterViewport(id, width, height)
	s.sizes[id] = [2]int32{width, height}
}

func (s *ViewportService) Unregister(id string) {
	s.r.UnregisterViewport(id)
	delete(s.sizes, id)
}

// Resize is a no-op for unknown ids.
func (s *ViewportService) Resize(id string, width, height int32) {
	if _, ok := s.sizes[id]; !ok {
		return
	}
	s.r.ResizeViewport(id, width, height)
	s.sizes[id] = [2]int32{width, height}
}

// Size returns a viewport's pixel size.
func (s *ViewportService) Size(id string) (width, height int32, ok bool) {
	sz, ok := s.sizes[id]
	if !ok {
		return 0, 0, false
	}
	return sz[0], sz[1], true
}

// IDs returns registered viewport ids in sorted order.
func (s *ViewportService) IDs() []string {
	ids := make([]string, 0, len(s.sizes))
	for id := range s.sizes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of live viewports.
func (s *ViewportService) Count() int {
	return len(s.sizes)
}

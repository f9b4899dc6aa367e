package scene

type Scene struct {
	Name     string
	Entities []*Entity
	uidMap   map[uint64]*Entity
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:     name,
		Entities: make([]*Entity, 0),
		uidMap:   make(map[uint64]*Entity),
	}
}

func (s *Scene) AddEntity(e *Entity) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*Entity)
	}
	s.Entities = append(s.Entities, e)
	s.uidMap[e.UID] = e
	e.Scene = s
}

func (s *Scene) RemoveEntity(e *Entity) {
	for i, obj := range s.Entities {
		if obj == e {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			delete(s.uidMap, e.UID)
			e.Scene = nil
			return
		}
	}
}

// FindByUID is an O(1) lookup.
func (s *Scene) FindByUID(uid uint64) *Entity {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *Entity {
	for _, e := range s.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*Entity {
	var result []*Entity
	for _, e := range s.Entities {
		if e.HasTag(tag) {
			result = append(result, e)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, e := range s.Entities {
		e.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, e := range s.Entities {
		e.Update(deltaTime)
	}
}

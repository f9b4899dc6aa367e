package scene

// ScriptRunner executes a named user-script behaviour against an entity.
// The live implementation is the Lua engine; hot reload swaps it.
type ScriptRunner interface {
	RunUpdate(e *Entity, behaviour string, deltaTime float32) error
}

// ScriptComponent binds an entity to a named user-script behaviour. The
// runner reference is replaced during hot reload via SetRunner.
type ScriptComponent struct {
	BaseComponent
	Behaviour string

	runner  ScriptRunner
	lastErr error
}

func NewScriptComponent(behaviour string, runner ScriptRunner) *ScriptComponent {
	return &ScriptComponent{Behaviour: behaviour, runner: runner}
}

// SetRunner swaps the backing script engine. Called once per component by
// the reload task after a successful compile.
func (s *ScriptComponent) SetRunner(r ScriptRunner) {
	s.runner = r
	s.lastErr = nil
}

func (s *ScriptComponent) Update(deltaTime float32) {
	if s.runner == nil {
		return
	}
	// Script errors are recorded, not fatal: one broken behaviour must not
	// stop the frame.
	s.lastErr = s.runner.RunUpdate(s.Entity(), s.Behaviour, deltaTime)
}

// LastErr returns the most recent script error, or nil.
func (s *ScriptComponent) LastErr() error {
	return s.lastErr
}

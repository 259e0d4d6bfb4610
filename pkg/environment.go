package ylang

// Environment maps variable names to values for one lexical scope. Lookups
// that miss fall through to the enclosing scope.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

func NewEnvironment() *Environment {
	return &Environment{
		values: make(map[string]Value),
	}
}

func NewEnclosedEnvironment(enclosing *Environment) *Environment {
	env := NewEnvironment()
	env.enclosing = enclosing

	return env
}

// Define binds name in this scope, replacing any binding it already has here.
func (e *Environment) Define(name string, val Value) {
	e.values[name] = val
}

func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if val, ok := env.values[name]; ok {
			return val, true
		}
	}

	return nil, false
}

func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

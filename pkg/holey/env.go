package holey

import "github.com/vito/holey/pkg/hm"

// Env maps names to runtime values. It is the evaluation counterpart of
// hm.Context and grows the same way: Add returns a new Env sharing its
// parent, so a captured Env never changes after the fact. The nil *Env is the
// empty environment.
type Env struct {
	parent *Env
	name   string
	val    Value
	len    int
}

// NewEnv creates an environment with the given bindings, first to last.
func NewEnv(bindings ...Keyed[Value]) *Env {
	var env *Env
	for _, b := range bindings {
		env = env.Add(b.Key, b.Value)
	}
	return env
}

// LibEnv binds every param of ctx to a library reference of the same name,
// keeping the environment parallel to the context.
func LibEnv(ctx *hm.Context) *Env {
	var env *Env
	for _, name := range ctx.Names() {
		env = env.Add(name, LibValue{Name: name})
	}
	return env
}

// Add returns a new environment with name bound to val.
func (env *Env) Add(name string, val Value) *Env {
	return &Env{
		parent: env,
		name:   name,
		val:    val,
		len:    env.Len() + 1,
	}
}

// Lookup returns the most recent binding of name.
func (env *Env) Lookup(name string) (Value, bool) {
	for e := env; e != nil; e = e.parent {
		if e.name == name {
			return e.val, true
		}
	}
	return nil, false
}

// Len returns the number of bindings, shadowed ones included.
func (env *Env) Len() int {
	if env == nil {
		return 0
	}
	return env.len
}

// Names returns the bound names in insertion order.
func (env *Env) Names() []string {
	names := make([]string, env.Len())
	for e := env; e != nil; e = e.parent {
		names[e.len-1] = e.name
	}
	return names
}

// Bindings returns every binding in insertion order.
func (env *Env) Bindings() []Keyed[Value] {
	bindings := make([]Keyed[Value], env.Len())
	for e := env; e != nil; e = e.parent {
		bindings[e.len-1] = Keyed[Value]{Key: e.name, Value: e.val}
	}
	return bindings
}

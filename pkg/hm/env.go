package hm

// Context is the ordered set of params in scope at some point of a term.
//
// A Context is an immutable chain: Add returns a new Context sharing its
// parent, so sibling scopes never observe each other's bindings. The nil
// *Context is the empty context.
type Context struct {
	parent *Context
	param  Param
	len    int
}

// NewContext creates a context holding the given params, first to last
func NewContext(params ...Param) *Context {
	var ctx *Context
	for _, p := range params {
		ctx = ctx.Add(p)
	}
	return ctx
}

// Add returns a new context with param appended
func (ctx *Context) Add(param Param) *Context {
	return &Context{
		parent: ctx,
		param:  param,
		len:    ctx.Len() + 1,
	}
}

// Len returns the number of params, shadowed ones included
func (ctx *Context) Len() int {
	if ctx == nil {
		return 0
	}
	return ctx.len
}

// Lookup returns the most recently added param with the given name
func (ctx *Context) Lookup(name string) (Param, bool) {
	for c := ctx; c != nil; c = c.parent {
		if c.param.Name == name {
			return c.param, true
		}
	}
	return Param{}, false
}

// Params returns every param in insertion order
func (ctx *Context) Params() []Param {
	params := make([]Param, ctx.Len())
	for c := ctx; c != nil; c = c.parent {
		params[c.len-1] = c.param
	}
	return params
}

// Names returns the param names in insertion order
func (ctx *Context) Names() []string {
	names := make([]string, ctx.Len())
	for c := ctx; c != nil; c = c.parent {
		names[c.len-1] = c.param.Name
	}
	return names
}

package holey

import (
	"context"
	"fmt"

	"github.com/vito/holey/pkg/hm"
)

// Func is a single-parameter function: (param) => (body)
type Func struct {
	Param hm.Param
	Body  Term
}

var _ Term = Func{}

func (f Func) String() string {
	return fmt.Sprintf("(%s) => (%s)", f.Param, f.Body)
}

func (f Func) Eq(other Term) bool {
	o, ok := other.(Func)
	return ok && f.Param.Eq(o.Param) && f.Body.Eq(o.Body)
}

func (f Func) Eval(ctx context.Context, env *Env) (Value, error) {
	return FunctionValue{
		Param:   f.Param,
		Body:    f.Body,
		Closure: env,
	}, nil
}

func (f Func) Subterms(pos Position) []Focus {
	body := pos.
		zoom(func(body Term) Term {
			return Func{Param: f.Param, Body: body}
		}).
		bind(f.Param, VarValue{Name: f.Param.Name})
	return []Focus{{Position: body, Term: f.Body}}
}

func (Func) isTerm() {}

// Var references a binding from an enclosing scope
type Var struct {
	Name string
}

var _ Term = Var{}

func (v Var) String() string {
	return v.Name
}

func (v Var) Eq(other Term) bool {
	o, ok := other.(Var)
	return ok && v.Name == o.Name
}

func (v Var) Eval(ctx context.Context, env *Env) (Value, error) {
	val, found := env.Lookup(v.Name)
	if !found {
		return nil, &UnboundVariableError{Name: v.Name}
	}
	return force(ctx, val)
}

func (Var) Subterms(Position) []Focus {
	return nil
}

func (Var) isTerm() {}

// App applies Fn to a single argument
type App struct {
	Fn  Term
	Arg Term
}

var _ Term = App{}

func (a App) String() string {
	switch a.Fn.(type) {
	case Var, App:
		return fmt.Sprintf("%s(%s)", a.Fn, a.Arg)
	default:
		return fmt.Sprintf("(%s)(%s)", a.Fn, a.Arg)
	}
}

func (a App) Eq(other Term) bool {
	o, ok := other.(App)
	return ok && a.Fn.Eq(o.Fn) && a.Arg.Eq(o.Arg)
}

func (a App) Eval(ctx context.Context, env *Env) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn, err := a.Fn.Eval(ctx, env)
	if err != nil {
		return nil, err
	}
	arg, err := a.Arg.Eval(ctx, env)
	if err != nil {
		return nil, err
	}
	return apply(ctx, fn, arg)
}

func (a App) Subterms(pos Position) []Focus {
	fn := pos.zoom(func(fn Term) Term {
		return App{Fn: fn, Arg: a.Arg}
	})
	arg := pos.zoom(func(arg Term) Term {
		return App{Fn: a.Fn, Arg: arg}
	})
	return []Focus{
		{Position: fn, Term: a.Fn},
		{Position: arg, Term: a.Arg},
	}
}

func (App) isTerm() {}

// Let binds Param to Bound within Next. Param is also visible within Bound,
// which is how recursive definitions are written.
type Let struct {
	Param hm.Param
	Bound Term
	Next  Term
}

var _ Term = Let{}

func (l Let) String() string {
	return fmt.Sprintf("let (%s) = %s; %s", l.Param, l.Bound, l.Next)
}

func (l Let) Eq(other Term) bool {
	o, ok := other.(Let)
	return ok && l.Param.Eq(o.Param) && l.Bound.Eq(o.Bound) && l.Next.Eq(o.Next)
}

func (l Let) Eval(ctx context.Context, env *Env) (Value, error) {
	return l.Next.Eval(ctx, env.Add(l.Param.Name, l.rec(env)))
}

func (l Let) Subterms(pos Position) []Focus {
	rec := l.rec(pos.Env)
	bound := pos.
		zoom(func(bound Term) Term {
			return Let{Param: l.Param, Bound: bound, Next: l.Next}
		}).
		bind(l.Param, rec)
	next := pos.
		zoom(func(next Term) Term {
			return Let{Param: l.Param, Bound: l.Bound, Next: next}
		}).
		bind(l.Param, rec)
	return []Focus{
		{Position: bound, Term: l.Bound},
		{Position: next, Term: l.Next},
	}
}

func (l Let) rec(env *Env) RecValue {
	return RecValue{
		Name:    l.Param.Name,
		Term:    l.Bound,
		Closure: env,
	}
}

func (Let) isTerm() {}

// Hole is a placeholder for a term satisfying Param
type Hole struct {
	Param hm.Param
}

var _ Term = Hole{}

func (h Hole) String() string {
	return fmt.Sprintf("<%s>", h.Param)
}

func (h Hole) Eq(other Term) bool {
	o, ok := other.(Hole)
	return ok && h.Param.Eq(o.Param)
}

// Eval leaves the hole in place so partial programs can be inspected.
func (h Hole) Eval(ctx context.Context, env *Env) (Value, error) {
	return HoleValue{Param: h.Param}, nil
}

func (Hole) Subterms(Position) []Focus {
	return nil
}

func (Hole) isTerm() {}

package holey

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vito/holey/pkg/hm"
)

// Value is the result of evaluating a Term
type Value interface {
	String() string

	isValue()
}

// Evaluate evaluates term in env.
//
// Evaluation never guards against divergence: a recursive let whose body
// does not reduce recurses until ctx is cancelled or the stack runs out.
func Evaluate(ctx context.Context, term Term, env *Env) (Value, error) {
	val, err := term.Eval(ctx, env)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "evaluated", "term", term, "value", val)
	return val, nil
}

// FunctionValue is a closure: a function body paired with the environment it
// was defined in
type FunctionValue struct {
	Param   hm.Param
	Body    Term
	Closure *Env
}

func (f FunctionValue) String() string {
	return fmt.Sprintf("(%s) => (%s)", f.Param, f.Body)
}

func (FunctionValue) isValue() {}

// RecValue is a let binding that has not been evaluated yet. Looking it up
// evaluates Term in Closure extended with the RecValue itself, so the
// definition can keep referring to Name.
type RecValue struct {
	Name    string
	Term    Term
	Closure *Env
}

func (r RecValue) String() string {
	return fmt.Sprintf("rec %s = %s", r.Name, r.Term)
}

func (RecValue) isValue() {}

// VarValue is a reference to a binding with no runtime value, such as a
// function parameter seen during synthesis
type VarValue struct {
	Name string
}

func (v VarValue) String() string {
	return v.Name
}

func (VarValue) isValue() {}

// LibValue is a reference to a library function dispatched by Run
type LibValue struct {
	Name string
}

func (l LibValue) String() string {
	return l.Name
}

func (LibValue) isValue() {}

// LitValue is a text value
type LitValue struct {
	Text string
}

func (l LitValue) String() string {
	return fmt.Sprintf("%q", l.Text)
}

func (LitValue) isValue() {}

// AppValue accumulates arguments applied to something that is not a closure
type AppValue struct {
	Fn   Value
	Args []Value
}

func (a AppValue) String() string {
	var sb strings.Builder
	switch a.Fn.(type) {
	case VarValue, LibValue:
		sb.WriteString(a.Fn.String())
	default:
		fmt.Fprintf(&sb, "(%s)", a.Fn)
	}
	for _, arg := range a.Args {
		fmt.Fprintf(&sb, "(%s)", arg)
	}
	return sb.String()
}

func (AppValue) isValue() {}

// HoleValue is an unresolved hole reached during evaluation
type HoleValue struct {
	Param hm.Param
}

func (h HoleValue) String() string {
	return fmt.Sprintf("<%s>", h.Param)
}

func (HoleValue) isValue() {}

// force unfolds a RecValue by one step; other values are returned as-is.
func force(ctx context.Context, val Value) (Value, error) {
	rec, ok := val.(RecValue)
	if !ok {
		return val, nil
	}
	return rec.Term.Eval(ctx, rec.Closure.Add(rec.Name, rec))
}

func apply(ctx context.Context, fn Value, arg Value) (Value, error) {
	switch f := fn.(type) {
	case FunctionValue:
		return f.Body.Eval(ctx, f.Closure.Add(f.Param.Name, arg))
	case AppValue:
		args := make([]Value, len(f.Args), len(f.Args)+1)
		copy(args, f.Args)
		return AppValue{Fn: f.Fn, Args: append(args, arg)}, nil
	default:
		return AppValue{Fn: fn, Args: []Value{arg}}, nil
	}
}

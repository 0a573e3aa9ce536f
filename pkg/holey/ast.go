package holey

import (
	"context"
	"fmt"

	"github.com/vito/holey/pkg/hm"
)

// Term is the syntax of a (possibly partial) program.
//
// Every operation over terms is a method here, so adding a variant fails to
// compile until it is rendered, compared, evaluated and descended into.
type Term interface {
	fmt.Stringer

	// Eq reports structural equality.
	Eq(Term) bool

	// Eval evaluates the term in the given environment.
	Eval(ctx context.Context, env *Env) (Value, error)

	// Subterms returns a Focus on each direct child, in evaluation order,
	// given the Position of the term itself.
	Subterms(pos Position) []Focus

	isTerm()
}

// Focus is a subterm together with the Position it occupies.
type Focus struct {
	Position
	Term Term
}

// Keyed is a named value, as found in an Env.
type Keyed[X any] struct {
	Key   string
	Value X
}

// Walk visits term and all of its subterms in pre-order, starting from pos.
// Returning false from fn skips the children of the visited term.
func Walk(term Term, pos Position, fn func(Focus) bool) {
	if !fn(Focus{Position: pos, Term: term}) {
		return
	}
	for _, sub := range term.Subterms(pos) {
		Walk(sub.Term, sub.Position, fn)
	}
}

// IsComplete reports whether term contains no holes.
func IsComplete(term Term) bool {
	_, found := FirstHole(term, Root(nil, nil))
	return !found
}

// Lambda is shorthand for a Func taking each param in turn.
func Lambda(body Term, params ...hm.Param) Term {
	for i := len(params) - 1; i >= 0; i-- {
		body = Func{Param: params[i], Body: body}
	}
	return body
}

// Call is shorthand for applying fn to each argument in turn.
func Call(fn Term, args ...Term) Term {
	for _, arg := range args {
		fn = App{Fn: fn, Arg: arg}
	}
	return fn
}

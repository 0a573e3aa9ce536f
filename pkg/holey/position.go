package holey

import (
	"fmt"

	"github.com/vito/holey/pkg/hm"
)

// Position identifies a place inside a term: how to rebuild the whole term
// around a replacement, and the scope visible at that place.
//
// Positions are values. Descending never modifies the parent Position, and
// Rebuild can be called any number of times.
type Position struct {
	rebuild func(Term) Term

	// Context holds the params in scope at this position.
	Context *hm.Context

	// Env holds the values in scope at this position, parallel to Context.
	Env *Env
}

// Root returns the Position of a whole term, seeing ctx and env.
func Root(ctx *hm.Context, env *Env) Position {
	return Position{Context: ctx, Env: env}
}

// Rebuild returns the whole term with the subterm at this position replaced
// by t.
func (pos Position) Rebuild(t Term) Term {
	if pos.rebuild == nil {
		return t
	}
	return pos.rebuild(t)
}

// zoom narrows the position to a child, given how to wrap the child back into
// the term at pos.
func (pos Position) zoom(wrap func(Term) Term) Position {
	outer := pos.rebuild
	pos.rebuild = func(t Term) Term {
		if outer == nil {
			return wrap(t)
		}
		return outer(wrap(t))
	}
	return pos
}

// bind extends the scope with param, bound to val at runtime.
func (pos Position) bind(param hm.Param, val Value) Position {
	pos.Context = pos.Context.Add(param)
	pos.Env = pos.Env.Add(param.Name, val)
	return pos
}

// HoleAt is a hole together with its Position in the whole term.
type HoleAt struct {
	Position
	Param hm.Param
}

func (h HoleAt) String() string {
	return Hole{Param: h.Param}.String()
}

// FirstHole finds the leftmost hole of term in pre-order, where pos is the
// Position of term itself.
func FirstHole(term Term, pos Position) (HoleAt, bool) {
	if h, ok := term.(Hole); ok {
		return HoleAt{Position: pos, Param: h.Param}, true
	}
	for _, sub := range term.Subterms(pos) {
		if found, ok := FirstHole(sub.Term, sub.Position); ok {
			return found, true
		}
	}
	return HoleAt{}, false
}

// Holes returns every hole of term in the order FirstHole would find them if
// each were left unresolved.
func Holes(term Term, pos Position) []HoleAt {
	var holes []HoleAt
	Walk(term, pos, func(f Focus) bool {
		if h, ok := f.Term.(Hole); ok {
			holes = append(holes, HoleAt{Position: f.Position, Param: h.Param})
		}
		return true
	})
	return holes
}

// Navigate follows a path of child indices, as numbered by Subterms, from
// term at pos.
func Navigate(term Term, pos Position, path ...int) (Focus, error) {
	focus := Focus{Position: pos, Term: term}
	for depth, i := range path {
		subs := focus.Term.Subterms(focus.Position)
		if i < 0 || i >= len(subs) {
			return Focus{}, fmt.Errorf("navigate %v: %s has no child %d at depth %d", path, focus.Term, i, depth)
		}
		focus = subs[i]
	}
	return focus, nil
}

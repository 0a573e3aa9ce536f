package holey

import (
	"github.com/samber/lo"
	"github.com/vito/holey/pkg/hm"
)

// AsHint proposes a use of param that produces a value of type target.
//
// A param of the target type is used directly. A function param whose result
// eventually reaches the target type is called, one argument at a time, with
// a fresh hole for each argument.
func AsHint(param hm.Param, target hm.Type) (Term, bool) {
	return hint(Var{Name: param.Name}, param.Type, target)
}

func hint(head Term, t hm.Type, target hm.Type) (Term, bool) {
	if t.Eq(target) {
		return head, true
	}
	fn, ok := t.(*hm.FunctionType)
	if !ok {
		return nil, false
	}
	return hint(App{Fn: head, Arg: Hole{Param: fn.Param()}}, fn.Ret(), target)
}

// MoreHints proposes terms of type target that do not depend on the context:
// a lambda with a hole for its body, or the blank literal for text.
func MoreHints(target hm.Type) []Term {
	switch t := target.(type) {
	case *hm.FunctionType:
		return []Term{
			Func{
				Param: t.Param(),
				Body:  Hole{Param: hm.NewParam("result", t.Ret(), "")},
			},
		}
	case hm.Exact:
		if t.Eq(hm.String) {
			return []Term{Blank()}
		}
	}
	return nil
}

// Candidates lists every term proposed for a hole of type target: hints from
// ctx, oldest binding first, followed by MoreHints.
//
// Params shadowed by a later binding of the same name are skipped, since a
// Var can only reach the most recent one.
func Candidates(ctx *hm.Context, target hm.Type) []Term {
	params := ctx.Params()
	latest := lo.Associate(lo.Range(len(params)), func(i int) (string, int) {
		return params[i].Name, i
	})
	hints := lo.FilterMap(params, func(p hm.Param, i int) (Term, bool) {
		if latest[p.Name] != i {
			return nil, false
		}
		return AsHint(p, target)
	})
	return append(hints, MoreHints(target)...)
}

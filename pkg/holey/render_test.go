package holey

import (
	"strings"
	"testing"

	"github.com/vito/holey/pkg/hm"
	"gotest.tools/v3/golden"
)

// TestRender pins the surface syntax shown to oracles.
func TestRender(t *testing.T) {
	fn := Func{Param: xParam, Body: Var{Name: "x"}}

	terms := []Term{
		Var{Name: "predict"},
		lit("114514"),
		Blank(),
		App{Fn: Var{Name: "predict"}, Arg: lit("114514")},
		Call(Var{Name: "f"}, lit("a"), lit("b")),
		fn,
		App{Fn: fn, Arg: lit("hi")},
		Let{
			Param: hm.NewParam("f", identity.Type, "identity"),
			Bound: fn,
			Next:  App{Fn: Var{Name: "f"}, Arg: lit("z")},
		},
		Hole{Param: hm.NewParam("result", hm.String, "final answer")},
		App{Fn: Var{Name: "predict"}, Arg: Hole{Param: prefixParam}},
	}

	var sb strings.Builder
	for _, term := range terms {
		sb.WriteString(term.String())
		sb.WriteString("\n")
	}
	golden.Assert(t, sb.String(), "render.golden")
}

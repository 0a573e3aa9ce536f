package holey

import (
	"context"

	"github.com/vito/holey/pkg/oracle"
)

// Library functions dispatched by Run.
const (
	LibPredict = "predict"
	LibAsk     = "ask"
)

// Run performs the library calls embedded in a fully evaluated value and
// returns the resulting text.
//
// A literal runs to its text. A predict or ask reference applied to exactly
// one argument runs the argument and hands the text to the oracle. Anything
// else is an InvalidApplicationError.
func Run(ctx context.Context, o oracle.Predictor, val Value) (string, error) {
	switch v := val.(type) {
	case LitValue:
		return v.Text, nil
	case AppValue:
		name, ok := libName(v.Fn)
		if !ok || len(v.Args) != 1 {
			return "", &InvalidApplicationError{Value: val}
		}
		var call func(context.Context, string) (string, error)
		switch name {
		case LibPredict:
			call = o.Predict
		case LibAsk:
			call = o.Ask
		default:
			return "", &InvalidApplicationError{Value: val}
		}
		arg, err := Run(ctx, o, v.Args[0])
		if err != nil {
			return "", err
		}
		return call(ctx, arg)
	default:
		return "", &InvalidApplicationError{Value: val}
	}
}

func libName(val Value) (string, bool) {
	switch v := val.(type) {
	case LibValue:
		return v.Name, true
	case VarValue:
		return v.Name, true
	default:
		return "", false
	}
}

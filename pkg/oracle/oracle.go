// Package oracle defines the external decision maker consulted while growing
// a program, and a few ways of providing one.
package oracle

import (
	"context"
	"errors"
)

// Chooser makes the decisions needed during synthesis.
type Chooser interface {
	// Choose returns the index of the option that best matches desc.
	Choose(ctx context.Context, desc string, options []string) (int, error)

	// Fill returns the text for the single blank in tmpl, described by blank.
	Fill(ctx context.Context, tmpl string, blank string) (string, error)
}

// Predictor answers the library calls made by a finished program.
type Predictor interface {
	// Predict continues the given prefix.
	Predict(ctx context.Context, prefix string) (string, error)

	// Ask asks the user a question.
	Ask(ctx context.Context, question string) (string, error)
}

// Oracle is both a Chooser and a Predictor.
type Oracle interface {
	Chooser
	Predictor
}

// ErrUnsupported is returned by oracles that do not implement an operation.
var ErrUnsupported = errors.New("oracle: operation not supported")

// Funcs adapts plain functions to an Oracle. Nil functions return
// ErrUnsupported.
type Funcs struct {
	ChooseFunc  func(ctx context.Context, desc string, options []string) (int, error)
	FillFunc    func(ctx context.Context, tmpl string, blank string) (string, error)
	PredictFunc func(ctx context.Context, prefix string) (string, error)
	AskFunc     func(ctx context.Context, question string) (string, error)
}

var _ Oracle = Funcs{}

func (f Funcs) Choose(ctx context.Context, desc string, options []string) (int, error) {
	if f.ChooseFunc == nil {
		return 0, ErrUnsupported
	}
	return f.ChooseFunc(ctx, desc, options)
}

func (f Funcs) Fill(ctx context.Context, tmpl string, blank string) (string, error) {
	if f.FillFunc == nil {
		return "", ErrUnsupported
	}
	return f.FillFunc(ctx, tmpl, blank)
}

func (f Funcs) Predict(ctx context.Context, prefix string) (string, error) {
	if f.PredictFunc == nil {
		return "", ErrUnsupported
	}
	return f.PredictFunc(ctx, prefix)
}

func (f Funcs) Ask(ctx context.Context, question string) (string, error) {
	if f.AskFunc == nil {
		return "", ErrUnsupported
	}
	return f.AskFunc(ctx, question)
}

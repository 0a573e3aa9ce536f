package holey

import (
	"context"
	"strconv"
)

// BlankText is how a blank literal renders inside its quotes.
const BlankText = "___"

// Lit is a text literal
type Lit struct {
	Text string

	// blank marks the placeholder literal proposed for text holes. The oracle
	// is asked to fill it in once it is chosen.
	blank bool
}

var _ Term = Lit{}

// Blank returns the placeholder literal.
func Blank() Lit {
	return Lit{Text: BlankText, blank: true}
}

// IsBlank reports whether the literal is the placeholder returned by Blank.
func (l Lit) IsBlank() bool {
	return l.blank
}

func (l Lit) String() string {
	return strconv.Quote(l.Text)
}

func (l Lit) Eq(other Term) bool {
	o, ok := other.(Lit)
	return ok && l.Text == o.Text && l.blank == o.blank
}

func (l Lit) Eval(ctx context.Context, env *Env) (Value, error) {
	return LitValue{Text: l.Text}, nil
}

func (Lit) Subterms(Position) []Focus {
	return nil
}

func (Lit) isTerm() {}

package holey

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/vito/holey/pkg/hm"
)

// UnboundVariableError is returned when a Var has no binding in scope
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

// InvalidApplicationError is returned by Run for a value it does not know how
// to run
type InvalidApplicationError struct {
	Value Value
}

func (e *InvalidApplicationError) Error() string {
	return fmt.Sprintf("invalid application %s: %s", e.Value, pretty.Sprint(e.Value))
}

// UnsynthesizableHoleError is returned when no candidate term exists for a
// hole
type UnsynthesizableHoleError struct {
	Hole hm.Param
}

func (e *UnsynthesizableHoleError) Error() string {
	return fmt.Sprintf("unsynthesizable hole <%s>: no candidates of type %s", e.Hole, e.Hole.Type)
}

// InvalidChoiceError is returned when the oracle picks an option that was not
// offered
type InvalidChoiceError struct {
	Hole    hm.Param
	Index   int
	Options int
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid choice for <%s>: index %d out of %d options", e.Hole, e.Index, e.Options)
}

// ExhaustedError is returned when synthesis resolves its maximum number of
// holes and the term is still incomplete
type ExhaustedError struct {
	Steps int
	Term  Term
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("synthesis exhausted after %d steps: %s", e.Steps, e.Term)
}

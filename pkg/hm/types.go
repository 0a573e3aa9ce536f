package hm

import (
	"fmt"
)

// Type describes the property a term must satisfy
type Type interface {
	Name() string
	Eq(Type) bool
	fmt.Stringer

	isType()
}

// String is the text base type. Holes of this type can always be filled with
// a literal.
const String = Exact("String")

// Exact is a nominal base type, equal only to an Exact of the same name
type Exact string

func (t Exact) Name() string {
	return string(t)
}

func (t Exact) Eq(other Type) bool {
	if ot, ok := other.(Exact); ok {
		return t == ot
	}
	return false
}

func (t Exact) String() string {
	return string(t)
}

func (t Exact) Format(s fmt.State, c rune) {
	_, _ = fmt.Fprintf(s, "%s", string(t))
}

func (Exact) isType() {}

// FunctionType represents a function type taking a single named parameter
type FunctionType struct {
	param Param
	ret   Type
}

func NewFnType(param Param, ret Type) *FunctionType {
	return &FunctionType{param: param, ret: ret}
}

// NewCurriedFnType builds (p1) -> (p2) -> ... -> ret
func NewCurriedFnType(ret Type, params ...Param) Type {
	t := ret
	for i := len(params) - 1; i >= 0; i-- {
		t = NewFnType(params[i], t)
	}
	return t
}

func (ft *FunctionType) Name() string {
	return ft.String()
}

// Eq compares parameter and return types structurally. Parameter names and
// descriptions are documentation and do not take part in equality.
func (ft *FunctionType) Eq(other Type) bool {
	if ot, ok := other.(*FunctionType); ok {
		return ft.param.Type.Eq(ot.param.Type) && ft.ret.Eq(ot.ret)
	}
	return false
}

func (ft *FunctionType) String() string {
	return fmt.Sprintf("(%s) -> %s", ft.param, ft.ret)
}

func (ft *FunctionType) Format(s fmt.State, c rune) {
	_, _ = fmt.Fprintf(s, "%s", ft.String())
}

func (*FunctionType) isType() {}

// Param returns the parameter the function expects
func (ft *FunctionType) Param() Param {
	return ft.param
}

// Arg returns the argument type
func (ft *FunctionType) Arg() Type {
	return ft.param.Type
}

// Ret returns the return type
func (ft *FunctionType) Ret() Type {
	return ft.ret
}

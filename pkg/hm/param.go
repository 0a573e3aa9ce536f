package hm

import "fmt"

// Param is a named, typed and described slot: a function parameter, a let
// binding, a hole's requirement or a context entry.
type Param struct {
	Name        string
	Type        Type
	Description string
}

func NewParam(name string, t Type, desc string) Param {
	return Param{Name: name, Type: t, Description: desc}
}

// Eq reports whether two params have the same name and an equal type
func (p Param) Eq(other Param) bool {
	return p.Name == other.Name && typesEq(p.Type, other.Type)
}

// String renders the param as `name: Type /* description */`
func (p Param) String() string {
	if p.Description == "" {
		return fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	return fmt.Sprintf("%s: %s /* %s */", p.Name, p.Type, p.Description)
}

func typesEq(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Eq(b)
}

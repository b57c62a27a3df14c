package frontend

import (
	"strings"
)

// ElemKind classifies a program element.
type ElemKind int

const (
	ElemPackage ElemKind = iota
	ElemClass
	ElemInterface
	ElemEnum
	ElemEnumConstant
	ElemMethod
	ElemConstructor
	ElemField
	ElemParameter
	ElemLocal
)

var elemKindNames = map[ElemKind]string{
	ElemPackage:      "package",
	ElemClass:        "class",
	ElemInterface:    "interface",
	ElemEnum:         "enum",
	ElemEnumConstant: "enum_constant",
	ElemMethod:       "method",
	ElemConstructor:  "constructor",
	ElemField:        "field",
	ElemParameter:    "parameter",
	ElemLocal:        "local",
}

func (k ElemKind) String() string {
	if s, ok := elemKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Modifier is a bit set of Java declaration modifiers.
type Modifier uint16

const (
	ModPublic Modifier = 1 << iota
	ModPrivate
	ModProtected
	ModStatic
	ModFinal
	ModAbstract
)

func parseModifier(word string) Modifier {
	switch word {
	case "public":
		return ModPublic
	case "private":
		return ModPrivate
	case "protected":
		return ModProtected
	case "static":
		return ModStatic
	case "final":
		return ModFinal
	case "abstract":
		return ModAbstract
	default:
		return 0
	}
}

// Element is a named program entity: a package, type, member or variable.
type Element struct {
	Kind      ElemKind
	Name      string // simple name; "<init>" for constructors
	Qualified string // fully qualified name for packages and types
	Mods      Modifier

	Owner *Element // enclosing element, nil for packages

	// Type is the declared type for variables and fields, and the return
	// type for methods. Nil for packages and type declarations.
	Type   *Type
	Params []*Element // parameters, for methods and constructors

	// Members are the directly enclosed elements of types and packages.
	Members []*Element

	// Superclass and Interfaces are set on type declarations after the
	// bind pass resolves the extends/implements clauses.
	Superclass *Type
	Interfaces []*Type

	// Decl is the declaration node, nil for synthetic elements such as
	// builtins and the implicit this/super variables.
	Decl *Node
	Unit *Unit
}

// IsStatic reports whether the element carries the static modifier.
func (e *Element) IsStatic() bool {
	return e.Mods&ModStatic != 0
}

// IsType reports whether the element declares a class, interface or enum.
func (e *Element) IsType() bool {
	return e.Kind == ElemClass || e.Kind == ElemInterface || e.Kind == ElemEnum
}

// TopLevelType walks the owner chain to the outermost enclosing type.
func (e *Element) TopLevelType() *Element {
	var top *Element
	for cur := e; cur != nil; cur = cur.Owner {
		if cur.IsType() {
			top = cur
		}
	}
	return top
}

// PackageName returns the package an element was declared in.
func (e *Element) PackageName() string {
	for cur := e; cur != nil; cur = cur.Owner {
		if cur.Kind == ElemPackage {
			return cur.Qualified
		}
		if cur.Unit != nil {
			return cur.Unit.Package
		}
	}
	return ""
}

// String renders the element's identity form: qualified names for
// packages and types, name plus parameter types for executables, plain
// names otherwise. Reference finding compares these strings as a
// declaration-identity proxy.
func (e *Element) String() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case ElemPackage:
		return e.Qualified
	case ElemClass, ElemInterface, ElemEnum:
		if e.Qualified != "" {
			return e.Qualified
		}
		return e.Name
	case ElemMethod, ElemConstructor:
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = p.Type.String()
		}
		return e.Name + "(" + strings.Join(params, ",") + ")"
	default:
		return e.Name
	}
}

// MemberNamed returns the first directly enclosed member with the given
// simple name, or nil.
func (e *Element) MemberNamed(name string) *Element {
	for _, m := range e.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MembersNamed returns every directly enclosed member with the given
// simple name.
func (e *Element) MembersNamed(name string) []*Element {
	var out []*Element
	for _, m := range e.Members {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

package frontend

// TypeKind classifies a type mirror.
type TypeKind int

const (
	TypeDeclared TypeKind = iota
	TypePrimitive
	TypeVoid
	TypeArray
	TypeVariable
	TypeWildcard
	TypeUnion
	TypeIntersection
	TypeError
	TypeNull
	TypeNone
	TypePackage
	TypeExecutable
)

// Type is a best-effort type mirror. Error types keep the unresolved
// name so diagnostics and completion can still render it.
type Type struct {
	Kind      TypeKind
	Name      string   // primitive name, or the simple name that failed to resolve
	Elem      *Element // the declaring element, for declared types
	Component *Type    // element type, for arrays
}

// Primitive type singletons.
var (
	IntType     = &Type{Kind: TypePrimitive, Name: "int"}
	LongType    = &Type{Kind: TypePrimitive, Name: "long"}
	ShortType   = &Type{Kind: TypePrimitive, Name: "short"}
	ByteType    = &Type{Kind: TypePrimitive, Name: "byte"}
	CharType    = &Type{Kind: TypePrimitive, Name: "char"}
	BooleanType = &Type{Kind: TypePrimitive, Name: "boolean"}
	FloatType   = &Type{Kind: TypePrimitive, Name: "float"}
	DoubleType  = &Type{Kind: TypePrimitive, Name: "double"}
	VoidType    = &Type{Kind: TypeVoid, Name: "void"}
	NullType    = &Type{Kind: TypeNull, Name: "null"}
	NoneType    = &Type{Kind: TypeNone, Name: "none"}
)

var primitives = map[string]*Type{
	"int":     IntType,
	"long":    LongType,
	"short":   ShortType,
	"byte":    ByteType,
	"char":    CharType,
	"boolean": BooleanType,
	"float":   FloatType,
	"double":  DoubleType,
	"void":    VoidType,
}

// DeclaredType wraps a type element as a type mirror.
func DeclaredType(elem *Element) *Type {
	if elem == nil {
		return &Type{Kind: TypeError}
	}
	return &Type{Kind: TypeDeclared, Name: elem.Name, Elem: elem}
}

// ErrorType represents a name that did not resolve to any type.
func ErrorType(name string) *Type {
	return &Type{Kind: TypeError, Name: name}
}

// ArrayType wraps a component type.
func ArrayType(component *Type) *Type {
	return &Type{Kind: TypeArray, Name: component.Name + "[]", Component: component}
}

// HasMembers reports whether member completion makes sense for the type.
// Primitives, void and pseudo-types have no members.
func (t *Type) HasMembers() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeArray, TypeDeclared, TypeError, TypeVariable, TypeWildcard, TypeUnion, TypeIntersection:
		return true
	default:
		return false
	}
}

// String renders the qualified form when known, the simple form otherwise.
func (t *Type) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeDeclared:
		if t.Elem != nil && t.Elem.Qualified != "" {
			return t.Elem.Qualified
		}
		return t.Name
	case TypeArray:
		return t.Component.String() + "[]"
	default:
		return t.Name
	}
}

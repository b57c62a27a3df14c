package frontend

// builtinTable is the compiled-in model of the platform classes the
// binder can resolve without source: java.lang plus the few spillover
// types those classes need. Members are the commonly used subset; this
// stands in for scanning the platform jars.
type builtinTable struct {
	bySimple    map[string]*Element
	byQualified map[string]*Element
	object      *Element
}

func (b *builtinTable) define(pkg *Element, kind ElemKind, name string) *Element {
	e := &Element{
		Kind:      kind,
		Name:      name,
		Qualified: pkg.Qualified + "." + name,
		Mods:      ModPublic,
		Owner:     pkg,
	}
	pkg.Members = append(pkg.Members, e)
	if pkg.Qualified == "java.lang" {
		b.bySimple[name] = e
	}
	b.byQualified[e.Qualified] = e
	return e
}

func method(owner *Element, mods Modifier, name string, ret *Type, params ...*Type) *Element {
	m := &Element{
		Kind:  ElemMethod,
		Name:  name,
		Mods:  mods,
		Owner: owner,
		Type:  ret,
	}
	for i, p := range params {
		m.Params = append(m.Params, &Element{
			Kind:  ElemParameter,
			Name:  paramName(i),
			Type:  p,
			Owner: m,
		})
	}
	owner.Members = append(owner.Members, m)
	return m
}

func field(owner *Element, mods Modifier, name string, t *Type) *Element {
	f := &Element{
		Kind:  ElemField,
		Name:  name,
		Mods:  mods,
		Owner: owner,
		Type:  t,
	}
	owner.Members = append(owner.Members, f)
	return f
}

func paramName(i int) string {
	names := []string{"a", "b", "c", "d"}
	if i < len(names) {
		return names[i]
	}
	return "arg"
}

func newBuiltins() *builtinTable {
	b := &builtinTable{
		bySimple:    make(map[string]*Element),
		byQualified: make(map[string]*Element),
	}

	lang := &Element{Kind: ElemPackage, Name: "lang", Qualified: "java.lang"}
	io := &Element{Kind: ElemPackage, Name: "io", Qualified: "java.io"}

	object := b.define(lang, ElemClass, "Object")
	charSeq := b.define(lang, ElemInterface, "CharSequence")
	str := b.define(lang, ElemClass, "String")
	integer := b.define(lang, ElemClass, "Integer")
	boolean := b.define(lang, ElemClass, "Boolean")
	character := b.define(lang, ElemClass, "Character")
	long := b.define(lang, ElemClass, "Long")
	double := b.define(lang, ElemClass, "Double")
	math := b.define(lang, ElemClass, "Math")
	system := b.define(lang, ElemClass, "System")
	printStream := b.define(io, ElemClass, "PrintStream")

	objectT := DeclaredType(object)
	stringT := DeclaredType(str)
	b.object = object

	// java.lang.Object
	method(object, ModPublic, "equals", BooleanType, objectT)
	method(object, ModPublic, "hashCode", IntType)
	method(object, ModPublic, "toString", stringT)
	method(object, ModPublic|ModFinal, "wait", VoidType)
	method(object, ModPublic|ModFinal, "notify", VoidType)
	method(object, ModPublic|ModFinal, "notifyAll", VoidType)

	// java.lang.CharSequence
	method(charSeq, ModPublic|ModAbstract, "length", IntType)
	method(charSeq, ModPublic|ModAbstract, "charAt", CharType, IntType)

	// java.lang.String
	str.Superclass = objectT
	str.Interfaces = []*Type{DeclaredType(charSeq)}
	method(str, ModPublic, "length", IntType)
	method(str, ModPublic, "charAt", CharType, IntType)
	method(str, ModPublic, "isEmpty", BooleanType)
	method(str, ModPublic, "substring", stringT, IntType)
	method(str, ModPublic, "substring", stringT, IntType, IntType)
	method(str, ModPublic, "indexOf", IntType, stringT)
	method(str, ModPublic, "concat", stringT, stringT)
	method(str, ModPublic, "trim", stringT)
	method(str, ModPublic, "toLowerCase", stringT)
	method(str, ModPublic, "toUpperCase", stringT)
	method(str, ModPublic, "equals", BooleanType, objectT)
	method(str, ModPublic, "hashCode", IntType)
	method(str, ModPublic, "toString", stringT)
	method(str, ModPublic|ModStatic, "valueOf", stringT, objectT)

	// Boxing types
	integer.Superclass = objectT
	method(integer, ModPublic|ModStatic, "parseInt", IntType, stringT)
	method(integer, ModPublic|ModStatic, "valueOf", DeclaredType(integer), IntType)
	method(integer, ModPublic, "intValue", IntType)
	field(integer, ModPublic|ModStatic|ModFinal, "MAX_VALUE", IntType)
	field(integer, ModPublic|ModStatic|ModFinal, "MIN_VALUE", IntType)

	boolean.Superclass = objectT
	method(boolean, ModPublic|ModStatic, "parseBoolean", BooleanType, stringT)
	method(boolean, ModPublic, "booleanValue", BooleanType)

	character.Superclass = objectT
	method(character, ModPublic, "charValue", CharType)

	long.Superclass = objectT
	method(long, ModPublic|ModStatic, "parseLong", LongType, stringT)
	method(long, ModPublic, "longValue", LongType)

	double.Superclass = objectT
	method(double, ModPublic|ModStatic, "parseDouble", DoubleType, stringT)
	method(double, ModPublic, "doubleValue", DoubleType)

	// java.lang.Math
	math.Superclass = objectT
	method(math, ModPublic|ModStatic, "abs", IntType, IntType)
	method(math, ModPublic|ModStatic, "max", IntType, IntType, IntType)
	method(math, ModPublic|ModStatic, "min", IntType, IntType, IntType)
	field(math, ModPublic|ModStatic|ModFinal, "PI", DoubleType)
	field(math, ModPublic|ModStatic|ModFinal, "E", DoubleType)

	// java.lang.System and the PrintStream it exposes
	printStream.Superclass = objectT
	method(printStream, ModPublic, "println", VoidType, stringT)
	method(printStream, ModPublic, "println", VoidType, IntType)
	method(printStream, ModPublic, "print", VoidType, stringT)
	method(printStream, ModPublic, "flush", VoidType)

	system.Superclass = objectT
	field(system, ModPublic|ModStatic|ModFinal, "out", DeclaredType(printStream))
	field(system, ModPublic|ModStatic|ModFinal, "err", DeclaredType(printStream))
	method(system, ModPublic|ModStatic, "currentTimeMillis", LongType)
	method(system, ModPublic|ModStatic, "getProperty", stringT, stringT)

	return b
}

// Object returns the synthetic java.lang.Object element.
func (b *builtinTable) Object() *Element {
	return b.object
}

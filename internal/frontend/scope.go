package frontend

// Scope is one level of the lexical scope chain: the file, a type body,
// an executable's parameter list, or a block.
type Scope struct {
	Parent *Scope
	Owner  *Element // the type or executable that owns this level, nil at file level
	Node   *Node    // the node the scope spans

	// Locals are the elements declared directly at this level, in
	// declaration order. For type scopes this is the implicit this and
	// super variables plus nested type names; fields and methods are
	// reached by unwrapping this/super.
	Locals []*Element
}

// EnclosingMethod returns the nearest executable that owns a level of
// this scope chain, or nil at type or file level.
func (s *Scope) EnclosingMethod() *Element {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Owner != nil && (cur.Owner.Kind == ElemMethod || cur.Owner.Kind == ElemConstructor) {
			return cur.Owner
		}
	}
	return nil
}

// EnclosingType returns the nearest type that owns a level of this scope
// chain, or nil at file level.
func (s *Scope) EnclosingType() *Element {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Owner != nil && cur.Owner.IsType() {
			return cur.Owner
		}
	}
	return nil
}

// IsStatic reports whether the scope sits inside a static executable.
func (s *Scope) IsStatic() bool {
	if m := s.EnclosingMethod(); m != nil {
		return m.IsStatic()
	}
	return false
}

// VisibleLocals returns the locals of this level that are in scope at
// the given offset: declared elements count only once their declaration
// begins at or before the offset. Synthetic elements (this, super) have
// no declaration node and are always visible.
func (s *Scope) VisibleLocals(offset int) []*Element {
	var out []*Element
	for _, e := range s.Locals {
		if e.Decl != nil && e.Kind == ElemLocal && e.Decl.Start > offset {
			continue
		}
		out = append(out, e)
	}
	return out
}

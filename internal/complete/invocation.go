package complete

import (
	jlserrors "jls/internal/errors"
	"jls/internal/focus"
	"jls/internal/frontend"
)

// NoActiveParameter marks a cursor that sits on the call syntax itself
// rather than inside any argument.
const NoActiveParameter = -1

// Invocation describes the call surrounding the cursor: the overload
// set of the invoked name, the overload whose arity matches the call,
// and which argument the cursor sits in.
type Invocation struct {
	Overloads       []*frontend.Element
	Active          *frontend.Element // nil when no overload's arity matches
	ActiveParameter int               // NoActiveParameter outside the arguments
}

// MethodInvocation finds the call expression enclosing the cursor and
// collects its candidate signatures.
func (g *Engine) MethodInvocation(path, contents string, line, column int) (*Invocation, error) {
	snap, err := g.cache.Ensure(path, contents, line, column)
	if err != nil {
		return nil, err
	}
	offset := snap.Offset
	syntaxPath, err := focus.FindPath(snap.Tree, offset)
	if err != nil {
		return nil, err
	}

	var call *frontend.Node
	for _, n := range syntaxPath {
		if n.Kind == frontend.KindMethodInvocation || n.Kind == frontend.KindObjectCreation {
			call = n
			break
		}
	}
	if call == nil {
		return nil, jlserrors.New(jlserrors.NoEnclosingCall, "cursor is not inside a call expression")
	}

	a, u := snap.Analysis, snap.Unit
	target := a.ElementAt(u, frontend.PathTo(call))
	if target == nil {
		return nil, jlserrors.Newf(jlserrors.Internal, "call target did not resolve at offset %d", offset)
	}

	inv := &Invocation{
		ActiveParameter: argumentIndexAt(call, offset),
	}
	switch {
	case target.Kind == frontend.ElemConstructor:
		inv.Overloads = target.Owner.MembersNamed("<init>")
	case target.Owner != nil && (target.Kind == frontend.ElemMethod):
		for _, m := range target.Owner.MembersNamed(target.Name) {
			if m.Kind == frontend.ElemMethod {
				inv.Overloads = append(inv.Overloads, m)
			}
		}
	default:
		inv.Overloads = []*frontend.Element{target}
	}

	argc := len(argumentsOf(call))
	for _, m := range inv.Overloads {
		if len(m.Params) == argc {
			inv.Active = m
			break
		}
	}
	return inv, nil
}

func argumentsOf(call *frontend.Node) []*frontend.Node {
	if args := call.ChildByField("arguments"); args != nil {
		return args.Children
	}
	return nil
}

// argumentIndexAt counts the arguments that end before the cursor,
// which is the slot the cursor types into. A cursor outside the
// argument list, on the call name for instance, has no slot.
func argumentIndexAt(call *frontend.Node, offset int) int {
	args := call.ChildByField("arguments")
	if args == nil || !args.Contains(offset) {
		return NoActiveParameter
	}
	index := 0
	for _, arg := range args.Children {
		if arg.End < offset {
			index++
		}
	}
	return index
}

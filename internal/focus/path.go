package focus

import (
	jlserrors "jls/internal/errors"
	"jls/internal/frontend"
)

// FindPath locates the smallest syntax node spanning the byte offset and
// returns its ancestor chain, smallest node first. The search is a
// pre-order scan keeping the last spanning node, which is the deepest
// one because a child is always visited after its parent.
func FindPath(tree *frontend.Tree, offset int) (frontend.Path, error) {
	var found *frontend.Node
	frontend.Walk(tree.Root, func(n *frontend.Node) bool {
		if !n.Contains(offset) {
			return false
		}
		found = n
		return true
	})
	if found == nil {
		return nil, jlserrors.Newf(jlserrors.NoEnclosingNode, "no syntax node spans offset %d", offset)
	}
	return frontend.PathTo(found), nil
}

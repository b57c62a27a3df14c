package focus

import (
	"jls/internal/frontend"
)

// Prune rewrites the source so analysis stays cheap near the cursor:
// every executable body that does not span the offset is blanked, and
// inside the spanning body everything after the cursor's token is
// blanked too, except the closing brackets of constructs still open at
// the cursor, which stay so the text remains parseable. Blanked bytes
// become spaces, newlines stay, so every surviving byte keeps its
// original offset and the line map of the pruned text matches the
// original's.
func Prune(tree *frontend.Tree, offset int) string {
	out := []byte(tree.Source)
	var focused *frontend.Node

	frontend.Walk(tree.Root, func(n *frontend.Node) bool {
		if n.Kind != frontend.KindMethodDecl && n.Kind != frontend.KindConstructorDecl {
			return true
		}
		body := n.ChildByField("body")
		if body == nil {
			return false
		}
		if body.Contains(offset) {
			focused = body
			return true // lambdas and local classes inside still count
		}
		blankInterior(out, body)
		return false
	})

	if focused != nil {
		// Keep the token under the cursor whole so a partial
		// identifier survives, then drop the rest of the body.
		from := offset
		for from < interiorEnd(focused) && identByte(tree.Source[from]) {
			from++
		}
		eraseTail(out, tree, focused, from)
	}
	return string(out)
}

// eraseTail blanks the focused body from the given offset to its closing
// brace. Closing brackets whose opener sits before the offset are kept,
// so a call or block the cursor is inside of stays balanced; brackets
// opened after the offset vanish with the text that opened them.
func eraseTail(out []byte, tree *frontend.Tree, body *frontend.Node, from int) {
	lo, hi := interiorStart(body), interiorEnd(body)
	if from >= hi {
		return
	}
	blankRange(out, from, hi)

	inLiteral := literalSpans(body)
	var openers []int
	for i := lo; i < hi; i++ {
		if inLiteral(i) {
			continue
		}
		switch tree.Source[i] {
		case '(', '[', '{':
			openers = append(openers, i)
		case ')', ']', '}':
			if len(openers) == 0 {
				continue
			}
			open := openers[len(openers)-1]
			openers = openers[:len(openers)-1]
			if open < from && i >= from {
				out[i] = tree.Source[i]
			}
		}
	}
}

// literalSpans reports which offsets sit inside a literal under the
// body, so bracket characters in string and char literals do not skew
// the balance scan.
func literalSpans(body *frontend.Node) func(int) bool {
	var spans [][2]int
	frontend.Walk(body, func(n *frontend.Node) bool {
		if n.Kind == frontend.KindLiteral {
			spans = append(spans, [2]int{n.Start, n.End})
			return false
		}
		return true
	})
	return func(i int) bool {
		for _, s := range spans {
			if i >= s[0] && i < s[1] {
				return true
			}
		}
		return false
	}
}

func identByte(b byte) bool {
	return b == '_' || b == '$' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// blankInterior blanks a braced body's content, keeping the braces.
func blankInterior(out []byte, body *frontend.Node) {
	blankRange(out, interiorStart(body), interiorEnd(body))
}

// interiorStart and interiorEnd skip the body's braces; the body node
// spans them both.
func interiorStart(body *frontend.Node) int {
	return body.Start + 1
}

func interiorEnd(body *frontend.Node) int {
	return body.End - 1
}

func blankRange(out []byte, from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(out) {
		to = len(out)
	}
	for i := from; i < to; i++ {
		if out[i] != '\n' && out[i] != '\r' {
			out[i] = ' '
		}
	}
}

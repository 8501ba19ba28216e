package completion

import "github.com/rlch/cyls/grammar"

// findAncestor walks up from n's parent and returns the nearest node of the
// given kind, or nil.
func findAncestor(n *grammar.Node, kind grammar.RuleKind) *grammar.Node {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Kind == kind {
			return cur
		}
	}

	return nil
}

// ancestorOrSelf is findAncestor that also considers n itself.
func ancestorOrSelf(n *grammar.Node, kind grammar.RuleKind) *grammar.Node {
	if n.Kind == kind {
		return n
	}

	return findAncestor(n, kind)
}

// findStopNode descends from root to the deepest node whose span begins at
// or before the caret token, following the last qualifying child at each
// level. With error-tolerant trees this lands on the node the caret is
// logically inside, even when later parts of the production are missing.
func findStopNode(root *grammar.Node, caret int) *grammar.Node {
	cur := root
	for {
		var next *grammar.Node
		for _, child := range cur.Children {
			if child.StartToken <= caret {
				next = child
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Node is a parse-tree node. Terminal nodes have Kind RuleTerminal and carry
// the index of their token in Result.Tokens; rule nodes carry Token == -1 and
// cover the token span [StartToken, StopToken]. Incomplete marks a rule whose
// production could not be matched to the end, which happens routinely when
// the input stops mid-statement.
type Node struct {
	Kind       RuleKind
	Parent     *Node
	Children   []*Node
	Token      int
	StartToken int
	StopToken  int
	Incomplete bool
}

// IsTerminal reports whether n is a token leaf.
func (n *Node) IsTerminal() bool { return n.Token >= 0 }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}

	return n.Children[len(n.Children)-1]
}

// Result holds the outcome of parsing a statement text.
type Result struct {
	Input  string
	Tokens []lexer.Token
	Tree   *Node
}

// Text concatenates the significant token text covered by node, in token
// order. Whitespace and comments are dropped.
func (r *Result) Text(node *Node) string {
	var b strings.Builder
	for i := node.StartToken; i <= node.StopToken && i < len(r.Tokens); i++ {
		switch r.Tokens[i].Type {
		case TokenWhitespace, TokenComment, TokenEOF:
		default:
			b.WriteString(r.Tokens[i].Value)
		}
	}

	return b.String()
}

// parseFuel bounds the total number of grammar expressions the interpreter
// may evaluate for one input, so degenerate inputs cannot hang the server.
const parseFuel = 1 << 20

// Parse lexes and parses input, producing a best-effort tree. It never
// fails: unparseable trailing tokens are collected under a RuleError node and
// rules cut short by the end of input are kept with Incomplete set.
func Parse(input string) *Result {
	tokens := Lex(input)
	p := &parser{tokens: tokens, fuel: parseFuel}

	root := &Node{Kind: RuleStatements, Token: -1, StopToken: len(tokens) - 1}
	next, _ := p.match(productions[RuleStatements], 0, root)

	rest := &Node{Kind: RuleError, Parent: root, Token: -1}
	for i := p.sig(next); i < len(tokens); i = p.sig(i + 1) {
		if tokens[i].Type == TokenEOF {
			break
		}
		leaf := &Node{Kind: RuleTerminal, Parent: rest, Token: i, StartToken: i, StopToken: i}
		rest.Children = append(rest.Children, leaf)
	}
	if len(rest.Children) > 0 {
		rest.StartToken = rest.Children[0].StartToken
		rest.StopToken = rest.LastChild().StopToken
		root.Children = append(root.Children, rest)
	}

	return &Result{Input: input, Tokens: tokens, Tree: root}
}

type parser struct {
	tokens []lexer.Token
	fuel   int
}

// sig returns the first index at or after i holding a significant token.
func (p *parser) sig(i int) int {
	for i < len(p.tokens) {
		switch p.tokens[i].Type {
		case TokenWhitespace, TokenComment:
			i++
		default:
			return i
		}
	}

	return i
}

// atEnd reports whether no significant token other than EOF remains at i.
func (p *parser) atEnd(i int) bool {
	j := p.sig(i)

	return j >= len(p.tokens) || p.tokens[j].Type == TokenEOF
}

// match interprets e against the token stream starting at position at,
// growing parent's children. It upholds one invariant: a failure either
// leaves parent untouched and returns the entry position, or it returns a
// position past the entry with a partial subtree attached, and the latter
// only when the partial match was cut short by the end of input. Everything
// the error tolerance of the parser does follows from that invariant.
func (p *parser) match(e gexpr, at int, parent *Node) (int, bool) {
	if p.fuel <= 0 {
		return at, false
	}
	p.fuel--

	switch e := e.(type) {
	case tokExpr:
		i := p.sig(at)
		if i >= len(p.tokens) || p.tokens[i].Type != e.typ {
			return at, false
		}
		leaf := &Node{Kind: RuleTerminal, Parent: parent, Token: i, StartToken: i, StopToken: i}
		parent.Children = append(parent.Children, leaf)

		return i + 1, true

	case seqExpr:
		mark := len(parent.Children)
		cur := at
		for _, item := range e.items {
			next, ok := p.match(item, cur, parent)
			if !ok {
				if next > at && p.atEnd(next) {
					return next, false
				}
				parent.Children = parent.Children[:mark]

				return at, false
			}
			cur = next
		}

		return cur, true

	case altExpr:
		for _, item := range e.items {
			next, ok := p.match(item, at, parent)
			if ok {
				return next, true
			}
			if next > at {
				// Partial match stalled at end of input; keep it.
				return next, false
			}
		}

		return at, false

	case optExpr:
		next, ok := p.match(e.item, at, parent)
		if ok || next > at {
			return next, true
		}

		return at, true

	case starExpr:
		cur := at
		for {
			next, ok := p.match(e.item, cur, parent)
			if !ok {
				if next > cur {
					cur = next
				}

				return cur, true
			}
			if next == cur {
				return cur, true
			}
			cur = next
		}

	case refExpr:
		node := &Node{Kind: e.kind, Parent: parent, Token: -1}
		next, ok := p.match(productions[e.kind], at, node)
		if len(node.Children) == 0 {
			if ok {
				return next, true
			}

			return at, false
		}
		node.Incomplete = !ok
		node.StartToken = node.Children[0].StartToken
		node.StopToken = node.LastChild().StopToken
		parent.Children = append(parent.Children, node)

		return next, ok
	}

	return at, false
}

package grammar

import (
	"slices"

	"github.com/alecthomas/participle/v2/lexer"
)

// CandidateRule reports that one of the configured preferred rules could
// begin or continue at the caret. StartToken is the index in Result.Tokens
// where the rule's match started, and Stack lists the rules enclosing it,
// outermost first, not including the rule itself.
type CandidateRule struct {
	Rule       RuleKind
	StartToken int
	Stack      []RuleKind
}

// CandidateToken reports a token type that could appear at the caret.
// FollowUp holds token types that necessarily come right after it in the
// matched production; when Optional is set the last follow-up token may be
// omitted. A token reachable through productions with conflicting follow-up
// chains carries no follow-up at all.
type CandidateToken struct {
	Token    lexer.TokenType
	FollowUp []lexer.TokenType
	Optional bool
}

// Candidates is the result of collection at a caret.
type Candidates struct {
	Rules  []CandidateRule
	Tokens []CandidateToken
}

// CollectConfig tunes collection. A token reachable at the caret inside a
// preferred rule is reported as that rule instead of as a token, and tokens
// matching Ignored are not reported at all.
type CollectConfig struct {
	Preferred map[RuleKind]bool
	Ignored   func(lexer.TokenType) bool
}

// CollectCandidates walks the grammar over res.Tokens and gathers every rule
// and token candidate reachable at the caret token index. The walk shares
// the production table with Parse but builds no tree: any path that reaches
// the caret records its candidate and dead-ends, so all alternatives are
// explored.
func CollectCandidates(res *Result, caret int, cfg CollectConfig) *Candidates {
	c := &collector{
		res:        res,
		caret:      caret,
		cfg:        cfg,
		fuel:       parseFuel,
		out:        &Candidates{},
		seenRules:  map[RuleKind]bool{},
		seenTokens: map[lexer.TokenType]int{},
	}
	c.collect(productions[RuleStatements], 0, nil)

	return c.out
}

type ruleFrame struct {
	kind  RuleKind
	start int
}

type collector struct {
	res        *Result
	caret      int
	cfg        CollectConfig
	fuel       int
	frames     []ruleFrame
	out        *Candidates
	seenRules  map[RuleKind]bool
	seenTokens map[lexer.TokenType]int
}

func (c *collector) sig(i int) int {
	for i < len(c.res.Tokens) {
		switch c.res.Tokens[i].Type {
		case TokenWhitespace, TokenComment:
			i++
		default:
			return i
		}
	}

	return i
}

// collect interprets e at position at. cont holds the grammar expressions
// that follow e in the enclosing productions, innermost first; it is only
// consulted to compute follow-up tokens for candidates at the caret.
func (c *collector) collect(e gexpr, at int, cont []gexpr) (int, bool) {
	if c.fuel <= 0 {
		return at, false
	}
	c.fuel--

	switch e := e.(type) {
	case tokExpr:
		i := c.sig(at)
		if i >= c.caret {
			c.record(e.typ, cont)

			return at, false
		}
		if i >= len(c.res.Tokens) || c.res.Tokens[i].Type != e.typ {
			return at, false
		}

		return i + 1, true

	case seqExpr:
		cur := at
		for idx, item := range e.items {
			rest := append(append([]gexpr{}, e.items[idx+1:]...), cont...)
			next, ok := c.collect(item, cur, rest)
			if !ok {
				return at, false
			}
			cur = next
		}

		return cur, true

	case altExpr:
		for _, item := range e.items {
			if next, ok := c.collect(item, at, cont); ok {
				return next, true
			}
		}

		return at, false

	case optExpr:
		if next, ok := c.collect(e.item, at, cont); ok {
			return next, true
		}

		return at, true

	case starExpr:
		cur := at
		inner := append([]gexpr{e}, cont...)
		for {
			next, ok := c.collect(e.item, cur, inner)
			if !ok || next == cur {
				return cur, true
			}
			cur = next
		}

	case refExpr:
		c.frames = append(c.frames, ruleFrame{kind: e.kind, start: c.sig(at)})
		next, ok := c.collect(productions[e.kind], at, cont)
		c.frames = c.frames[:len(c.frames)-1]

		return next, ok
	}

	return at, false
}

// record registers a candidate for a token check that landed on the caret.
// If an enclosing rule is preferred, the outermost such rule is reported and
// the token itself is suppressed.
func (c *collector) record(typ lexer.TokenType, cont []gexpr) {
	for i, f := range c.frames {
		if !c.cfg.Preferred[f.kind] {
			continue
		}
		if c.seenRules[f.kind] {
			return
		}
		c.seenRules[f.kind] = true
		stack := make([]RuleKind, i)
		for j := 0; j < i; j++ {
			stack[j] = c.frames[j].kind
		}
		c.out.Rules = append(c.out.Rules, CandidateRule{
			Rule:       f.kind,
			StartToken: f.start,
			Stack:      stack,
		})

		return
	}

	if c.cfg.Ignored != nil && c.cfg.Ignored(typ) {
		return
	}

	cand := CandidateToken{Token: typ}
	cand.FollowUp, cand.Optional = followUp(cont)
	if i, seen := c.seenTokens[typ]; seen {
		// The same token reachable through productions with different
		// continuations has no single follow-up chain; report it bare so
		// CREATE stays CREATE even though CREATE DATABASE also parses.
		prev := &c.out.Tokens[i]
		if prev.Optional != cand.Optional || !slices.Equal(prev.FollowUp, cand.FollowUp) {
			prev.FollowUp = nil
			prev.Optional = false
		}

		return
	}
	c.seenTokens[typ] = len(c.out.Tokens)
	c.out.Tokens = append(c.out.Tokens, cand)
}

// followUp flattens the continuation into the token types that must (or, for
// a trailing optional token, may) directly follow a candidate token.
func followUp(cont []gexpr) ([]lexer.TokenType, bool) {
	var types []lexer.TokenType
	queue := append([]gexpr{}, cont...)
	for len(queue) > 0 {
		head := queue[0]
		queue = queue[1:]
		switch head := head.(type) {
		case tokExpr:
			types = append(types, head.typ)
		case seqExpr:
			queue = append(append([]gexpr{}, head.items...), queue...)
		case optExpr:
			if t, ok := head.item.(tokExpr); ok {
				return append(types, t.typ), true
			}

			return types, false
		default:
			return types, false
		}
	}

	return types, false
}

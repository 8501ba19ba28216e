package completion

import (
	"strings"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/grammar"
)

// fallback resolves completions from the parse tree when candidate
// collection produced nothing, by inspecting the deepest node around the
// caret. It reports ok=false when the tree gives it no opinion either.
func fallback(res *grammar.Result, schema *cyls.Schema) ([]cyls.Item, bool) {
	if len(res.Tokens) <= 1 {
		return nil, false
	}
	caret := len(res.Tokens) - 2
	if res.Tokens[caret].Type == grammar.TokenWhitespace {
		return nil, false
	}

	stop := findStopNode(res.Tree, caret)

	if relationshipTypePosition(res, stop) {
		return makeItems(schema.RelationshipTypes, cyls.KindTypeParameter), true
	}

	if expr := ancestorOrSelf(stop, grammar.RuleExpression); expr != nil {
		prefix := res.Text(expr)
		var items []cyls.Item
		for _, name := range schema.FunctionNames() {
			if strings.HasPrefix(name, prefix) {
				items = append(items, cyls.Item{Label: name, Kind: cyls.KindFunction})
			}
		}

		return items, true
	}

	if ancestorOrSelf(stop, grammar.RuleProcedureName) != nil {
		return makeItems(schema.ProcedureNames(), cyls.KindFunction), true
	}

	return nil, false
}

// fallbackWithFiller re-parses the text with a filler identifier character
// appended, recovering positions such as a dangling ":" inside a
// relationship bracket where the unfinished text parses to nothing useful.
// Only the relationship type check applies to the filler tree.
func fallbackWithFiller(text string, schema *cyls.Schema) ([]cyls.Item, bool) {
	res := grammar.Parse(text + "x")
	if len(res.Tokens) <= 1 {
		return nil, false
	}
	stop := findStopNode(res.Tree, len(res.Tokens)-2)
	if relationshipTypePosition(res, stop) {
		return makeItems(schema.RelationshipTypes, cyls.KindTypeParameter), true
	}

	return nil, false
}

// relationshipTypePosition reports whether the stop node sits in the label
// part of a relationship bracket, either inside a label expression enclosed
// by a relationship detail or directly on the ":" that opens one.
func relationshipTypePosition(res *grammar.Result, stop *grammar.Node) bool {
	if le := ancestorOrSelf(stop, grammar.RuleLabelExpression); le != nil {
		return findAncestor(le, grammar.RuleRelationshipDetail) != nil
	}
	if stop.IsTerminal() && res.Tokens[stop.Token].Type == grammar.TokenColon {
		return findAncestor(stop, grammar.RuleRelationshipDetail) != nil
	}

	return false
}

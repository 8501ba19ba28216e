package completion

import (
	"github.com/rlch/cyls"
	"github.com/rlch/cyls/grammar"
)

// classify maps a rule candidate to completion items using the schema. The
// checks run in a fixed order and the first hit wins, so a name inside a
// relationship detail resolves as a relationship type even though a node
// pattern may also enclose it.
func classify(cand grammar.CandidateRule, res *grammar.Result, schema *cyls.Schema) []cyls.Item {
	stack := stackSet(cand.Stack)

	switch {
	case stack[grammar.RuleProcedureName] || stack[grammar.RuleFunctionName]:
		// Procedures and functions complete from the procedure catalog.
		return makeItems(schema.ProcedureNames(), cyls.KindFunction)

	case stack[grammar.RuleRelationshipPattern]:
		return makeItems(schema.RelationshipTypes, cyls.KindTypeParameter)

	case stack[grammar.RuleNodePattern]:
		return makeItems(schema.Labels, cyls.KindTypeParameter)

	case stack[grammar.RuleLabelExpression]:
		items := makeItems(schema.RelationshipTypes, cyls.KindTypeParameter)

		return append(items, makeItems(schema.Labels, cyls.KindTypeParameter)...)

	case cand.Rule == grammar.RuleSymbolicAliasName:
		return classifyAliasName(cand, res, stack, schema)
	}

	return nil
}

// classifyAliasName decides between database and alias name completion. A
// name candidate whose match already started before the caret, with
// whitespace right after its first token, is a finished name the caret is
// merely behind; it gets no items. Creation commands name something new, so
// they get none either.
func classifyAliasName(
	cand grammar.CandidateRule,
	res *grammar.Result,
	stack map[grammar.RuleKind]bool,
	schema *cyls.Schema,
) []cyls.Item {
	after := cand.StartToken + 1
	if after < len(res.Tokens) && res.Tokens[after].Type == grammar.TokenWhitespace {
		return nil
	}
	if stack[grammar.RuleCreateAlias] ||
		stack[grammar.RuleCreateDatabase] ||
		stack[grammar.RuleCreateCompositeDatabase] {
		return nil
	}
	if stack[grammar.RuleDropAlias] || stack[grammar.RuleAlterAlias] || stack[grammar.RuleShowAliases] {
		return makeItems(schema.Aliases, cyls.KindValue)
	}
	items := makeItems(schema.Databases, cyls.KindValue)

	return append(items, makeItems(schema.Aliases, cyls.KindValue)...)
}

func stackSet(stack []grammar.RuleKind) map[grammar.RuleKind]bool {
	set := make(map[grammar.RuleKind]bool, len(stack))
	for _, kind := range stack {
		set[kind] = true
	}

	return set
}

func makeItems(labels []string, kind cyls.ItemKind) []cyls.Item {
	items := make([]cyls.Item, 0, len(labels))
	for _, label := range labels {
		items = append(items, cyls.Item{Label: label, Kind: kind})
	}

	return items
}

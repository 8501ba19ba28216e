package grammar

import "github.com/alecthomas/participle/v2/lexer"

// RuleKind is a closed enumeration of grammar rules. Parse-tree nodes carry
// their rule kind, and candidate collection reports rules and enclosing-rule
// stacks in terms of it.
type RuleKind uint8

// Grammar rules.
const (
	RuleStatements RuleKind = iota
	RuleStatement
	RuleCommand
	RuleQuery
	RuleSingleQuery
	RuleUnionClause
	RuleClause
	RuleMatchClause
	RuleCreateClause
	RuleMergeClause
	RuleMergeAction
	RuleUnwindClause
	RuleCallClause
	RuleYieldClause
	RuleYieldItem
	RuleWithClause
	RuleReturnClause
	RuleWhereClause
	RuleSetClause
	RuleSetItem
	RuleRemoveClause
	RuleRemoveItem
	RuleDeleteClause
	RuleProjection
	RuleProjectionItem
	RuleOrderBy
	RuleSortItem
	RuleSkipClause
	RuleLimitClause
	RulePattern
	RulePatternPart
	RulePatternElement
	RuleNodePattern
	RuleRelationshipPattern
	RuleRelationshipDetail
	RuleLabelExpression
	RuleLabelTerm
	RuleProperties
	RuleMapLiteral
	RuleMapEntry
	RulePropertyKeyName
	RuleExpression
	RuleOrExpression
	RuleXorExpression
	RuleAndExpression
	RuleNotExpression
	RuleComparisonExpression
	RuleAddExpression
	RuleMultiplyExpression
	RulePowerExpression
	RuleUnaryExpression
	RulePostfixExpression
	RuleAtom
	RuleLiteral
	RuleParameter
	RuleCaseExpression
	RuleCaseAlternative
	RuleListLiteral
	RuleParenthesizedExpression
	RuleFunctionInvocation
	RuleFunctionName
	RuleProcedureName
	RuleNamespace
	RuleVariable
	RuleSymbolicNameString
	RuleUnescapedSymbolicNameString
	RuleEscapedSymbolicNameString
	RuleStringLiteral
	RuleSymbolicLabelNameString
	RuleSymbolicAliasName
	RuleCreateDatabase
	RuleCreateCompositeDatabase
	RuleCreateAlias
	RuleDropDatabase
	RuleDropAlias
	RuleAlterDatabase
	RuleAlterAlias
	RuleShowDatabases
	RuleShowAliases
	RuleStartDatabase
	RuleStopDatabase
	RuleDatabaseName
	RuleAliasName

	// RuleTerminal tags leaf nodes holding a single token.
	RuleTerminal

	// RuleError tags the node collecting tokens the parser could not place.
	RuleError

	ruleKindCount
)

var ruleNames = [ruleKindCount]string{
	RuleStatements:                  "statements",
	RuleStatement:                   "statement",
	RuleCommand:                     "command",
	RuleQuery:                       "query",
	RuleSingleQuery:                 "singleQuery",
	RuleUnionClause:                 "unionClause",
	RuleClause:                      "clause",
	RuleMatchClause:                 "matchClause",
	RuleCreateClause:                "createClause",
	RuleMergeClause:                 "mergeClause",
	RuleMergeAction:                 "mergeAction",
	RuleUnwindClause:                "unwindClause",
	RuleCallClause:                  "callClause",
	RuleYieldClause:                 "yieldClause",
	RuleYieldItem:                   "yieldItem",
	RuleWithClause:                  "withClause",
	RuleReturnClause:                "returnClause",
	RuleWhereClause:                 "whereClause",
	RuleSetClause:                   "setClause",
	RuleSetItem:                     "setItem",
	RuleRemoveClause:                "removeClause",
	RuleRemoveItem:                  "removeItem",
	RuleDeleteClause:                "deleteClause",
	RuleProjection:                  "projection",
	RuleProjectionItem:              "projectionItem",
	RuleOrderBy:                     "orderBy",
	RuleSortItem:                    "sortItem",
	RuleSkipClause:                  "skipClause",
	RuleLimitClause:                 "limitClause",
	RulePattern:                     "pattern",
	RulePatternPart:                 "patternPart",
	RulePatternElement:              "patternElement",
	RuleNodePattern:                 "nodePattern",
	RuleRelationshipPattern:         "relationshipPattern",
	RuleRelationshipDetail:          "relationshipDetail",
	RuleLabelExpression:             "labelExpression",
	RuleLabelTerm:                   "labelTerm",
	RuleProperties:                  "properties",
	RuleMapLiteral:                  "mapLiteral",
	RuleMapEntry:                    "mapEntry",
	RulePropertyKeyName:             "propertyKeyName",
	RuleExpression:                  "expression",
	RuleOrExpression:                "orExpression",
	RuleXorExpression:               "xorExpression",
	RuleAndExpression:               "andExpression",
	RuleNotExpression:               "notExpression",
	RuleComparisonExpression:        "comparisonExpression",
	RuleAddExpression:               "addExpression",
	RuleMultiplyExpression:          "multiplyExpression",
	RulePowerExpression:             "powerExpression",
	RuleUnaryExpression:             "unaryExpression",
	RulePostfixExpression:           "postfixExpression",
	RuleAtom:                        "atom",
	RuleLiteral:                     "literal",
	RuleParameter:                   "parameter",
	RuleCaseExpression:              "caseExpression",
	RuleCaseAlternative:             "caseAlternative",
	RuleListLiteral:                 "listLiteral",
	RuleParenthesizedExpression:     "parenthesizedExpression",
	RuleFunctionInvocation:          "functionInvocation",
	RuleFunctionName:                "functionName",
	RuleProcedureName:               "procedureName",
	RuleNamespace:                   "namespace",
	RuleVariable:                    "variable",
	RuleSymbolicNameString:          "symbolicNameString",
	RuleUnescapedSymbolicNameString: "unescapedSymbolicNameString",
	RuleEscapedSymbolicNameString:   "escapedSymbolicNameString",
	RuleStringLiteral:               "stringLiteral",
	RuleSymbolicLabelNameString:     "symbolicLabelNameString",
	RuleSymbolicAliasName:           "symbolicAliasName",
	RuleCreateDatabase:              "createDatabase",
	RuleCreateCompositeDatabase:     "createCompositeDatabase",
	RuleCreateAlias:                 "createAlias",
	RuleDropDatabase:                "dropDatabase",
	RuleDropAlias:                   "dropAlias",
	RuleAlterDatabase:               "alterDatabase",
	RuleAlterAlias:                  "alterAlias",
	RuleShowDatabases:               "showDatabases",
	RuleShowAliases:                 "showAliases",
	RuleStartDatabase:               "startDatabase",
	RuleStopDatabase:                "stopDatabase",
	RuleDatabaseName:                "databaseName",
	RuleAliasName:                   "aliasName",
	RuleTerminal:                    "terminal",
	RuleError:                       "error",
}

// String returns the rule's grammar name.
func (k RuleKind) String() string {
	if int(k) < len(ruleNames) {
		return ruleNames[k]
	}

	return "unknown"
}

// Grammar expressions. The production table below is data interpreted by both
// the parser and the candidate collector.
type gexpr interface{ grammarExpr() }

type (
	seqExpr  struct{ items []gexpr }
	altExpr  struct{ items []gexpr }
	optExpr  struct{ item gexpr }
	starExpr struct{ item gexpr }
	tokExpr  struct{ typ lexer.TokenType }
	refExpr  struct{ kind RuleKind }
)

func (seqExpr) grammarExpr()  {}
func (altExpr) grammarExpr()  {}
func (optExpr) grammarExpr()  {}
func (starExpr) grammarExpr() {}
func (tokExpr) grammarExpr()  {}
func (refExpr) grammarExpr()  {}

func seqOf(items ...gexpr) gexpr  { return seqExpr{items: items} }
func oneOf(items ...gexpr) gexpr  { return altExpr{items: items} }
func optional(item gexpr) gexpr   { return optExpr{item: item} }
func zeroOrMore(item gexpr) gexpr { return starExpr{item: item} }
func term(typ lexer.TokenType) gexpr {
	return tokExpr{typ: typ}
}
func rule(kind RuleKind) gexpr { return refExpr{kind: kind} }

// productions is the grammar table. It covers query statements (MATCH,
// CREATE, MERGE, UNWIND, CALL, SET, REMOVE, DELETE, WITH, RETURN, UNION) and
// the catalog administration commands completion cares about. Built once at
// process start; read-only afterwards.
var productions = buildProductions()

func buildProductions() map[RuleKind]gexpr {
	exprList := seqOf(rule(RuleExpression), zeroOrMore(seqOf(term(TokenComma), rule(RuleExpression))))
	aliasComponent := oneOf(term(TokenIdent), term(TokenEscapedIdent), rule(RuleParameter))
	ifNotExists := seqOf(term(TokenIf), term(TokenNot), term(TokenExists))
	ifExists := seqOf(term(TokenIf), term(TokenExists))

	return map[RuleKind]gexpr{
		RuleStatements: seqOf(
			rule(RuleStatement),
			zeroOrMore(seqOf(term(TokenSemicolon), rule(RuleStatement))),
		),
		RuleStatement: oneOf(rule(RuleCommand), rule(RuleQuery)),

		// Queries.
		RuleQuery: seqOf(rule(RuleSingleQuery), zeroOrMore(rule(RuleUnionClause))),
		RuleUnionClause: seqOf(
			term(TokenUnion), optional(term(TokenAll)), rule(RuleSingleQuery),
		),
		RuleSingleQuery: seqOf(zeroOrMore(rule(RuleClause)), optional(rule(RuleReturnClause))),
		RuleClause: oneOf(
			rule(RuleMatchClause),
			rule(RuleUnwindClause),
			rule(RuleCallClause),
			rule(RuleCreateClause),
			rule(RuleMergeClause),
			rule(RuleSetClause),
			rule(RuleRemoveClause),
			rule(RuleDeleteClause),
			rule(RuleWithClause),
		),
		RuleMatchClause: seqOf(
			optional(term(TokenOptional)), term(TokenMatch),
			rule(RulePattern), optional(rule(RuleWhereClause)),
		),
		RuleCreateClause: seqOf(term(TokenCreate), rule(RulePattern)),
		RuleMergeClause: seqOf(
			term(TokenMerge), rule(RulePatternPart), zeroOrMore(rule(RuleMergeAction)),
		),
		RuleMergeAction: seqOf(
			term(TokenOn), oneOf(term(TokenMatch), term(TokenCreate)), rule(RuleSetClause),
		),
		RuleUnwindClause: seqOf(
			term(TokenUnwind), rule(RuleExpression), term(TokenAs), rule(RuleVariable),
		),
		RuleCallClause: seqOf(
			term(TokenCall), rule(RuleProcedureName),
			optional(seqOf(term(TokenLParen), optional(exprList), term(TokenRParen))),
			optional(rule(RuleYieldClause)),
		),
		RuleYieldClause: seqOf(term(TokenYield), oneOf(
			term(TokenStar),
			seqOf(
				rule(RuleYieldItem),
				zeroOrMore(seqOf(term(TokenComma), rule(RuleYieldItem))),
				optional(rule(RuleWhereClause)),
			),
		)),
		RuleYieldItem: seqOf(
			rule(RuleVariable), optional(seqOf(term(TokenAs), rule(RuleVariable))),
		),
		RuleWithClause:   seqOf(term(TokenWith), rule(RuleProjection), optional(rule(RuleWhereClause))),
		RuleReturnClause: seqOf(term(TokenReturn), rule(RuleProjection)),
		RuleWhereClause:  seqOf(term(TokenWhere), rule(RuleExpression)),
		RuleSetClause: seqOf(
			term(TokenSet), rule(RuleSetItem),
			zeroOrMore(seqOf(term(TokenComma), rule(RuleSetItem))),
		),
		RuleSetItem: oneOf(
			seqOf(rule(RuleVariable), term(TokenColon), rule(RuleLabelExpression)),
			seqOf(
				rule(RulePostfixExpression),
				oneOf(term(TokenEq), term(TokenPlusEq)),
				rule(RuleExpression),
			),
		),
		RuleRemoveClause: seqOf(
			term(TokenRemove), rule(RuleRemoveItem),
			zeroOrMore(seqOf(term(TokenComma), rule(RuleRemoveItem))),
		),
		RuleRemoveItem: oneOf(
			seqOf(rule(RuleVariable), term(TokenColon), rule(RuleLabelExpression)),
			rule(RulePostfixExpression),
		),
		RuleDeleteClause: seqOf(
			optional(term(TokenDetach)), term(TokenDelete),
			rule(RuleExpression), zeroOrMore(seqOf(term(TokenComma), rule(RuleExpression))),
		),
		RuleProjection: seqOf(
			optional(term(TokenDistinct)),
			oneOf(
				term(TokenStar),
				seqOf(
					rule(RuleProjectionItem),
					zeroOrMore(seqOf(term(TokenComma), rule(RuleProjectionItem))),
				),
			),
			optional(rule(RuleOrderBy)),
			optional(rule(RuleSkipClause)),
			optional(rule(RuleLimitClause)),
		),
		RuleProjectionItem: seqOf(
			rule(RuleExpression), optional(seqOf(term(TokenAs), rule(RuleVariable))),
		),
		RuleOrderBy: seqOf(
			term(TokenOrder), term(TokenBy),
			rule(RuleSortItem), zeroOrMore(seqOf(term(TokenComma), rule(RuleSortItem))),
		),
		RuleSortItem: seqOf(rule(RuleExpression), optional(oneOf(
			term(TokenAsc), term(TokenAscending), term(TokenDesc), term(TokenDescending),
		))),
		RuleSkipClause:  seqOf(term(TokenSkip), rule(RuleExpression)),
		RuleLimitClause: seqOf(term(TokenLimit), rule(RuleExpression)),

		// Patterns.
		RulePattern: seqOf(
			rule(RulePatternPart),
			zeroOrMore(seqOf(term(TokenComma), rule(RulePatternPart))),
		),
		RulePatternPart: seqOf(
			optional(seqOf(rule(RuleVariable), term(TokenEq))),
			rule(RulePatternElement),
		),
		RulePatternElement: seqOf(
			rule(RuleNodePattern),
			zeroOrMore(seqOf(rule(RuleRelationshipPattern), rule(RuleNodePattern))),
		),
		RuleNodePattern: seqOf(
			term(TokenLParen),
			optional(rule(RuleVariable)),
			optional(seqOf(term(TokenColon), rule(RuleLabelExpression))),
			optional(rule(RuleProperties)),
			term(TokenRParen),
		),
		RuleRelationshipPattern: seqOf(
			optional(term(TokenLt)), term(TokenMinus),
			optional(rule(RuleRelationshipDetail)),
			term(TokenMinus), optional(term(TokenGt)),
		),
		RuleRelationshipDetail: seqOf(
			term(TokenLBracket),
			optional(rule(RuleVariable)),
			optional(seqOf(term(TokenColon), rule(RuleLabelExpression))),
			optional(seqOf(term(TokenStar), optional(oneOf(
				seqOf(term(TokenInt), term(TokenDotDot), term(TokenInt)),
				seqOf(term(TokenInt), term(TokenDotDot)),
				seqOf(term(TokenDotDot), term(TokenInt)),
				term(TokenInt),
			)))),
			optional(rule(RuleProperties)),
			term(TokenRBracket),
		),
		RuleLabelExpression: seqOf(rule(RuleLabelTerm), zeroOrMore(seqOf(
			oneOf(term(TokenPipe), term(TokenAmp), term(TokenColon)),
			rule(RuleLabelTerm),
		))),
		RuleLabelTerm: seqOf(optional(term(TokenBang)), oneOf(
			rule(RuleSymbolicLabelNameString),
			term(TokenPercent),
			seqOf(term(TokenLParen), rule(RuleLabelExpression), term(TokenRParen)),
		)),
		RuleProperties: oneOf(rule(RuleMapLiteral), rule(RuleParameter)),
		RuleMapLiteral: seqOf(
			term(TokenLBrace),
			optional(seqOf(
				rule(RuleMapEntry),
				zeroOrMore(seqOf(term(TokenComma), rule(RuleMapEntry))),
			)),
			term(TokenRBrace),
		),
		RuleMapEntry:        seqOf(rule(RulePropertyKeyName), term(TokenColon), rule(RuleExpression)),
		RulePropertyKeyName: rule(RuleSymbolicNameString),

		// Expressions, by descending precedence.
		RuleExpression:   rule(RuleOrExpression),
		RuleOrExpression: binary(RuleXorExpression, term(TokenOr)),
		RuleXorExpression: binary(
			RuleAndExpression, term(TokenXor),
		),
		RuleAndExpression: binary(RuleNotExpression, term(TokenAnd)),
		RuleNotExpression: seqOf(zeroOrMore(term(TokenNot)), rule(RuleComparisonExpression)),
		RuleComparisonExpression: seqOf(rule(RuleAddExpression), zeroOrMore(oneOf(
			seqOf(term(TokenIs), term(TokenNull)),
			seqOf(term(TokenIs), term(TokenNot), term(TokenNull)),
			seqOf(term(TokenStarts), term(TokenWith), rule(RuleAddExpression)),
			seqOf(term(TokenEnds), term(TokenWith), rule(RuleAddExpression)),
			seqOf(term(TokenContains), rule(RuleAddExpression)),
			seqOf(term(TokenIn), rule(RuleAddExpression)),
			seqOf(term(TokenRegexMatch), rule(RuleAddExpression)),
			seqOf(
				oneOf(
					term(TokenEq), term(TokenNeq), term(TokenLe),
					term(TokenGe), term(TokenLt), term(TokenGt),
				),
				rule(RuleAddExpression),
			),
		))),
		RuleAddExpression: binary(
			RuleMultiplyExpression, oneOf(term(TokenPlus), term(TokenMinus)),
		),
		RuleMultiplyExpression: binary(
			RulePowerExpression, oneOf(term(TokenStar), term(TokenSlash), term(TokenPercent)),
		),
		RulePowerExpression: binary(RuleUnaryExpression, term(TokenCaret)),
		RuleUnaryExpression: seqOf(
			zeroOrMore(oneOf(term(TokenPlus), term(TokenMinus))),
			rule(RulePostfixExpression),
		),
		RulePostfixExpression: seqOf(rule(RuleAtom), zeroOrMore(oneOf(
			seqOf(term(TokenDot), rule(RulePropertyKeyName)),
			seqOf(term(TokenLBracket), rule(RuleExpression), term(TokenRBracket)),
			seqOf(term(TokenColon), rule(RuleLabelExpression)),
		))),
		RuleAtom: oneOf(
			rule(RuleLiteral),
			rule(RuleParameter),
			rule(RuleCaseExpression),
			rule(RuleFunctionInvocation),
			rule(RuleParenthesizedExpression),
			rule(RuleListLiteral),
			rule(RuleMapLiteral),
			rule(RuleVariable),
		),
		RuleLiteral: oneOf(
			rule(RuleStringLiteral),
			term(TokenFloat), term(TokenInt),
			term(TokenTrue), term(TokenFalse), term(TokenNull),
		),
		RuleParameter: seqOf(term(TokenDollar), oneOf(
			term(TokenIdent), term(TokenEscapedIdent), term(TokenInt),
		)),
		RuleCaseExpression: seqOf(
			term(TokenCase),
			optional(rule(RuleExpression)),
			rule(RuleCaseAlternative), zeroOrMore(rule(RuleCaseAlternative)),
			optional(seqOf(term(TokenElse), rule(RuleExpression))),
			term(TokenEnd),
		),
		RuleCaseAlternative: seqOf(
			term(TokenWhen), rule(RuleExpression), term(TokenThen), rule(RuleExpression),
		),
		RuleListLiteral: seqOf(term(TokenLBracket), optional(exprList), term(TokenRBracket)),
		RuleParenthesizedExpression: seqOf(
			term(TokenLParen), rule(RuleExpression), term(TokenRParen),
		),
		RuleFunctionInvocation: seqOf(
			rule(RuleFunctionName), term(TokenLParen),
			optional(term(TokenDistinct)),
			optional(oneOf(term(TokenStar), exprList)),
			term(TokenRParen),
		),
		RuleFunctionName:  seqOf(rule(RuleNamespace), rule(RuleSymbolicNameString)),
		RuleProcedureName: seqOf(rule(RuleNamespace), rule(RuleSymbolicNameString)),
		RuleNamespace:     zeroOrMore(seqOf(rule(RuleSymbolicNameString), term(TokenDot))),
		RuleVariable:      rule(RuleSymbolicNameString),

		// Name productions. These are the collector's preferred rules.
		RuleSymbolicNameString: oneOf(
			rule(RuleUnescapedSymbolicNameString),
			rule(RuleEscapedSymbolicNameString),
		),
		RuleUnescapedSymbolicNameString: term(TokenIdent),
		RuleEscapedSymbolicNameString:   term(TokenEscapedIdent),
		RuleStringLiteral:               term(TokenString),
		RuleSymbolicLabelNameString:     oneOf(term(TokenIdent), term(TokenEscapedIdent)),
		RuleSymbolicAliasName: seqOf(
			aliasComponent,
			zeroOrMore(seqOf(term(TokenDot), aliasComponent)),
		),

		// Catalog administration commands.
		RuleCommand: oneOf(
			rule(RuleCreateCompositeDatabase),
			rule(RuleCreateDatabase),
			rule(RuleCreateAlias),
			rule(RuleDropDatabase),
			rule(RuleDropAlias),
			rule(RuleAlterDatabase),
			rule(RuleAlterAlias),
			rule(RuleShowDatabases),
			rule(RuleShowAliases),
			rule(RuleStartDatabase),
			rule(RuleStopDatabase),
		),
		RuleCreateDatabase: seqOf(
			term(TokenCreate), term(TokenDatabase),
			rule(RuleDatabaseName), optional(ifNotExists),
		),
		RuleCreateCompositeDatabase: seqOf(
			term(TokenCreate), term(TokenComposite), term(TokenDatabase),
			rule(RuleDatabaseName), optional(ifNotExists),
		),
		RuleCreateAlias: seqOf(
			term(TokenCreate), term(TokenAlias),
			rule(RuleAliasName), optional(ifNotExists),
			term(TokenFor), term(TokenDatabase), rule(RuleDatabaseName),
		),
		RuleDropDatabase: seqOf(
			term(TokenDrop), term(TokenDatabase),
			rule(RuleDatabaseName), optional(ifExists),
		),
		RuleDropAlias: seqOf(
			term(TokenDrop), term(TokenAlias),
			rule(RuleAliasName), optional(ifExists),
			term(TokenFor), term(TokenDatabase),
		),
		RuleAlterDatabase: seqOf(
			term(TokenAlter), term(TokenDatabase),
			rule(RuleDatabaseName), optional(ifExists),
		),
		RuleAlterAlias: seqOf(
			term(TokenAlter), term(TokenAlias),
			rule(RuleAliasName), optional(ifExists),
			term(TokenSet), term(TokenDatabase), term(TokenTarget), rule(RuleDatabaseName),
		),
		RuleShowDatabases: seqOf(term(TokenShow), oneOf(
			term(TokenDatabases),
			seqOf(term(TokenDatabase), rule(RuleDatabaseName)),
		)),
		RuleShowAliases: seqOf(
			term(TokenShow),
			oneOf(term(TokenAliases), seqOf(term(TokenAlias), rule(RuleAliasName))),
			term(TokenFor), oneOf(term(TokenDatabase), term(TokenDatabases)),
		),
		RuleStartDatabase: seqOf(term(TokenStart), term(TokenDatabase), rule(RuleDatabaseName)),
		RuleStopDatabase:  seqOf(term(TokenStop), term(TokenDatabase), rule(RuleDatabaseName)),
		RuleDatabaseName:  rule(RuleSymbolicAliasName),
		RuleAliasName:     rule(RuleSymbolicAliasName),
	}
}

// binary is shorthand for left-associative operator tiers:
// operand (op operand)*.
func binary(operand RuleKind, op gexpr) gexpr {
	return seqOf(rule(operand), zeroOrMore(seqOf(op, rule(operand))))
}

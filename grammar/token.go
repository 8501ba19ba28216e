package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// EOFMarker is the literal text of the synthetic end-of-stream token. A token
// stream whose final token does not carry this text was cut short by a lexical
// error (an unterminated string or escaped identifier).
const EOFMarker = "<EOF>"

// Token type constants - negative values as per participle convention.
const (
	TokenEOF   lexer.TokenType = lexer.EOF
	TokenError lexer.TokenType = -(iota + 2) //nolint:mnd // participle convention

	TokenWhitespace
	TokenComment
	TokenIdent
	TokenEscapedIdent // backtick-quoted identifiers
	TokenString
	TokenInt
	TokenFloat

	TokenDollar
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenColon
	TokenSemicolon
	TokenComma
	TokenDot
	TokenDotDot
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenCaret
	TokenEq
	TokenNeq
	TokenLt
	TokenGt
	TokenLe
	TokenGe
	TokenPlusEq
	TokenRegexMatch
	TokenPipe
	TokenAmp
	TokenBang

	tokenKeywordsBegin

	TokenAlias
	TokenAliases
	TokenAll
	TokenAlter
	TokenAnd
	TokenAs
	TokenAsc
	TokenAscending
	TokenBy
	TokenCall
	TokenCase
	TokenComposite
	TokenContains
	TokenCreate
	TokenDatabase
	TokenDatabases
	TokenDelete
	TokenDesc
	TokenDescending
	TokenDetach
	TokenDistinct
	TokenDrop
	TokenElse
	TokenEnd
	TokenEnds
	TokenExists
	TokenFalse
	TokenFor
	TokenIf
	TokenIn
	TokenIs
	TokenLimit
	TokenMatch
	TokenMerge
	TokenNot
	TokenNull
	TokenOn
	TokenOptional
	TokenOr
	TokenOrder
	TokenRemove
	TokenReturn
	TokenSet
	TokenShow
	TokenSkip
	TokenStart
	TokenStarts
	TokenStop
	TokenTarget
	TokenThen
	TokenTrue
	TokenUnion
	TokenUnwind
	TokenWhen
	TokenWhere
	TokenWith
	TokenXor
	TokenYield

	tokenKeywordsEnd
)

// IsKeyword reports whether t is a keyword token type.
func IsKeyword(t lexer.TokenType) bool {
	// Token values descend as the constant block grows.
	return t < tokenKeywordsBegin && t > tokenKeywordsEnd
}

// Vocabulary holds the token lookup tables: canonical display names and the
// keyword spelling -> token type mapping. It is built once at process start
// and never mutated afterwards.
type Vocabulary struct {
	names    map[lexer.TokenType]string
	keywords map[string]lexer.TokenType
}

var defaultVocabulary = buildVocabulary()

// DefaultVocabulary returns the shared, immutable vocabulary.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}

// DisplayName returns the canonical display text for a token type, or "" when
// the type has none (identifiers, literals, the end marker).
func (v *Vocabulary) DisplayName(t lexer.TokenType) string {
	return v.names[t]
}

// Keyword resolves an identifier spelling (case-insensitively, via its
// uppercase form) to a keyword token type.
func (v *Vocabulary) Keyword(upper string) (lexer.TokenType, bool) {
	t, ok := v.keywords[upper]

	return t, ok
}

func buildVocabulary() *Vocabulary {
	keywords := map[string]lexer.TokenType{
		"ALIAS":      TokenAlias,
		"ALIASES":    TokenAliases,
		"ALL":        TokenAll,
		"ALTER":      TokenAlter,
		"AND":        TokenAnd,
		"AS":         TokenAs,
		"ASC":        TokenAsc,
		"ASCENDING":  TokenAscending,
		"BY":         TokenBy,
		"CALL":       TokenCall,
		"CASE":       TokenCase,
		"COMPOSITE":  TokenComposite,
		"CONTAINS":   TokenContains,
		"CREATE":     TokenCreate,
		"DATABASE":   TokenDatabase,
		"DATABASES":  TokenDatabases,
		"DELETE":     TokenDelete,
		"DESC":       TokenDesc,
		"DESCENDING": TokenDescending,
		"DETACH":     TokenDetach,
		"DISTINCT":   TokenDistinct,
		"DROP":       TokenDrop,
		"ELSE":       TokenElse,
		"END":        TokenEnd,
		"ENDS":       TokenEnds,
		"EXISTS":     TokenExists,
		"FALSE":      TokenFalse,
		"FOR":        TokenFor,
		"IF":         TokenIf,
		"IN":         TokenIn,
		"IS":         TokenIs,
		"LIMIT":      TokenLimit,
		"MATCH":      TokenMatch,
		"MERGE":      TokenMerge,
		"NOT":        TokenNot,
		"NULL":       TokenNull,
		"ON":         TokenOn,
		"OPTIONAL":   TokenOptional,
		"OR":         TokenOr,
		"ORDER":      TokenOrder,
		"REMOVE":     TokenRemove,
		"RETURN":     TokenReturn,
		"SET":        TokenSet,
		"SHOW":       TokenShow,
		"SKIP":       TokenSkip,
		"START":      TokenStart,
		"STARTS":     TokenStarts,
		"STOP":       TokenStop,
		"TARGET":     TokenTarget,
		"THEN":       TokenThen,
		"TRUE":       TokenTrue,
		"UNION":      TokenUnion,
		"UNWIND":     TokenUnwind,
		"WHEN":       TokenWhen,
		"WHERE":      TokenWhere,
		"WITH":       TokenWith,
		"XOR":        TokenXor,
		"YIELD":      TokenYield,
	}

	names := map[lexer.TokenType]string{
		TokenDollar:     "$",
		TokenLParen:     "(",
		TokenRParen:     ")",
		TokenLBracket:   "[",
		TokenRBracket:   "]",
		TokenLBrace:     "{",
		TokenRBrace:     "}",
		TokenColon:      ":",
		TokenSemicolon:  ";",
		TokenComma:      ",",
		TokenDot:        ".",
		TokenDotDot:     "..",
		TokenPlus:       "+",
		TokenMinus:      "-",
		TokenStar:       "*",
		TokenSlash:      "/",
		TokenPercent:    "%",
		TokenCaret:      "^",
		TokenEq:         "=",
		TokenNeq:        "<>",
		TokenLt:         "<",
		TokenGt:         ">",
		TokenLe:         "<=",
		TokenGe:         ">=",
		TokenPlusEq:     "+=",
		TokenRegexMatch: "=~",
		TokenPipe:       "|",
		TokenAmp:        "&",
		TokenBang:       "!",
	}
	for spelling, t := range keywords {
		names[t] = spelling
	}

	return &Vocabulary{names: names, keywords: keywords}
}

// End returns the character offset just past the token's text.
func End(tok lexer.Token) int {
	return tok.Pos.Offset + len(tok.Value)
}

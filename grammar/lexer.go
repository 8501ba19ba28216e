package grammar

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Lex tokenizes a Cypher fragment. It never fails: unknown characters become
// TokenError tokens and lexing continues. Whitespace and comments are kept in
// the stream; position-based heuristics in the completion engine depend on
// them. The final token is the synthetic end marker (text EOFMarker) unless
// the input ends inside an unterminated string or escaped identifier, in
// which case the unterminated token is last and no end marker is appended.
func Lex(input string) []lexer.Token {
	l := &lexerState{input: input, line: 1, col: 1}

	var tokens []lexer.Token

	for !l.eof() {
		tok, terminated := l.next()
		tokens = append(tokens, tok)

		if !terminated {
			return tokens
		}
	}

	return append(tokens, lexer.Token{Type: TokenEOF, Value: EOFMarker, Pos: l.pos()})
}

// lexerState holds the state for lexing.
type lexerState struct {
	input  string
	offset int
	line   int
	col    int
}

// next scans one token. The second return value is false when the token was
// cut short by the end of input (unterminated string or escaped identifier).
func (l *lexerState) next() (lexer.Token, bool) {
	start := l.pos()
	r := l.peek()

	// Whitespace
	if isSpace(r) {
		for !l.eof() && isSpace(l.peek()) {
			l.advance()
		}

		return l.token(TokenWhitespace, start), true
	}

	// Comments
	if r == '/' && l.peekAt(1) == '/' {
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}

		return l.token(TokenComment, start), true
	}

	if r == '/' && l.peekAt(1) == '*' {
		l.advance()
		l.advance()

		for !l.eof() {
			if l.peek() == '*' && l.peekAt(1) == '/' {
				l.advance()
				l.advance()

				return l.token(TokenComment, start), true
			}

			l.advance()
		}

		return l.token(TokenComment, start), true
	}

	// Escaped identifier
	if r == '`' {
		l.advance()

		for !l.eof() {
			if l.peek() == '`' {
				l.advance()

				return l.token(TokenEscapedIdent, start), true
			}

			l.advance()
		}

		return l.token(TokenEscapedIdent, start), false
	}

	// String
	if r == '"' || r == '\'' {
		return l.scanString(start, r)
	}

	// Number
	if isDigit(r) {
		return l.scanNumber(start), true
	}

	// Identifier or keyword
	if isIdentStart(r) {
		l.advance()

		for !l.eof() && isIdentContinue(l.peek()) {
			l.advance()
		}

		value := l.input[start.Offset:l.offset]
		if t, ok := defaultVocabulary.Keyword(strings.ToUpper(value)); ok {
			return l.token(t, start), true
		}

		return l.token(TokenIdent, start), true
	}

	// Multi-character operators (check before single-char)
	for _, op := range multiCharOps {
		if strings.HasPrefix(l.input[l.offset:], op.text) {
			for range len(op.text) {
				l.advance()
			}

			return l.token(op.typ, start), true
		}
	}

	l.advance()

	if t, ok := singleCharOps[r]; ok {
		return l.token(t, start), true
	}

	return l.token(TokenError, start), true
}

var multiCharOps = []struct {
	text string
	typ  lexer.TokenType
}{
	{"<>", TokenNeq},
	{"<=", TokenLe},
	{">=", TokenGe},
	{"+=", TokenPlusEq},
	{"=~", TokenRegexMatch},
	{"..", TokenDotDot},
}

var singleCharOps = map[rune]lexer.TokenType{
	'$': TokenDollar,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
	':': TokenColon,
	';': TokenSemicolon,
	',': TokenComma,
	'.': TokenDot,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'^': TokenCaret,
	'=': TokenEq,
	'<': TokenLt,
	'>': TokenGt,
	'|': TokenPipe,
	'&': TokenAmp,
	'!': TokenBang,
}

func (l *lexerState) pos() lexer.Position {
	return lexer.Position{
		Offset: l.offset,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *lexerState) eof() bool {
	return l.offset >= len(l.input)
}

func (l *lexerState) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])

	return r
}

func (l *lexerState) peekAt(n int) rune {
	off := l.offset + n
	if off >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[off:])

	return r
}

func (l *lexerState) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexerState) token(typ lexer.TokenType, start lexer.Position) lexer.Token {
	return lexer.Token{
		Type:  typ,
		Value: l.input[start.Offset:l.offset],
		Pos:   start,
	}
}

func (l *lexerState) scanString(start lexer.Position, quote rune) (lexer.Token, bool) {
	l.advance() // opening quote

	for !l.eof() {
		ch := l.peek()
		if ch == '\\' && l.peekAt(1) != 0 {
			l.advance() // backslash
			l.advance() // escaped char

			continue
		}

		if ch == quote {
			l.advance() // closing quote

			return l.token(TokenString, start), true
		}

		l.advance()
	}

	return l.token(TokenString, start), false
}

func (l *lexerState) scanNumber(start lexer.Position) lexer.Token {
	typ := TokenInt

	for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}

	// Fractional part (".." is the range operator, not a fraction)
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		typ = TokenFloat

		l.advance()

		for !l.eof() && isDigit(l.peek()) {
			l.advance()
		}
	}

	// Exponent
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			typ = TokenFloat

			l.advance()

			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}

			for !l.eof() && isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	return l.token(typ, start)
}

// Character helpers.

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

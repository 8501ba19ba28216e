package completion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/grammar"
)

// Caret is a zero-based document position, line first, matching the LSP
// convention.
type Caret struct {
	Line   uint32
	Column uint32
}

// Engine resolves completions for Cypher documents. The zero value is not
// usable; construct with New. An Engine is stateless and safe for concurrent
// use.
type Engine struct {
	vocab   *grammar.Vocabulary
	collect grammar.CollectConfig
}

// New returns an Engine wired to the default grammar vocabulary.
func New() *Engine {
	return &Engine{
		vocab: grammar.DefaultVocabulary(),
		collect: grammar.CollectConfig{
			// The name rule covers both its escaped and unescaped
			// alternatives, so one candidate per position suffices.
			Preferred: map[grammar.RuleKind]bool{
				grammar.RuleSymbolicNameString:      true,
				grammar.RuleStringLiteral:           true,
				grammar.RuleSymbolicLabelNameString: true,
				grammar.RuleSymbolicAliasName:       true,
			},
			// Only keyword tokens are worth suggesting verbatim.
			Ignored: func(t lexer.TokenType) bool { return !grammar.IsKeyword(t) },
		},
	}
}

// Resolve computes completion items for the document at the caret. The
// second return value is false when the engine has no opinion, which callers
// should treat differently from an empty item list: no opinion means the
// client may apply its own fallback, while an empty list is a definite
// "nothing completes here".
func (e *Engine) Resolve(document string, caret Caret, schema *cyls.Schema) ([]cyls.Item, bool) {
	if schema == nil {
		schema = &cyls.Schema{}
	}

	text := document[:offsetAt(document, caret)]
	res := grammar.Parse(text)
	if len(res.Tokens) == 0 {
		return nil, false
	}
	if res.Tokens[len(res.Tokens)-1].Type != grammar.TokenEOF {
		// The statement is broken beyond recovery, e.g. the caret sits
		// after an unterminated string.
		return []cyls.Item{}, true
	}

	caretToken := len(res.Tokens) - 2
	if caretToken < 0 {
		caretToken = 0
	}

	cands := grammar.CollectCandidates(res, caretToken, e.collect)
	var items []cyls.Item
	for _, cand := range cands.Rules {
		items = append(items, classify(cand, res, schema)...)
	}
	for _, cand := range cands.Tokens {
		items = append(items, formatToken(cand, e.vocab)...)
	}
	if len(items) > 0 {
		return filterByPrefix(items, identifierPrefix(text)), true
	}

	if items, ok := fallback(res, schema); ok {
		return items, true
	}

	return fallbackWithFiller(text, schema)
}

// offsetAt converts a line/column caret to a byte offset, clamping to the
// document. Columns count runes.
func offsetAt(document string, caret Caret) int {
	offset := 0
	for line := uint32(0); line < caret.Line; line++ {
		nl := strings.IndexByte(document[offset:], '\n')
		if nl < 0 {
			return len(document)
		}
		offset += nl + 1
	}
	for col := uint32(0); col < caret.Column; col++ {
		r, size := utf8.DecodeRuneInString(document[offset:])
		if size == 0 || r == '\n' {
			break
		}
		offset += size
	}

	return offset
}

// identifierPrefix returns the run of identifier characters immediately
// before the caret, empty when the caret follows whitespace or punctuation.
func identifierPrefix(text string) string {
	end := len(text)
	start := end
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		start -= size
	}

	return text[start:end]
}

// filterByPrefix drops items that cannot extend what the user has typed.
// Keywords match case-insensitively, labels and relationship types match
// exactly, and function or value items always pass since their candidate
// rules already account for the typed text.
func filterByPrefix(items []cyls.Item, prefix string) []cyls.Item {
	if prefix == "" {
		return items
	}
	upper := strings.ToUpper(prefix)
	filtered := make([]cyls.Item, 0, len(items))
	for _, item := range items {
		switch item.Kind {
		case cyls.KindKeyword:
			if !strings.HasPrefix(strings.ToUpper(item.Label), upper) {
				continue
			}
		case cyls.KindTypeParameter:
			if !strings.HasPrefix(item.Label, prefix) {
				continue
			}
		}
		filtered = append(filtered, item)
	}

	return filtered
}

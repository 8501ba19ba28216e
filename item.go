package cyls

// ItemKind classifies a completion item. The mapping to editor-protocol kinds
// is a fixed contract consumed by the lsp package.
type ItemKind uint8

// Completion item kinds.
const (
	// KindKeyword is a grammar keyword such as MATCH or OPTIONAL MATCH.
	KindKeyword ItemKind = iota + 1

	// KindTypeParameter is a schema-derived type-like name: a node label or
	// a relationship type.
	KindTypeParameter

	// KindFunction is a callable name: a procedure or a function.
	KindFunction

	// KindValue is a catalog value name: a database or an alias.
	KindValue
)

// String returns the kind's name.
func (k ItemKind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindTypeParameter:
		return "typeParameter"
	case KindFunction:
		return "function"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

// Item is a single completion proposal.
type Item struct {
	Label string
	Kind  ItemKind
}

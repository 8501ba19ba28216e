package completion

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/grammar"
)

func TestFormatToken_SingleKeyword(t *testing.T) {
	items := formatToken(grammar.CandidateToken{Token: grammar.TokenMatch}, grammar.DefaultVocabulary())

	assert.Equal(t, []cyls.Item{{Label: "MATCH", Kind: cyls.KindKeyword}}, items)
}

func TestFormatToken_MandatoryFollowUp(t *testing.T) {
	cand := grammar.CandidateToken{
		Token:    grammar.TokenOrder,
		FollowUp: []lexer.TokenType{grammar.TokenBy},
	}

	items := formatToken(cand, grammar.DefaultVocabulary())

	assert.Equal(t, []cyls.Item{{Label: "ORDER BY", Kind: cyls.KindKeyword}}, items)
}

func TestFormatToken_OptionalFollowUp(t *testing.T) {
	cand := grammar.CandidateToken{
		Token:    grammar.TokenUnion,
		FollowUp: []lexer.TokenType{grammar.TokenAll},
		Optional: true,
	}

	items := formatToken(cand, grammar.DefaultVocabulary())

	assert.Equal(t, []cyls.Item{
		{Label: "UNION", Kind: cyls.KindKeyword},
		{Label: "UNION ALL", Kind: cyls.KindKeyword},
	}, items)
}

func TestFormatToken_NoDisplayName(t *testing.T) {
	items := formatToken(grammar.CandidateToken{Token: grammar.TokenIdent}, grammar.DefaultVocabulary())

	assert.Nil(t, items)
}

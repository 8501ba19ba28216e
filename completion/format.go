package completion

import (
	"strings"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/grammar"
)

// formatToken turns a token candidate into keyword items. Multi-token
// phrases such as ORDER BY become a single label; a trailing optional
// follow-up token yields both the bare and the extended phrase, as with
// UNION and UNION ALL. Tokens without a display name produce nothing.
func formatToken(cand grammar.CandidateToken, vocab *grammar.Vocabulary) []cyls.Item {
	name := vocab.DisplayName(cand.Token)
	if name == "" {
		return nil
	}
	if len(cand.FollowUp) == 0 {
		return []cyls.Item{{Label: name, Kind: cyls.KindKeyword}}
	}

	parts := []string{name}
	for _, follow := range cand.FollowUp {
		followName := vocab.DisplayName(follow)
		if followName == "" {
			break
		}
		parts = append(parts, followName)
	}
	phrase := strings.Join(parts, " ")
	if !cand.Optional || len(parts) < 2 {
		return []cyls.Item{{Label: phrase, Kind: cyls.KindKeyword}}
	}

	// The last follow-up token is optional: offer the phrase with and
	// without it.
	return []cyls.Item{
		{Label: strings.Join(parts[:len(parts)-1], " "), Kind: cyls.KindKeyword},
		{Label: phrase, Kind: cyls.KindKeyword},
	}
}

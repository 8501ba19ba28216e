package grammar_test

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cyls/grammar"
)

func collectAtEnd(t *testing.T, input string) *grammar.Candidates {
	t.Helper()

	res := grammar.Parse(input)
	caret := len(res.Tokens) - 2
	if caret < 0 {
		caret = 0
	}

	return grammar.CollectCandidates(res, caret, grammar.CollectConfig{
		Preferred: map[grammar.RuleKind]bool{
			grammar.RuleSymbolicNameString:      true,
			grammar.RuleStringLiteral:           true,
			grammar.RuleSymbolicLabelNameString: true,
			grammar.RuleSymbolicAliasName:       true,
		},
		Ignored: func(typ lexer.TokenType) bool { return !grammar.IsKeyword(typ) },
	})
}

func hasToken(cands *grammar.Candidates, typ lexer.TokenType) bool {
	_, ok := findToken(cands, typ)

	return ok
}

func findToken(cands *grammar.Candidates, typ lexer.TokenType) (grammar.CandidateToken, bool) {
	for _, cand := range cands.Tokens {
		if cand.Token == typ {
			return cand, true
		}
	}

	return grammar.CandidateToken{}, false
}

func findRule(cands *grammar.Candidates, kind grammar.RuleKind) (grammar.CandidateRule, bool) {
	for _, cand := range cands.Rules {
		if cand.Rule == kind {
			return cand, true
		}
	}

	return grammar.CandidateRule{}, false
}

func stackHas(cand grammar.CandidateRule, kind grammar.RuleKind) bool {
	for _, k := range cand.Stack {
		if k == kind {
			return true
		}
	}

	return false
}

func TestCollectCandidates_StatementStart(t *testing.T) {
	cands := collectAtEnd(t, "")

	for _, typ := range []lexer.TokenType{
		grammar.TokenMatch, grammar.TokenOptional, grammar.TokenCreate,
		grammar.TokenMerge, grammar.TokenUnwind, grammar.TokenCall,
		grammar.TokenWith, grammar.TokenReturn, grammar.TokenShow,
		grammar.TokenDrop, grammar.TokenAlter, grammar.TokenStart,
		grammar.TokenStop,
	} {
		if !hasToken(cands, typ) {
			t.Errorf("missing candidate token %v", typ)
		}
	}
}

func TestCollectCandidates_AfterMatchPattern(t *testing.T) {
	cands := collectAtEnd(t, "MATCH (n:Person) ")

	if !hasToken(cands, grammar.TokenWhere) {
		t.Error("missing WHERE")
	}
	if !hasToken(cands, grammar.TokenReturn) {
		t.Error("missing RETURN")
	}
	if !hasToken(cands, grammar.TokenWith) {
		t.Error("missing WITH")
	}
	if !hasToken(cands, grammar.TokenUnion) {
		t.Error("missing UNION")
	}
}

func TestCollectCandidates_FollowUpSequences(t *testing.T) {
	cands := collectAtEnd(t, "MATCH (n) RETURN n ")

	order, ok := func() (grammar.CandidateToken, bool) {
		for _, cand := range cands.Tokens {
			if cand.Token == grammar.TokenOrder {
				return cand, true
			}
		}

		return grammar.CandidateToken{}, false
	}()
	if !ok {
		t.Fatal("missing ORDER")
	}
	if len(order.FollowUp) != 1 || order.FollowUp[0] != grammar.TokenBy {
		t.Fatalf("ORDER follow-up = %v, want [BY]", order.FollowUp)
	}
	if order.Optional {
		t.Fatal("BY is not optional after ORDER")
	}

	union, _ := func() (grammar.CandidateToken, bool) {
		for _, cand := range cands.Tokens {
			if cand.Token == grammar.TokenUnion {
				return cand, true
			}
		}

		return grammar.CandidateToken{}, false
	}()
	if len(union.FollowUp) != 1 || union.FollowUp[0] != grammar.TokenAll || !union.Optional {
		t.Fatalf("UNION follow-up = %v optional=%v, want optional [ALL]", union.FollowUp, union.Optional)
	}
}

func TestCollectCandidates_LabelPosition(t *testing.T) {
	cands := collectAtEnd(t, "MATCH (n:P")

	cand, ok := findRule(cands, grammar.RuleSymbolicLabelNameString)
	if !ok {
		t.Fatal("missing label name rule candidate")
	}
	if !stackHas(cand, grammar.RuleNodePattern) {
		t.Fatalf("stack %v should include the node pattern", cand.Stack)
	}
	if !stackHas(cand, grammar.RuleLabelExpression) {
		t.Fatalf("stack %v should include the label expression", cand.Stack)
	}
}

func TestCollectCandidates_RelationshipTypePosition(t *testing.T) {
	cands := collectAtEnd(t, "MATCH (a)-[r:K")

	cand, ok := findRule(cands, grammar.RuleSymbolicLabelNameString)
	if !ok {
		t.Fatal("missing label name rule candidate")
	}
	if !stackHas(cand, grammar.RuleRelationshipDetail) {
		t.Fatalf("stack %v should include the relationship detail", cand.Stack)
	}
	if stackHas(cand, grammar.RuleNodePattern) {
		t.Fatalf("stack %v should not include a node pattern", cand.Stack)
	}
}

func TestCollectCandidates_ProcedureName(t *testing.T) {
	cands := collectAtEnd(t, "CALL db")

	cand, ok := findRule(cands, grammar.RuleSymbolicNameString)
	if !ok {
		t.Fatal("missing name rule candidate")
	}
	if !stackHas(cand, grammar.RuleProcedureName) {
		t.Fatalf("stack %v should include the procedure name", cand.Stack)
	}
}

func TestCollectCandidates_AliasNameStart(t *testing.T) {
	cands := collectAtEnd(t, "SHOW DATABASE f")

	cand, ok := findRule(cands, grammar.RuleSymbolicAliasName)
	if !ok {
		t.Fatal("missing alias name rule candidate")
	}
	if !stackHas(cand, grammar.RuleShowDatabases) {
		t.Fatalf("stack %v should include show databases", cand.Stack)
	}

	res := grammar.Parse("SHOW DATABASE f")
	if cand.StartToken >= len(res.Tokens) || res.Tokens[cand.StartToken].Value != "f" {
		t.Fatalf("StartToken = %d, want index of %q", cand.StartToken, "f")
	}
}

func TestCollectCandidates_ConflictingFollowUpsReportBareToken(t *testing.T) {
	cands := collectAtEnd(t, "")

	// CREATE opens a pattern clause but also CREATE DATABASE, CREATE
	// COMPOSITE DATABASE and CREATE ALIAS; DROP and ALTER likewise split
	// between DATABASE and ALIAS. None of them has a single continuation,
	// so each must surface as the bare keyword.
	for _, typ := range []lexer.TokenType{grammar.TokenCreate, grammar.TokenDrop, grammar.TokenAlter} {
		cand, ok := findToken(cands, typ)
		if !ok {
			t.Fatalf("missing candidate for token %d", typ)
		}
		if len(cand.FollowUp) != 0 || cand.Optional {
			t.Fatalf("token %d should be bare, got follow-up %v (optional %v)",
				typ, cand.FollowUp, cand.Optional)
		}
	}

	// A keyword with a single continuation keeps it.
	cand, ok := findToken(cands, grammar.TokenStart)
	if !ok {
		t.Fatal("missing START candidate")
	}
	if len(cand.FollowUp) != 1 || cand.FollowUp[0] != grammar.TokenDatabase {
		t.Fatalf("START follow-up = %v, want [DATABASE]", cand.FollowUp)
	}
}

func TestCollectCandidates_PreferredRuleSuppressesToken(t *testing.T) {
	cands := collectAtEnd(t, "MATCH (n:P")

	// The identifier token check inside the preferred rule must not leak
	// through as a token candidate.
	if hasToken(cands, grammar.TokenIdent) {
		t.Fatal("identifier token should be reported as a rule candidate")
	}
}

package completion_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/completion"
)

func testSchema() *cyls.Schema {
	return &cyls.Schema{
		Labels:            []string{"Cat", "Person", "Dog"},
		RelationshipTypes: []string{"KNOWS", "ACTED_IN"},
		Procedures: map[string]cyls.Signature{
			"foo.bar":       {},
			"dbms.info":     {},
			"somethingElse": {},
			"xx.yy":         {},
			"db.info":       {},
		},
		Functions: map[string]cyls.Signature{
			"toUpper": {},
			"toLower": {},
			"size":    {},
		},
		Databases: []string{"neo4j", "system", "movies"},
		Aliases:   []string{"films"},
	}
}

// endOf places the caret at the end of a single-line document.
func endOf(doc string) completion.Caret {
	return completion.Caret{Line: 0, Column: uint32(len(doc))}
}

func labels(items []cyls.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Label)
	}

	return out
}

func ofKind(items []cyls.Item, kind cyls.ItemKind) []string {
	var out []string
	for _, item := range items {
		if item.Kind == kind {
			out = append(out, item.Label)
		}
	}

	return out
}

func TestResolve_KeywordPrefix(t *testing.T) {
	engine := completion.New()

	tests := []struct {
		doc         string
		wantInclude []string
		wantExclude []string
	}{
		{"M", []string{"MATCH", "MERGE"}, []string{"OPTIONAL", "RETURN"}},
		{"OP", []string{"OPTIONAL MATCH"}, []string{"OPTIONAL"}},
		{"CR", []string{"CREATE"}, nil},
		{"C", []string{"CREATE", "CALL"}, nil},
		{"MATCH (n:Person) W", []string{"WHERE", "WITH"}, []string{"RETURN"}},
	}

	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			items, ok := engine.Resolve(tt.doc, endOf(tt.doc), testSchema())
			require.True(t, ok, "expected an opinion")

			got := labels(items)
			for _, want := range tt.wantInclude {
				assert.Contains(t, got, want)
			}
			for _, not := range tt.wantExclude {
				assert.NotContains(t, got, not)
			}
		})
	}
}

func TestResolve_LabelPrefix(t *testing.T) {
	engine := completion.New()

	doc := "MATCH (n:P"
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())
	require.True(t, ok)

	assert.Equal(t, []string{"Person"}, ofKind(items, cyls.KindTypeParameter))
	assert.Empty(t, ofKind(items, cyls.KindKeyword))
}

func TestResolve_RelationshipTypePrefix(t *testing.T) {
	engine := completion.New()

	doc := "MATCH (a)-[r:K"
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())
	require.True(t, ok)

	assert.Equal(t, []string{"KNOWS"}, ofKind(items, cyls.KindTypeParameter))
}

func TestResolve_DanglingRelationshipColon(t *testing.T) {
	engine := completion.New()

	// The colon sits at the caret, so the candidate set records the name
	// slot inside the relationship detail and the types classify directly.
	doc := "MATCH (a)-[:"
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())
	require.True(t, ok)

	assert.ElementsMatch(t, []string{"KNOWS", "ACTED_IN"}, ofKind(items, cyls.KindTypeParameter))
}

func TestResolve_NodeColonHasNoOpinion(t *testing.T) {
	engine := completion.New()

	// With the colon at the caret the label slot has not opened yet, and
	// the filler retry only recovers relationship positions.
	doc := "MATCH (n:"
	_, ok := engine.Resolve(doc, endOf(doc), testSchema())
	assert.False(t, ok)
}

func TestResolve_ProcedureNamesNotPrefixFiltered(t *testing.T) {
	engine := completion.New()

	doc := "CALL db"
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())
	require.True(t, ok)

	got := ofKind(items, cyls.KindFunction)
	assert.Contains(t, got, "dbms.info")
	assert.Contains(t, got, "db.info")
	assert.Contains(t, got, "somethingElse")
	assert.Len(t, got, 5)
}

func TestResolve_AsAfterProjection(t *testing.T) {
	engine := completion.New()

	doc := "MATCH (n) RETURN n A"
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())
	require.True(t, ok)

	assert.Contains(t, labels(items), "AS")
}

func TestResolve_MultiStatement(t *testing.T) {
	engine := completion.New()

	doc := "MATCH (a) RETURN a; M"
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())
	require.True(t, ok)

	got := labels(items)
	assert.Contains(t, got, "MATCH")
	assert.NotContains(t, got, "AS")
}

func TestResolve_DatabaseName(t *testing.T) {
	engine := completion.New()

	doc := "SHOW DATABASE f"
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())
	require.True(t, ok)

	assert.ElementsMatch(t,
		[]string{"neo4j", "system", "movies", "films"},
		ofKind(items, cyls.KindValue))
}

func TestResolve_AliasOnlyContext(t *testing.T) {
	engine := completion.New()

	doc := "DROP ALIAS f"
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())
	require.True(t, ok)

	assert.Equal(t, []string{"films"}, ofKind(items, cyls.KindValue))
}

func TestResolve_CompletedNameGetsNoCatalog(t *testing.T) {
	engine := completion.New()

	// "movies" is already typed in full and followed by a space; the alias
	// heuristic must discard the continuation candidate.
	doc := "SHOW DATABASE movies "
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())

	assert.False(t, ok)
	assert.Empty(t, items)
}

func TestResolve_CreationNamesNothing(t *testing.T) {
	engine := completion.New()

	doc := "CREATE DATABASE m"
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())
	if ok {
		assert.Empty(t, ofKind(items, cyls.KindValue))
	}
}

func TestResolve_UnterminatedString(t *testing.T) {
	engine := completion.New()

	doc := `MATCH (n) WHERE n.name = "ab`
	items, ok := engine.Resolve(doc, endOf(doc), testSchema())

	assert.True(t, ok)
	assert.Empty(t, items)
}

func TestResolve_EmptyDocument(t *testing.T) {
	engine := completion.New()

	items, ok := engine.Resolve("", completion.Caret{}, testSchema())
	require.True(t, ok)

	got := labels(items)
	assert.Contains(t, got, "MATCH")
	assert.Contains(t, got, "CREATE")
	assert.Contains(t, got, "RETURN")
	assert.Contains(t, got, "SHOW")
}

func TestResolve_NilSchema(t *testing.T) {
	engine := completion.New()

	items, ok := engine.Resolve("M", endOf("M"), nil)
	require.True(t, ok)
	assert.Contains(t, labels(items), "MATCH")
}

func TestResolve_CaretMidDocument(t *testing.T) {
	engine := completion.New()

	// Caret after "RETURN n A", before the trailing clause on line 2.
	doc := "MATCH (n) RETURN n A\nLIMIT 10"
	items, ok := engine.Resolve(doc, completion.Caret{Line: 0, Column: 20}, testSchema())
	require.True(t, ok)

	assert.Contains(t, labels(items), "AS")
}

func TestResolve_Idempotent(t *testing.T) {
	engine := completion.New()

	doc := "MATCH (n:Person) "
	first, ok1 := engine.Resolve(doc, endOf(doc), testSchema())
	second, ok2 := engine.Resolve(doc, endOf(doc), testSchema())

	assert.Equal(t, ok1, ok2)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("results differ between identical calls:\n%s", diff)
	}
}

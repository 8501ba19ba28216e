package grammar_test

import (
	"testing"

	"github.com/rlch/cyls/grammar"
)

// hasKind reports whether the tree contains a node of the given kind.
func hasKind(n *grammar.Node, kind grammar.RuleKind) bool {
	if n.Kind == kind {
		return true
	}
	for _, child := range n.Children {
		if hasKind(child, kind) {
			return true
		}
	}

	return false
}

func TestParse_CompleteQueries(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"simple return", "RETURN 42"},
		{"return string", `RETURN "hello"`},
		{"return float", "RETURN 3.14"},
		{"return bool", "RETURN true"},
		{"return list", "RETURN [1, 2, 3]"},
		{"return map", `RETURN {name: "test", age: 25}`},
		{"simple match", "MATCH (n) RETURN n"},
		{"match with label", "MATCH (u:User) RETURN u"},
		{"match with properties", `MATCH (u:User {name: "Alice"}) RETURN u`},
		{"match with parameter", "MATCH (u:User {id: $userId}) RETURN u"},
		{"property access", "MATCH (u:User) RETURN u.name"},
		{"function call", "MATCH (u:User) RETURN count(u)"},
		{"count star", "MATCH (u:User) RETURN count(*)"},
		{"namespaced function", `RETURN apoc.text.join(["a", "b"], ",")`},
		{"arithmetic", "RETURN 1 + 2 * 3"},
		{"comparison", "RETURN 1 < 2"},
		{"boolean logic", "RETURN true AND false OR NOT true"},
		{"regex match", `MATCH (u) WHERE u.name =~ "A.*" RETURN u`},
		{"case expression", "RETURN CASE WHEN 1 > 0 THEN 'positive' ELSE 'non-positive' END"},
		{"order by", "MATCH (u:User) RETURN u.name ORDER BY u.name DESC"},
		{"skip limit", "MATCH (u:User) RETURN u SKIP 10 LIMIT 5"},
		{"with clause", "MATCH (u:User) WITH u.name AS name RETURN name"},
		{"with where", "MATCH (u) WITH u WHERE u.age > 21 RETURN u"},
		{"create", "CREATE (n:Person {name: 'Alice'})"},
		{"relationship pattern", "MATCH (a)-[:KNOWS]->(b) RETURN a, b"},
		{"undirected relationship", "MATCH (a)-[r]-(b) RETURN r"},
		{"incoming relationship", "MATCH (a)<-[:KNOWS]-(b) RETURN a"},
		{"variable length", "MATCH (a)-[:KNOWS*1..3]->(b) RETURN b"},
		{"label disjunction", "MATCH (n:Person|Company) RETURN n"},
		{"label conjunction", "MATCH (n:Person&Employee) RETURN n"},
		{"label negation", "MATCH (n:!Archived) RETURN n"},
		{"optional match", "OPTIONAL MATCH (u:User) RETURN u"},
		{"unwind", "UNWIND [1, 2, 3] AS x RETURN x"},
		{"is null", "MATCH (u:User) WHERE u.email IS NULL RETURN u"},
		{"is not null", "MATCH (u:User) WHERE u.email IS NOT NULL RETURN u"},
		{"in list", "RETURN 1 IN [1, 2, 3]"},
		{"starts with", `MATCH (u) WHERE u.name STARTS WITH "he" RETURN u`},
		{"ends with", `MATCH (u) WHERE u.name ENDS WITH "lo" RETURN u`},
		{"contains", `MATCH (u) WHERE u.name CONTAINS "ll" RETURN u`},
		{"return distinct", "MATCH (u:User) RETURN DISTINCT u.name"},
		{"set property", "MATCH (u:User) SET u.name = $name RETURN u"},
		{"set add assign", "MATCH (u:User) SET u += $props RETURN u"},
		{"set label", "MATCH (u) SET u:Admin RETURN u"},
		{"remove label", "MATCH (u) REMOVE u:Admin RETURN u"},
		{"remove property", "MATCH (u) REMOVE u.temp RETURN u"},
		{"merge on create", "MERGE (u:User {id: $id}) ON CREATE SET u.name = $name RETURN u"},
		{"merge on match", "MERGE (u:User {id: $id}) ON MATCH SET u.updated = $at RETURN u"},
		{"delete", "MATCH (u:User) DELETE u"},
		{"detach delete", "MATCH (u:User) DETACH DELETE u"},
		{"call procedure", "CALL db.labels()"},
		{"call with yield", "CALL db.labels() YIELD label RETURN label"},
		{"call yield star", "CALL db.labels() YIELD *"},
		{"union", "MATCH (a:A) RETURN a UNION MATCH (b:B) RETURN b"},
		{"union all", "MATCH (a:A) RETURN a UNION ALL MATCH (b:B) RETURN b"},
		{"multiple statements", "MATCH (n) RETURN n; MATCH (m) RETURN m"},
		{"trailing semicolon", "RETURN 1;"},
		{"create database", "CREATE DATABASE movies"},
		{"create database if not exists", "CREATE DATABASE movies IF NOT EXISTS"},
		{"create composite database", "CREATE COMPOSITE DATABASE inventory"},
		{"create alias", "CREATE ALIAS films FOR DATABASE movies"},
		{"drop database", "DROP DATABASE movies"},
		{"drop alias", "DROP ALIAS films FOR DATABASE"},
		{"alter alias", "ALTER ALIAS films SET DATABASE TARGET movies"},
		{"show databases", "SHOW DATABASES"},
		{"show database", "SHOW DATABASE movies"},
		{"show aliases", "SHOW ALIASES FOR DATABASE"},
		{"start database", "START DATABASE movies"},
		{"stop database", "STOP DATABASE movies"},
		{"dotted database name", "CREATE DATABASE some.remote.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := grammar.Parse(tt.query)
			if res.Tree == nil {
				t.Fatalf("Parse(%q) returned nil tree", tt.query)
			}
			if hasKind(res.Tree, grammar.RuleError) {
				t.Fatalf("Parse(%q) left unplaced tokens", tt.query)
			}
		})
	}
}

func TestParse_PartialInputKeepsPrefix(t *testing.T) {
	res := grammar.Parse("MATCH (n:Person) WHERE ")

	if !hasKind(res.Tree, grammar.RuleMatchClause) {
		t.Fatal("expected a match clause node")
	}
	if !hasKind(res.Tree, grammar.RuleWhereClause) {
		t.Fatal("expected a partial where clause node")
	}
	if hasKind(res.Tree, grammar.RuleError) {
		t.Fatal("partial input should stall, not error")
	}
}

func TestParse_DanglingRelationshipColon(t *testing.T) {
	res := grammar.Parse("MATCH (a)-[r:")

	if !hasKind(res.Tree, grammar.RuleRelationshipDetail) {
		t.Fatal("expected a relationship detail node")
	}
}

func TestParse_GarbageGoesToErrorNode(t *testing.T) {
	res := grammar.Parse("RETURN 1 ~ ~ ~")

	if !hasKind(res.Tree, grammar.RuleError) {
		t.Fatal("expected an error node for trailing garbage")
	}
}

func TestParse_Text(t *testing.T) {
	res := grammar.Parse("RETURN toUpper /* c */ (")
	var fn *grammar.Node
	var find func(n *grammar.Node)
	find = func(n *grammar.Node) {
		if n.Kind == grammar.RuleFunctionInvocation {
			fn = n
		}
		for _, child := range n.Children {
			find(child)
		}
	}
	find(res.Tree)
	if fn == nil {
		t.Fatal("expected a function invocation node")
	}
	if got := res.Text(fn); got != "toUpper(" {
		t.Fatalf("Text() = %q, want %q", got, "toUpper(")
	}
}

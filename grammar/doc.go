// Package grammar lexes and parses Cypher statements for editor tooling.
//
// The grammar is a data table of productions interpreted in two ways: Parse
// builds an error-tolerant parse tree from whatever text it is given, and
// CollectCandidates walks the same table to gather the rules and tokens that
// could appear at a caret. Both are best-effort by construction; neither
// returns an error for malformed input.
package grammar

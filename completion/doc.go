// Package completion resolves completion items for Cypher text.
//
// The engine works in two stages. The primary stage collects grammar
// candidates at the caret and classifies them against the database schema:
// preferred name rules become label, relationship type, function, or
// database name items, and remaining token candidates become keyword items.
// When that yields nothing, a structural fallback inspects the parse tree
// around the caret, with one retry on a filler character for positions that
// only parse once another identifier character arrives.
package completion

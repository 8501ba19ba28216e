// Package cyls provides editor language support for the Cypher graph query
// language: an error-tolerant parser, a grammar-candidate collector, and a
// context-sensitive completion engine, plus an LSP server wiring them to
// editors.
//
// The shared data types live here: the schema snapshot a completion request
// reads from, the completion item shape handed to the editor layer, and the
// .cyls.yaml configuration.
package cyls

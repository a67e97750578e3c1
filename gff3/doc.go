// Package gff3 parses GFF3 text into an in-memory feature forest, then
// validates and transforms that forest against a user-declared rule set.
//
// The pipeline runs in three synchronous phases over one shared graph: a
// builder reads lines from a LineSource and assembles a tree of *Node
// values inside a *Store, an expectation engine (Config.AddExpectation)
// checks and repairs the tree's structure, and an emitter renders nodes (or
// subtrees) back to GFF3 text.
//
// The package never interprets biological semantics beyond an elementary
// codon-phase modulo, never fetches reference sequences, and does not
// provide random-access persistence.
package gff3

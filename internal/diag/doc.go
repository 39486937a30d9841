// Package diag defines the diagnostic value produced when a pattern fails to
// parse: a message, a 0-based byte offset into the pattern source, and an
// optional instructional hint. A Diagnostic renders itself either as a
// human-readable block with source context and a caret, or as an LSP
// diagnostic for editor integration.
//
// Parsing is fail-fast: at most one Diagnostic is ever produced per parse, so
// there is no collection or deduplication layer here.
package diag

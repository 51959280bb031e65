// Package textutil provides text helpers for show titles and file names.
//
// Titles are compared through token fingerprints: text is lowercased, split
// on anything that is not a letter or digit, and counted into a term
// frequency vector. Cosine similarity between two vectors drives the "did
// you mean" suggestions for mistyped show names.
package textutil

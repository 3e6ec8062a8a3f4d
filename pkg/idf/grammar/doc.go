// Package grammar provides the lexical primitives and combinators the IDF
// parsers are assembled from.
//
// A Parser is a plain function from an immutable Input to a value, the
// remaining Input and an error. Whitespace (spaces, tabs and newlines) is a
// separator everywhere; every primitive skips leading whitespace itself.
//
// Errors are positioned by byte offset only while parsing. Call Resolve on
// the final error to fill in line, column and a source excerpt.
//
// Repetitions (Many, Many1, ZeroOrOne) stop when the next attempt fails at
// its very first token. A failure further into a record or section is a
// real error and is propagated, so a malformed record is never silently
// treated as the end of a list.
package grammar

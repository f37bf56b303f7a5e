// Package token defines the lexical vocabulary of PlayScript: token kinds,
// the keyword table and small classification helpers used by the lexer and
// the parser.
package token

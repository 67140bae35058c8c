// Package token defines lexical token kinds for the inkwell analysis engine.
// Invariants:
//   - Token.Span is a half-open byte range into the analysed text.
//   - A token stream produced by the lexer is sorted by Span.Start and
//     its spans never overlap.
//   - Whitespace is never represented as a token.
//   - Keyword and boolean tables are case-sensitive.
package token

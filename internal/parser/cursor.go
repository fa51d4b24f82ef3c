// Package parser implements the declaration-level recursive-descent
// parser (§4.A–E): a lookahead-2 token cursor, path/name utilities, the
// type-expression parser, the declaration parser for every top-level
// form, and compile-time conditional top-level parsing. Grounded on
// the teacher's internal/parser/parser.go (Pratt-parser cursor fields
// and nextToken()/ParseProgram() dispatch loop), generalized from the
// teacher's expression-oriented grammar to this module's declaration
// grammar.
package parser

import (
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/pipeline"
	"github.com/mcgru/c3decl/internal/token"
)

// Cursor is the Token Cursor of §4.A: peek/peek_next/advance/expect/
// try_consume over a pipeline.TokenStream, preserving the three most
// recent spans for error reporting at the previous token.
type Cursor struct {
	stream pipeline.TokenStream

	cur  token.Token
	next token.Token

	spans [3]token.Span // [prev, cur, next]

	diags *diagnostics.Bag
}

// NewCursor primes cur/next from stream, matching the teacher's
// parser.New priming two tokens via nextToken() before parsing starts.
func NewCursor(stream pipeline.TokenStream, diags *diagnostics.Bag) *Cursor {
	c := &Cursor{stream: stream, diags: diags}
	c.cur = stream.Next()
	c.next = stream.Next()
	c.spans[1] = c.cur.Span
	c.spans[2] = c.next.Span
	return c
}

// Peek returns the current token without consuming it.
func (c *Cursor) Peek() token.Token { return c.cur }

// PeekNext returns the token after the current one without consuming
// either.
func (c *Cursor) PeekNext() token.Token { return c.next }

// Advance consumes the current token and returns it, pulling one more
// token from the stream.
func (c *Cursor) Advance() token.Token {
	consumed := c.cur
	c.spans[0] = c.spans[1]
	c.cur = c.next
	c.spans[1] = c.spans[2]
	c.next = c.stream.Next()
	c.spans[2] = c.next.Span
	return consumed
}

// AdvanceTokenID performs speculative look-ahead beyond two tokens
// (§4.A "advance_token_id"), used to disambiguate constructs such as
// `path::Type` from `path::ident` or a method receiver from a
// function-literal. It peeks n tokens ahead (1-indexed: n=1 is the
// current token) without consuming.
func (c *Cursor) AdvanceTokenID(n int) token.Kind {
	if n <= 0 {
		return c.cur.Kind
	}
	if n == 1 {
		return c.cur.Kind
	}
	if n == 2 {
		return c.next.Kind
	}
	toks := c.stream.Peek(n - 2)
	if len(toks) < n-2 {
		return token.EOF
	}
	return toks[n-3].Kind
}

// PrevSpan, CurSpan, NextSpan expose the three preserved spans.
func (c *Cursor) PrevSpan() token.Span { return c.spans[0] }
func (c *Cursor) CurSpan() token.Span  { return c.spans[1] }
func (c *Cursor) NextSpan() token.Span { return c.spans[2] }

// Is reports whether the current token has the given kind.
func (c *Cursor) Is(k token.Kind) bool { return c.cur.Kind == k }

// NextIs reports whether the lookahead token has the given kind.
func (c *Cursor) NextIs(k token.Kind) bool { return c.next.Kind == k }

// TryConsume advances and returns true if the current token matches k,
// otherwise leaves the cursor untouched and returns false.
func (c *Cursor) TryConsume(k token.Kind) bool {
	if c.cur.Kind == k {
		c.Advance()
		return true
	}
	return false
}

// Expect advances past the current token if it matches k; otherwise it
// reports a P001 diagnostic at the current token and returns the
// zero Token plus false. msg is the human-readable description of
// what was expected ("a struct body", "',' or ')'", ...).
func (c *Cursor) Expect(k token.Kind, msg string) (token.Token, bool) {
	if c.cur.Kind == k {
		return c.Advance(), true
	}
	c.diags.Add(diagnostics.New(diagnostics.ErrP001UnexpectedToken, c.cur, msg, string(c.cur.Kind)))
	return token.Token{}, false
}

// Diagnostics returns the diagnostics bag this cursor reports into.
func (c *Cursor) Diagnostics() *diagnostics.Bag { return c.diags }

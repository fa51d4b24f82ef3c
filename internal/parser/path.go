package parser

import (
	"unicode"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/token"
)

// ParseModulePath parses `IDENT ('::' IDENT)+`, each segment a
// lower-case identifier, and interns the joined "a::b::c" form (§4.B
// "parse_module_path").
func ParseModulePath(c *Cursor, strings Interner) (ast.Path, bool) {
	var segs []string
	start := c.Peek().Span
	first, ok := consumeLowerIdent(c, "a lower-case module path segment")
	if !ok {
		return ast.Path{}, false
	}
	segs = append(segs, first.Text)
	for c.Is(token.COLONCOLON) {
		c.Advance()
		seg, ok := consumeLowerIdent(c, "a lower-case module path segment")
		if !ok {
			return ast.Path{}, false
		}
		segs = append(segs, seg.Text)
	}
	joined := ast.Join(segs)
	return ast.NewPath(segs, start, strings.Intern(joined)), true
}

// Interner is the narrow view of intern.Table the parser needs.
type Interner interface {
	Intern(string) string
}

// ParsePathPrefix parses `IDENT '::'` sequences only while the token
// *after* each IDENT is '::', stopping so that the following symbol
// (type, function, variable) remains on the cursor (§4.B
// "parse_path_prefix"). Returns an empty Path (Empty() == true) if no
// prefix is present.
func ParsePathPrefix(c *Cursor, strings Interner) ast.Path {
	var segs []string
	start := c.Peek().Span
	for c.Is(token.IDENT) && c.NextIs(token.COLONCOLON) {
		segs = append(segs, c.Advance().Text)
		c.Advance() // consume '::'
	}
	if len(segs) == 0 {
		return ast.Path{}
	}
	return ast.NewPath(segs, start, strings.Intern(ast.Join(segs)))
}

// NextIsTypeWithPathPrefix performs the speculative walk named in
// §4.B: accept an arbitrary-length `IDENT ('::' IDENT)*` terminated by
// TYPE_IDENT, without consuming anything.
func NextIsTypeWithPathPrefix(c *Cursor) bool {
	if c.Is(token.TYPE_IDENT) {
		return true
	}
	if !c.Is(token.IDENT) {
		return false
	}
	n := 1
	for c.AdvanceTokenID(n) == token.IDENT && c.AdvanceTokenID(n+1) == token.COLONCOLON {
		n += 2
	}
	return c.AdvanceTokenID(n) == token.TYPE_IDENT
}

func consumeLowerIdent(c *Cursor, what string) (token.Token, bool) {
	tok := c.Peek()
	if tok.Kind != token.IDENT {
		c.diags.Add(diagnostics.New(diagnostics.ErrP001UnexpectedToken, tok, what, string(tok.Kind)))
		return token.Token{}, false
	}
	return c.Advance(), true
}

// ConsumeIdent enforces the lower-case-or-underscore lexical class for
// a value identifier (§4.B "consume_ident").
func ConsumeIdent(c *Cursor) (token.Token, bool) {
	tok := c.Peek()
	if tok.Kind != token.IDENT || !startsLowerOrUnderscore(tok.Text) {
		c.diags.Add(diagnostics.New(diagnostics.ErrP002BadIdentCase, tok, "value", "lower_snake_case"))
		return token.Token{}, false
	}
	return c.Advance(), true
}

// ConsumeTypeName enforces Upper-case for a type identifier (§4.B
// "consume_type_name").
func ConsumeTypeName(c *Cursor) (token.Token, bool) {
	tok := c.Peek()
	if tok.Kind != token.TYPE_IDENT || !startsUpper(tok.Text) {
		c.diags.Add(diagnostics.New(diagnostics.ErrP002BadIdentCase, tok, "type", "UpperCamelCase"))
		return token.Token{}, false
	}
	return c.Advance(), true
}

// ConsumeConstName enforces ALL_CAPS for a constant identifier (§4.B
// "consume_const_name").
func ConsumeConstName(c *Cursor) (token.Token, bool) {
	tok := c.Peek()
	if tok.Kind != token.CONST_IDENT || !isAllCaps(tok.Text) {
		c.diags.Add(diagnostics.New(diagnostics.ErrP002BadIdentCase, tok, "constant", "ALL_CAPS"))
		return token.Token{}, false
	}
	return c.Advance(), true
}

func startsLowerOrUnderscore(s string) bool {
	if s == "" {
		return false
	}
	r := rune(s[0])
	return unicode.IsLower(r) || r == '_'
}

func startsUpper(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsUpper(rune(s[0]))
}

func isAllCaps(s string) bool {
	seen := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			seen = true
		}
	}
	return seen
}

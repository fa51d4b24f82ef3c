// Package pipeline wires the token stream, diagnostics bag, and shared
// tables that the parser and analyser stages read and write, following
// the teacher's Processor/PipelineContext split (one mutable context
// threaded through discrete, composable stages) generalized to this
// module's domain.
package pipeline

import (
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/intern"
	"github.com/mcgru/c3decl/internal/token"
)

// TokenStream is the contract the out-of-scope lexer collaborator must
// satisfy (§1, §4.A). Next consumes, Peek looks ahead without
// consuming.
type TokenStream interface {
	Next() token.Token
	Peek(n int) []token.Token
}

// Processor is any stage that can run over a Context, following the
// teacher's Processor interface shape.
type Processor interface {
	Process(ctx *Context)
}

// Context is the shared mutable state threaded through the token
// cursor, declaration parser, and declaration analyser for one source
// file (one per-file Context in the data model's terms, §3).
type Context struct {
	FilePath    string
	TokenStream TokenStream
	Diagnostics *diagnostics.Bag
	Strings     *intern.Table

	// ModuleName is set by ParseModule once the leading module
	// statement (or file-path fallback) has been parsed (§4.B).
	ModuleName string
}

// NewContext creates a Context ready to drive a single file through the
// parser and analyser stages.
func NewContext(filePath string, stream TokenStream) *Context {
	return &Context{
		FilePath:    filePath,
		TokenStream: stream,
		Diagnostics: &diagnostics.Bag{},
		Strings:     intern.New(),
	}
}

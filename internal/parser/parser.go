package parser

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/pipeline"
	"github.com/mcgru/c3decl/internal/token"
	"github.com/mcgru/c3decl/internal/utils"
)

// Parser drives the declaration grammar (§4.D) over a Cursor, threading
// the shared intern.Table and diagnostics bag. Grounded on the
// teacher's internal/parser/parser.go Parser struct, generalized from
// an expression-Pratt-parser to this module's declaration dispatcher.
type Parser struct {
	C          *Cursor
	Strings    Interner
	ModuleName string
	InGeneric  bool
}

// New creates a Parser over stream, reporting into diags and interning
// strings through strings.
func New(stream pipeline.TokenStream, diags *diagnostics.Bag, strings Interner) *Parser {
	return &Parser{C: NewCursor(stream, diags), Strings: strings}
}

// ParseModule implements `parse_module(ctx)` (§6): parses a leading
// `module path;` statement if present, otherwise derives the module
// name from the file path (§4.B, §4.D "module / import").
func (p *Parser) ParseModule(filePath string) ast.Path {
	if p.C.Is(token.MODULE) {
		p.C.Advance()
		path, ok := ParseModulePath(p.C, p.Strings)
		p.C.Expect(token.SEMI, "';'")
		if ok {
			p.ModuleName = path.CanonicalForm
			return path
		}
	}
	name := utils.ExtractModuleName(filePath)
	p.ModuleName = p.Strings.Intern(name)
	return ast.NewPath([]string{name}, token.Span{}, p.ModuleName)
}

// ParseImports implements `parse_imports(ctx)` (§6): parses every
// leading `import path;` statement.
func (p *Parser) ParseImports() []*ast.ImportDecl {
	var imports []*ast.ImportDecl
	for p.C.Is(token.IMPORT) {
		tok := p.C.Advance()
		path, ok := ParseModulePath(p.C, p.Strings)
		p.C.Expect(token.SEMI, "';'")
		if !ok {
			continue
		}
		imports = append(imports, &ast.ImportDecl{
			Header:     ast.Header{NameTok: tok, Span: tok.Span, Module: p.ModuleName, Status: ast.Done},
			ImportPath: path,
		})
	}
	return imports
}

// parseVisibility consumes an optional `private`/`extern` qualifier,
// defaulting to Public (§4.D).
func (p *Parser) parseVisibility() ast.Visibility {
	switch p.C.Peek().Kind {
	case token.PRIVATE:
		p.C.Advance()
		return ast.VisModule
	case token.EXTERN:
		p.C.Advance()
		return ast.VisExtern
	default:
		return ast.Public
	}
}

// ParseTopLevelStatement implements `parse_top_level_statement(ctx) ->
// Decl` (§6): dispatches by the first significant token, producing one
// declaration or a poisoned-decl, and entering recovery on failure
// (§4.D "Recovery").
func (p *Parser) ParseTopLevelStatement() ast.Decl {
	docs := ParseDocs(p.C)
	startTok := p.C.Peek()

	switch p.C.Peek().Kind {
	case token.CT_IF:
		RejectDocsBefore(p.C, docs, "'$if'", startTok)
		return p.parseCtIf()
	case token.CT_SWITCH:
		RejectDocsBefore(p.C, docs, "'$switch'", startTok)
		return p.parseCtSwitch()
	case token.CT_ASSERT:
		RejectDocsBefore(p.C, docs, "'$assert'", startTok)
		return p.parseCtAssert()
	case token.MODULE, token.IMPORT:
		p.C.diags.Add(diagnostics.New(diagnostics.ErrP001UnexpectedToken, startTok, "a top-level declaration", string(startTok.Kind)))
		return p.recoverTopLevel()
	}

	vis := p.parseVisibility()

	switch p.C.Peek().Kind {
	case token.STRUCT:
		return p.parseAggregate(ast.DeclStruct, vis, docs)
	case token.UNION:
		return p.parseAggregate(ast.DeclUnion, vis, docs)
	case token.ERR:
		return p.parseAggregate(ast.DeclErr, vis, docs)
	case token.ENUM:
		return p.parseEnum(vis, docs)
	case token.FUNC:
		return p.parseFunc(vis, docs)
	case token.MACRO:
		return p.parseMacro(vis, docs)
	case token.GENERIC:
		return p.parseGeneric(vis, docs)
	case token.INTERFACE:
		return p.parseInterface(vis, docs)
	case token.DEFINE:
		return p.parseDefine(vis, docs)
	case token.ATTRIBUTE:
		RejectDocsBefore(p.C, docs, "'attribute'", startTok)
		return p.parseAttributeDecl(vis)
	case token.CONST:
		return p.parseConstDecl(vis, docs)
	case token.IDENT:
		if p.C.NextIs(token.PLUS_ASSIGN) {
			RejectDocsBefore(p.C, docs, "an incremental array append", startTok)
			return p.parseArrayValue(vis)
		}
	}

	if NextIsTypeWithPathPrefix(p.C) || token.IsBuiltinTypeKeyword(p.C.Peek().Kind) {
		return p.parseGlobalVarOrConst(vis, docs)
	}

	p.C.diags.Add(diagnostics.New(diagnostics.ErrP001UnexpectedToken, startTok, "a top-level declaration", string(startTok.Kind)))
	return p.recoverTopLevel()
}

// ParseProgram parses a full source file: module, imports, then every
// top-level declaration to EOF, returning the populated Context.
func (p *Parser) ParseProgram(module *ast.Module, filePath string) *ast.Context {
	path := p.ParseModule(filePath)
	if module == nil {
		module = ast.NewModule(path)
	}
	ctx := ast.NewContext(module, filePath)
	ctx.Imports = p.ParseImports()

	for !p.C.Is(token.EOF) {
		decl := p.ParseTopLevelStatement()
		if decl == nil {
			continue
		}
		classify(ctx, decl)
	}
	module.Stage = ast.StageParsed
	return ctx
}

// classify files a freshly parsed Decl into the Context's per-kind
// slices (§3 Context "global_decls, functions, methods, types, enums,
// interfaces, ct_ifs").
func classify(ctx *ast.Context, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.IsMethod() {
			ctx.Methods = append(ctx.Methods, d)
		} else {
			ctx.Functions = append(ctx.Functions, d)
		}
	case *ast.EnumDecl:
		ctx.Enums = append(ctx.Enums, d)
	case *ast.InterfaceDecl:
		ctx.Interfaces = append(ctx.Interfaces, d)
	case *ast.AggregateDecl, *ast.TypedefDecl, *ast.DistinctDecl:
		ctx.Types = append(ctx.Types, d)
	case *ast.CtIfDecl, *ast.CtSwitchDecl, *ast.CtAssertDecl:
		ctx.CtIfs = append(ctx.CtIfs, d)
	default:
		ctx.GlobalDecls = append(ctx.GlobalDecls, d)
	}
}

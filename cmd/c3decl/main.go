// Command c3decl is an ambient smoke-test driver (§1 "CLI... out of
// scope", SPEC_FULL.md component N): it exercises the declaration
// parser's eventual analysis surface end to end without a lexer (also
// out of scope, §1) by constructing a small module directly through
// internal/ast and running it through the Module Registry, the same way
// a real front-end would once token streams exist. Grounded on the
// teacher's cmd/funxy/main.go driver shape (flag handling, a single
// top-level pipeline run, printed diagnostics), narrowed to this
// module's synchronous declaration-only scope.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/modules"
	"github.com/mcgru/c3decl/internal/token"
)

func main() {
	colorFlag := flag.String("color", "auto", "colorize diagnostic output: auto, always, never")
	cachePath := flag.String("instantiation-cache", "", "optional path to a sqlite-backed generic-instantiation cache")
	flag.Parse()

	color := shouldColorize(*colorFlag, os.Stderr)

	diags := &diagnostics.Bag{}
	registry := modules.NewRegistry(diags)

	if *cachePath != "" {
		cache, err := modules.OpenCache(context.Background(), *cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "c3decl: %v\n", err)
			os.Exit(2)
		}
		defer cache.Close()
		registry.AttachCache(cache)
	}

	mod := buildSmokeTestModule()
	registry.Register(mod)
	registry.AnalyseStage(mod)

	printLayoutSummary(os.Stdout, mod)
	exitCode := printDiagnostics(os.Stderr, diags, color)
	os.Exit(exitCode)
}

// shouldColorize implements the auto/always/never tri-state: "auto"
// colorizes only when stderr is attached to a terminal, detected via
// go-isatty rather than guessing from $TERM (DOMAIN STACK:
// github.com/mattn/go-isatty).
func shouldColorize(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// buildSmokeTestModule constructs one small but representative module
// entirely through internal/ast constructors: a packed struct (layout
// algorithm, §4.H), an enum with an explicit first value (enum
// auto-increment, §4.H). All member and constant names are distinct,
// so the run exercises the success path.
func buildSmokeTestModule() *ast.Module {
	path := ast.NewPath([]string{"demo"}, token.Span{}, "demo")
	mod := ast.NewModule(path)
	ctx := ast.NewContext(mod, "<smoke-test>")

	point := ast.NewAggregate(ast.DeclStruct)
	point.Header.Name = "Point"
	point.IsPacked = true
	point.Members = []ast.Decl{
		&ast.VarDecl{Header: ast.Header{Name: "x"}, Type: builtinIdent("int")},
		&ast.VarDecl{Header: ast.Header{Name: "y"}, Type: builtinIdent("int")},
		&ast.VarDecl{Header: ast.Header{Name: "flag"}, Type: builtinIdent("bool")},
	}

	color := &ast.EnumDecl{Header: ast.Header{Name: "Color"}}
	color.Values = []*ast.EnumConstantDecl{
		{Header: ast.Header{Name: "Red"}, Value: &ast.IntLiteral{Value: 1}},
		{Header: ast.Header{Name: "Green"}},
		{Header: ast.Header{Name: "Blue"}},
	}

	ctx.GlobalDecls = append(ctx.GlobalDecls, point, color)
	return mod
}

func builtinIdent(name string) *ast.IdentifierType {
	return &ast.IdentifierType{Name: name, Builtin: true}
}

func printLayoutSummary(w *os.File, mod *ast.Module) {
	for _, ctx := range mod.Contexts {
		for _, decl := range ctx.AllDecls() {
			if agg, ok := decl.(*ast.AggregateDecl); ok {
				fmt.Fprintf(w, "%s: size=%s align=%d unaligned=%v\n",
					agg.Name, diagnostics.HumanSize(agg.Size), agg.Alignment, agg.IsUnaligned)
			}
		}
	}
}

// printDiagnostics prints every accumulated diagnostic, colorized by
// severity when color is true, and returns the process exit code (1 if
// any diagnostic was reported, matching the teacher's convention of a
// nonzero exit on any reported error).
func printDiagnostics(w *os.File, diags *diagnostics.Bag, color bool) int {
	items := diags.Items()
	for _, d := range items {
		label := fmt.Sprintf("%s[%s]", d.Phase, d.Code)
		if color {
			label = "\x1b[31m" + label + "\x1b[0m"
		}
		fmt.Fprintf(w, "%d:%d %s: %s\n", d.Token.Span.Line, d.Token.Span.Column, label, d.Message)
	}
	if len(items) > 0 {
		return 1
	}
	return 0
}

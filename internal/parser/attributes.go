package parser

import (
	"golang.org/x/exp/slices"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/config"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/token"
)

// ParseAttributes parses the repeated `@ (path)? IDENT ('(' expr ')')?`
// sequence following a declaration (§4.D "Attribute parsing"). A
// repeated attribute name within the same list is a parse error
// reporting both occurrences (§7 two-span rule); parsing continues
// with the duplicate kept out of the returned list.
func ParseAttributes(c *Cursor, strings Interner) []*ast.Attribute {
	var attrs []*ast.Attribute
	for c.Is(token.AT) {
		c.Advance()
		prefix := ParsePathPrefix(c, strings)
		nameTok := c.Peek()
		if nameTok.Kind != token.IDENT && nameTok.Kind != token.STRUCT && nameTok.Kind != token.UNION {
			c.diags.Add(diagnostics.New(diagnostics.ErrP001UnexpectedToken, nameTok, "an attribute name", string(nameTok.Kind)))
			return attrs
		}
		c.Advance()
		attr := &ast.Attribute{NameTok: nameTok, Name: nameTok.Text, Path: prefix}

		if c.Is(token.LPAREN) {
			c.Advance()
			arg := ParseConstExpr(c)
			attr.ArgExpr = arg
			if lit, ok := arg.(*ast.IntLiteral); ok {
				attr.AlignmentVal = uint64(lit.Value)
				attr.HasAlignment = true
			}
			c.Expect(token.RPAREN, "')'")
		}

		// Conditional attribute arguments (SPEC_FULL §9 supplement):
		// `$if (const_expr)` trailing guard.
		if c.Is(token.CT_IF) {
			c.Advance()
			c.Expect(token.LPAREN, "'('")
			attr.CondExpr = ParseConstExpr(c)
			c.Expect(token.RPAREN, "')'")
		}

		if prior, dup := attributeNamed(attrs, attr.Name); dup {
			c.diags.Add(diagnostics.NewDuplicate(diagnostics.ErrP003DuplicateAttr, diagnostics.PhaseParser, nameTok, prior.NameTok, attr.Name))
			continue
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func attributeNamed(attrs []*ast.Attribute, name string) (*ast.Attribute, bool) {
	i := slices.IndexFunc(attrs, func(a *ast.Attribute) bool { return a.Name == name })
	if i < 0 {
		return nil, false
	}
	return attrs[i], true
}

// docDirectiveNames are the recognised doc directives (§4.D "Doc
// directives"); anything else is preserved verbatim as Unknown.
var docDirectiveNames = map[string]bool{
	"@param": true, "@pure": true, "@require": true, "@ensure": true, "@errors": true,
}

// ParseDocs parses a doc-comment block immediately preceding a
// declaration, if one is present (signalled by DOCS_START on the
// cursor). The grammar for `@errors Type1, Type2, …` — left as a TODO
// in the original source (§9 open question) — is resolved here as a
// comma-separated TYPE_IDENT list.
func ParseDocs(c *Cursor) *ast.Docs {
	if !c.Is(token.DOCS_START) {
		return nil
	}
	c.Advance()
	docs := &ast.Docs{Param: map[string]string{}}
	for !c.Is(token.DOCS_END) && !c.Is(token.EOF) {
		if c.Is(token.DOCS_DIRECTIVE) {
			directive := c.Advance()
			switch directive.Text {
			case "@param":
				name := c.Advance()
				docs.Param[name.Text] = readDocLine(c)
			case "@pure":
				docs.Pure = true
				readDocLine(c)
			case "@require":
				docs.Require = append(docs.Require, readDocLine(c))
			case "@ensure":
				docs.Ensure = append(docs.Ensure, readDocLine(c))
			case "@errors":
				for c.Is(token.TYPE_IDENT) {
					docs.Errors = append(docs.Errors, c.Advance().Text)
					if !c.TryConsume(token.COMMA) {
						break
					}
				}
			default:
				docs.Unknown = append(docs.Unknown, directive.Text+" "+readDocLine(c))
			}
			continue
		}
		if c.Is(token.DOCS_LINE) {
			c.Advance()
			continue
		}
		if c.Is(token.DOCS_EOL) {
			c.Advance()
			continue
		}
		c.Advance()
	}
	c.TryConsume(token.DOCS_END)
	return docs
}

func readDocLine(c *Cursor) string {
	var text string
	for c.Is(token.DOCS_LINE) {
		tok := c.Advance()
		if text != "" {
			text += " "
		}
		text += tok.Text
	}
	return text
}

// RejectDocsBefore reports a P006 diagnostic if docs is non-nil,
// matching §4.D's rule that doc blocks before $if, $switch, $assert,
// and incremental arrays are rejected.
func RejectDocsBefore(c *Cursor, docs *ast.Docs, what string, at token.Token) {
	if docs != nil {
		c.diags.Add(diagnostics.New(diagnostics.ErrP006DocBeforeCtOrIncr, at, what))
	}
}

// ValidateAttributeDomain looks up attr by name and verifies domain is
// permitted (§4.H "Attribute application"). It reports A007/A008 and
// returns false on any violation; callers should still keep the
// attribute attached (poisoning the check, not the declaration).
func ValidateAttributeDomain(diags *diagnostics.Bag, attr *ast.Attribute, domain config.Domain, inGenericModule bool) bool {
	spec, ok := config.Attributes[attr.Name]
	if !ok {
		diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA007BadAttributeDomain, attr.NameTok, attr.Name, string(domain)))
		return false
	}
	if !spec.AllowsDomain(domain) {
		diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA007BadAttributeDomain, attr.NameTok, attr.Name, string(domain)))
		return false
	}
	if spec.GenericModuleForbidden && inGenericModule {
		diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA007BadAttributeDomain, attr.NameTok, attr.Name, "a generic module"))
		return false
	}
	switch spec.Arg {
	case config.ArgNone:
		if attr.ArgExpr != nil {
			diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA008BadAttributeArg, attr.NameTok, attr.Name, "takes no argument"))
			return false
		}
	case config.ArgStringConst:
		lit, ok := attr.ArgExpr.(*ast.StringLiteral)
		if !ok {
			diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA008BadAttributeArg, attr.NameTok, attr.Name, "expects a string constant"))
			return false
		}
		if attr.Name == "cname" && !config.IsValidABIName(lit.Value) {
			diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA008BadAttributeArg, attr.NameTok, attr.Name, "must be a valid ABI identifier"))
			return false
		}
	case config.ArgAlignValue:
		if !attr.HasAlignment || attr.AlignmentVal == 0 || attr.AlignmentVal&(attr.AlignmentVal-1) != 0 || attr.AlignmentVal > config.MaxAlignment {
			diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA008BadAttributeArg, attr.NameTok, attr.Name, "expects a positive power-of-two no greater than MAX_ALIGNMENT"))
			return false
		}
	case config.ArgIntConst:
		if _, ok := attr.ArgExpr.(*ast.IntLiteral); !ok {
			diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA008BadAttributeArg, attr.NameTok, attr.Name, "expects an integer constant"))
			return false
		}
	}
	return true
}

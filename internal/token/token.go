// Package token defines the token kinds and the Token/Span value types
// consumed by the declaration parser. Lexing itself is out of scope for
// this module (the parser consumes a pre-lexed token stream); this
// package only defines the contract the lexer collaborator must satisfy.
package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind string

// Span locates a token in its source file. Length is measured in runes
// so a diagnostic can underline the whole lexeme, not just its first
// column.
type Span struct {
	Line   int
	Column int
	Length int
}

// Token is the unit the parser consumes. Text is expected to be routed
// through an intern.Table by the lexer collaborator so that identifier
// and path comparisons can use pointer/handle equality.
type Token struct {
	Kind    Kind
	Span    Span
	Text    string
	Literal interface{}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Span.Line, t.Span.Column)
}

const (
	EOF     Kind = "EOF"
	ILLEGAL Kind = "ILLEGAL"

	// Identifiers by lexical class (§6 token stream contract).
	IDENT          Kind = "IDENT"           // lower_snake_case value
	TYPE_IDENT     Kind = "TYPE_IDENT"      // UpperCamelCase type
	CONST_IDENT    Kind = "CONST_IDENT"     // ALL_CAPS constant
	CT_IDENT       Kind = "CT_IDENT"        // $lower compile-time value
	CT_TYPE_IDENT  Kind = "CT_TYPE_IDENT"   // $Upper compile-time type
	CT_CONST_IDENT Kind = "CT_CONST_IDENT"  // $ALL_CAPS compile-time constant
	HASH_IDENT     Kind = "HASH_IDENT"      // #lower unevaluated expression
	HASH_TYPE_IDENT Kind = "HASH_TYPE_IDENT" // #Upper unevaluated type
	HASH_CONST_IDENT Kind = "HASH_CONST_IDENT"

	// Literals.
	INT_LIT    Kind = "INT_LIT"
	FLOAT_LIT  Kind = "FLOAT_LIT"
	STRING_LIT Kind = "STRING_LIT"
	CHAR_LIT   Kind = "CHAR_LIT"

	// Keywords (§4.D).
	MODULE    Kind = "module"
	IMPORT    Kind = "import"
	STRUCT    Kind = "struct"
	UNION     Kind = "union"
	ENUM      Kind = "enum"
	ERR       Kind = "err"
	FUNC      Kind = "func"
	MACRO     Kind = "macro"
	GENERIC   Kind = "generic"
	INTERFACE Kind = "interface"
	DEFINE    Kind = "define"
	ATTRIBUTE Kind = "attribute"
	CONST     Kind = "const"
	DISTINCT  Kind = "distinct"
	INLINE    Kind = "inline"
	PRIVATE   Kind = "private"
	EXTERN    Kind = "extern"
	VIRTUAL   Kind = "virtual"
	ASM       Kind = "asm"
	TYPEOF    Kind = "typeof"

	VOID   Kind = "void"
	BOOL   Kind = "bool"
	FLOAT  Kind = "float"
	DOUBLE Kind = "double"
	TYPEID Kind = "typeid"
	TRUE   Kind = "true"
	FALSE  Kind = "false"
	MINUS  Kind = "-"

	// Compile-time conditional top-level (§4.E).
	CT_IF      Kind = "$if"
	CT_ELIF    Kind = "$elif"
	CT_ELSE    Kind = "$else"
	CT_SWITCH  Kind = "$switch"
	CT_CASE    Kind = "$case"
	CT_DEFAULT Kind = "$default"
	CT_ASSERT  Kind = "$assert"
	CT_FOR     Kind = "$for"

	// Punctuation (§6).
	COLONCOLON  Kind = "::"
	DOT         Kind = "."
	STAR        Kind = "*"
	AMP         Kind = "&"
	BANG        Kind = "!"
	AT          Kind = "@"
	ASSIGN      Kind = "="
	EQ          Kind = "=="
	PLUS_ASSIGN Kind = "+="
	LT          Kind = "<"
	GT          Kind = ">"
	LBRACKET    Kind = "["
	RBRACKET    Kind = "]"
	LBRACE      Kind = "{"
	RBRACE      Kind = "}"
	LPAREN      Kind = "("
	RPAREN      Kind = ")"
	COMMA       Kind = ","
	SEMI        Kind = ";"
	COLON       Kind = ":"
	QUESTION    Kind = "?"
	ELLIPSIS    Kind = "..."
	PLUS        Kind = "+"
	DOLLAR      Kind = "$"
	HASH        Kind = "#"

	// Doc markers (§4.D "Doc directives").
	DOCS_START     Kind = "DOCS_START"
	DOCS_END       Kind = "DOCS_END"
	DOCS_EOL       Kind = "DOCS_EOL"
	DOCS_LINE      Kind = "DOCS_LINE"
	DOCS_DIRECTIVE Kind = "DOCS_DIRECTIVE"
)

// IntegerKeywords are built-in integer base-type keywords of every
// signedness and width, recognised by parse_base_type (§4.C).
var IntegerKeywords = []string{
	"ichar", "char", "short", "ushort", "int", "uint",
	"long", "ulong", "int128", "uint128", "iptr", "uptr", "isz", "usz",
}

// keywords maps reserved words to their Kind. Built-in base-type
// keywords (void/bool/float/double/typeid/err plus every integer width)
// are looked up through this table as well so the parser can treat them
// uniformly with other reserved words.
var keywords = map[string]Kind{
	"module":    MODULE,
	"import":    IMPORT,
	"struct":    STRUCT,
	"union":     UNION,
	"enum":      ENUM,
	"err":       ERR,
	"func":      FUNC,
	"macro":     MACRO,
	"generic":   GENERIC,
	"interface": INTERFACE,
	"define":    DEFINE,
	"attribute": ATTRIBUTE,
	"const":     CONST,
	"distinct":  DISTINCT,
	"inline":    INLINE,
	"private":   PRIVATE,
	"extern":    EXTERN,
	"virtual":   VIRTUAL,
	"asm":       ASM,
	"typeof":    TYPEOF,
	"void":      VOID,
	"bool":      BOOL,
	"float":     FLOAT,
	"double":    DOUBLE,
	"typeid":    TYPEID,
	"true":      TRUE,
	"false":     FALSE,
}

func init() {
	for _, name := range IntegerKeywords {
		keywords[name] = Kind(name)
	}
}

// LookupIdent classifies ident as a keyword Kind if it is reserved,
// otherwise returns IDENT. It does not classify by case; that is the
// job of the lexer collaborator (which selects IDENT/TYPE_IDENT/
// CONST_IDENT up front) and of internal/parser/path.go's consume_*
// helpers, which re-validate case on tokens already classified.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// IsBuiltinTypeKeyword reports whether kind names a built-in base type
// keyword usable directly in parse_base_type (§4.C): void, bool, every
// integer width/signedness, float, double, typeid, err.
func IsBuiltinTypeKeyword(kind Kind) bool {
	switch kind {
	case VOID, BOOL, FLOAT, DOUBLE, TYPEID, ERR:
		return true
	}
	for _, name := range IntegerKeywords {
		if string(kind) == name {
			return true
		}
	}
	return false
}

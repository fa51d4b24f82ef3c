// Package diagnostics implements the collaborator reporter named in the
// external-interfaces section: diagnostics are emitted as (span, message)
// tuples rather than thrown, so a containing declaration can keep
// analysing its remaining members after one of them fails (§7).
package diagnostics

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mcgru/c3decl/internal/token"
)

// Phase distinguishes which subsystem raised a diagnostic.
type Phase string

const (
	PhaseParser   Phase = "parser"
	PhaseAnalyzer Phase = "analyzer"
)

// ErrorCode namespaces diagnostics as parser (P) or analyzer (A) errors,
// matching the two kinds distinguished in §7.
type ErrorCode string

const (
	// Parser errors.
	ErrP001UnexpectedToken   ErrorCode = "P001" // expected X, got Y
	ErrP002BadIdentCase      ErrorCode = "P002" // wrong lexical case for identifier class
	ErrP003DuplicateAttr     ErrorCode = "P003" // attribute repeated on one declaration
	ErrP004InlineNotFirst    ErrorCode = "P004" // inline on non-first struct member
	ErrP005DuplicateEnumName ErrorCode = "P005" // duplicate enum constant name
	ErrP006DocBeforeCtOrIncr ErrorCode = "P006" // doc block before $if/$switch/$assert/incremental array
	ErrP007BadArrayBracket   ErrorCode = "P007" // malformed array-type bracket body

	// Analyzer errors.
	ErrA001RecursiveCycle     ErrorCode = "A001" // Running observed on entry: cycle
	ErrA002NotInteger         ErrorCode = "A002" // enum base type is not integer
	ErrA003NotConstExpr       ErrorCode = "A003" // expected a constant expression
	ErrA004DuplicateMember    ErrorCode = "A004" // duplicate member/symbol name in scope
	ErrA005DuplicateMethod    ErrorCode = "A005" // duplicate method name on parent type
	ErrA006TooManyParams      ErrorCode = "A006" // parameter count exceeds MAX_PARAMS
	ErrA007BadAttributeDomain ErrorCode = "A007" // attribute not valid on this declaration kind
	ErrA008BadAttributeArg    ErrorCode = "A008" // attribute argument missing/wrong shape
	ErrA009ErrorTypeTooBig    ErrorCode = "A009" // error decl larger than sizeof(uptr)
	ErrA010DistinctDisallowed ErrorCode = "A010" // distinct over a disallowed base kind
	ErrA011UnalignedSize      ErrorCode = "A011" // alignment not a power of two / bad size
	ErrA012MutuallyExclusive  ErrorCode = "A012" // inline and noinline both present
	ErrA013UnresolvedSymbol   ErrorCode = "A013" // identifier type/alias does not resolve to a known symbol
	ErrA014InterfaceMethod    ErrorCode = "A014" // interface method has a body, a default param, or a variadic param
)

var templates = map[ErrorCode]string{
	ErrP001UnexpectedToken:    "expected %s, got %s",
	ErrP002BadIdentCase:       "%s '%s' must be %s",
	ErrP003DuplicateAttr:      "attribute '%s' repeated on the same declaration",
	ErrP004InlineNotFirst:     "'inline' is only permitted on the first member",
	ErrP005DuplicateEnumName:  "duplicate enum constant '%s'",
	ErrP006DocBeforeCtOrIncr:  "doc comment not permitted before %s",
	ErrP007BadArrayBracket:    "malformed array type: %s",
	ErrA001RecursiveCycle:     "recursive definition",
	ErrA002NotInteger:         "enum base type must be an integer type, got %s",
	ErrA003NotConstExpr:       "expected a constant expression",
	ErrA004DuplicateMember:    "duplicate name '%s'",
	ErrA005DuplicateMethod:    "duplicate name '%s' for method",
	ErrA006TooManyParams:      "too many parameters (max %s)",
	ErrA007BadAttributeDomain: "attribute '%s' is not valid on %s",
	ErrA008BadAttributeArg:    "attribute '%s' argument: %s",
	ErrA009ErrorTypeTooBig:    "error type size %s exceeds pointer size (%s)",
	ErrA010DistinctDisallowed: "distinct cannot wrap %s",
	ErrA011UnalignedSize:       "alignment must be a power of two, got %s",
	ErrA012MutuallyExclusive:  "'inline' and 'noinline' are mutually exclusive",
	ErrA013UnresolvedSymbol:   "undefined symbol '%s'",
	ErrA014InterfaceMethod:    "interface method '%s' cannot have %s",
}

// Diagnostic is a single (span, message) tuple as described in §6/§7.
// A second span (PriorToken) is set for duplicate-name and
// repeated-attribute diagnostics, which report both the new occurrence
// and the prior one.
type Diagnostic struct {
	Code       ErrorCode
	Phase      Phase
	Token      token.Token
	PriorToken *token.Token
	File       string
	Message    string
}

func (d *Diagnostic) Error() string {
	if d.PriorToken != nil {
		return fmt.Sprintf("%s:%d:%d: error[%s]: %s (previously at %d:%d)",
			d.File, d.Token.Span.Line, d.Token.Span.Column, d.Code, d.Message,
			d.PriorToken.Span.Line, d.PriorToken.Span.Column)
	}
	return fmt.Sprintf("%s:%d:%d: error[%s]: %s", d.File, d.Token.Span.Line, d.Token.Span.Column, d.Code, d.Message)
}

func render(code ErrorCode, args ...interface{}) string {
	tmpl, ok := templates[code]
	if !ok {
		return fmt.Sprintf("unknown diagnostic %s", code)
	}
	return fmt.Sprintf(tmpl, args...)
}

// New builds a parser-phase diagnostic.
func New(code ErrorCode, tok token.Token, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Phase: PhaseParser, Token: tok, Message: render(code, args...)}
}

// NewAnalyzer builds an analyzer-phase diagnostic.
func NewAnalyzer(code ErrorCode, tok token.Token, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Phase: PhaseAnalyzer, Token: tok, Message: render(code, args...)}
}

// NewDuplicate builds a duplicate-name/attribute diagnostic carrying
// both the new occurrence and the prior one, per §7's two-span rule.
func NewDuplicate(code ErrorCode, phase Phase, tok token.Token, prior token.Token, args ...interface{}) *Diagnostic {
	prior2 := prior
	return &Diagnostic{Code: code, Phase: phase, Token: tok, PriorToken: &prior2, Message: render(code, args...)}
}

// HumanSize formats a byte count for overflow/size diagnostics using
// human-scaled units (e.g. "18 EB" for a pathological synthetic size),
// matching the DOMAIN STACK wiring of go-humanize for oversize
// diagnostics. Its one caller is the §4.H error-type cap message.
func HumanSize(n uint64) string {
	return humanize.Bytes(n)
}

// Bag accumulates diagnostics for a single compilation context. It is
// the concrete collector behind the "collaborator reporter" named in
// §6; the parser and analyser both append to it rather than returning
// errors up the call stack, so a containing declaration can continue
// after one of its members fails (§7).
type Bag struct {
	items []*Diagnostic
}

func (b *Bag) Add(d *Diagnostic) { b.items = append(b.items, d) }

func (b *Bag) Items() []*Diagnostic { return b.items }

func (b *Bag) HasErrors() bool { return len(b.items) > 0 }

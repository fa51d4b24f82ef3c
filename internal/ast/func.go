package ast

import "github.com/mcgru/c3decl/internal/token"

// Param is one function parameter (§4.D "func", §4.H "Function
// signature").
type Param struct {
	Name       string
	NameTok    token.Token
	Type       TypeInfo
	Default    Expr
	IsVariadic bool
}

// FuncDecl is `func rtype '!'? path? (TYPE '.')? IDENT '(' params ')'
// attributes? (';' | '{' stmts '}')` (§4.D "func").
type FuncDecl struct {
	Header
	Return     TypeInfo
	Failable   bool
	RecvType   string // non-empty for a method: the TYPE before '.'
	RecvTok    token.Token
	Params     []*Param
	Variadic   bool
	HasBody    bool // false => ';' only: an interface-style declaration
	Mangled    string
	SigType    interface{} // *types.Type once analysed; interface{} avoids import here
}

func (d *FuncDecl) Kind() DeclKind { return DeclFunc }
func (d *FuncDecl) Head() *Header  { return &d.Header }

// IsMethod reports whether this function declares a `TYPE.name` method
// receiver.
func (d *FuncDecl) IsMethod() bool { return d.RecvType != "" }

// MacroParamSigil selects a macro parameter's kind by the sigil
// preceding its name (§4.D "macro").
type MacroParamSigil int

const (
	MacroParamValue MacroParamSigil = iota
	MacroParamCompileTimeValue                  // $IDENT
	MacroParamByRef                              // &IDENT
	MacroParamUnevaluatedExpr                    // #IDENT
	MacroParamCompileTimeType                    // $TYPE
)

// MacroParam is one macro parameter (§4.D "macro").
type MacroParam struct {
	Sigil   MacroParamSigil
	Name    string
	NameTok token.Token
	Type    TypeInfo // explicit type before the sigil, if any
}

// MacroDecl is `macro rtype? '!'? IDENT '(' macro_params ')' stmt`
// (§4.D "macro").
type MacroDecl struct {
	Header
	Return   TypeInfo
	Failable bool
	Params   []*MacroParam
	HasBody  bool
}

func (d *MacroDecl) Kind() DeclKind { return DeclMacro }
func (d *MacroDecl) Head() *Header  { return &d.Header }

// GenericCase is one case of a `generic` declaration's
// switch-body-by-type (§4.D "generic").
type GenericCase struct {
	Types     []TypeInfo
	IsDefault bool
	Body      []Decl
}

// GenericDecl is `generic rtype? path? IDENT '(' macro_params ')'
// switch-body-by-type` (§4.D "generic").
type GenericDecl struct {
	Header
	Return TypeInfo
	Params []*MacroParam
	Cases  []*GenericCase
}

func (d *GenericDecl) Kind() DeclKind { return DeclGeneric }
func (d *GenericDecl) Head() *Header  { return &d.Header }

// InterfaceDecl is `interface TYPE attrs? '{' func_declaration* '}'`
// (§4.D "interface"). Each Methods entry must end with ';' (HasBody ==
// false).
type InterfaceDecl struct {
	Header
	Methods []*FuncDecl
}

func (d *InterfaceDecl) Kind() DeclKind { return DeclInterface }
func (d *InterfaceDecl) Head() *Header  { return &d.Header }

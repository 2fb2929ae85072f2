package hoa

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The raw* types mirror the EHOA surface syntax one-to-one; they are
// converted into the typed Automaton afterwards, so the grammar stays
// free of semantic checks.

type rawFile struct {
	Version string      `"HOA:" @Ident`
	Headers []rawHeader `@@*`
	States  []rawState  `"--BODY--" @@* "--END--"`
}

type rawHeader struct {
	NumStates  *int           `"States:" @Int |`
	Start      []int          `"Start:" @Int ("&" @Int)* |`
	APs        *rawAPs        `"AP:" @@ |`
	CntAPs     *rawCntAPs     `"controllable-AP:" @@ |`
	Alias      *rawAlias      `"Alias:" @@ |`
	Acceptance *rawAcceptance `"Acceptance:" @@ |`
	AccName    *rawAccName    `"acc-name:" @@ |`
	Properties *rawProps      `"properties:" @@ |`
	Name       *string        `"name:" @String |`
	Tool       []string       `"tool:" @String+ |`
	Unknown    *rawUnknown    `@@`
}

type rawAPs struct {
	Count int      `@Int`
	Names []string `@String*`
}

// A separate struct (rather than []int in rawHeader) so that a bare
// "controllable-AP:" header still selects this branch.
type rawCntAPs struct {
	IDs []int `@Int*`
}

type rawProps struct {
	Names []string `@Ident*`
}

type rawAlias struct {
	Name string       `@AliasName`
	Expr rawLabelExpr `@@`
}

type rawAccName struct {
	ID     string   `@Ident`
	Params []string `(@Ident | @Int)*`
}

type rawAcceptance struct {
	Count int        `@Int`
	Cond  rawAccExpr `@@`
}

type rawAccExpr struct {
	First rawAccTerm   `@@`
	Rest  []rawAccTerm `("|" @@)*`
}

type rawAccTerm struct {
	First rawAccAtom   `@@`
	Rest  []rawAccAtom `("&" @@)*`
}

type rawAccAtom struct {
	Paren *rawAccExpr `"(" @@ ")" |`
	Fin   *rawAccSet  `"Fin" "(" @@ ")" |`
	Inf   *rawAccSet  `"Inf" "(" @@ ")" |`
	Bool  *string     `@("t" | "f")`
}

type rawAccSet struct {
	Neg bool `@"!"?`
	Set int  `@Int`
}

type rawLabelExpr struct {
	First rawLabelTerm   `@@`
	Rest  []rawLabelTerm `("|" @@)*`
}

type rawLabelTerm struct {
	First rawLabelFactor   `@@`
	Rest  []rawLabelFactor `("&" @@)*`
}

type rawLabelFactor struct {
	Not   *rawLabelFactor `"!" @@ |`
	Paren *rawLabelExpr   `"(" @@ ")" |`
	Bool  *string         `@("t" | "f") |`
	AP    *int            `@Int |`
	Alias *string         `@AliasName`
}

type rawState struct {
	Label  *rawLabelExpr `"State:" ("[" @@ "]")?`
	ID     int           `@Int`
	Name   *string       `@String?`
	AccSig []int         `("{" @Int* "}")?`
	Edges  []rawEdge     `@@*`
}

type rawEdge struct {
	Label      *rawLabelExpr `("[" @@ "]")?`
	Successors []int         `@Int ("&" @Int)*`
	AccSig     []int         `("{" @Int* "}")?`
}

// Unrecognized headers are legal HOA; their values are consumed and
// dropped. Must stay the last alternative of rawHeader.
type rawUnknown struct {
	Name   string   `@HeaderName`
	Values []string `(@Ident | @Int | @String | @AliasName)*`
}

// HeaderName must be tried before Ident so that "States:" lexes as one
// token; the known header keywords are matched by value against it.
var ehoaLexer = lexer.MustSimple([]lexer.Rule{
	{Name: "Comment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Marker", Pattern: `--(?:BODY|END|ABORT)--`},
	{Name: "HeaderName", Pattern: `[a-zA-Z_][a-zA-Z0-9_-]*:`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_-]*`},
	{Name: "AliasName", Pattern: `@[a-zA-Z0-9_-]+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[!&|()\[\]{}]`},
})

// Parser is the raw EHOA grammar.
var Parser = participle.MustBuild(&rawFile{},
	participle.Lexer(ehoaLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace", "Comment"),
)

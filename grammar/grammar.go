package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the outline of one source file: its function signatures and the
// shape of their bodies. Statements are not reduced.
type File struct {
	Pos   lexer.Position
	Items []*Item `@@*`
}

type Item struct {
	Function *Function `  @@`
	Stray    *Stray    `| @@`
}

// Stray is a top-level token outside any function.
type Stray struct {
	Pos   lexer.Position
	Token string `@~"func"`
}

type Function struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Name    PosIdent    `"func" @@ "("`
	Params  []*Param    `[ @@ { "," @@ } ] ")"`
	Returns PosIdent    `"returns" @@`
	Body    []*BodyItem `@@* "end"`
}

type PosIdent struct {
	Pos   lexer.Position
	Value string `@(FuncCall | Identifier)`
}

type Param struct {
	Pos  lexer.Position
	Type string   `@Identifier`
	Name PosIdent `@@`
}

type BodyItem struct {
	Block *Block `  @@`
	Token string `| @~("end" | "if" | "while" | "for" | "func")`
}

// Block is a nested if/while/for/func ... end.
type Block struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Opener string      `@("if" | "while" | "for" | "func")`
	Body   []*BodyItem `@@* "end"`
}

package lang

import (
	"fmt"
	"strconv"
)

// TokenKind classifies a [Token].
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenIdentifier
	TokenSubstitutionID
	TokenString
	TokenOpenParen
	TokenCloseParen
	TokenComma
)

var tokenKindNames = [...]string{
	TokenEOF:            "EOF",
	TokenIdentifier:     "IDENTIFIER",
	TokenSubstitutionID: "SUBSTITUTION_ID",
	TokenString:         "STRING",
	TokenOpenParen:      "OPEN_PAREN",
	TokenCloseParen:     "CLOSE_PAREN",
	TokenComma:          "COMMA",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}

	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Position is a location in source text. Offset is in bytes from the start
// of input; Line and Column are 1-based, with Column counted in runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is a lexical unit of an expression.
//
// Literal holds the identifier text for [TokenIdentifier], the braced text
// (for example "{brand}") for [TokenSubstitutionID], and the text between
// the quotes for [TokenString].
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF, TokenOpenParen, TokenCloseParen, TokenComma:
		return fmt.Sprintf("%s@%s", t.Kind, t.Pos)
	default:
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Literal, t.Pos)
	}
}

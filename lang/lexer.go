package lang

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

type lexMode uint8

const (
	modeNormal lexMode = iota
	modeString
)

// lexer produces tokens one at a time from its input. In string mode every
// rune up to the closing quote is literal text.
type lexer struct {
	input string
	pos   int // byte offset of the next rune
	line  int
	col   int
	prev  rune // last rune consumed

	mode  lexMode
	quote rune
	start Position // opening quote of the string being scanned
	text  strings.Builder
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, col: 1}
}

// Tokenize returns the tokens of text, excluding the final EOF token. On
// error it returns the tokens read before the error.
func Tokenize(text string) ([]Token, error) {
	var (
		l    = newLexer(text)
		toks []Token
	)

	for {
		tok, err := l.next()
		if err != nil {
			return toks, err
		}

		if tok.Kind == TokenEOF {
			return toks, nil
		}

		toks = append(toks, tok)
	}
}

func (l *lexer) next() (Token, error) {
	for !l.eof() {
		if l.mode == modeString {
			return l.lexString()
		}

		pos := l.position()

		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == utf8.RuneError && size == 1 {
			return Token{}, ErrSyntax.Wrap(errInvalidUTF8).At(pos)
		}

		switch {
		case r == ' ' || r == '\t':
			l.advance()

		case isIdentStart(r):
			return Token{Kind: TokenIdentifier, Literal: l.lexIdent(), Pos: pos}, nil

		case r == '{':
			return l.lexSubstitution(pos)

		case r == '(':
			l.advance()

			return Token{Kind: TokenOpenParen, Literal: "(", Pos: pos}, nil

		case r == ')':
			l.advance()

			return Token{Kind: TokenCloseParen, Literal: ")", Pos: pos}, nil

		case r == ',':
			l.advance()

			return Token{Kind: TokenComma, Literal: ",", Pos: pos}, nil

		case r == '"' || r == '\'':
			l.advance()
			l.mode, l.quote, l.start = modeString, r, pos
			l.text.Reset()

		default:
			return Token{}, illegal(pos, r)
		}
	}

	if l.mode == modeString {
		return Token{}, ErrSyntax.Wrap(errUnterminated).At(l.start)
	}

	return Token{Kind: TokenEOF, Pos: l.position()}, nil
}

// lexString scans to the closing quote. A matching quote preceded by a
// backslash in the source does not close the string; both runes are kept.
func (l *lexer) lexString() (Token, error) {
	for !l.eof() {
		pos := l.position()

		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == utf8.RuneError && size == 1 {
			return Token{}, ErrSyntax.Wrap(errInvalidUTF8).At(pos)
		}

		escaped := l.prev == '\\'

		l.advance()

		if r == l.quote && !escaped {
			l.mode = modeNormal

			return Token{Kind: TokenString, Literal: l.text.String(), Pos: l.start}, nil
		}

		l.text.WriteRune(r)
	}

	return Token{}, ErrSyntax.Wrap(errUnterminated).At(l.start)
}

func (l *lexer) lexIdent() string {
	begin := l.pos

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	return l.input[begin:l.pos]
}

// lexSubstitution scans "{name}". Anything else starting with '{' is an
// illegal character.
func (l *lexer) lexSubstitution(pos Position) (Token, error) {
	rest := l.input[l.pos+1:]

	n := 0
	for n < len(rest) && isIdentByte(rest[n], n == 0) {
		n++
	}

	if n == 0 || n == len(rest) || rest[n] != '}' {
		return Token{}, illegal(pos, '{')
	}

	begin := l.pos
	for range n + 2 {
		l.advance()
	}

	return Token{Kind: TokenSubstitutionID, Literal: l.input[begin:l.pos], Pos: pos}, nil
}

func illegal(pos Position, r rune) *Error {
	return ErrSyntax.Wrap(errIllegalChar).At(pos).With(slog.String("char", string(r)))
}

func (l *lexer) eof() bool { return l.pos >= len(l.input) }

func (l *lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

	return r
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])

	l.pos += size
	l.prev = r

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// Identifiers are ASCII only: [A-Za-z_][A-Za-z0-9_]*.
func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || ('0' <= r && r <= '9')
}

func isIdentByte(b byte, first bool) bool {
	if first {
		return isIdentStart(rune(b))
	}

	return isIdentContinue(rune(b))
}

package lang

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

// parser evaluates while it parses. It holds at most one token of
// lookahead and reads it only when a decision requires it, so an argument
// is resolved before the token after it is scanned, and a function is
// called before the end of input is checked.
type parser struct {
	ctx  context.Context
	lex  *lexer
	res  resolver
	tok  Token
	have bool
}

// parseCommand parses: IDENTIFIER '(' args ')' EOF.
func (p *parser) parseCommand() (Value, error) {
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return Value{}, err
	}

	if _, err := p.expect(TokenOpenParen); err != nil {
		return Value{}, err
	}

	args, err := p.parseArgs()
	if err != nil {
		return Value{}, err
	}

	// parseArgs stops only at ')'
	p.advance()

	val, err := p.call(name, args)
	if err != nil {
		return Value{}, err
	}

	if _, err := p.expect(TokenEOF); err != nil {
		return Value{}, err
	}

	return val, nil
}

// parseArgs parses: arg (',' arg)*, leaving ')' as the lookahead.
func (p *parser) parseArgs() ([]string, error) {
	var args []string

	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenComma:
			p.advance()
		case TokenCloseParen:
			return args, nil
		default:
			return nil, unexpected(tok, TokenComma, TokenCloseParen)
		}
	}
}

// parseArg parses: IDENTIFIER | SUBSTITUTION_ID | STRING.
func (p *parser) parseArg() (string, error) {
	tok, err := p.expect(TokenIdentifier, TokenSubstitutionID, TokenString)
	if err != nil {
		return "", err
	}

	switch tok.Kind {
	case TokenSubstitutionID:
		return p.res.resolve(p.ctx, strings.Trim(tok.Literal, "{}"))
	case TokenString:
		return p.res.interpolate(p.ctx, tok.Literal)
	default:
		return tok.Literal, nil
	}
}

func (p *parser) call(name Token, args []string) (Value, error) {
	b, ok := LookupBuiltin(name.Literal)
	if !ok {
		return Value{}, ErrInvalidFunc.With(slog.String("func", name.Literal))
	}

	p.res.logger.TraceContext(p.ctx, "call",
		slog.String("func", name.Literal),
		slog.Any("args", args))

	val, err := b.Call(args)
	if err != nil {
		return Value{}, ErrInvalidUsage.Wrap(err).With(
			slog.String("func", name.Literal),
			slog.Any("args", args),
		)
	}

	return val, nil
}

func (p *parser) peek() (Token, error) {
	if !p.have {
		tok, err := p.lex.next()
		if err != nil {
			return Token{}, err
		}

		p.tok, p.have = tok, true
	}

	return p.tok, nil
}

func (p *parser) advance() Token {
	p.have = false

	return p.tok
}

// expect consumes the lookahead if it is one of kinds.
func (p *parser) expect(kinds ...TokenKind) (Token, error) {
	tok, err := p.peek()
	if err != nil {
		return Token{}, err
	}

	if !slices.Contains(kinds, tok.Kind) {
		return Token{}, unexpected(tok, kinds...)
	}

	return p.advance(), nil
}

func unexpected(tok Token, expected ...TokenKind) *Error {
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = k.String()
	}

	found := tok.Kind.String()
	if tok.Kind != TokenEOF {
		found += " " + tok.Literal
	}

	return ErrSyntax.Wrap(errUnexpected).At(tok.Pos).With(
		slog.String("found", found),
		slog.String("expected", strings.Join(names, " or ")),
	)
}

package ylang

import (
	"fmt"
	"strconv"

	"fortio.org/log"
)

// Parser is a recursive-descent parser over a lexed token sequence:
//
//	program     → declaration* EOF
//	declaration → "var" IDENT ( "=" expression )? ";" | statement
//	statement   → "print" expression ";" | block | expression ";"
//	block       → "{" declaration* "}"
//	expression  → equality
//	equality    → comparison ( ( "!=" | "==" ) comparison )*
//	comparison  → term ( ( "<" | "<=" | ">" | ">=" ) term )*
//	term        → factor ( ( "-" | "+" ) factor )*
//	factor      → unary ( ( "/" | "*" ) unary )*
//	unary       → ( "!" | "-" ) unary | primary
//	primary     → NUMBER | STRING | "true" | "false" | "nil"
//	            | IDENT | "(" expression ")"
type Parser struct {
	tokens  []Token
	current int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
	}
}

// Parse returns the program's statements, stopping at the first error.
func (p *Parser) Parse() ([]Stmt, error) {
	var stmts []Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	log.LogVf("parsed %d statements", len(stmts))
	return stmts, nil
}

// ParseAll keeps going after an error by skipping to the next statement
// boundary. The returned error, if any, is a *ParseErrors holding every
// error found; the statements that did parse are returned alongside it.
func (p *Parser) ParseAll() ([]Stmt, error) {
	var stmts []Stmt
	var errs []*ParserError
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			errs = append(errs, err)
			p.synchronize()
			continue
		}

		stmts = append(stmts, stmt)
	}

	if len(errs) != 0 {
		return stmts, &ParseErrors{Errors: errs}
	}

	return stmts, nil
}

func (p *Parser) declaration() (Stmt, *ParserError) {
	if p.match(TokenVar) {
		return p.varDecl()
	}

	return p.statement()
}

func (p *Parser) varDecl() (Stmt, *ParserError) {
	name, err := p.expect(TokenIdentifier, "Expect variable name")
	if err != nil {
		return nil, err
	}

	var value Expr
	if p.match(TokenEqual) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenSemicolon, "Expect ';' after variable declaration"); err != nil {
		return nil, err
	}

	return &VariableDecl{
		Name:  name,
		Value: value,
	}, nil
}

func (p *Parser) statement() (Stmt, *ParserError) {
	switch {
	case p.match(TokenPrint):
		expr, err := p.exprTerminated("Expect ';' after value")
		if err != nil {
			return nil, err
		}

		return &PrintStmt{Expr: expr}, nil
	case p.match(TokenOpenCurly):
		return p.blockStmt()
	default:
		expr, err := p.exprTerminated("Expect ';' after expression")
		if err != nil {
			return nil, err
		}

		return &ExprStmt{Expr: expr}, nil
	}
}

func (p *Parser) exprTerminated(message string) (Expr, *ParserError) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, message); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *Parser) blockStmt() (Stmt, *ParserError) {
	block := &BlockStmt{}
	for !p.check(TokenCloseCurly) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}

		block.Statements = append(block.Statements, stmt)
	}

	if _, err := p.expect(TokenCloseCurly, "Expect '}' after block"); err != nil {
		return nil, err
	}

	return block, nil
}

func (p *Parser) expression() (Expr, *ParserError) {
	return p.equality()
}

func (p *Parser) equality() (Expr, *ParserError) {
	return p.binary(p.comparison, TokenBangEqual, TokenEqualEqual)
}

func (p *Parser) comparison() (Expr, *ParserError) {
	return p.binary(p.term, TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual)
}

func (p *Parser) term() (Expr, *ParserError) {
	return p.binary(p.factor, TokenMinus, TokenPlus)
}

func (p *Parser) factor() (Expr, *ParserError) {
	return p.binary(p.unary, TokenSlash, TokenStar)
}

// binary parses one left-associative precedence level. Chained operands
// (for example 1 - 3 + 1) nest to the left.
func (p *Parser) binary(operand func() (Expr, *ParserError), ops ...TokenType) (Expr, *ParserError) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(ops...) {
		op := p.previous()

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operator: op,
			Op1:      lhs,
			Op2:      rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) unary() (Expr, *ParserError) {
	if p.match(TokenBang, TokenMinus) {
		op := p.previous()

		operand, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{
			Operator: op,
			Operand:  operand,
		}, nil
	}

	return p.primary()
}

func (p *Parser) primary() (Expr, *ParserError) {
	switch tok := p.peek(); tok.Typ {
	case TokenFalse:
		p.next()
		return &LiteralExpr{Value: Boolean(false)}, nil
	case TokenTrue:
		p.next()
		return &LiteralExpr{Value: Boolean(true)}, nil
	case TokenNil:
		p.next()
		return &LiteralExpr{Value: Nil{}}, nil
	case TokenNumber:
		p.next()
		return &LiteralExpr{Value: parseNumber(tok)}, nil
	case TokenString:
		p.next()
		return &LiteralExpr{Value: String(tok.Literal)}, nil
	case TokenIdentifier:
		p.next()
		return &VariableExpr{Name: tok}, nil
	case TokenOpenParentheses:
		p.next()
		return p.parenthesisedExpression()
	default:
		return nil, p.errorf(tok, "Unexpected token %s", tok.Typ)
	}
}

func (p *Parser) parenthesisedExpression() (Expr, *ParserError) {
	inner, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses, "Expect ')' after expression"); err != nil {
		return nil, err
	}

	return &GroupingExpr{Inner: inner}, nil
}

// The lexer only produces well-formed numerals, so a failure here is a bug.
func parseNumber(tok Token) Number {
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		panic(fmt.Sprintf("failed to parse number literal %q at line %d: %v", tok.Literal, tok.Line, err))
	}

	return Number(v)
}

// synchronize discards tokens until just past a ';' or just before a token
// that starts a statement.
func (p *Parser) synchronize() {
	p.next()

	for !p.isAtEnd() {
		if p.previous().Typ == TokenSemicolon {
			return
		}

		switch p.peek().Typ {
		case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
			return
		}

		p.next()
	}
}

func (p *Parser) expect(typ TokenType, message string) (Token, *ParserError) {
	if p.check(typ) {
		return p.next(), nil
	}

	tok := p.peek()
	return Token{}, p.errorf(tok, "%s, found %s", message, tok.Typ)
}

func (p *Parser) match(types ...TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.next()
			return true
		}
	}

	return false
}

func (p *Parser) check(typ TokenType) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().Typ == typ
}

func (p *Parser) next() Token {
	if !p.isAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Typ == TokenEOF
}

// peek tolerates sequences that are missing their EOF token.
func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		line := 1
		if len(p.tokens) != 0 {
			line = p.tokens[len(p.tokens)-1].Line
		}

		return Token{Typ: TokenEOF, Line: line}
	}

	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return Token{}
	}

	return p.tokens[p.current-1]
}

func (p *Parser) errorf(tok Token, format string, args ...interface{}) *ParserError {
	return &ParserError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
	}
}
